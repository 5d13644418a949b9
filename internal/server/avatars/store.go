// Package avatars mirrors remote avatar images into an S3-compatible bucket.
package avatars

import (
	"bytes"
	"context"
	"fmt"
	"net/http"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/dmitrijs2005/authkeeper/internal/common"
	"github.com/dmitrijs2005/authkeeper/internal/netx"
	"github.com/segmentio/ksuid"
)

// DefaultBucket is the bucket avatars are written to unless configured
// otherwise.
const DefaultBucket = "avatars"

var (
	loadDefaultAWSConfig = config.LoadDefaultConfig

	newS3ClientFromConfig = func(cfg aws.Config, optFns ...func(*s3.Options)) *s3.Client {
		return s3.NewFromConfig(cfg, optFns...)
	}

	// newObjectName yields a time-ordered, collision-resistant object key.
	newObjectName = func() string {
		return ksuid.New().String()
	}
)

// Store ingests the resource at a URL and returns a reference to the
// stored copy.
type Store interface {
	Ingest(ctx context.Context, url string) (string, error)
}

// ObjectPutter is the subset of *s3.Client used by S3Store.
type ObjectPutter interface {
	PutObject(ctx context.Context, in *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
}

// S3Settings describes how to reach the bucket.
type S3Settings struct {
	Region       string
	AccessKey    string
	SecretKey    string
	BaseEndpoint string
}

// NewS3Client builds an S3 client with static credentials. A non-empty
// BaseEndpoint points the client at a MinIO or other compatible server and
// switches to path-style addressing.
func NewS3Client(ctx context.Context, s S3Settings) (*s3.Client, error) {
	cfg, err := loadDefaultAWSConfig(ctx,
		config.WithRegion(s.Region),
		config.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
			s.AccessKey,
			s.SecretKey,
			"",
		)))
	if err != nil {
		return nil, err
	}

	return newS3ClientFromConfig(cfg, func(o *s3.Options) {
		if s.BaseEndpoint != "" {
			o.BaseEndpoint = aws.String(s.BaseEndpoint)
			o.UsePathStyle = true
		}
	}), nil
}

type S3Store struct {
	client ObjectPutter
	bucket string
	http   *http.Client
}

// NewS3Store returns a store writing to bucket. A nil httpClient uses
// http.DefaultClient for fetching.
func NewS3Store(client ObjectPutter, bucket string, httpClient *http.Client) *S3Store {
	if bucket == "" {
		bucket = DefaultBucket
	}
	return &S3Store{client: client, bucket: bucket, http: httpClient}
}

// Ingest fetches url and writes the body under a fresh object name. The
// returned reference is the object key within the bucket.
//
// Errors wrap common.ErrFetchFailure or common.ErrWriteFailure.
func (s *S3Store) Ingest(ctx context.Context, url string) (string, error) {
	body, contentType, err := netx.Fetch(ctx, s.http, url)
	if err != nil {
		return "", fmt.Errorf("%w: %w", common.ErrFetchFailure, err)
	}

	key := newObjectName()
	in := &s3.PutObjectInput{
		Bucket:        aws.String(s.bucket),
		Key:           aws.String(key),
		Body:          bytes.NewReader(body),
		ContentLength: aws.Int64(int64(len(body))),
	}
	if contentType != "" {
		in.ContentType = aws.String(contentType)
	}

	if _, err := s.client.PutObject(ctx, in); err != nil {
		return "", fmt.Errorf("%w: %w", common.ErrWriteFailure, err)
	}

	return key, nil
}
