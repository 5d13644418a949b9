// Package netx contains small HTTP helpers.
package netx

import (
	"context"
	"fmt"
	"io"
	"net/http"
)

// MaxFetchSize caps how many bytes Fetch reads from a response body.
const MaxFetchSize = 10 << 20

// Fetch downloads url with client and returns the body and the response
// Content-Type header. Responses outside the 2xx range are errors.
func Fetch(ctx context.Context, client *http.Client, url string) ([]byte, string, error) {
	if client == nil {
		client = http.DefaultClient
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, "", err
	}

	resp, err := client.Do(req)
	if err != nil {
		return nil, "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, "", fmt.Errorf("fetch %s: unexpected status %s", url, resp.Status)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, MaxFetchSize+1))
	if err != nil {
		return nil, "", err
	}
	if len(body) > MaxFetchSize {
		return nil, "", fmt.Errorf("fetch %s: body exceeds %d bytes", url, MaxFetchSize)
	}

	return body, resp.Header.Get("Content-Type"), nil
}
