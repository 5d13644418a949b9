// Command tokengen mints a service token for callers of the authkeeper gRPC
// endpoint. The signing secret comes from AUTHKEEPER_SECRET_KEY or, when that
// is unset, from a hidden terminal prompt.
//
// Usage:
//
//	tokengen -caller nextauth -validity 720h
//	tokengen -gen-secret
package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/dmitrijs2005/authkeeper/internal/server/auth"
	"github.com/dmitrijs2005/authkeeper/internal/shared"
	"golang.org/x/term"
)

const secretEnv = "AUTHKEEPER_SECRET_KEY"

// readPassword is a test seam for term.ReadPassword.
var readPassword = term.ReadPassword

var errEmptySecret = errors.New("secret key is empty")

func main() {
	if err := run(os.Args[1:], os.Stdout, os.Stderr); err != nil {
		fmt.Fprintln(os.Stderr, "tokengen:", err)
		os.Exit(1)
	}
}

func run(args []string, stdout, stderr io.Writer) error {
	fs := flag.NewFlagSet("tokengen", flag.ContinueOnError)
	fs.SetOutput(stderr)

	caller := fs.String("caller", "authjs", "caller name embedded in the token")
	validity := fs.Duration("validity", 0, "token lifetime, 0 for no expiry")
	genSecret := fs.Bool("gen-secret", false, "print a new random secret for AUTHKEEPER_SECRET_KEY and exit")

	if err := fs.Parse(args); err != nil {
		return err
	}

	if *genSecret {
		s, err := shared.RandomHex(32)
		if err != nil {
			return fmt.Errorf("generate secret: %w", err)
		}
		_, err = fmt.Fprintln(stdout, s)
		return err
	}
	if *validity < 0 {
		return fmt.Errorf("negative validity %s", *validity)
	}

	secret, err := secretKey(stderr)
	if err != nil {
		return err
	}
	defer shared.Wipe(secret)

	token, err := auth.GenerateToken(*caller, secret, *validity)
	if err != nil {
		return fmt.Errorf("sign token: %w", err)
	}

	_, err = fmt.Fprintln(stdout, token)
	return err
}

func secretKey(prompt io.Writer) ([]byte, error) {
	if s, ok := os.LookupEnv(secretEnv); ok {
		if s == "" {
			return nil, errEmptySecret
		}
		return []byte(s), nil
	}

	fmt.Fprint(prompt, "Secret key: ")
	b, err := readPassword(int(os.Stdin.Fd()))
	fmt.Fprintln(prompt)
	if err != nil {
		return nil, fmt.Errorf("read secret: %w", err)
	}

	s := strings.TrimSpace(string(b))
	if s == "" {
		return nil, errEmptySecret
	}
	return []byte(s), nil
}
