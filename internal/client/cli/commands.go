package cli

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/dmitrijs2005/authkeeper/internal/client"
	"github.com/dmitrijs2005/authkeeper/internal/common"
)

// call runs fn under the configured per-command timeout.
func (a *App) call(ctx context.Context, fn func(ctx context.Context) error) error {
	if a.config.RequestTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, a.config.RequestTimeout)
		defer cancel()
	}

	err := fn(ctx)
	switch {
	case err == nil:
	case errors.Is(err, common.ErrTokenExpired):
		fmt.Fprintln(a.out, "Access token expired, mint a new one with tokengen")
	case errors.Is(err, common.ErrorUnauthorized):
		fmt.Fprintln(a.out, "Access token rejected, mint one with tokengen")
	case errors.Is(err, client.ErrUnavailable):
		a.setMode(ModeOffline)
		fmt.Fprintln(a.out, "Server unavailable")
	default:
		fmt.Fprintln(a.out, "Error:", err)
	}
	return err
}

func (a *App) usage(args []string, n int, text string) error {
	if len(args) != n {
		fmt.Fprintln(a.out, "Usage:", text)
		return errUsage
	}
	return nil
}

// show prints v as indented JSON, or "Not found" when v is a nil pointer.
func show[T any](a *App, v *T) {
	if v == nil {
		fmt.Fprintln(a.out, "Not found")
		return
	}
	b, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		fmt.Fprintln(a.out, "Error:", err)
		return
	}
	fmt.Fprintln(a.out, string(b))
}

func (a *App) ShowUser(ctx context.Context, args []string) error {
	if err := a.usage(args, 1, "user <id>"); err != nil {
		return err
	}
	return a.call(ctx, func(ctx context.Context) error {
		u, err := a.adapter.GetUser(ctx, args[0])
		if err != nil {
			return err
		}
		show(a, u)
		return nil
	})
}

func (a *App) FindByEmail(ctx context.Context, args []string) error {
	if err := a.usage(args, 1, "email <address>"); err != nil {
		return err
	}
	return a.call(ctx, func(ctx context.Context) error {
		u, err := a.adapter.GetUserByEmail(ctx, args[0])
		if err != nil {
			return err
		}
		show(a, u)
		return nil
	})
}

func (a *App) FindByAccount(ctx context.Context, args []string) error {
	if err := a.usage(args, 2, "account <provider> <accountId>"); err != nil {
		return err
	}
	return a.call(ctx, func(ctx context.Context) error {
		u, err := a.adapter.GetUserByAccount(ctx, args[0], args[1])
		if err != nil {
			return err
		}
		show(a, u)
		return nil
	})
}

func (a *App) ShowSession(ctx context.Context, args []string) error {
	if err := a.usage(args, 1, "session <token>"); err != nil {
		return err
	}
	return a.call(ctx, func(ctx context.Context) error {
		su, err := a.adapter.GetSessionAndUser(ctx, args[0])
		if err != nil {
			return err
		}
		show(a, su)
		return nil
	})
}

func (a *App) RevokeSession(ctx context.Context, args []string) error {
	if err := a.usage(args, 1, "revoke <token>"); err != nil {
		return err
	}
	return a.call(ctx, func(ctx context.Context) error {
		if err := a.adapter.DeleteSession(ctx, args[0]); err != nil {
			return err
		}
		fmt.Fprintln(a.out, "Session revoked")
		return nil
	})
}

func (a *App) Unlink(ctx context.Context, args []string) error {
	if err := a.usage(args, 2, "unlink <provider> <accountId>"); err != nil {
		return err
	}
	return a.call(ctx, func(ctx context.Context) error {
		if err := a.adapter.UnlinkAccount(ctx, args[0], args[1]); err != nil {
			return err
		}
		fmt.Fprintln(a.out, "Account unlinked")
		return nil
	})
}

// DeleteUser asks for confirmation first. Accounts and sessions of the user
// are left in place.
func (a *App) DeleteUser(ctx context.Context, args []string) error {
	if err := a.usage(args, 1, "deluser <id>"); err != nil {
		return err
	}

	answer, err := GetSimpleText(a.reader, fmt.Sprintf("Delete user %s? Type 'yes' to confirm", args[0]), a.out)
	if err != nil {
		return err
	}
	if answer != "yes" {
		fmt.Fprintln(a.out, "Cancelled")
		return nil
	}

	return a.call(ctx, func(ctx context.Context) error {
		if err := a.adapter.DeleteUser(ctx, args[0]); err != nil {
			return err
		}
		fmt.Fprintln(a.out, "User deleted")
		return nil
	})
}

// BurnToken consumes a verification token so it can no longer be redeemed.
// The token value is read without echo.
func (a *App) BurnToken(ctx context.Context, args []string) error {
	if err := a.usage(args, 1, "burn <identifier>"); err != nil {
		return err
	}

	token, err := GetSecret(a.out, "Token: ")
	if err != nil {
		fmt.Fprintln(a.out, "Error:", err)
		return err
	}

	return a.call(ctx, func(ctx context.Context) error {
		vt, err := a.adapter.UseVerificationToken(ctx, args[0], token)
		if err != nil {
			return err
		}
		if vt == nil {
			fmt.Fprintln(a.out, "Not found")
			return nil
		}
		fmt.Fprintf(a.out, "Token consumed (was valid until %s)\n", vt.Expires.Format(time.RFC3339))
		return nil
	})
}

func (a *App) Ping(ctx context.Context, _ []string) error {
	if err := a.checkOnline(ctx); err != nil {
		fmt.Fprintln(a.out, "Server unavailable:", err)
		return err
	}
	fmt.Fprintln(a.out, "Server is serving")
	return nil
}
