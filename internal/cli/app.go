// Package cli implements the local operator console. It talks to the
// authentication service directly over the configured store; reset codes
// are printed to the operator, who relays them to the user.
package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/studyplanner/studyauth/internal/server/auth"
)

const timeFormat = "2006-01-02 15:04:05"

type App struct {
	auth *auth.Service
	in   *bufio.Reader
	out  io.Writer
}

func NewApp(as *auth.Service, in io.Reader, out io.Writer) *App {
	return &App{auth: as, in: bufio.NewReader(in), out: out}
}

// Execute dispatches one command. Unknown input prints usage.
func (a *App) Execute(ctx context.Context, args []string) error {
	if len(args) == 0 {
		a.usage()
		return nil
	}

	switch args[0] {
	case "register":
		return a.register(ctx)
	case "info":
		if len(args) < 2 {
			return fmt.Errorf("usage: info <username>")
		}
		return a.info(ctx, args[1])
	case "forgot":
		if len(args) < 2 {
			return fmt.Errorf("usage: forgot <email>")
		}
		return a.forgot(ctx, args[1])
	case "verify":
		if len(args) < 3 {
			return fmt.Errorf("usage: verify <email> <code>")
		}
		return a.verify(ctx, args[1], args[2])
	case "reset":
		if len(args) < 3 {
			return fmt.Errorf("usage: reset <email> <code>")
		}
		return a.reset(ctx, args[1], args[2])
	default:
		a.usage()
		return fmt.Errorf("unknown command %q", args[0])
	}
}

func (a *App) usage() {
	fmt.Fprintln(a.out, "commands:")
	fmt.Fprintln(a.out, "  register                 create an account interactively")
	fmt.Fprintln(a.out, "  info <username>          show account details")
	fmt.Fprintln(a.out, "  forgot <email>           issue a password-reset code")
	fmt.Fprintln(a.out, "  verify <email> <code>    check a reset code")
	fmt.Fprintln(a.out, "  reset <email> <code>     set a new password with a verified code")
}

func (a *App) register(ctx context.Context) error {
	username, err := GetSimpleText(a.in, "Enter username", a.out)
	if err != nil {
		return err
	}

	email, err := GetSimpleText(a.in, "Enter email", a.out)
	if err != nil {
		return err
	}

	password, err := GetPassword("Enter password", a.out)
	if err != nil {
		return err
	}

	if err := a.auth.Register(ctx, username, email, password); err != nil {
		return err
	}

	fmt.Fprintln(a.out, "Registered", username)
	return nil
}

func (a *App) info(ctx context.Context, username string) error {
	profile, err := a.auth.Profile(ctx, username)
	if err != nil {
		return err
	}

	lastLogin := "never"
	if profile.LastLogin != nil {
		lastLogin = profile.LastLogin.Format(timeFormat)
	}

	fmt.Fprintf(a.out, "id:         %d\n", profile.ID)
	fmt.Fprintf(a.out, "username:   %s\n", profile.Username)
	fmt.Fprintf(a.out, "email:      %s\n", profile.Email)
	fmt.Fprintf(a.out, "created:    %s\n", profile.CreatedAt.Format(timeFormat))
	fmt.Fprintf(a.out, "last login: %s\n", lastLogin)
	return nil
}

func (a *App) forgot(ctx context.Context, email string) error {
	challenge, err := a.auth.RequestPasswordReset(ctx, email)
	if err != nil {
		return err
	}

	fmt.Fprintf(a.out, "reset code %s, valid until %s\n",
		challenge.Token, challenge.ExpiresAt.Format(timeFormat))
	return nil
}

func (a *App) verify(ctx context.Context, email, code string) error {
	if err := a.auth.VerifyResetToken(ctx, email, strings.TrimSpace(code)); err != nil {
		return err
	}
	fmt.Fprintln(a.out, "code OK")
	return nil
}

func (a *App) reset(ctx context.Context, email, code string) error {
	password, err := GetPassword("Enter new password", a.out)
	if err != nil {
		return err
	}

	if err := a.auth.ResetPassword(ctx, email, strings.TrimSpace(code), password); err != nil {
		return err
	}

	fmt.Fprintln(a.out, "password updated")
	return nil
}
