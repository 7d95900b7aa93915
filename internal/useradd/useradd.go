// Package useradd registers shop accounts from the command line, bypassing
// the HTTP API. Missing fields are prompted for; the password is always read
// from the terminal.
package useradd

import (
	"bufio"
	"bytes"
	"context"
	"errors"
	"flag"
	"fmt"
	"io"

	"github.com/sooldama/sooldama/internal/common"
	"github.com/sooldama/sooldama/internal/flagx"
	"github.com/sooldama/sooldama/internal/server/services"
)

var ErrPasswordMismatch = errors.New("passwords do not match")

type Registrar interface {
	InsertUser(ctx context.Context, u services.JoinUser) (*services.UserResponse, error)
}

type Options struct {
	Email       string
	Name        string
	PhoneNumber string
	Nickname    string
	Adult       bool
}

// ParseOptions reads the useradd flags out of args, ignoring server flags.
//
//	-email string
//	-name string
//	-phone string
//	-nickname string
//	-adult bool
func ParseOptions(args []string) (Options, error) {
	args = flagx.FilterArgs(args, []string{"-email", "-name", "-phone", "-nickname", "-adult"})

	var o Options
	fs := flag.NewFlagSet("useradd", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	fs.StringVar(&o.Email, "email", "", "account email")
	fs.StringVar(&o.Name, "name", "", "full name")
	fs.StringVar(&o.PhoneNumber, "phone", "", "phone number")
	fs.StringVar(&o.Nickname, "nickname", "", "nickname")
	fs.BoolVar(&o.Adult, "adult", false, "account holder is an adult")

	if err := fs.Parse(args); err != nil {
		return Options{}, err
	}
	return o, nil
}

func readRequired(reader *bufio.Reader, w io.Writer, prompt string, v *string) error {
	for *v == "" {
		s, err := GetSimpleText(reader, prompt, w)
		if err != nil {
			return err
		}
		*v = s
	}
	return nil
}

func readNewPassword(w io.Writer) ([]byte, error) {
	pw, err := GetPassword("Enter password", w)
	if err != nil {
		return nil, err
	}
	confirm, err := GetPassword("Repeat password", w)
	if err != nil {
		common.WipeByteArray(pw)
		return nil, err
	}
	defer common.WipeByteArray(confirm)

	if len(pw) == 0 || !bytes.Equal(pw, confirm) {
		common.WipeByteArray(pw)
		return nil, ErrPasswordMismatch
	}
	return pw, nil
}

// Run completes o interactively and registers the account.
func Run(ctx context.Context, o Options, reader *bufio.Reader, w io.Writer, r Registrar) error {
	if err := readRequired(reader, w, "Enter email", &o.Email); err != nil {
		return err
	}
	if err := services.ValidateEmail(services.NormalizeEmail(o.Email)); err != nil {
		return err
	}
	if err := readRequired(reader, w, "Enter nickname", &o.Nickname); err != nil {
		return err
	}

	pw, err := readNewPassword(w)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(pw)

	u, err := r.InsertUser(ctx, services.JoinUser{
		Email:       o.Email,
		Password:    string(pw),
		Name:        o.Name,
		PhoneNumber: o.PhoneNumber,
		Nickname:    o.Nickname,
		IsAdult:     o.Adult,
	})
	if err != nil {
		return fmt.Errorf("register %s: %w", o.Email, err)
	}

	_, err = fmt.Fprintf(w, "Created user id=%d email=%s\n", u.ID, u.Email)
	return err
}
