package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"syscall"

	"golang.org/x/term"

	"github.com/AhmedMostafa129/Mahd/core/auth"
	"github.com/AhmedMostafa129/Mahd/core/lms"
	"github.com/AhmedMostafa129/Mahd/core/screens"
	"github.com/AhmedMostafa129/Mahd/core/session"
)

var (
	readPasswordFunc = term.ReadPassword // mockable

	errHelp = errors.New("help provided")
)

type commandLine struct {
	authSvc *auth.Service
	loaders map[string]screens.Loader
	store   *session.Store
	out     io.Writer
}

func newCommandLine(authSvc *auth.Service, svc *lms.Services, store *session.Store, out io.Writer) *commandLine {
	return &commandLine{
		authSvc: authSvc,
		loaders: screens.Loaders(svc, authSvc),
		store:   store,
		out:     out,
	}
}

func (cli *commandLine) printUsage() {
	fmt.Fprintln(cli.out, "Usage:")
	fmt.Fprintln(cli.out, "  login -email EMAIL - sign in; the password will be prompted next")
	fmt.Fprintln(cli.out, "  logout             - sign out and forget the saved session")
	fmt.Fprintln(cli.out, "  whoami             - show the signed-in user")
	fmt.Fprintln(cli.out, "  open PATH          - show the screen at PATH, e.g. open /student/courses?page=2")
	fmt.Fprintln(cli.out, "  passwd             - change your password")
}

func (cli *commandLine) context() context.Context {
	return session.NewContext(context.Background(), cli.store)
}

func (cli *commandLine) run(args []string) error {
	if len(args) < 2 {
		cli.printUsage()
		return errHelp
	}

	loginCmd := flag.NewFlagSet("login", flag.ContinueOnError)
	loginCmd.SetOutput(cli.out)
	loginEmail := loginCmd.String("email", "", "The account email. The password will be prompted next.")

	switch args[1] {
	case "login":
		if err := loginCmd.Parse(args[2:]); err != nil {
			return err
		}
		if *loginEmail == "" {
			loginCmd.Usage()
			return errHelp
		}
		pwd, err := prompt(cli.out, "Enter password:")
		if err != nil {
			return err
		}
		return cli.login(*loginEmail, pwd)
	case "logout":
		return cli.logout()
	case "whoami":
		return cli.whoami()
	case "open":
		if len(args) < 3 {
			fmt.Fprintln(cli.out, "Usage: open PATH")
			return errHelp
		}
		return cli.open(args[2])
	case "passwd":
		if !cli.store.IsAuthenticated() {
			return errNotSignedIn
		}
		var change auth.PasswordChange
		var err error
		if change.CurrentPassword, err = prompt(cli.out, "Current password:"); err != nil {
			return err
		}
		if change.NewPassword, err = prompt(cli.out, "New password:"); err != nil {
			return err
		}
		if change.ConfirmNewPassword, err = prompt(cli.out, "Confirm new password:"); err != nil {
			return err
		}
		return cli.changePassword(change)
	default:
		cli.printUsage()
		return errHelp
	}
}

func prompt(out io.Writer, label string) (string, error) {
	fmt.Fprint(out, label)
	pwd, err := readPasswordFunc(syscall.Stdin)
	fmt.Fprintln(out)
	if err != nil {
		return "", err
	}
	if len(pwd) == 0 {
		return "", errHelp
	}
	return string(pwd), nil
}
