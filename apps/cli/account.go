package main

import (
	"fmt"

	"github.com/pkg/errors"

	"github.com/AhmedMostafa129/Mahd/core/auth"
	"github.com/AhmedMostafa129/Mahd/core/guard"
)

var errNotSignedIn = errors.New("not signed in; run `login -email EMAIL` first")

func (cli *commandLine) login(email, pwd string) error {
	sess, err := cli.authSvc.Login(cli.context(), auth.Credentials{Email: email, Password: pwd})
	if err != nil {
		return err
	}
	fmt.Fprintf(cli.out, "Signed in as %s (%s). Home: %s\n", sess.User.FullName, sess.User.Role, guard.Home(sess.User.Role))
	return nil
}

// logout clears the saved session even when the API call fails.
func (cli *commandLine) logout() error {
	if err := cli.authSvc.ForceLogout(cli.context()); err != nil {
		fmt.Fprintf(cli.out, "warning: %s\n", err)
	}
	fmt.Fprintln(cli.out, "Signed out.")
	return nil
}

func (cli *commandLine) whoami() error {
	usr, ok := cli.store.User()
	if !ok {
		return errNotSignedIn
	}
	fmt.Fprintf(cli.out, "%s <%s>\nrole: %s\nid:   %s\n", usr.FullName, usr.Email, usr.Role, usr.UserID)
	return nil
}

func (cli *commandLine) changePassword(change auth.PasswordChange) error {
	msg, err := cli.authSvc.ChangePassword(cli.context(), change)
	if err != nil {
		return err
	}
	fmt.Fprintln(cli.out, msg)
	return nil
}
