package cli

import (
	"context"
	"fmt"
)

func (a *App) Register(ctx context.Context) error {
	email, err := GetSimpleText(a.reader, "-Enter email", a.out)
	if err != nil {
		return err
	}
	password, err := GetPassword(a.reader, a.out)
	if err != nil {
		return err
	}

	id, err := a.session.Register(ctx, email, password)
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "Registered profile %d. Use login to start playing.\n", id)
	return nil
}

func (a *App) Login(ctx context.Context) error {
	if a.session.LoggedIn() {
		return errAlreadyLoggedIn
	}

	email, err := GetSimpleText(a.reader, "-Enter email", a.out)
	if err != nil {
		return err
	}
	password, err := GetPassword(a.reader, a.out)
	if err != nil {
		return err
	}

	needsUsername, err := a.session.Login(ctx, email, password)
	if err != nil {
		return err
	}
	if needsUsername {
		fmt.Fprintln(a.out, "Logged in. Pick a username to start playing.")
		return a.Username(ctx)
	}

	fmt.Fprintf(a.out, "Login successful. Hello, %s!\n", a.session.Current().Username)
	return nil
}

// Username finishes a login whose profile has no username yet.
func (a *App) Username(ctx context.Context) error {
	username, err := GetSimpleText(a.reader, "-Enter username (4-20 characters)", a.out)
	if err != nil {
		return err
	}
	if err := a.session.SetUsername(ctx, username); err != nil {
		return err
	}
	fmt.Fprintf(a.out, "Username set. Hello, %s!\n", a.session.Current().Username)
	return nil
}

func (a *App) Logout(ctx context.Context) error {
	if err := a.session.Logout(ctx); err != nil {
		return err
	}
	fmt.Fprintln(a.out, "Logged out.")
	return nil
}
