package cli

import (
	"context"
	"fmt"
	"log"
	"os"

	"github.com/drfoodie/nutritrack/internal/common"
)

// getSimpleText and getPassword are indirections used to facilitate testing.
// They point to interactive input helpers and can be swapped in tests.
var getSimpleText = GetSimpleText
var getPassword = GetPassword

// Register prompts the user for an email and password and attempts to create
// a new account in the remote store.
//
// On success it prints "Success!" and returns nil. The password byte slice
// is securely wiped before returning. Any I/O or service error is returned
// unchanged.
func (a *App) Register(ctx context.Context) error {
	email, err := getSimpleText(a.reader, "Enter email", os.Stdout)
	if err != nil {
		return err
	}

	password, err := getPassword(os.Stdout)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	if err := a.tracker.Register(ctx, email, string(password)); err != nil {
		log.Printf("Registration unsuccessful: %s", err.Error())
		return err
	}

	fmt.Println("Success!")
	return nil
}

// Login prompts for credentials and authenticates against the remote store.
// When this device holds no local data yet, the account snapshot is pulled
// and adopted; otherwise local data stays as is and keeps syncing up.
func (a *App) Login(ctx context.Context) error {
	email, err := getSimpleText(a.reader, "Enter email", os.Stdout)
	if err != nil {
		return err
	}

	password, err := getPassword(os.Stdout)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	if err := a.tracker.Login(ctx, email, string(password)); err != nil {
		log.Printf("Login unsuccessful: %s", err.Error())
		return err
	}

	log.Printf("Login successful")
	return nil
}

// Logout clears the local snapshot and the stored session. Unsynced changes
// are discarded, so ask first.
func (a *App) Logout(ctx context.Context) error {
	answer, err := getSimpleText(a.reader, "Log out and erase local data? (yes/no)", os.Stdout)
	if err != nil {
		return err
	}
	if answer != "yes" && answer != "y" {
		fmt.Println("Cancelled.")
		return nil
	}

	if err := a.tracker.Logout(ctx); err != nil {
		return err
	}
	fmt.Println("Logged out.")
	return nil
}
