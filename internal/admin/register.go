package admin

import (
	"bytes"
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/term"

	"github.com/dmitrijs2005/quizweb/internal/cryptox"
	"github.com/dmitrijs2005/quizweb/internal/flagx"
)

// readPassword is a test seam for term.ReadPassword.
var readPassword = term.ReadPassword

var ErrPasswordMismatch = errors.New("passwords do not match")

// Register creates an account named by -u. The password is prompted for
// twice without echo.
func (a *App) Register(ctx context.Context, args []string) error {
	var username string

	fs := flag.NewFlagSet("register", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	fs.StringVar(&username, "u", "", "username")
	if err := fs.Parse(flagx.FilterArgs(args, []string{"-u"})); err != nil {
		return err
	}
	if strings.TrimSpace(username) == "" {
		return errors.New("register: -u <name> is required")
	}

	pw, err := getPassword(a.out, "Enter password: ")
	if err != nil {
		return err
	}
	defer cryptox.Wipe(pw)

	confirm, err := getPassword(a.out, "Repeat password: ")
	if err != nil {
		return err
	}
	defer cryptox.Wipe(confirm)

	if !bytes.Equal(pw, confirm) {
		return ErrPasswordMismatch
	}

	acc, err := a.accounts.Register(ctx, username, string(pw))
	if err != nil {
		return fmt.Errorf("register %q: %w", username, err)
	}
	fmt.Fprintf(a.out, "registered %s (id %d)\n", acc.UserName, acc.ID)
	return nil
}

func getPassword(w io.Writer, prompt string) ([]byte, error) {
	if _, err := fmt.Fprint(w, prompt); err != nil {
		return nil, err
	}
	pw, err := readPassword(int(os.Stdin.Fd()))
	fmt.Fprintln(w)
	if err != nil {
		return nil, err
	}
	return pw, nil
}
