package ui

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/samandr77/docflow/internal/entity"
	"github.com/samandr77/docflow/internal/service"
)

// Account is what the REPL needs from the session layer.
type Account interface {
	SessionReader
	Logout(ctx context.Context) error
}

type App struct {
	nav      *Navigator
	console  *Console
	term     *Terminal
	accounts Account
}

func NewApp(nav *Navigator, console *Console, term *Terminal, accounts Account) *App {
	return &App{
		nav:      nav,
		console:  console,
		term:     term,
		accounts: accounts,
	}
}

// Run shows the start screen and executes input lines until quit, end of
// input or ctx cancellation.
func (a *App) Run(ctx context.Context) error {
	defer a.nav.Close()

	if err := a.nav.Navigate(ctx, "/"); err != nil {
		return fmt.Errorf("navigate: %w", err)
	}

	for {
		line, ok, err := a.console.ReadLine(ctx, fmt.Sprintf("docflow:%s> ", a.nav.Path()))
		if err != nil {
			if errors.Is(err, context.Canceled) {
				return nil
			}

			return fmt.Errorf("read input: %w", err)
		}

		if !ok {
			return nil
		}

		quit, err := a.Exec(ctx, line)
		if err != nil {
			a.report(ctx, err)
		}

		if quit {
			return nil
		}
	}
}

// Exec runs one input line. Global commands win over screen commands.
func (a *App) Exec(ctx context.Context, line string) (quit bool, err error) {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return false, nil
	}

	name, args := fields[0], fields[1:]

	if strings.HasPrefix(name, "/") {
		return false, a.nav.Navigate(ctx, name)
	}

	switch name {
	case "quit", "exit":
		return true, nil
	case "help":
		a.help()
		return false, nil
	case "nav":
		a.navLinks()
		return false, nil
	case "whoami":
		a.whoami()
		return false, nil
	case "go":
		if len(args) == 0 {
			return false, entity.NewValidationError("Usage: go <path>")
		}

		return false, a.nav.Navigate(ctx, args[0])
	case "refresh":
		return false, a.nav.Navigate(ctx, a.nav.Path())
	case "logout":
		if err := a.accounts.Logout(ctx); err != nil {
			return false, err
		}

		return false, a.nav.Navigate(ctx, "/login")
	}

	found, err := a.nav.Exec(ctx, name, args)
	if !found {
		return false, entity.NewValidationError(fmt.Sprintf("Unknown command %q. Type \"help\".", name))
	}

	return false, err
}

func (a *App) report(ctx context.Context, err error) {
	if IsSilent(err) {
		return
	}

	if !entity.IsValidation(err) {
		slog.ErrorContext(ctx, "command failed", "error", err)
	}

	a.term.Println(entity.UserMessage(err, errGenericText))
}

func (a *App) help() {
	var b strings.Builder

	b.WriteString("global: help, nav, whoami, go <path>, refresh, logout, quit\n")

	if cmds := a.nav.Commands(); len(cmds) > 0 {
		fmt.Fprintf(&b, "screen: %s\n", strings.Join(cmds, ", "))
	}

	a.term.Printf("%s", b.String())
}

func (a *App) navLinks() {
	sess, ok := a.accounts.Current()
	if !ok {
		a.term.Println("Not signed in. Use \"login <email>\".")
		return
	}

	var b strings.Builder

	fmt.Fprintf(&b, "Welcome, %s\n", sess.Name)

	for _, l := range NavLinks(sess.Role) {
		fmt.Fprintf(&b, "  %-20s %s\n", l.Label, l.Path)
	}

	a.term.Printf("%s", b.String())
}

func (a *App) whoami() {
	sess, ok := a.accounts.Current()
	if !ok {
		a.term.Println("Not signed in.")
		return
	}

	expiry := "unknown"

	exp, has, err := sess.TokenExpiry()

	switch {
	case err != nil:
		slog.Warn("decode token", "error", err)
	case !has:
		expiry = "never"
	default:
		expiry = exp.Local().Format(time.RFC1123)
	}

	a.term.Printf("%s <%s>\nRole: %s\nDepartment: %s\nToken expires: %s\nHome: %s\n",
		sess.Name, sess.Email, sess.Role, sess.Department, expiry, service.HomePath(sess.Role))
}
