// Package shell is the interactive text menu: login, self-service account
// creation and the treasurer's report actions.
package shell

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"clubfin/internal/accounts"
	"clubfin/internal/core"
	"clubfin/internal/finance"
	applog "clubfin/internal/log"
	"clubfin/internal/render"
)

// MaxLoginAttempts is the number of failed logins that closes the shell.
const MaxLoginAttempts = 4

var ErrTooManyAttempts = errors.New("too many login attempts")

// errQuit unwinds nested menus when the user picks Quit.
var errQuit = errors.New("quit")

type AccountService interface {
	Create(ctx context.Context, n accounts.NewAccount) (core.Account, error)
	Remove(ctx context.Context, username string) error
	Authenticate(ctx context.Context, username, password string) (core.Account, error)
	EmailTaken(ctx context.Context, email string) (bool, error)
	UsernameTaken(ctx context.Context, username string) (bool, error)
}

type ReportService interface {
	CurrentMonth() core.Month
	Prepare(ctx context.Context, currentMonth core.Month) (finance.IncomeStatement, error)
	UnpaidDebts(ctx context.Context) ([]core.UnpaidDebt, error)
}

type RosterService interface {
	Update(ctx context.Context) (core.Roster, error)
}

// Deps are the services the menus call.
type Deps struct {
	Accounts AccountService
	Reports  ReportService
	Roster   RosterService
	PDFPath  string
	Logger   *applog.Logger
}

type Shell struct {
	in      *bufio.Scanner
	out     io.Writer
	deps    Deps
	logger  *applog.Logger
	now     func() time.Time
	writeFS func(path string, data []byte) error
}

func New(in io.Reader, out io.Writer, deps Deps) *Shell {
	logger := deps.Logger
	if logger == nil {
		logger = applog.Discard()
	}
	return &Shell{
		in:     bufio.NewScanner(in),
		out:    out,
		deps:   deps,
		logger: logger.WithComponent(applog.ComponentShell),
		now:    time.Now,
		writeFS: func(path string, data []byte) error {
			return os.WriteFile(path, data, 0o644)
		},
	}
}

// Run shows the main menu until the user quits or input ends. It returns
// ErrTooManyAttempts after MaxLoginAttempts failed logins in a row.
func (s *Shell) Run(ctx context.Context) error {
	for {
		choice, err := s.prompt("Do you want to (1) Login, (2) Create Account, or (3) Quit?\n> ")
		if err != nil {
			return s.finish(err)
		}
		switch choice {
		case "1":
			err = s.login(ctx)
		case "2":
			err = s.createAccount(ctx)
		case "3":
			s.println("Goodbye, User.")
			return nil
		default:
			s.println("Invalid selection. Please try again.\n")
		}
		if err != nil {
			return s.finish(err)
		}
		if ctx.Err() != nil {
			return ctx.Err()
		}
	}
}

func (s *Shell) finish(err error) error {
	if errors.Is(err, io.EOF) || errors.Is(err, errQuit) {
		return nil
	}
	return err
}

func (s *Shell) login(ctx context.Context) error {
	for attempt := 0; attempt < MaxLoginAttempts; attempt++ {
		username, err := s.prompt("Username: ")
		if err != nil {
			return err
		}
		password, err := s.prompt("Password: ")
		if err != nil {
			return err
		}
		acc, err := s.deps.Accounts.Authenticate(ctx, username, password)
		if errors.Is(err, accounts.ErrInvalidCredentials) {
			s.println("Login failed. Incorrect username or password.")
			continue
		}
		if err != nil {
			return fmt.Errorf("authenticate: %w", err)
		}
		s.println("Login successful.")
		return s.dispatch(ctx, acc)
	}
	s.println("Too many login attempts. Closing the app.")
	s.logger.WarnContext(ctx, "Login locked out", applog.FieldOperation, applog.OpLogin, applog.FieldCount, MaxLoginAttempts)
	return ErrTooManyAttempts
}

func (s *Shell) dispatch(ctx context.Context, acc core.Account) error {
	perm, err := core.ParsePermission(string(acc.Permissions))
	if err != nil {
		s.logger.WarnContext(ctx, "Account has an unknown permission", applog.FieldUsername, acc.Username, applog.FieldRole, string(acc.Permissions))
		s.println("Your account has no valid role. Please contact the treasurer.")
		return nil
	}
	switch perm {
	case core.PermissionMember:
		s.println("Welcome, Member!")
	case core.PermissionCoach:
		s.println("Welcome, Coach!")
	case core.PermissionTreasurer:
		return s.treasurerMenu(ctx)
	}
	return nil
}

const treasurerMenuText = `
Welcome, Treasurer. What would you like to do:
1) View Financial Reports.
2) Manage Financial Details.
3) Export Income Statement PDF.
4) Update Member Roster.
5) Remove Account.
6) Log Out.
0) Quit.
`

func (s *Shell) treasurerMenu(ctx context.Context) error {
	for {
		s.println(treasurerMenuText)
		choice, err := s.prompt("> ")
		if err != nil {
			return err
		}
		switch choice {
		case "0":
			s.println("Goodbye, Treasurer.")
			return errQuit
		case "1":
			err = s.viewFinancialReports(ctx)
		case "2":
			err = s.manageFinancialDetails(ctx)
		case "3":
			err = s.exportIncomeStatement(ctx)
		case "4":
			err = s.updateRoster(ctx)
		case "5":
			err = s.removeAccount(ctx)
		case "6":
			s.println("Logging out...")
			return nil
		default:
			s.println("Invalid option, please try again.\n")
		}
		if errors.Is(err, io.EOF) {
			return err
		}
		if err != nil {
			s.logger.ErrorContext(ctx, "Menu action failed", "choice", choice, applog.FieldError, err)
			s.printf("Something went wrong: %v\n", err)
		}
	}
}

func (s *Shell) viewFinancialReports(ctx context.Context) error {
	st, err := s.deps.Reports.Prepare(ctx, s.deps.Reports.CurrentMonth())
	if err != nil {
		return err
	}
	return render.WriteFinancialReports(s.out, st)
}

func (s *Shell) manageFinancialDetails(ctx context.Context) error {
	debts, err := s.deps.Reports.UnpaidDebts(ctx)
	if err != nil {
		return err
	}
	return render.WriteUnpaidDebts(s.out, debts)
}

func (s *Shell) exportIncomeStatement(ctx context.Context) error {
	st, err := s.deps.Reports.Prepare(ctx, s.deps.Reports.CurrentMonth())
	if err != nil {
		return err
	}
	b, err := render.IncomeStatementPDF(st, s.now())
	if err != nil {
		return err
	}
	if err := s.writeFS(s.deps.PDFPath, b); err != nil {
		return fmt.Errorf("write pdf: %w", err)
	}
	s.logger.InfoContext(ctx, "Income statement exported", applog.FieldPath, s.deps.PDFPath)
	s.printf("Income statement saved to %s\n", s.deps.PDFPath)
	return nil
}

func (s *Shell) updateRoster(ctx context.Context) error {
	roster, err := s.deps.Roster.Update(ctx)
	if err != nil {
		return err
	}
	s.printf("Roster updated: %d members.\n", len(roster.Members))
	return nil
}

func (s *Shell) removeAccount(ctx context.Context) error {
	username, err := s.prompt("Enter the username of the account to remove: ")
	if err != nil {
		return err
	}
	err = s.deps.Accounts.Remove(ctx, username)
	if errors.Is(err, accounts.ErrAccountNotFound) {
		s.println("No account found with that username.")
		return nil
	}
	if err != nil {
		return err
	}
	s.printf("Account %s has been removed.\n", username)
	return nil
}

func (s *Shell) prompt(text string) (string, error) {
	fmt.Fprint(s.out, text)
	if !s.in.Scan() {
		if err := s.in.Err(); err != nil {
			return "", err
		}
		return "", io.EOF
	}
	return strings.TrimSpace(s.in.Text()), nil
}

func (s *Shell) println(text string) {
	fmt.Fprintln(s.out, text)
}

func (s *Shell) printf(format string, args ...any) {
	fmt.Fprintf(s.out, format, args...)
}
