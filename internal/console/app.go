package console

import (
	"bufio"
	"context"
	"fmt"
	"io"

	"github.com/dmitrijs2005/rentdesk/internal/attachments"
	"github.com/dmitrijs2005/rentdesk/internal/common"
	"github.com/dmitrijs2005/rentdesk/internal/directory"
	"github.com/dmitrijs2005/rentdesk/internal/logging"
	"github.com/dmitrijs2005/rentdesk/internal/models"
)

// Directory is the part of the directory store the console uses.
type Directory interface {
	Login(ctx context.Context, email, password string) (*directory.Session, error)
	Logout(ctx context.Context) error
	CurrentSession(ctx context.Context) (*directory.Session, error)
	VerifySession(session directory.Session) (*models.AuthUser, error)
	SignUp(ctx context.Context, req directory.SignUpRequest) (directory.SignUpResult, error)

	InitiatePasswordReset(ctx context.Context, phone string) (directory.ResetRequest, error)
	ValidateResetCode(ctx context.Context, code string) (directory.CodeCheck, error)
	ResetPassword(ctx context.Context, code, newPassword string) (directory.ResetResult, error)

	GetAvailableRooms(ctx context.Context) ([]models.Room, error)
	GetRoomsOnFloor(ctx context.Context, floor int) ([]models.Room, error)
	RegisterTenant(ctx context.Context, reg models.TenantRegistration) error
	TenantOverview(ctx context.Context, tenantID string) (*directory.TenantOverview, error)
	CurrentMonthStatus(ctx context.Context, tenantID string) (models.PaymentStatus, error)
	SubmitRentProof(ctx context.Context, tenantID, screenshotURL string) (*models.Payment, error)

	OwnerSummary(ctx context.Context) (*directory.OwnerSummary, error)
	GetAllPayments(ctx context.Context) ([]models.Payment, error)
	GetAllUsers(ctx context.Context) ([]models.User, error)

	Route(ctx context.Context, user *models.AuthUser) (directory.View, error)
}

// App is a console session over a Directory.
type App struct {
	store       Directory
	files       attachments.Store
	log         logging.Logger
	reader      *bufio.Reader
	out         io.Writer
	maxFileSize int64

	session *directory.Session
}

// NewApp reads commands and form input from in and writes to out.
func NewApp(store Directory, files attachments.Store, logger logging.Logger, in io.Reader, out io.Writer, maxFileSize int64) *App {
	if logger == nil {
		logger = logging.Nop()
	}
	if maxFileSize <= 0 {
		maxFileSize = attachments.DefaultMaxSize
	}
	return &App{
		store:       store,
		files:       files,
		log:         logger.With("component", "console"),
		reader:      bufio.NewReader(in),
		out:         out,
		maxFileSize: maxFileSize,
	}
}

// Run resumes a persisted session if there is one and serves commands until
// the input ends or the user exits.
func (a *App) Run(ctx context.Context) error {
	session, err := a.store.CurrentSession(ctx)
	if err != nil {
		return fmt.Errorf("resume session: %w", err)
	}
	a.session = session

	a.println("Welcome to RentDesk (type 'help' for commands)")
	if a.session != nil {
		a.println("Resumed session for " + a.session.User.Name)
		if err := a.land(ctx); err != nil {
			return err
		}
	}

	runREPL(ctx, a, a.getStatus, a.reader)
	return nil
}

func (a *App) ask(prompt string) (string, error) {
	return getSimpleText(a.reader, prompt, a.out)
}

func (a *App) askPassword(prompt string) (string, error) {
	pw, err := getPassword(a.reader, prompt, a.out)
	if err != nil {
		return "", err
	}
	s := string(pw)
	common.WipeByteArray(pw)
	return s, nil
}

func (a *App) println(args ...any) {
	fmt.Fprintln(a.out, args...)
}

func (a *App) printf(format string, args ...any) {
	fmt.Fprintf(a.out, format, args...)
}

func (a *App) isLoggedIn() bool {
	return a.session != nil
}

func (a *App) role() models.Role {
	if a.session == nil {
		return ""
	}
	return a.session.User.Role
}

func (a *App) user() *models.AuthUser {
	if a.session == nil {
		return nil
	}
	return &a.session.User
}

func (a *App) getStatus() string {
	if a.session == nil {
		return "(guest)"
	}
	return fmt.Sprintf("(%s %s)", a.session.User.Name, a.session.User.Role)
}

// land shows the screen the current user is routed to.
func (a *App) land(ctx context.Context) error {
	view, err := a.store.Route(ctx, a.user())
	if err != nil {
		return err
	}

	switch view {
	case directory.ViewTenantRegistration:
		a.println("Your tenancy is not registered yet. Type 'register' to choose a room.")
		return nil
	case directory.ViewTenantDashboard:
		return a.Dashboard(ctx)
	case directory.ViewOwnerDashboard:
		return a.Summary(ctx)
	default:
		return nil
	}
}

// requireRole prints a hint and reports false unless a user with role is
// logged in. An empty role accepts any logged-in user. A session whose
// token no longer verifies is dropped.
func (a *App) requireRole(ctx context.Context, role models.Role) bool {
	if a.session == nil {
		a.println("Please log in first.")
		return false
	}
	if _, err := a.store.VerifySession(*a.session); err != nil {
		a.log.Info(ctx, "session rejected", "uid", a.session.User.UID, "error", err)
		a.session = nil
		if err := a.store.Logout(ctx); err != nil {
			a.log.Warn(ctx, "cannot clear session", "error", err)
		}
		a.println("User not found. Please login again.")
		return false
	}
	if role != "" && a.session.User.Role != role {
		a.printf("This command is only available to %ss.\n", role)
		return false
	}
	return true
}
