package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"

	"github.com/dmitrijs2005/taskboard/internal/client/api"
	"github.com/dmitrijs2005/taskboard/internal/client/models"
	"github.com/dmitrijs2005/taskboard/internal/client/navigator"
	"github.com/dmitrijs2005/taskboard/internal/client/services"
	"github.com/dmitrijs2005/taskboard/internal/logging"
)

// SessionService is the part of the session manager the CLI drives.
// *services.SessionManager implements it.
type SessionService interface {
	Login(ctx context.Context, creds models.Credentials) (services.LoginResult, error)
	Verify2FA(ctx context.Context, code string) (services.LoginResult, error)
	ResendSecondFactor(ctx context.Context) (services.LoginResult, error)
	AbandonSecondFactor(ctx context.Context) error
	PendingSecondFactor(ctx context.Context) (services.PendingChallenge, bool, error)
	Register(ctx context.Context, req models.RegisterRequest) (*models.RegisterResponse, error)
	Logout(ctx context.Context) error
	Session() services.Session
}

type App struct {
	session SessionService
	api     *api.API
	nav     *navigator.Recorder
	log     logging.Logger
	reader  *bufio.Reader
	out     io.Writer
}

// NewApp builds the CLI over the resource API. Input is read from stdin
// and output written to stdout. The session is taken from the context
// passed to Run.
func NewApp(a *api.API, nav *navigator.Recorder, log logging.Logger) *App {
	if log == nil {
		log = logging.Discard()
	}
	return &App{
		api:    a,
		nav:    nav,
		log:    log.With("component", "cli"),
		reader: bufio.NewReader(os.Stdin),
		out:    os.Stdout,
	}
}

// Run starts the REPL and blocks until the user exits or stdin closes.
// ctx must carry a session manager (see services.WithSession).
func (a *App) Run(ctx context.Context) {
	if a.session == nil {
		a.session = services.SessionFromContext(ctx)
	}
	a.println("Welcome to the taskboard CLI (type 'help' for commands)")
	runREPL(ctx, a, a.getStatus, a.reader)
}

func (a *App) isLoggedIn() bool {
	return a.session.Session().User != nil
}

// getStatus renders "(name role) location" for the prompt.
func (a *App) getStatus() string {
	s := ""
	if u := a.session.Session().User; u != nil {
		s = fmt.Sprintf("(%s %s) ", displayName(u), u.Role)
	}
	if a.nav != nil {
		s += a.nav.Location()
	}
	return s
}

// guard checks the session before a protected command and redirects when
// it may not run.
func (a *App) guard(ctx context.Context, adminOnly bool) error {
	d := services.Guard(a.session.Session(), adminOnly)
	switch {
	case d.Allow:
		return nil
	case d.Wait:
		return errSessionLoading
	}
	if a.nav != nil {
		a.nav.Navigate(ctx, d.Redirect)
	}
	if d.Redirect == navigator.LoginPath {
		return errLoginRequired
	}
	return errAdminOnly
}

func (a *App) println(args ...any) {
	fmt.Fprintln(a.out, args...)
}

func (a *App) printf(format string, args ...any) {
	fmt.Fprintf(a.out, format, args...)
}
