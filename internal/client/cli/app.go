package cli

import (
	"bufio"
	"context"
	"io"
	"os"

	"github.com/dmitrijs2005/gophauth/internal/client/client"
	"github.com/dmitrijs2005/gophauth/internal/client/config"
	"github.com/dmitrijs2005/gophauth/internal/client/form"
	"github.com/dmitrijs2005/gophauth/internal/client/session"
	"github.com/dmitrijs2005/gophauth/internal/client/workflow"
	"github.com/dmitrijs2005/gophauth/internal/logging"
)

type App struct {
	config   *config.Config
	form     *form.Form
	workflow *workflow.Workflow
	session  *session.Session
	logger   logging.Logger
	reader   *bufio.Reader
	out      io.Writer
	closeFn  func() error
}

func NewApp(c *config.Config, logger logging.Logger) (*App, error) {
	verifier, closeFn, err := client.NewBackend(c.Backend, c.ServerEndpointAddr, c.CAFile, c.DemoDelay)
	if err != nil {
		logger.Error(context.Background(), "error initializing backend", "backend", c.Backend, "error", err)
		return nil, err
	}

	mode, _ := form.ParseMode(c.StartMode)
	a := newApp(form.New(mode), verifier, workflow.Options{
		RequestTimeout: c.RequestTimeout,
		RetryAttempts:  c.RetryAttempts,
		RetryDelay:     c.RetryDelay,
		Logger:         logger,
	}, bufio.NewReader(os.Stdin), os.Stdout)

	a.config = c
	a.logger = logger.With("module", "cli")
	a.closeFn = closeFn
	return a, nil
}

// newApp assembles an App around an existing form and verifier. The session
// flag is flipped by the workflow's success callback only.
func newApp(f *form.Form, v client.Verifier, opts workflow.Options, r *bufio.Reader, out io.Writer) *App {
	s := session.New()
	opts.OnSuccess = s.Authenticate

	return &App{
		form:     f,
		workflow: workflow.New(f, v, opts),
		session:  s,
		logger:   logging.Discard(),
		reader:   r,
		out:      out,
		closeFn:  func() error { return nil },
	}
}

func (a *App) Run(ctx context.Context) {
	defer func() {
		if err := a.closeFn(); err != nil {
			a.logger.Warn(ctx, "error closing backend", "error", err)
		}
	}()
	a.Root(ctx)
}

func (a *App) isLoggedIn() bool {
	return a.session.Authenticated()
}
