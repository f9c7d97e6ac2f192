// Package web serves the entry form and dashboard as HTML with gin. Every
// browser gets its own form instance, keyed by the gophauth_sid cookie.
package web

import (
	"embed"
	"html/template"
	"net/http"
	"sync"
	"time"

	"github.com/dmitrijs2005/gophauth/internal/client/client"
	"github.com/dmitrijs2005/gophauth/internal/client/form"
	"github.com/dmitrijs2005/gophauth/internal/client/session"
	"github.com/dmitrijs2005/gophauth/internal/client/workflow"
	"github.com/dmitrijs2005/gophauth/internal/logging"
	"github.com/dmitrijs2005/gophauth/internal/strength"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/hashicorp/golang-lru/v2/expirable"
)

// SessionCookie names the cookie carrying the browser's instance id.
const SessionCookie = "gophauth_sid"

const instanceKey = "gophauth.instance"

// Defaults for the instance cache. An instance idle for longer than
// DefaultInstanceTTL is dropped; beyond DefaultMaxInstances the least
// recently used one is.
const (
	DefaultInstanceTTL  = 30 * time.Minute
	DefaultMaxInstances = 10000
)

//go:embed templates/*.html
var templatesFS embed.FS

// instance is one form with its workflow and session. submitting is held
// for the whole of a submission, from copying the posted fields to the
// outcome.
type instance struct {
	form       *form.Form
	workflow   *workflow.Workflow
	session    *session.Session
	submitting sync.Mutex
}

// Handler wires HTTP routes to per-browser form instances.
type Handler struct {
	verifier  client.Verifier
	opts      workflow.Options
	startMode form.Mode
	logger    logging.Logger

	mu        sync.Mutex
	instances *expirable.LRU[string, *instance]
}

// HandlerOption tunes a Handler.
type HandlerOption func(*handlerOptions)

type handlerOptions struct {
	ttl  time.Duration
	size int
}

// WithInstanceCache overrides the idle TTL and capacity of the instance cache.
func WithInstanceCache(ttl time.Duration, size int) HandlerOption {
	return func(o *handlerOptions) {
		o.ttl, o.size = ttl, size
	}
}

func NewHandler(v client.Verifier, opts workflow.Options, startMode form.Mode, logger logging.Logger, options ...HandlerOption) *Handler {
	if logger == nil {
		logger = logging.Discard()
	}
	opts.Logger = logger

	ho := handlerOptions{ttl: DefaultInstanceTTL, size: DefaultMaxInstances}
	for _, o := range options {
		o(&ho)
	}

	return &Handler{
		verifier:  v,
		opts:      opts,
		startMode: startMode,
		logger:    logger.With("module", "web"),
		instances: expirable.NewLRU[string, *instance](ho.size, nil, ho.ttl),
	}
}

func (h *Handler) RegisterRoutes(router *gin.Engine) {
	router.SetHTMLTemplate(template.Must(template.ParseFS(templatesFS, "templates/*.html")))

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "OK"})
	})
	router.POST("/strength", h.strength)

	pages := router.Group("/", h.instanceMiddleware())
	{
		pages.GET("/", h.index)
		pages.POST("/login", h.submit(form.ModeLogin))
		pages.POST("/signup", h.submit(form.ModeSignUp))
		pages.POST("/logout", h.logout)
	}
}

func (h *Handler) newInstance() *instance {
	f := form.New(h.startMode)
	s := session.New()
	opts := h.opts
	opts.OnSuccess = s.Authenticate
	return &instance{form: f, workflow: workflow.New(f, h.verifier, opts), session: s}
}

// instanceMiddleware resolves the caller's instance, creating one (and the
// cookie) for unknown, missing or expired ids. Every hit renews the
// instance's idle TTL.
func (h *Handler) instanceMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := c.Cookie(SessionCookie)

		h.mu.Lock()
		inst, ok := h.instances.Get(id)
		if err != nil || !ok {
			id = uuid.NewString()
			inst = h.newInstance()
		}
		h.instances.Add(id, inst)
		h.mu.Unlock()

		if !ok {
			c.SetSameSite(http.SameSiteStrictMode)
			c.SetCookie(SessionCookie, id, 0, "/", "", false, true)
		}

		c.Set(instanceKey, inst)
		c.Next()
	}
}

func instanceFrom(c *gin.Context) *instance {
	return c.MustGet(instanceKey).(*instance)
}

type pageData struct {
	Dashboard bool
	Title     string
	Message   string
	Username  string
	Form      form.State
}

func (h *Handler) render(c *gin.Context, status int, inst *instance) {
	if inst.session.View() == session.ViewDashboard {
		c.HTML(status, "page.html", pageData{
			Dashboard: true,
			Title:     session.DashboardTitle,
			Message:   session.DashboardMessage,
			Username:  inst.session.Username(),
		})
		return
	}
	c.HTML(status, "page.html", pageData{Form: inst.form.Snapshot()})
}

func (h *Handler) index(c *gin.Context) {
	inst := instanceFrom(c)
	if m, ok := form.ParseMode(c.Query("mode")); ok && !inst.form.Submitting() {
		inst.form.SetMode(m)
	}
	h.render(c, http.StatusOK, inst)
}

// submit runs one submission for the caller's form and waits for it. A
// request that arrives while another is pending gets 409 and changes
// nothing.
func (h *Handler) submit(mode form.Mode) gin.HandlerFunc {
	return func(c *gin.Context) {
		inst := instanceFrom(c)
		if inst.session.Authenticated() {
			c.Redirect(http.StatusSeeOther, "/")
			return
		}
		if !inst.submitting.TryLock() {
			h.render(c, http.StatusConflict, inst)
			return
		}
		defer inst.submitting.Unlock()

		f := inst.form
		f.SetMode(mode)
		f.SetUsername(c.PostForm("username"))
		f.SetPassword(c.PostForm("password"))
		f.SetConfirmation(c.PostForm("confirmation"))
		if (c.PostForm("show_password") != "") != f.PasswordVisible() {
			f.TogglePasswordVisibility()
		}
		if (c.PostForm("show_confirmation") != "") != f.ConfirmationVisible() {
			f.ToggleConfirmationVisibility()
		}

		outcome := inst.workflow.SubmitWait(c.Request.Context())

		switch outcome.Kind() {
		case workflow.KindSuccess:
			h.logger.Info(c.Request.Context(), "signed in", "username", outcome.Username)
			c.Redirect(http.StatusSeeOther, "/")
		case workflow.KindPending:
			h.render(c, http.StatusConflict, inst)
		case workflow.KindValidation:
			h.render(c, http.StatusBadRequest, inst)
		case workflow.KindAuthentication:
			h.render(c, http.StatusUnauthorized, inst)
		default:
			h.logger.Warn(c.Request.Context(), "verification unavailable", "error", outcome.Err)
			h.render(c, http.StatusServiceUnavailable, inst)
		}
	}
}

// logout ends the session and forgets the instance; the next page view
// starts a fresh one.
func (h *Handler) logout(c *gin.Context) {
	inst := instanceFrom(c)
	inst.session.Logout()
	inst.form.Reset()

	if id, err := c.Cookie(SessionCookie); err == nil {
		h.mu.Lock()
		h.instances.Remove(id)
		h.mu.Unlock()
	}
	c.SetSameSite(http.SameSiteStrictMode)
	c.SetCookie(SessionCookie, "", -1, "/", "", false, true)

	c.Redirect(http.StatusSeeOther, "/")
}

// instanceCount reports how many browser instances are cached.
func (h *Handler) instanceCount() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.instances.Len()
}

// strength rates the posted password so the page can update its tooltip on
// every keystroke. The password travels in the body, never in the URL.
func (h *Handler) strength(c *gin.Context) {
	r := strength.Classify(c.PostForm("password"))
	c.JSON(http.StatusOK, gin.H{"rating": r.String(), "tooltip": r.Tooltip()})
}
