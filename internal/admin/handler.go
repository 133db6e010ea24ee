package admin

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/rampantspark/genpass/internal/stats"
)

// recentLimit is the number of recent generations shown and served.
const recentLimit = 50

const forbiddenPage = "<!DOCTYPE html>\n<html>\n<head><title>Access Denied</title></head>\n<body>\n<h1>403 Forbidden</h1>\n<p>Invalid or missing authentication token.</p>\n</body>\n</html>"

// Handler handles dashboard HTTP requests.
type Handler struct {
	auth     *Authenticator
	stats    *stats.Manager
	renderer *Renderer
	logger   *slog.Logger
	started  time.Time
}

// NewHandler creates a new dashboard handler.
func NewHandler(auth *Authenticator, statsManager *stats.Manager, logger *slog.Logger) *Handler {
	return &Handler{
		auth:     auth,
		stats:    statsManager,
		renderer: NewRenderer(auth.Path()),
		logger:   logger,
		started:  time.Now(),
	}
}

// Register adds the dashboard routes to mux.
func (h *Handler) Register(mux *http.ServeMux) {
	path := h.auth.Path()
	mux.HandleFunc("GET "+path, h.HandleUI)
	mux.HandleFunc("GET "+path+"/login", h.HandleLogin)
	mux.HandleFunc("GET "+path+"/data", h.HandleData)
}

// HandleLogin exchanges the token query parameter for the admin cookie and
// redirects to the dashboard.
func (h *Handler) HandleLogin(w http.ResponseWriter, r *http.Request) {
	client := h.stats.GetClientIP(r)
	if !h.auth.ValidateToken(r.URL.Query().Get("token")) {
		h.logger.Warn("Failed admin login attempt",
			"client", client,
			"user_agent", r.Header.Get("User-Agent"))
		h.forbidden(w)
		return
	}

	h.logger.Info("Successful admin login", "client", client)
	h.auth.SetCookie(w)
	http.Redirect(w, r, h.auth.Path(), http.StatusSeeOther)
}

// HandleUI serves the history dashboard.
func (h *Handler) HandleUI(w http.ResponseWriter, r *http.Request) {
	if !h.auth.IsAuthenticated(r) {
		h.forbidden(w)
		return
	}
	ctx := r.Context()
	if ctx.Err() != nil {
		return
	}

	page := h.renderer.RenderDashboard(h.dashboard(r))

	setSecurityHeaders(w)
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	io.WriteString(w, page)
}

// HandleData serves the dashboard contents as JSON.
func (h *Handler) HandleData(w http.ResponseWriter, r *http.Request) {
	setSecurityHeaders(w)
	w.Header().Set("Content-Type", "application/json")

	if !h.auth.IsAuthenticated(r) {
		w.WriteHeader(http.StatusForbidden)
		json.NewEncoder(w).Encode(map[string]string{"error": "Invalid or missing authentication token"})
		return
	}

	d := h.dashboard(r)
	data := struct {
		Summary    stats.Summary          `json:"summary"`
		Categories []stats.CountEntry     `json:"categories"`
		Recent     []stats.GenerationInfo `json:"recent"`
		Persistent bool                   `json:"persistent"`
		UptimeSec  int64                  `json:"uptimeSeconds"`
	}{d.Summary, d.Categories, d.Recent, d.Persistent, int64(d.Uptime / time.Second)}
	if data.Categories == nil {
		data.Categories = []stats.CountEntry{}
	}
	if data.Recent == nil {
		data.Recent = []stats.GenerationInfo{}
	}

	if err := json.NewEncoder(w).Encode(data); err != nil {
		h.logger.Warn("Failed to encode dashboard data", "error", err)
	}
}

func (h *Handler) dashboard(r *http.Request) Dashboard {
	ctx := r.Context()
	return Dashboard{
		Summary:    h.stats.GetSummary(ctx),
		Categories: h.stats.GetCategoryCounts(ctx),
		Recent:     h.stats.GetRecent(ctx, recentLimit),
		Persistent: h.stats.Persistent(),
		Uptime:     time.Since(h.started),
	}
}

func (h *Handler) forbidden(w http.ResponseWriter) {
	setSecurityHeaders(w)
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusForbidden)
	io.WriteString(w, forbiddenPage)
}

// Path returns the dashboard path.
func (h *Handler) Path() string {
	return h.auth.Path()
}

// LoginURL returns the one-time login URL for host.
func (h *Handler) LoginURL(host string) string {
	return h.auth.LoginURL(host)
}

// AdminURL returns the dashboard URL for host.
func (h *Handler) AdminURL(host string) string {
	return h.auth.AdminURL(host)
}

// setSecurityHeaders hardens dashboard responses. The page has no scripts,
// so the policy forbids them outright.
func setSecurityHeaders(w http.ResponseWriter) {
	w.Header().Set("Content-Security-Policy",
		"default-src 'none'; "+
			"style-src 'unsafe-inline'; "+
			"frame-ancestors 'none'")
	w.Header().Set("X-Frame-Options", "DENY")
	w.Header().Set("X-Content-Type-Options", "nosniff")
	w.Header().Set("Referrer-Policy", "no-referrer")
	w.Header().Set("Cache-Control", "no-store")
}
