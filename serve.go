package main

import (
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/rampantspark/genpass/internal/admin"
	"github.com/rampantspark/genpass/internal/category"
	"github.com/rampantspark/genpass/internal/engine"
	"github.com/rampantspark/genpass/internal/handler"
	"github.com/rampantspark/genpass/internal/middleware"
	"github.com/rampantspark/genpass/internal/ratelimit"
	"github.com/rampantspark/genpass/internal/server"
	"github.com/rampantspark/genpass/internal/stats"
	"github.com/rampantspark/genpass/internal/ui"
)

type serveOptions struct {
	server server.Config

	category       string
	count          int
	maxCount       int
	previewLimit   int
	rateLimit      int
	rateBurst      int
	trustProxy     bool
	maxBodyBytes   int64
	requestTimeout time.Duration
	enableAdmin    bool
	useHTTPS       bool
}

func newServeCmd(c *cli) *cobra.Command {
	opts := &serveOptions{server: server.DefaultConfig()}

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the generator web page",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runServe(cmd, c, opts)
		},
	}

	f := cmd.Flags()
	f.StringVar(&opts.server.Host, "host", "", "interface to bind (default: all)")
	f.StringVarP(&opts.server.Port, "port", "p", defaultPort, "port to listen on")
	f.DurationVar(&opts.server.ReadTimeout, "read-timeout", opts.server.ReadTimeout, "maximum duration for reading a request")
	f.DurationVar(&opts.server.WriteTimeout, "write-timeout", opts.server.WriteTimeout, "maximum duration for writing a response")
	f.DurationVar(&opts.server.IdleTimeout, "idle-timeout", opts.server.IdleTimeout, "keep-alive idle timeout")
	f.DurationVar(&opts.requestTimeout, "request-timeout", defaultRequestTimeout, "per-request handler timeout (0 disables)")
	f.StringVar(&opts.category, "category", defaultCategory, "category selected on a fresh page")
	f.IntVarP(&opts.count, "count", "n", defaultCount, "count used when the form value is not a number")
	f.IntVar(&opts.maxCount, "max-count", defaultMaxCount, "largest count accepted from the page")
	f.IntVar(&opts.previewLimit, "preview-limit", engine.DefaultPreviewLimit, "items kept in the preview")
	f.IntVar(&opts.rateLimit, "rate-limit", defaultRateLimit, "requests per second per client (0 disables)")
	f.IntVar(&opts.rateBurst, "rate-burst", defaultRateBurst, "rate limit burst size")
	f.BoolVar(&opts.trustProxy, "trust-proxy", false, "read client IP from X-Forwarded-For / X-Real-IP")
	f.Int64Var(&opts.maxBodyBytes, "max-body-bytes", defaultBodyBytes, "maximum request body size (0 disables)")
	f.BoolVar(&opts.enableAdmin, "admin", true, "serve the history dashboard")
	f.BoolVar(&opts.useHTTPS, "https", false, "mark admin cookies Secure and print https URLs")

	return cmd
}

func (o *serveOptions) apply(cmd *cobra.Command, c *cli) error {
	gen, srv := c.file.Generate, c.file.Server
	applyStringConfig(cmd, "category", &o.category, gen.Category)
	applyIntConfig(cmd, "count", &o.count, gen.Count)
	applyIntConfig(cmd, "preview-limit", &o.previewLimit, gen.PreviewLimit)
	applyStringConfig(cmd, "port", &o.server.Port, srv.Port)
	applyIntConfig(cmd, "max-count", &o.maxCount, srv.MaxCount)
	applyIntConfig(cmd, "rate-limit", &o.rateLimit, srv.RateLimit)
	applyIntConfig(cmd, "rate-burst", &o.rateBurst, srv.RateBurst)
	applyBoolConfig(cmd, "trust-proxy", &o.trustProxy, srv.TrustProxy)
	applyInt64Config(cmd, "max-body-bytes", &o.maxBodyBytes, srv.MaxBodyBytes)
	applyBoolConfig(cmd, "admin", &o.enableAdmin, srv.EnableAdmin)
	applyBoolConfig(cmd, "https", &o.useHTTPS, srv.UseHTTPS)

	durations := []struct {
		name   string
		target *time.Duration
		value  *string
	}{
		{"read-timeout", &o.server.ReadTimeout, srv.ReadTimeout},
		{"write-timeout", &o.server.WriteTimeout, srv.WriteTimeout},
		{"idle-timeout", &o.server.IdleTimeout, srv.IdleTimeout},
		{"request-timeout", &o.requestTimeout, srv.RequestTimeout},
	}
	for _, d := range durations {
		if err := applyDurationConfig(cmd, d.name, d.target, d.value); err != nil {
			return err
		}
	}
	return o.validate()
}

func (o *serveOptions) validate() error {
	if err := o.server.Validate(); err != nil {
		return err
	}
	if o.maxCount < 1 {
		return fmt.Errorf("--max-count must be > 0")
	}
	if o.count < 1 {
		return fmt.Errorf("--count must be > 0")
	}
	if o.previewLimit < 0 {
		return fmt.Errorf("--preview-limit must be >= 0")
	}
	if o.rateLimit < 0 || o.rateBurst < 0 {
		return fmt.Errorf("--rate-limit and --rate-burst must be >= 0")
	}
	if o.requestTimeout < 0 {
		return fmt.Errorf("--request-timeout must be >= 0")
	}
	return nil
}

// webHost is the assembled HTTP stack of the serve command.
type webHost struct {
	handler http.Handler
	stats   *stats.Manager
	limiter *ratelimit.Limiter
	admin   *admin.Handler // nil when the dashboard is disabled
}

// newWebHost wires the generator, dashboard and middleware around one
// shared registry.
func newWebHost(o *serveOptions, mgr *stats.Manager, logger *slog.Logger) (*webHost, error) {
	defaultCat, err := category.Parse(o.category)
	if err != nil {
		return nil, err
	}

	eng := engine.New(
		engine.WithPreviewLimit(o.previewLimit),
		engine.WithLogger(logger),
	)
	registry := engine.NewRegistry(eng)

	mux := http.NewServeMux()
	handler.New(registry, mgr, logger, handler.Options{
		DefaultCategory: defaultCat,
		DefaultCount:    uint(o.count),
		MaxCount:        uint(o.maxCount),
	}).Register(mux)

	host := &webHost{stats: mgr}
	if o.enableAdmin {
		auth, err := admin.NewAuthenticator(o.useHTTPS)
		if err != nil {
			return nil, fmt.Errorf("failed to create admin authenticator: %w", err)
		}
		host.admin = admin.NewHandler(auth, mgr, logger)
		host.admin.Register(mux)
	}

	var h http.Handler = mux
	if o.requestTimeout > 0 {
		h = http.TimeoutHandler(h, o.requestTimeout, "Request timed out")
	}

	host.limiter = ratelimit.NewLimiter(o.rateLimit, o.rateBurst)
	host.handler = middleware.Chain(h,
		middleware.RecoverPanic(logger),
		middleware.LogRequests(logger),
		middleware.RateLimit(host.limiter, mgr.GetClientIP, logger),
		middleware.LimitRequestBody(o.maxBodyBytes),
	)
	return host, nil
}

func runServe(cmd *cobra.Command, c *cli, opts *serveOptions) error {
	stderr := cmd.ErrOrStderr()
	if err := opts.apply(cmd, c); err != nil {
		ui.PrintError(stderr, "Invalid configuration", err)
		return err
	}

	mgr, err := c.openStats(opts.trustProxy)
	if err != nil {
		ui.PrintError(stderr, "Failed to open history", err)
		return err
	}
	defer c.closeStats(mgr)

	host, err := newWebHost(opts, mgr, c.logger)
	if err != nil {
		return err
	}
	defer host.limiter.Stop()

	srv := server.New(&opts.server, c.logger)
	srv.RegisterHandler(host.handler)

	ln, err := net.Listen("tcp", opts.server.Addr())
	if err != nil {
		ui.PrintError(stderr, "Failed to start server", err)
		return err
	}

	ui.PrintBanner(stderr)
	ui.PrintStartupInfo(stderr, host.startupInfo(opts, c, displayHost(opts.server.Host, ln.Addr())))

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := srv.Serve(ctx, ln, func() { ui.PrintShutdown(stderr) }); err != nil {
		ui.PrintError(stderr, "Server error", err)
		return err
	}
	ui.PrintShutdownComplete(stderr)
	return nil
}

func (h *webHost) startupInfo(o *serveOptions, c *cli, hostPort string) ui.StartupInfo {
	scheme := "http://"
	if o.useHTTPS {
		scheme = "https://"
	}
	info := ui.StartupInfo{
		URL:          scheme + hostPort,
		History:      ui.BuildHistorySummary(c.history && h.stats.Persistent(), c.dbPath),
		RateLimit:    ui.BuildRateLimitSummary(o.rateLimit, o.rateBurst),
		MaxCount:     uint(o.maxCount),
		PreviewLimit: o.previewLimit,
		StartedAt:    time.Now(),
	}
	if h.admin != nil {
		info.AdminLoginURL = h.admin.LoginURL(hostPort)
		info.AdminURL = h.admin.AdminURL(hostPort)
	}
	return info
}

// displayHost returns a browsable host:port for the listener.
func displayHost(bindHost string, addr net.Addr) string {
	_, port, err := net.SplitHostPort(addr.String())
	if err != nil {
		return addr.String()
	}
	if bindHost == "" || bindHost == "0.0.0.0" || bindHost == "::" {
		bindHost = "localhost"
	}
	return net.JoinHostPort(bindHost, port)
}
