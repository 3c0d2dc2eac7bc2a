package cli

import (
	"errors"
	"fmt"
	"net"
	"net/url"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/rshade/trustboard/internal/config"
	"github.com/rshade/trustboard/internal/logging"
	"github.com/rshade/trustboard/internal/server"
)

// serveParams holds the flags of the serve command.
type serveParams struct {
	listen    string
	rateLimit float64
	burst     int
}

// errSelfProxy is returned when serve would fetch from its own address.
var errSelfProxy = errors.New("api.base_url points at the serve address; use --mode mock to serve sample data")

// NewServeCmd creates the serve command, which exposes the leaderboard and
// influencer endpoints over HTTP.
func NewServeCmd() *cobra.Command {
	var params serveParams

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the influencer API over HTTP",
		Long: `Serves GET /api/leaderboard and GET /api/influencer/{username}, plus /health
and /metrics, through the same cache and fallback logic the CLI uses.

In mock mode every response is sample data, which makes serve a local
stand-in for the real API. --rate-limit makes the server answer 429 once the
budget is spent, which exercises the client fallback path.`,
		Example: `  # Serve sample data on the default address
  trustboard serve --mode mock

  # Answer 429 above two requests per second
  trustboard serve --mode mock --rate-limit 2 --burst 2`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runServe(cmd, params)
		},
	}

	cmd.Flags().StringVar(&params.listen, "listen", "", "address to listen on (default from config, "+server.DefaultListen+")")
	cmd.Flags().Float64Var(&params.rateLimit, "rate-limit", 0, "requests per second across /api before answering 429 (0 = unlimited)")
	cmd.Flags().IntVar(&params.burst, "burst", 0, "rate limit burst size")

	return cmd
}

func runServe(cmd *cobra.Command, params serveParams) error {
	cfg, err := activeConfig()
	if err != nil {
		return err
	}

	srvCfg := server.Config{
		Listen:    cfg.Server.Listen,
		RateLimit: cfg.Server.RateLimit,
		Burst:     cfg.Server.Burst,
	}
	if cmd.Flags().Changed("listen") {
		srvCfg.Listen = params.listen
	}
	if cmd.Flags().Changed("rate-limit") {
		srvCfg.RateLimit = params.rateLimit
	}
	if cmd.Flags().Changed("burst") {
		srvCfg.Burst = params.burst
	}
	if srvCfg.RateLimit < 0 {
		return fmt.Errorf("rate-limit must be >= 0, got %v", srvCfg.RateLimit)
	}
	if cfg.Mode != config.ModeMock && proxiesToSelf(cfg.API.BaseURL, srvCfg.Listen) {
		return errSelfProxy
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	b := newBackend(ctx, cfg)
	srv := server.New(srvCfg, b.leaderboards, b.influencers,
		server.WithLogger(logging.ComponentLogger(*logging.FromContext(ctx), "server")),
		server.WithRegistry(b.registry),
	)

	ready := make(chan string, 1)
	go func() {
		if addr, ok := <-ready; ok {
			cmd.Printf("Serving %s data on http://%s\n", cfg.Mode, addr)
		}
	}()

	err = srv.ListenAndServe(ctx, ready)
	close(ready)
	if err != nil {
		return fmt.Errorf("serving: %w", err)
	}
	return nil
}

// proxiesToSelf reports whether baseURL addresses the listen address.
func proxiesToSelf(baseURL, listen string) bool {
	u, err := url.Parse(baseURL)
	if err != nil || u.Host == "" {
		return false
	}
	host, port, err := net.SplitHostPort(listen)
	if err != nil {
		return false
	}
	if u.Port() != port {
		return false
	}
	switch host {
	case "", "0.0.0.0", "::":
		return true
	}
	if host == u.Hostname() {
		return true
	}
	return isLoopback(host) && isLoopback(u.Hostname())
}

func isLoopback(host string) bool {
	if host == "localhost" {
		return true
	}
	ip := net.ParseIP(host)
	return ip != nil && ip.IsLoopback()
}
