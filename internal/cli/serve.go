package cli

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"os"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"topoconf/internal/config"
	"topoconf/internal/handler"
	"topoconf/internal/hub"
	"topoconf/internal/loader"
	"topoconf/internal/repository"
	"topoconf/internal/repository/memory"
	"topoconf/internal/repository/sqlite"
	"topoconf/internal/service"
	"topoconf/internal/watcher"
)

// serveOptions holds the serve flags. Flags left unset keep the config file value.
type serveOptions struct {
	configPath string
	host       string
	port       int
	seed       string
	report     string
	debug      bool
}

func newServeCmd(debug *bool) *cobra.Command {
	opts := &serveOptions{}

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the topology HTTP server",
		Long: `Run the topology HTTP server.

Settings are read from --config, ./topoconf.yaml or ./topoconf.toml when
present; flags override file values. The topology lives in memory and is
lost when the process exits.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.debug = *debug
			return opts.run(cmd)
		},
	}
	opts.bind(cmd)

	return cmd
}

func (o *serveOptions) bind(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&o.configPath, "config", "c", "", "config file (YAML or TOML)")
	cmd.Flags().StringVar(&o.host, "host", config.DefaultHost, "listen host")
	cmd.Flags().IntVarP(&o.port, "port", "p", config.DefaultPort, "listen port")
	cmd.Flags().StringVar(&o.seed, "seed", "", "topology file (JSON or YAML) applied at startup")
	cmd.Flags().StringVar(&o.report, "report", config.DefaultReportPath, "QoS report file served for download")
}

// resolve loads the config file and applies explicitly set flags on top
func (o *serveOptions) resolve(cmd *cobra.Command) (*config.Config, string, error) {
	cfg, path, err := config.Load(o.configPath)
	if err != nil {
		return nil, path, err
	}

	flags := cmd.Flags()
	if flags.Changed("host") {
		cfg.Server.Host = o.host
	}
	if flags.Changed("port") {
		cfg.Server.Port = o.port
	}
	if flags.Changed("seed") {
		cfg.Seed.Path = o.seed
	}
	if flags.Changed("report") {
		cfg.Report.Path = o.report
	}
	if o.debug {
		cfg.Log.Level = config.LogLevelDebug
	}

	if err := cfg.Validate(); err != nil {
		return nil, path, err
	}
	return cfg, path, nil
}

func (o *serveOptions) run(cmd *cobra.Command) error {
	ctx := cmd.Context()

	cfg, path, err := o.resolve(cmd)
	if err != nil {
		return err
	}

	logger := newLogger(os.Stderr, levelFor(cfg.Log.Level, o.debug), cfg.Log.Format)
	ctx = withLogger(ctx, logger)
	if path != "" {
		logger.Info("loaded config", "path", path)
	}
	logger.Debug(cfg.Summary())

	srv, err := newServer(cfg, logger)
	if err != nil {
		return err
	}
	defer srv.Close()

	if err := srv.applySeed(ctx); err != nil {
		return err
	}

	return srv.ListenAndServe(ctx)
}

// server wires the store, journal, services and HTTP surface together
type server struct {
	cfg       *config.Config
	logger    *log.Logger
	journal   *sqlite.Journal
	bus       *service.EventBus
	events    chan service.Event
	closeOnce sync.Once
	hub       *hub.Hub
	svc       *service.TopologyService
	handler   http.Handler
}

func newServer(cfg *config.Config, logger *log.Logger) (*server, error) {
	maxBody, err := cfg.MaxBodyBytes()
	if err != nil {
		return nil, err
	}

	s := &server{cfg: cfg, logger: logger}

	var journal repository.RevisionLog
	if cfg.JournalEnabled() {
		j, err := sqlite.New(cfg.Journal.DSN, cfg.Journal.MaxEntries)
		if err != nil {
			return nil, fmt.Errorf("open revision journal: %w", err)
		}
		s.journal = j
		journal = j
		logger.Debug("revision journal opened", "dsn", cfg.Journal.DSN)
	}

	s.bus = service.NewEventBus()

	s.hub = hub.New(logger)
	go s.hub.Run()

	// Forward bus events to SSE clients
	s.events = make(chan service.Event, 100)
	s.bus.Subscribe(s.events)
	go func() {
		for event := range s.events {
			s.hub.Broadcast(event)
		}
	}()

	s.svc = service.NewTopologyService(memory.New(), journal, s.bus, logger)

	h := handler.NewTopologyHandler(s.svc, service.NewReportService(cfg.Report.Path), logger).
		WithMaxBodyBytes(maxBody)
	s.handler = handler.NewRouter(h, handler.RouterOptions{
		AllowedOrigins: cfg.CORS.AllowedOrigins,
		Events:         s.hub,
		Logger:         logger,
	})

	return s, nil
}

// applySeed loads the seed file, if any, and starts watching it when configured
func (s *server) applySeed(ctx context.Context) error {
	path := s.cfg.Seed.Path
	if path == "" {
		return nil
	}

	record, err := loader.Apply(ctx, s.svc, path)
	if err != nil {
		return fmt.Errorf("load seed topology: %w", err)
	}
	s.logger.Info("seed topology applied", "path", path, "upfs", record.UPFCount, "gnbs", record.GNBCount)

	if s.cfg.Seed.Watch {
		w := watcher.New(path, func() {
			if _, err := loader.Apply(ctx, s.svc, path); err != nil {
				s.logger.Warn("seed topology not reapplied", "path", path, "err", err)
			}
		}, s.logger)
		go func() {
			if err := w.Watch(ctx); err != nil && !errors.Is(err, context.Canceled) {
				s.logger.Error("seed watcher stopped", "err", err)
			}
		}()
	}

	return nil
}

// ListenAndServe serves until ctx is cancelled, then shuts down gracefully
func (s *server) ListenAndServe(ctx context.Context) error {
	ln, err := net.Listen("tcp", s.cfg.Addr())
	if err != nil {
		return fmt.Errorf("listen: %w", err)
	}
	return s.Serve(ctx, ln)
}

// Serve serves on ln until ctx is cancelled
func (s *server) Serve(ctx context.Context, ln net.Listener) error {
	httpServer := &http.Server{
		Handler:      s.handler,
		ReadTimeout:  s.cfg.Server.ReadTimeout.Duration(),
		WriteTimeout: s.cfg.Server.WriteTimeout.Duration(),
		IdleTimeout:  60 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("server listening", "addr", ln.Addr().String())
		if err := httpServer.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("server error: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	s.logger.Info("shutting down server")

	// SSE streams never go idle on their own
	s.hub.Stop()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), s.cfg.Server.ShutdownTimeout.Duration())
	defer cancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown: %w", err)
	}

	s.logger.Info("server stopped")
	return nil
}

// Close stops event forwarding and the SSE hub, then releases the journal
func (s *server) Close() error {
	var err error
	s.closeOnce.Do(func() {
		s.bus.Unsubscribe(s.events)
		close(s.events)
		s.hub.Stop()
		if s.journal != nil {
			err = s.journal.Close()
		}
	})
	return err
}
