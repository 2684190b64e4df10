package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/fx"
	"go.uber.org/fx/fxevent"
	"go.uber.org/zap"

	"github.com/vijay-prabhu/jobboard/internal/api"
	"github.com/vijay-prabhu/jobboard/internal/config"
	"github.com/vijay-prabhu/jobboard/internal/database"
	"github.com/vijay-prabhu/jobboard/internal/similarity"
	"github.com/vijay-prabhu/jobboard/internal/telemetry"
	"github.com/vijay-prabhu/jobboard/internal/tracker"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP API",
	Long: `Start the HTTP API serving similar-job recommendations.

Endpoints:
  GET /jobs/{id}/similar?limit=3&debug=true
  GET /jobs/{id}
  GET /health

The server stops gracefully on SIGINT or SIGTERM.`,
	RunE: runServe,
}

var (
	serveHost string
	servePort int
)

func init() {
	rootCmd.AddCommand(serveCmd)

	serveCmd.Flags().StringVar(&serveHost, "host", "", "Override server.host")
	serveCmd.Flags().IntVar(&servePort, "port", 0, "Override server.port")
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if serveHost != "" {
		cfg.Server.Host = serveHost
	}
	if servePort != 0 {
		cfg.Server.Port = servePort
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}

	app := fx.New(
		fx.Supply(cfg),
		fx.Provide(
			newLogger,
			newDatabase,
			newEngine,
			newAPIServer,
		),
		fx.WithLogger(func(log *zap.Logger) fxevent.Logger {
			return &fxevent.ZapLogger{Logger: log.Named("fx")}
		}),
		fx.Invoke(registerTelemetry),
		fx.Invoke(registerTracker),
		fx.Invoke(func(*api.Server) {}),
	)

	startCtx, cancel := context.WithTimeout(cmd.Context(), fx.DefaultTimeout)
	defer cancel()
	if err := app.Start(startCtx); err != nil {
		return fmt.Errorf("failed to start: %w", err)
	}

	// Done is closed on SIGINT and SIGTERM
	<-app.Done()

	stopCtx, stop := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout())
	defer stop()
	return app.Stop(stopCtx)
}

func newDatabase(lc fx.Lifecycle, cfg *config.Config) (*database.DB, error) {
	db, err := database.Open(cfg.Database.Path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	lc.Append(fx.Hook{
		OnStop: func(context.Context) error {
			return db.Close()
		},
	})
	return db, nil
}

func newAPIServer(lc fx.Lifecycle, cfg *config.Config, engine *similarity.Engine, db *database.DB, log *zap.Logger) *api.Server {
	server := api.NewServer(cfg.Server, engine, db, log)

	lc.Append(fx.Hook{
		OnStart: func(context.Context) error {
			return server.Start()
		},
		OnStop: func(ctx context.Context) error {
			return server.Shutdown(ctx)
		},
	})
	return server
}

// registerTelemetry installs the tracer provider for the process lifetime
func registerTelemetry(lc fx.Lifecycle, cfg *config.Config, log *zap.Logger) {
	var shutdown func(context.Context) error

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			var err error
			shutdown, err = telemetry.Setup(ctx, cfg.Telemetry, version)
			if err != nil {
				return fmt.Errorf("failed to set up telemetry: %w", err)
			}
			if cfg.Telemetry.Enabled {
				log.Info("tracing enabled", zap.String("collector", cfg.Telemetry.CollectorURL))
			}
			return nil
		},
		OnStop: func(ctx context.Context) error {
			if shutdown == nil {
				return nil
			}
			return shutdown(ctx)
		},
	})
}

// registerTracker runs the expiry sweep in the background while serving
func registerTracker(lc fx.Lifecycle, cfg *config.Config, db *database.DB, log *zap.Logger) {
	interval := cfg.Tracking.SweepInterval()
	if interval <= 0 {
		return
	}

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})

	lc.Append(fx.Hook{
		OnStart: func(context.Context) error {
			go func() {
				defer close(done)
				tracker.New(db, log).Run(ctx, interval)
			}()
			return nil
		},
		OnStop: func(stopCtx context.Context) error {
			cancel()
			select {
			case <-done:
				return nil
			case <-stopCtx.Done():
				return stopCtx.Err()
			}
		},
	})
}
