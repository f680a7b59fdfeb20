package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"dispatch/internal/adapters/out/postgres"
	"dispatch/internal/core/application/usecases/commands"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
	gormpostgres "gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

const shutdownTimeout = 10 * time.Second

// NewRootCommand builds the dispatch CLI.
func NewRootCommand() *cobra.Command {
	var cfgPath string

	root := &cobra.Command{
		Use:           "dispatch",
		Short:         "Delivery batch dispatch service",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVarP(&cfgPath, "config", "c", "", "optional YAML configuration file")

	root.AddCommand(
		newServeCommand(&cfgPath),
		newGenerateCommand(&cfgPath),
		newMigrateCommand(&cfgPath),
	)
	return root
}

func newServeCommand(cfgPath *string) *cobra.Command {
	var migrate bool
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API and the scheduled jobs",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			cfg, logger, db, err := bootstrap(*cfgPath, os.Stderr)
			if err != nil {
				return err
			}
			if migrate {
				if err := postgres.Migrate(db); err != nil {
					return fmt.Errorf("migrate: %w", err)
				}
			}
			return serve(ctx, cfg, db, logger)
		},
	}
	cmd.Flags().BoolVar(&migrate, "migrate", true, "apply schema migrations before serving")
	return cmd
}

func serve(ctx context.Context, cfg Config, db *gorm.DB, logger *slog.Logger) error {
	app, err := NewCompositionRoot(cfg, db, logger)
	if err != nil {
		return err
	}
	defer func() {
		if err := app.Close(); err != nil {
			logger.Error("Failed to close composition root", "error", err)
		}
	}()

	jobManager := app.CreateJobManager()
	if err := jobManager.StartAll(); err != nil {
		return fmt.Errorf("start jobs: %w", err)
	}
	defer jobManager.StopAll()

	e := app.CreateRouter()

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		logger.InfoContext(gctx, "HTTP server started", "port", cfg.HTTPPort)
		if err := e.Start(fmt.Sprintf("0.0.0.0:%s", cfg.HTTPPort)); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		logger.InfoContext(shutdownCtx, "HTTP server stopping")
		return e.Shutdown(shutdownCtx)
	})
	return g.Wait()
}

func newGenerateCommand(cfgPath *string) *cobra.Command {
	var maxOrders int
	var maxWeight float64
	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Group all PENDING orders into batches once and exit",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, logger, db, err := bootstrap(*cfgPath, cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			app, err := NewCompositionRoot(cfg, db, logger)
			if err != nil {
				return err
			}
			defer app.Close()

			command, err := commands.NewGenerateBatchesCommand(maxOrders, maxWeight)
			if err != nil {
				return err
			}
			result, err := app.CreateGenerateBatchesCommandHandler().Handle(cmd.Context(), command)
			if err != nil {
				return err
			}
			return printGenerateResult(cmd.OutOrStdout(), result)
		},
	}
	cmd.Flags().IntVar(&maxOrders, "max-orders", 0, "maximum orders per batch (0 uses the configured limit)")
	cmd.Flags().Float64Var(&maxWeight, "max-weight", 0, "maximum kilograms per batch (0 uses the configured limit)")
	return cmd
}

func printGenerateResult(w io.Writer, result commands.GenerateBatchesResult) error {
	if len(result.Batches) == 0 {
		_, err := fmt.Fprintln(w, "No pending orders")
		return err
	}
	if _, err := fmt.Fprintf(w, "Generated %d batches from %d orders (%d clusters, %d iterations, limits %d orders / %.2f kg)\n",
		len(result.Batches), result.OrderCount, result.Clusters, result.Iterations,
		result.Limits.MaxOrders, result.Limits.MaxWeight); err != nil {
		return err
	}
	for _, b := range result.Batches {
		if _, err := fmt.Fprintf(w, "%s\t%d orders\t%.2f kg\n", b.ID(), b.OrderCount(), b.TotalWeight()); err != nil {
			return err
		}
	}
	return nil
}

func newMigrateCommand(cfgPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Create or update the database schema",
		RunE: func(cmd *cobra.Command, _ []string) error {
			_, logger, db, err := bootstrap(*cfgPath, cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			if err := postgres.Migrate(db); err != nil {
				return err
			}
			logger.InfoContext(cmd.Context(), "Schema migrated")
			return nil
		},
	}
}

func bootstrap(cfgPath string, logOutput io.Writer) (Config, *slog.Logger, *gorm.DB, error) {
	cfg, err := LoadConfig(cfgPath)
	if err != nil {
		return Config{}, nil, nil, fmt.Errorf("load config: %w", err)
	}
	level, _ := cfg.SlogLevel()
	logger := slog.New(slog.NewJSONHandler(logOutput, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)

	db, err := gorm.Open(gormpostgres.Open(cfg.DSN()), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Warn),
	})
	if err != nil {
		return Config{}, nil, nil, fmt.Errorf("connect to database: %w", err)
	}
	return cfg, logger, db, nil
}
