package command

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
	"gorm.io/gorm"

	"vibelink/database"
	"vibelink/internal/config"
	"vibelink/internal/logger"
)

// rootCmd is the vibelink operations CLI. Every subcommand talks to the
// database named by DATABASE_URL directly, not to a running API server.
var rootCmd = &cobra.Command{
	Use:           "vibelink",
	Short:         "VibeLink maintenance commands",
	Long:          `Run schema migrations, load demo data and perform housekeeping against the VibeLink database.`,
	SilenceUsage:  true,
	SilenceErrors: false,
}

func Execute() error {
	return rootCmd.Execute()
}

// env is what every subcommand needs: validated config, a logger and an open store.
type env struct {
	cfg *config.Config
	log *logger.Logger
	db  *gorm.DB
}

func (e *env) close() {
	if err := database.Close(e.db); err != nil {
		e.log.Warn("database close failed", "error", err)
	}
	e.log.Sync()
}

func openEnv(ctx context.Context) (*env, error) {
	cfg, err := config.LoadConfig()
	if err != nil {
		return nil, fmt.Errorf("could not load config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	log, err := logger.New(cfg.LogLevel, cfg.LogFormat)
	if err != nil {
		return nil, fmt.Errorf("could not build logger: %w", err)
	}
	db, err := database.Connect(cfg, log)
	if err != nil {
		return nil, err
	}
	return &env{cfg: cfg, log: log, db: db.WithContext(ctx)}, nil
}
