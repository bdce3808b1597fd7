// Command daedaly generates project analyses, task plans, task summaries
// and checklists with the configured AI provider.
package main

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/nhle/daedaly/internal/ai"
	"github.com/nhle/daedaly/internal/config"
	"github.com/nhle/daedaly/internal/credential"
	"github.com/nhle/daedaly/internal/generate"
	"github.com/nhle/daedaly/internal/model"
	"github.com/nhle/daedaly/internal/store"
	"github.com/nhle/daedaly/internal/telemetry"
)

const shutdownTimeout = 5 * time.Second

// version is set at build time with -ldflags "-X main.version=...".
var version = "dev"

// cli holds the flags and the dependencies built from them.
type cli struct {
	configPath string
	dbPath     string
	verbose    bool
	noKeyring  bool

	logger  *zap.Logger
	cfg     *model.AppConfig
	store   *store.SQLiteStore
	secrets *credential.Store
	params  *config.Layered
	tel     *telemetry.Telemetry
}

// newRootCmd builds the command tree on c. The caller owns c.teardown,
// which must run whether or not the command succeeded.
func newRootCmd(c *cli) *cobra.Command {
	root := &cobra.Command{
		Use:   "daedaly",
		Short: "AI-assisted project planning",
		Long: `daedaly turns project documents, the company profile and the team roster
into project analyses, task plans, task summaries and checklists.

The active provider (OpenAI, Gemini, DeepSeek or a local gateway) is read
from the parameter store on every call; see "daedaly config".`,
		Version:           version,
		SilenceUsage:      true,
		PersistentPreRunE: c.setup,
	}

	root.PersistentFlags().StringVar(&c.configPath, "config", model.DefaultConfigPath(), "config file")
	root.PersistentFlags().StringVar(&c.dbPath, "db", "", "SQLite database (defaults to database.path)")
	root.PersistentFlags().BoolVarP(&c.verbose, "verbose", "v", false, "debug logging")
	root.PersistentFlags().BoolVar(&c.noKeyring, "no-keyring", false, "do not read API keys from the OS keyring")

	root.AddCommand(
		c.projectCmd(),
		c.taskCmd(),
		c.checkCmd(),
		c.configCmd(),
		c.importCmd(),
		c.notificationsCmd(),
	)
	return root
}

func (c *cli) setup(cmd *cobra.Command, args []string) error {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("loading .env: %w", err)
	}

	cfg, err := model.LoadConfig(c.configPath)
	if err != nil {
		return err
	}
	c.cfg = cfg

	zcfg := zap.NewProductionConfig()
	var level zapcore.Level
	if err := level.UnmarshalText([]byte(cfg.Log.Level)); err == nil {
		zcfg.Level = zap.NewAtomicLevelAt(level)
	}
	if c.verbose {
		zcfg.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
	}
	logger, err := zcfg.Build()
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	c.logger = logger

	dbPath := c.dbPath
	if dbPath == "" {
		dbPath = cfg.Database.Path
	}
	if dbPath != ":memory:" {
		dir := filepath.Dir(dbPath)
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("creating database directory %s: %w", dir, err)
		}
	}
	s, err := store.NewSQLiteStore(dbPath)
	if err != nil {
		return err
	}
	c.store = s

	var secrets config.SecretStore
	if !c.noKeyring {
		ring, err := credential.Open()
		if err != nil {
			c.logger.Warn("keyring unavailable, API keys are read from parameters only", zap.Error(err))
		} else {
			c.secrets = ring
			secrets = ring
		}
	}
	c.params = config.NewLayered(s, cfg, secrets)

	tel, err := telemetry.Setup(cmd.Context(), cfg.Telemetry, version)
	if err != nil {
		c.logger.Warn("telemetry disabled", zap.Error(err))
	}
	c.tel = tel
	return nil
}

func (c *cli) teardown(ctx context.Context) {
	if err := c.tel.Shutdown(ctx); err != nil && c.logger != nil {
		c.logger.Warn("flushing telemetry", zap.Error(err))
	}
	if c.store != nil {
		_ = c.store.Close()
	}
	if c.logger != nil {
		_ = c.logger.Sync()
	}
}

func (c *cli) gateway() *ai.Gateway {
	return ai.NewGateway(c.params, c.params, ai.Options{Logger: c.logger})
}

func (c *cli) service() *generate.Service {
	return generate.NewService(c.store, c.gateway(), ai.NewAgentClient(nil), c.logger)
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)

	c := &cli{}
	err := newRootCmd(c).ExecuteContext(ctx)
	stop()

	// ctx may be cancelled already; spans still get a bounded flush.
	flushCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	c.teardown(flushCtx)
	cancel()

	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
