// Package cmd provides the command-line interface for the fauna animal records tool.
package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/incognito1025/fauna-go/internal/adapter/outbound/filestore"
	"github.com/incognito1025/fauna-go/internal/adapter/outbound/idgen"
	"github.com/incognito1025/fauna-go/internal/adapter/outbound/pointtable"
	"github.com/incognito1025/fauna-go/internal/adapter/outbound/sqlstore"
	"github.com/incognito1025/fauna-go/internal/application/common/logging"
	"github.com/incognito1025/fauna-go/internal/application/common/slogger"
	"github.com/incognito1025/fauna-go/internal/application/handler"
	"github.com/incognito1025/fauna-go/internal/config"
	domainerrors "github.com/incognito1025/fauna-go/internal/domain/errors/domain"
	"github.com/incognito1025/fauna-go/internal/port/outbound"

	"github.com/spf13/afero"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// app carries the per-invocation state shared by every subcommand.
type app struct {
	cfgFile string
	fs      afero.Fs
	v       *viper.Viper
	cfg     *config.Config
}

// Execute builds the command tree and runs it against the real filesystem.
// This is called by main.main().
func Execute() {
	if err := newRootCmd(afero.NewOsFs()).ExecuteContext(context.Background()); err != nil {
		os.Exit(1)
	}
}

func newRootCmd(fs afero.Fs) *cobra.Command {
	a := &app{fs: fs, v: viper.New()}

	rootCmd := &cobra.Command{
		Use:   "fauna <command> [args]",
		Short: "Maintain a collection of animals and their points",
		Long: `Fauna keeps a small collection of named animals. Each animal gets a short
generated ID and a point value looked up from a reference table.

The whole collection is loaded on every invocation and written back only
when a command changes it.`,
		Args: cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runWord(cmd, args)
		},
	}

	flags := rootCmd.PersistentFlags()
	flags.StringVar(&a.cfgFile, "config", "", "config file (default: ./configs/fauna.yaml)")
	flags.String("storage-driver", config.DriverFile, "Storage driver (file, sqlite, postgres)")
	flags.String("data", config.DefaultStoragePath, "Collection location for the file and sqlite drivers")
	flags.String("dsn", "", "PostgreSQL connection string for the postgres driver")
	flags.String("points", config.DefaultPointsPath, "Point table file (.json, .yaml)")
	flags.Bool("strict", false, "Reject animal names missing from the point table")
	flags.String("log-level", "warn", "Log level (debug, info, warn, error)")
	flags.String("log-format", "text", "Log format (json, text)")

	for key, flag := range map[string]string{
		"storage.driver": "storage-driver",
		"storage.path":   "data",
		"storage.dsn":    "dsn",
		"points.path":    "points",
		"points.strict":  "strict",
		"log.level":      "log-level",
		"log.format":     "log-format",
	} {
		if err := a.v.BindPFlag(key, flags.Lookup(flag)); err != nil {
			fmt.Fprintf(os.Stderr, "Error binding %s flag: %v\n", flag, err)
		}
	}

	rootCmd.AddCommand(newRecordCommands(a)...)
	rootCmd.AddCommand(newVersionCmd())
	return rootCmd
}

// initConfig reads defaults, the config file, FAUNA_* environment variables and flags.
func (a *app) initConfig() error {
	config.SetDefaults(a.v)
	a.v.SetFs(a.fs)

	if a.cfgFile != "" {
		a.v.SetConfigFile(a.cfgFile)
	} else {
		a.v.SetConfigName("fauna")
		a.v.SetConfigType("yaml")
		a.v.AddConfigPath("./configs")
		a.v.AddConfigPath(".")
	}

	a.v.SetEnvPrefix("FAUNA")
	a.v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	a.v.AutomaticEnv()

	if err := a.v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return fmt.Errorf("error reading config file: %w", err)
		}
		// Config file not found; use defaults and environment
	}

	cfg, err := config.Load(a.v)
	if err != nil {
		return err
	}
	a.cfg = cfg

	return slogger.Configure(logging.Config{
		Level:  cfg.Log.Level,
		Format: cfg.Log.Format,
		Output: "stderr",
	})
}

// runWord handles invocations whose first word matched no subcommand.
func (a *app) runWord(cmd *cobra.Command, args []string) error {
	word := ""
	if len(args) > 0 {
		word = args[0]
	}
	slogger.Warn(cmd.Context(), "Unrecognized command", slogger.Field("command", word))
	_, err := fmt.Fprintln(cmd.OutOrStdout(), handler.MsgGenericError)
	return err
}

// run executes one record command: configure, wire the adapters, dispatch.
func (a *app) run(cmd *cobra.Command, command handler.Command) error {
	// Arguments are valid by now; further failures are not usage errors.
	cmd.SilenceUsage = true

	if err := a.initConfig(); err != nil {
		return err
	}
	ctx := logging.NewCorrelationContext(cmd.Context())

	store, closeStore, err := a.openStore(ctx)
	if err != nil {
		slogger.ErrorWithError(ctx, err, "Failed to open storage", slogger.Field("driver", a.cfg.Storage.Driver))
		return err
	}
	defer func() {
		if cerr := closeStore(); cerr != nil {
			slogger.ErrorWithError(ctx, cerr, "Failed to close storage", nil)
		}
	}()

	ids, err := idgen.NewUUIDGenerator(a.cfg.ID.Length)
	if err != nil {
		return err
	}

	dispatcher := handler.NewDispatcher(
		store,
		pointtable.NewFileSource(a.fs, a.cfg.Points.Path),
		ids,
		handler.WithStrictNames(a.cfg.Points.Strict),
	)
	_, err = dispatcher.Dispatch(ctx, command, cmd.OutOrStdout())
	return err
}

func (a *app) openStore(ctx context.Context) (outbound.AnimalStore, func() error, error) {
	storage := a.cfg.Storage
	switch storage.Driver {
	case config.DriverSQLite:
		s, err := sqlstore.OpenSQLite(ctx, storage.Path)
		if err != nil {
			return nil, nil, err
		}
		return s, s.Close, nil
	case config.DriverPostgres:
		s, err := sqlstore.OpenPostgres(ctx, storage.DSN)
		if err != nil {
			return nil, nil, err
		}
		return s, s.Close, nil
	case config.DriverFile:
		s := filestore.NewStore(storage.Path,
			filestore.WithFs(a.fs),
			filestore.WithAtomicWrites(storage.Atomic),
		)
		return s, func() error { return nil }, nil
	default:
		return nil, nil, fmt.Errorf("%w: storage driver %q", domainerrors.ErrInvalidInput, storage.Driver)
	}
}
