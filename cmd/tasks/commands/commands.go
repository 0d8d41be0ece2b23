package commands

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/alecthomas/kingpin/v2"
	"k8s.io/client-go/util/homedir"

	"github.com/slok/tasks/internal/conventions"
	"github.com/slok/tasks/internal/log"
	"github.com/slok/tasks/internal/model"
	"github.com/slok/tasks/internal/printer"
	storageio "github.com/slok/tasks/internal/storage/io"
)

const (
	// LoggerTypeDefault is the logger default type.
	LoggerTypeDefault = "default"
	// LoggerTypeJSON is the logger json type.
	LoggerTypeJSON = "json"
)

const (
	formatTable = "table"
	formatText  = "text"
	formatJSON  = "json"
)

// Command represents an application command, all commands that want to be executed
// should implement and setup on main.
type Command interface {
	Name() string
	Run(ctx context.Context) error
}

// RootCommand represents the root command configuration and global configuration
// for all the commands.
type RootCommand struct {
	// Global flags.
	Debug      bool
	NoLog      bool
	NoColor    bool
	LoggerType string
	ConfigPath string
	Storage    string
	DataPath   string

	// Global instances.
	Stdin  io.Reader
	Stdout io.Writer
	Stderr io.Writer
	Logger log.Logger
	// Config is the resolved configuration, set by LoadConfig.
	Config model.Config
}

// NewRootCommand initializes the main root configuration.
func NewRootCommand(app *kingpin.Application) *RootCommand {
	c := &RootCommand{}

	app.Flag("debug", "Enable debug mode.").BoolVar(&c.Debug)
	app.Flag("no-log", "Disable logger.").BoolVar(&c.NoLog)
	app.Flag("no-color", "Disable logger color.").BoolVar(&c.NoColor)
	app.Flag("logger", "Selects the logger type.").Default(LoggerTypeDefault).EnumVar(&c.LoggerType, LoggerTypeDefault, LoggerTypeJSON)

	app.Flag("config", "Path to the YAML configuration file.").Default(conventions.ConfigPath(homedir.HomeDir())).StringVar(&c.ConfigPath)
	app.Flag("storage", "Storage backend (json, sqlite), overrides the configuration file.").EnumVar(&c.Storage, string(model.StorageTypeJSON), string(model.StorageTypeSQLite))
	app.Flag("data-path", "Path to the tasks file or database, overrides the configuration file.").StringVar(&c.DataPath)

	return c
}

// LoadConfig resolves the configuration from the flags, the configuration file
// and the defaults, in that order of precedence.
func (c *RootCommand) LoadConfig(ctx context.Context) error {
	configPath, err := filepath.Abs(c.ConfigPath)
	if err != nil {
		return fmt.Errorf("could not resolve config path: %w", err)
	}

	configRepo := storageio.NewConfigYAMLRepository(os.DirFS("/"))
	fileCfg, err := configRepo.GetConfig(ctx, configPath[1:])
	if err != nil {
		return fmt.Errorf("could not load config: %w", err)
	}

	flagCfg := model.Config{
		Storage:  model.StorageType(c.Storage),
		DataPath: c.DataPath,
	}

	cfg := flagCfg.Merge(fileCfg).Merge(model.Config{
		Storage:  model.StorageTypeJSON,
		PageSize: model.DefaultPageSize,
	})

	if cfg.DataPath == "" {
		cfg.DataPath = conventions.DataPath(homedir.HomeDir(), cfg.Storage)
	}

	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}

	c.Config = cfg
	c.Logger.Debugf("Using %s storage at %s", cfg.Storage, cfg.DataPath)

	return nil
}

func newPrinter(format string, w io.Writer) printer.Printer {
	switch format {
	case formatJSON:
		return printer.NewJSONPrinter(w)
	case formatText:
		return printer.NewTextPrinter(w)
	default:
		return printer.NewTablePrinter(w)
	}
}

func addFormatFlag(cmd *kingpin.CmdClause, format *string) {
	cmd.Flag("format", "Output format (table, text, json).").Default(formatTable).EnumVar(format, formatTable, formatText, formatJSON)
}
