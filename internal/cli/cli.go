// Package cli wires the flag surface, configuration, logging and the trash
// engine together.
package cli

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/babarot/tt/internal/config"
	"github.com/babarot/tt/internal/debug"
	"github.com/babarot/tt/internal/env"
	"github.com/babarot/tt/internal/trash"
	"github.com/charmbracelet/log"
	"github.com/jessevdk/go-flags"
	"github.com/rs/xid"
)

type Option struct {
	List    bool   `short:"l" long:"list" description:"List trashed files"`
	Long    bool   `long:"long" description:"Show the listing as a detailed table"`
	Restore bool   `short:"r" long:"restore" description:"Restore trashed files interactively"`
	Empty   bool   `short:"e" long:"empty" description:"Permanently erase trashed files"`
	Yes     bool   `short:"y" long:"yes" description:"Skip confirmation prompts"`
	Days    int    `long:"within-days" description:"Only consider files trashed within the last N days" default:"0"`
	Config  string `long:"config" description:"Path to config file" default:""`

	Meta MetaOption `group:"Meta Options"`
	Rm   RmOption   `group:"Compatible (rm) Options"`
}

type MetaOption struct {
	Version bool   `short:"V" long:"version" description:"Show version"`
	Debug   string `long:"debug" description:"View debug logs (default: \"full\")" optional-value:"full" optional:"yes" choice:"full" choice:"live"`
}

// RmOption provides compatibility with rm command options
type RmOption struct {
	Interactive bool `short:"i" description:"(dummy) prompt before every removal"`
	Recursive   bool `short:"R" long:"recursive" description:"(dummy) remove directories and their contents recursively"`
	Force       bool `short:"f" long:"force" description:"ignore nonexistent files, never prompt"`
	Directory   bool `short:"d" long:"dir" description:"(dummy) remove empty directories"`
	Verbose     bool `short:"v" long:"verbose" description:"explain what is being done"`
}

type CLI struct {
	version Version
	option  Option
	config  config.Config
	runID   string
	storage *trash.Storage
}

var runID = sync.OnceValue(func() string {
	return xid.New().String()
})

func Run(v Version) error {
	var opt Option
	parser := flags.NewParser(&opt, flags.Default)
	parser.Name = v.AppName
	parser.Usage = "[-l | -r | -e | files...]"
	args, err := parser.Parse()
	if err != nil {
		if flags.WroteHelp(err) {
			return nil
		}
		return err
	}

	logDir := filepath.Dir(env.TT_LOG_PATH)
	if _, err := os.Stat(logDir); os.IsNotExist(err) {
		if err := os.MkdirAll(logDir, 0755); err != nil {
			return err
		}
	}

	var w io.Writer
	if file, err := os.OpenFile(env.TT_LOG_PATH, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644); err == nil {
		w = file
	} else {
		w = os.Stderr
	}

	logger := log.NewWithOptions(os.Stderr, log.Options{
		ReportCaller:    true,
		ReportTimestamp: true,
		TimeFormat:      time.Kitchen,
		Level:           log.DebugLevel,
	})
	logger.SetOutput(w)
	logger = logger.With("run_id", runID())
	slog.SetDefault(slog.New(logger))

	defer slog.Debug("main function finished\n\n\n")
	slog.Debug("main function started", "version", v.Version, "revision", v.Revision, "buildDate", v.BuildDate)

	cfg, err := config.Parse(opt.Config)
	if err != nil {
		return err
	}

	trashConfig, err := trash.NewConfigFromEnv()
	if err != nil {
		return err
	}

	storage, err := trash.NewStorage(trashConfig)
	if err != nil {
		return fmt.Errorf("failed to initialize trash storage: %w", err)
	}

	cli := CLI{
		version: v,
		option:  opt,
		config:  cfg,
		runID:   runID(),
		storage: storage,
	}

	if err := cli.Run(args); err != nil {
		slog.Error("exit", "error", fmt.Errorf("cli.run failed: %w", err))
		return err
	}
	return nil
}

func (c CLI) Run(args []string) error {
	switch {
	case c.option.Meta.Version:
		fmt.Fprint(os.Stdout, c.version.Print())
		return nil

	case c.option.Meta.Debug == "live":
		return debug.Logs(os.Stdout, c.config.Core.Logging, true)

	case c.option.Meta.Debug == "full":
		return debug.Logs(os.Stdout, c.config.Core.Logging, false)

	case c.option.List:
		return c.List()

	case c.option.Restore:
		return c.Restore()

	case c.option.Empty:
		return c.Empty()

	default:
		return c.Put(args)
	}
}

// filterOptions merges the config file filters with command line overrides.
func (c CLI) filterOptions() trash.FilterOptions {
	opts := c.config.Filter.FilterOptions()
	if c.option.Days > 0 {
		opts.Include.Period = c.option.Days
	}
	return opts
}
