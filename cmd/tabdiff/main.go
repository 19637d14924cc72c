// Command tabdiff computes, watches, serves and packs differences between tab bar layouts.
package main

import (
	"fmt"
	"io"
	"os"

	"flo.znkr.io/tabdiff/config"
	"flo.znkr.io/tabdiff/diff"
	"flo.znkr.io/tabdiff/logging"
	"flo.znkr.io/tabdiff/tabbar"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// app is the state shared by all commands. It's populated before any command runs.
type app struct {
	v      *viper.Viper
	cfg    config.Config
	log    zerolog.Logger
	engine tabbar.Engine
	closer io.Closer

	configPath string
}

func newRootCmd(stdout, stderr io.Writer) *cobra.Command {
	a := &app{v: config.New(), log: zerolog.Nop()}

	rootCmd := &cobra.Command{
		Use:           "tabdiff [command]",
		Short:         "Minimal differences between tab bar layouts",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.init(stderr)
		},
		PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
			if a.closer != nil {
				return a.closer.Close()
			}
			return nil
		},
	}
	rootCmd.SetOut(stdout)
	rootCmd.SetErr(stderr)

	flags := rootCmd.PersistentFlags()
	flags.StringVar(&a.configPath, "config", "", "config file (default $HOME/.config/tabdiff/config.toml)")
	flags.String("engine", "myers", "diff engine: myers or znkr")
	flags.String("log-level", "info", "log level")
	flags.String("log-format", "console", "log format: console or json")
	flags.String("log-file", "", "also write JSON logs to this file")
	a.v.BindPFlag("engine", flags.Lookup("engine"))
	a.v.BindPFlag("log.level", flags.Lookup("log-level"))
	a.v.BindPFlag("log.format", flags.Lookup("log-format"))
	a.v.BindPFlag("log.file", flags.Lookup("log-file"))

	rootCmd.AddCommand(newDiffCmd(a))
	rootCmd.AddCommand(newWatchCmd(a))
	rootCmd.AddCommand(newServeCmd(a))
	rootCmd.AddCommand(newPackCmd(a))
	rootCmd.AddCommand(newTUICmd(a))
	return rootCmd
}

func (a *app) init(stderr io.Writer) error {
	cfg, err := config.Load(a.v, a.configPath)
	if err != nil {
		return err
	}
	a.cfg = cfg

	log, closer, err := logging.New(cfg.Log, logging.Options{Stderr: stderr, NoColor: !cfg.Output.Color})
	if err != nil {
		return err
	}
	a.log = log
	a.closer = closer

	engine, err := tabbar.EngineByName(cfg.Engine, diff.TraceLimit(cfg.TraceLimit))
	if err != nil {
		return err
	}
	a.engine = engine
	a.log.Debug().Str("engine", cfg.Engine).Int("trace_limit", cfg.TraceLimit).Msg("configured")
	return nil
}

func main() {
	if err := newRootCmd(os.Stdout, os.Stderr).Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
