// Copyright (c) 2024 Michael D Henderson. All rights reserved.

// Package main implements the sdc CLI: parse, validate, and run story
// documents written in the format internal/sdc/parser understands.
package main

import (
	"fmt"
	"log"
	"log/slog"
	"os"
	"strings"

	"github.com/maloquacious/semver"
	"github.com/spf13/cobra"

	"github.com/mdhender/sdc/internal/config"
)

var (
	version = semver.Version{
		Major: 0,
		Minor: 1,
		Patch: 0,
		Build: semver.Commit(),
	}
	logger       *slog.Logger
	globalConfig *config.Config
)

func main() {
	for _, arg := range os.Args {
		if arg == "-version" || arg == "--version" {
			fmt.Printf("%s\n", version.Short())
			return
		} else if arg == "-build-info" || arg == "--build-info" {
			fmt.Printf("%s\n", version.String())
			return
		}
	}

	const configFileName = "sdc.json"
	debugConfigFile := false
	if sb, err := os.Stat(configFileName); err == nil && sb.Mode().IsRegular() {
		debugConfigFile = true
	}
	cfg, err := config.Load(configFileName, debugConfigFile)
	if err != nil && debugConfigFile {
		log.Printf("[config] %q: %v\n", configFileName, err)
	}
	globalConfig = cfg

	if err := Execute(cfg); err != nil {
		log.Fatal(err)
	}
}

func Execute(cfg *config.Config) error {
	logger = slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))

	cmdRoot.PersistentFlags().Bool("debug", false, "enable debug logging (same as --log-level=debug)")
	cmdRoot.PersistentFlags().Bool("quiet", false, "only log errors (same as --log-level=error)")
	cmdRoot.PersistentFlags().String("log-level", "error", "logging level (debug|info|warn|error)")
	cmdRoot.PersistentFlags().Bool("log-source", false, "add file and line numbers to log messages")

	cmdRoot.AddCommand(cmdVersion)
	cmdRoot.AddCommand(cmdParse)
	cmdRoot.AddCommand(cmdValidate)
	cmdRoot.AddCommand(cmdRun)

	return cmdRoot.Execute()
}

var cmdRoot = &cobra.Command{
	Use:           "sdc",
	Short:         "story document compiler",
	Long:          `Parse, validate, and step through interactive narrative story documents.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		flags := cmd.Root().PersistentFlags()
		logLevel, err := flags.GetString("log-level")
		if err != nil {
			return err
		}
		logSource, err := flags.GetBool("log-source")
		if err != nil {
			return err
		}
		debug, err := flags.GetBool("debug")
		if err != nil {
			return err
		}
		quiet, err := flags.GetBool("quiet")
		if err != nil {
			return err
		}
		if debug && quiet {
			return fmt.Errorf("--debug and --quiet are mutually exclusive")
		}
		var lvl slog.Level
		switch {
		case debug:
			lvl = slog.LevelDebug
		case quiet:
			lvl = slog.LevelError
		default:
			switch strings.ToLower(logLevel) {
			case "debug":
				lvl = slog.LevelDebug
			case "info":
				lvl = slog.LevelInfo
			case "warn", "warning":
				lvl = slog.LevelWarn
			case "error":
				lvl = slog.LevelError
			default:
				return fmt.Errorf("log-level: unknown value %q", logLevel)
			}
		}
		handler := slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
			Level:     lvl,
			AddSource: logSource || lvl == slog.LevelDebug,
		})
		logger = slog.New(handler)
		slog.SetDefault(logger)
		return nil
	},
}
