package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/spf13/cobra"

	"github.com/figueras/belchior/internal/buildinfo"
	"github.com/figueras/belchior/internal/config"
	"github.com/figueras/belchior/internal/domain"
	"github.com/figueras/belchior/internal/driver"
	"github.com/figueras/belchior/internal/logger"
)

func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	cmd := newRootCmd()
	if err := cmd.ExecuteContext(ctx); err != nil {
		stop()
		os.Exit(1)
	}
}

type flags struct {
	format  string
	tokens  bool
	color   bool
	strict  bool
	golden  string
	config  string
	debug   bool
	logFile string
}

func newRootCmd() *cobra.Command {
	var f flags

	cmd := &cobra.Command{
		Use:          "belchior [flags] FILE",
		Short:        "Parse a Belchior source file and print its parse tree",
		Args:         cobra.ExactArgs(1),
		SilenceUsage: true,
		Version:      buildinfo.String(),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, cfgPath, err := settings(cmd, &f)
			if err != nil {
				return err
			}

			cleanup, err := logger.Setup(logger.Config{
				Debug:  s.Log.Debug,
				File:   s.Log.File,
				Stderr: cmd.ErrOrStderr(),
			})
			if err != nil {
				return err
			}
			defer func() { _ = cleanup() }()

			logger.L().Debug("config.loaded",
				"path", cfgPath,
				"format", string(s.Format),
				"strict", s.Strict,
				"tokens", s.Tokens,
				"log_file", logger.Path(),
			)

			_, err = driver.Run(cmd.Context(), driver.Options{
				Path:   args[0],
				Format: s.Format,
				Tokens: s.Tokens,
				Color:  s.Color,
				Strict: s.Strict,
				Golden: f.golden,
				Stdout: cmd.OutOrStdout(),
				Stderr: cmd.ErrOrStderr(),
				Logger: logger.L(),
			})
			return err
		},
	}

	cmd.SetVersionTemplate("{{.Version}}\n")

	cmd.Flags().StringVarP(&f.format, "format", "f", string(domain.FormatLISP), "Output format: lisp|tree|yaml")
	cmd.Flags().BoolVar(&f.tokens, "tokens", false, "Print the token stream before the tree")
	cmd.Flags().BoolVar(&f.color, "color", false, "Colour the tree output (tree format only)")
	cmd.Flags().BoolVar(&f.strict, "strict", false, "Exit with an error when syntax errors are reported")
	cmd.Flags().StringVar(&f.golden, "golden", "", "Compare the output against this file")
	cmd.Flags().StringVarP(&f.config, "config", "c", "", "Config file, see "+config.FileName+" for the format")
	cmd.Flags().BoolVar(&f.debug, "debug", false, "Enable debug logging")
	cmd.Flags().StringVar(&f.logFile, "log-file", "", "Write logs to this file instead of stderr")

	return cmd
}

// settings loads the config file given with --config, if any, and applies
// the flags set on the command line over it.
func settings(cmd *cobra.Command, f *flags) (config.Settings, string, error) {
	path := f.config

	s := config.Default()
	if path != "" {
		var err error
		if s, err = config.Load(path); err != nil {
			return config.Settings{}, path, err
		}
	}

	fl := cmd.Flags()
	if fl.Changed("format") {
		format, err := domain.ParseFormat(f.format)
		if err != nil {
			return config.Settings{}, path, &domain.OpError{
				Op:   "cli.flags",
				Kind: domain.KindInvalidConfig,
				Err:  fmt.Errorf("flag --format: %s: %w", err.Error(), domain.ErrInvalidConfig),
			}
		}
		s.Format = format
	}
	if fl.Changed("tokens") {
		s.Tokens = f.tokens
	}
	if fl.Changed("color") {
		s.Color = f.color
	}
	if fl.Changed("strict") {
		s.Strict = f.strict
	}
	if fl.Changed("debug") {
		s.Log.Debug = f.debug
	}
	if fl.Changed("log-file") {
		s.Log.File = f.logFile
	}

	return s, path, nil
}
