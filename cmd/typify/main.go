// Package main is the main entrypoint to the typify application
package main

import (
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"golang.org/x/term"

	"github.com/tanema/typify/src/conf"
)

var (
	verbose   bool
	colorMode string
	workDir   string

	logger *zap.Logger
	cfg    *conf.Config
)

var rootCmd = &cobra.Command{
	Use:   "typify",
	Short: "Annotate untyped declarations in Pine scripts",
	Long: `typify infers the type of every untyped declaration in a script and
writes it in front of the declaration. Types come from literals, ternaries,
linter hints and the builtin documentation.`,
	SilenceUsage: true,
	PersistentPreRunE: func(_ *cobra.Command, _ []string) error {
		config := zap.NewProductionConfig()
		if verbose {
			config.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
		}
		var err error
		if logger, err = config.Build(); err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}
		if err := setColor(colorMode); err != nil {
			return err
		}
		cfg, err = conf.Load(workDir)
		return err
	},
	PersistentPostRun: func(_ *cobra.Command, _ []string) {
		if logger != nil {
			_ = logger.Sync()
		}
	},
}

func init() {
	rootCmd.Version = conf.VERSION
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "log debug output")
	rootCmd.PersistentFlags().StringVar(&colorMode, "color", "auto", "colorize output (auto|on|off)")
	rootCmd.PersistentFlags().StringVarP(&workDir, "dir", "C", ".", "directory to search for "+conf.CONFIGFILE)

	rootCmd.AddCommand(fixCmd)
	rootCmd.AddCommand(parseCmd)
	rootCmd.AddCommand(inferCmd)
	rootCmd.AddCommand(replCmd)
	rootCmd.AddCommand(watchCmd)
	rootCmd.AddCommand(versionCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func setColor(mode string) error {
	switch mode {
	case "auto":
		color.NoColor = !isTerminal(os.Stdout)
	case "on":
		color.NoColor = false
	case "off":
		color.NoColor = true
	default:
		return fmt.Errorf("unsupported color mode %q (must be auto, on or off)", mode)
	}
	return nil
}

func isTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}
