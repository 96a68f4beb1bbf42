// gfmat erasure codes files over GF(256), shares secrets and inverts
// matrices given on the command line.
package main

import (
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

type config struct {
	verbose bool

	erasure erasureConfig
	shamir  shamirConfig
	pivot   bool
}

type erasureConfig struct {
	k, n   int
	outDir string
	out    string
}

type shamirConfig struct {
	k, n int
}

type app struct {
	cfg    config
	logger *zap.Logger
}

func newLogger(verbose bool) (*zap.Logger, error) {
	if verbose {
		return zap.NewDevelopment()
	}
	return zap.NewProduction()
}

func newRootCmd(a *app) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "gfmat",
		Short:         "GF(256) matrix and erasure coding tool",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if a.logger != nil {
				return nil
			}
			logger, err := newLogger(a.cfg.verbose)
			if err != nil {
				return err
			}
			a.logger = logger
			return nil
		},
	}
	rootCmd.CompletionOptions.DisableDefaultCmd = true
	rootCmd.PersistentFlags().BoolVarP(&a.cfg.verbose, "verbose", "v", false, "Development logging at debug level")

	rootCmd.AddCommand(
		newEncodeCmd(a),
		newDecodeCmd(a),
		newInvertCmd(a),
		newSplitCmd(a),
		newCombineCmd(a),
	)
	return rootCmd
}

func main() {
	a := &app{}
	rootCmd := newRootCmd(a)
	if err := rootCmd.Execute(); err != nil {
		if a.logger == nil {
			a.logger = zap.NewExample()
		}
		a.logger.Error("command failed", zap.Strings("args", os.Args[1:]), zap.Error(err))
		a.logger.Sync()
		os.Exit(1)
	}
	if a.logger != nil {
		a.logger.Sync()
	}
}
