package cmd

import (
	"fmt"
	"io"
	"os"

	"flyer/config"
	"flyer/logging"

	"github.com/spf13/cobra"
)

var (
	envFile   string
	cfg       config.Config
	logCloser io.Closer
)

// RootCmd represents the base command when called without any subcommands
var RootCmd = &cobra.Command{
	Use:           "flyer [command] [flags]",
	Short:         "AI-written copy for flyer templates",
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		cfg = config.Load(envFile)
		_, closer, err := logging.Init(cfg.Log)
		logCloser = closer
		if err != nil {
			fmt.Fprintf(os.Stderr, "log file unavailable, logging to stderr: %v\n", err)
		}
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logCloser != nil {
			logCloser.Close()
		}
	},
}

func init() {
	RootCmd.PersistentFlags().StringVar(&envFile, "env-file", ".env", "path to a .env file")
}

// Execute runs the root command. It is called once by main.main().
func Execute() {
	if err := RootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
