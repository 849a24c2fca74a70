package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/j3din00b/conky/internal/config"
	"github.com/j3din00b/conky/internal/daemon"
)

var version = "dev"

var (
	flagConfig  string
	flagDisplay string
	flagAlign   string
	flagDebug   bool
)

var rootCmd = &cobra.Command{
	Use:   "conky",
	Short: "Lightweight X11 system overlay",
	Long: `conky draws a system-status overlay directly on the X11 desktop,
below regular windows, forwarding input to whatever is beneath it.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE:          run,
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println("conky", version)
	},
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&flagConfig, "config", "c", "",
		"configuration file (default ~/.config/conky/conky.yaml)")
	rootCmd.PersistentFlags().StringVarP(&flagDisplay, "display", "d", "",
		"X display to connect to (default $DISPLAY)")
	rootCmd.PersistentFlags().StringVarP(&flagAlign, "alignment", "a", "",
		"overlay placement, e.g. top_left or bottom_right")
	rootCmd.PersistentFlags().BoolVar(&flagDebug, "debug", false,
		"enable debug logging")
	rootCmd.AddCommand(versionCmd)
}

func run(cmd *cobra.Command, args []string) error {
	path := flagConfig
	if path == "" {
		p, err := config.DefaultConfigPath()
		if err != nil {
			log.Debug("No home directory, skipping config file: ", err)
		} else {
			path = p
		}
	}

	cfg, err := config.Load(path)
	if err != nil {
		return err
	}

	// Command-line flags win over the file.
	if flagDisplay != "" {
		cfg.Display = flagDisplay
	}
	if flagAlign != "" {
		cfg.Alignment = flagAlign
	}
	if flagDebug {
		cfg.Debug = true
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	if cfg.Debug {
		log.SetLevel(log.DebugLevel)
	}

	d, err := daemon.New(cfg, path)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(),
		syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	return d.Run(ctx)
}

func main() {
	log.SetFormatter(&log.TextFormatter{FullTimestamp: true})
	if err := rootCmd.Execute(); err != nil {
		log.Error(err)
		os.Exit(1)
	}
}
