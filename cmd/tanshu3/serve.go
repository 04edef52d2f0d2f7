package main

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/gyeh/tanshu3/internal/api"
	"github.com/gyeh/tanshu3/internal/exitcode"
	"github.com/gyeh/tanshu3/internal/ingest"
	"github.com/gyeh/tanshu3/internal/logging"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the evaluation HTTP API",
	RunE:  runServe,
}

func init() {
	listen := os.Getenv("TANSHU3_LISTEN")
	if listen == "" {
		listen = ":8080"
	}
	f := serveCmd.Flags()
	f.StringVar(&cfg.Listen, "listen", listen, "Listen address (or set TANSHU3_LISTEN)")
	f.StringVar(&cfg.OutputMode, "output-mode", "eligibleOnly", "Default report rows: eligibleOnly or allCases")
	f.StringVar(&cfg.DateFormat, "date-format", "yyyymmdd", "Default report dates: yyyymmdd or yyyy/mm/dd")
	f.StringVar(&cfg.Header, "header", "", "Default report header line")
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, args []string) error {
	log := logging.Setup(cfg.LogFormat, cfg.LogLevel)

	if err := cfg.ValidateForServe(); err != nil {
		log.Error().Err(err).Msg("config validation failed")
		os.Exit(exitcode.UsageError)
	}
	loadRules(log)

	opts, err := ingest.OptionsFromConfig(&cfg)
	if err != nil {
		log.Error().Err(err).Msg("config validation failed")
		os.Exit(exitcode.UsageError)
	}
	opts.ParquetPath = ""

	app := api.NewApp(&api.Handler{Log: log, Defaults: opts})

	go func() {
		quit := make(chan os.Signal, 1)
		signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
		<-quit
		log.Info().Msg("shutting down")
		_ = app.Shutdown()
	}()

	log.Info().Str("listen", cfg.Listen).Int("target_codes", len(cfg.Rules.TargetCodes)).Msg("serving")
	if err := app.Listen(cfg.Listen); err != nil {
		log.Error().Err(err).Msg("server failed")
		os.Exit(exitcode.ServeError)
	}
	return nil
}
