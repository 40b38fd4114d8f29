package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"titanic/internal/config"
	"titanic/internal/pipeline"
	"titanic/internal/server"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

func main() {
	// Load environment variables from .env file
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		log.Printf("Ignoring .env file: %v", err)
	}

	cfg := config.Load()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := newRootCmd(cfg).ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err)
		stop()
		os.Exit(1)
	}
}

func newRootCmd(cfg *config.Config) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "titanic",
		Short: "Descriptive statistics and charts for the Titanic passenger list",
		Long: `Loads the Titanic passenger dataset (CSV or XLSX), writes a text report of
survival, fare and embarkation statistics, and renders an age histogram and a
fare box plot by class into the output directory.`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			_, err := runPipeline(cmd, cfg)
			return err
		},
	}

	flags := rootCmd.PersistentFlags()
	flags.StringVar(&cfg.Data.InputPath, "input", cfg.Data.InputPath, "Passenger dataset (.csv or .xlsx)")
	flags.StringVar(&cfg.Output.Dir, "out", cfg.Output.Dir, "Directory for report and chart artifacts")
	flags.IntVar(&cfg.Chart.HistogramBins, "bins", cfg.Chart.HistogramBins, "Number of age histogram bins")
	flags.BoolVar(&cfg.Output.HTML, "html", cfg.Output.HTML, "Also write report.html")
	flags.StringVar(&cfg.LogLevel, "log-level", cfg.LogLevel, "Log level (ERROR, WARN, INFO, DEBUG, TRACE)")

	rootCmd.AddCommand(newServeCmd(cfg))
	return rootCmd
}

func newServeCmd(cfg *config.Config) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the pipeline once and serve the artifacts over HTTP",
		Long: `Runs the pipeline, then serves report.txt, manifest.json and the charts from
the output directory until interrupted.

Example: titanic serve --input data/Titanic.csv --addr :8080`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if _, err := runPipeline(cmd, cfg); err != nil {
				return err
			}
			return server.New(cfg.Output.Dir, cfg.Logger()).ListenAndServe(cmd.Context(), cfg.Server.Addr)
		},
	}

	cmd.Flags().StringVar(&cfg.Server.Addr, "addr", cfg.Server.Addr, "Listen address")
	return cmd
}

// runPipeline validates the configuration with flags applied over the
// environment, then runs the pipeline once.
func runPipeline(cmd *cobra.Command, cfg *config.Config) (*pipeline.Result, error) {
	for _, name := range []string{"bins", "html"} {
		if cmd.Flags().Changed(name) {
			cfg.FlagSet(name)
		}
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return pipeline.New(cfg.Logger()).Run(cmd.Context(), pipeline.Options{
		InputPath:     cfg.Data.InputPath,
		OutputDir:     cfg.Output.Dir,
		HistogramBins: cfg.Chart.HistogramBins,
		HTML:          cfg.Output.HTML,
	})
}
