package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"

	"github.com/limaJavier/regatta/internal/app"
	"github.com/limaJavier/regatta/internal/logger"
	"github.com/limaJavier/regatta/internal/metrics"
	"github.com/limaJavier/regatta/internal/publish"
	"github.com/limaJavier/regatta/pkg/csp"
	"github.com/limaJavier/regatta/pkg/model"
	"github.com/limaJavier/regatta/pkg/report"
)

var (
	formatFlag   string
	outputFlag   string
	publishFlag  bool
	strategyFlag string
	backendFlag  string
	timeoutFlag  int
)

var scheduleCmd = &cobra.Command{
	Use:   "schedule <entry-file>",
	Short: "Build, verify and print the running order of a regatta",
	Args:  cobra.ExactArgs(1),
	RunE:  runSchedule,
}

func init() {
	flags := scheduleCmd.Flags()
	flags.StringVarP(&formatFlag, "format", "f", report.FormatText.String(), `output format: "text", "csv" or "json"`)
	flags.StringVarP(&outputFlag, "output", "o", "", "file to write the running order to, standard output when empty")
	flags.BoolVar(&publishFlag, "publish", false, "publish the running order to the configured MQTT broker")
	flags.StringVar(&strategyFlag, "strategy", "", `lane strategy overriding the configuration: "embedded" or "postponed"`)
	flags.StringVar(&backendFlag, "backend", "", "SAT backend overriding the configuration")
	flags.IntVar(&timeoutFlag, "timeout", 0, "solver budget in seconds overriding the configuration")
	rootCmd.AddCommand(scheduleCmd)
}

func runSchedule(cmd *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if strategyFlag != "" {
		cfg.Solver.Strategy = strategyFlag
	}
	if backendFlag != "" {
		cfg.Solver.Backend = backendFlag
	}
	if timeoutFlag > 0 {
		cfg.Solver.TimeoutSeconds = timeoutFlag
	}
	format, err := report.ParseFormat(formatFlag)
	if err != nil {
		return err
	}

	regatta, err := model.InputFromJson(args[0])
	if err != nil {
		return fmt.Errorf("cannot parse entry file: %w", err)
	}

	sink, err := metrics.NewSink(cfg.Metrics, prometheus.DefaultRegisterer)
	if err != nil {
		return fmt.Errorf("metrics: %w", err)
	}
	defer metrics.Close(sink)

	var publisher app.Publisher
	if publishFlag {
		if !cfg.MQTT.Enabled() {
			return fmt.Errorf("--publish requires mqtt.broker in the configuration")
		}
		pahoPublisher, err := publish.NewPahoPublisher(cfg.MQTT)
		if err != nil {
			return fmt.Errorf("mqtt publisher: %w", err)
		}
		defer pahoPublisher.Disconnect()
		publisher = pahoPublisher
	}

	service, err := app.New(cfg, sink, publisher)
	if err != nil {
		return err
	}
	settings, err := service.Settings(nil, 0)
	if err != nil {
		return err
	}

	run, err := service.Schedule(ctx, regatta, settings)
	if err != nil {
		return err
	}
	printStats(cmd.ErrOrStderr(), run.Stats)

	switch {
	case run.Stats.Status == csp.Infeasible:
		return exitError{code: exitInfeasible, message: run.Stats.Diagnostic()}
	case run.Schedule == nil:
		return exitError{code: exitUnknown, message: run.Stats.Diagnostic()}
	}

	return writeReport(cmd.OutOrStdout(), run.Schedule, format)
}

func writeReport(stdout io.Writer, schedule *model.Schedule, format report.Format) error {
	if outputFlag == "" {
		return report.Write(stdout, schedule, format)
	}

	file, err := os.Create(outputFlag)
	if err != nil {
		return fmt.Errorf("cannot create output file: %w", err)
	}
	if err := report.Write(file, schedule, format); err != nil {
		_ = file.Close()
		return err
	}
	if err := file.Close(); err != nil {
		return err
	}
	logger.New("schedule").Infof("running order written to %s", outputFlag)
	return nil
}

func printStats(w io.Writer, stats model.Stats) {
	fmt.Fprintf(w, "Variables: %v\n", stats.Variables)
	fmt.Fprintf(w, "Clauses: %v\n", stats.Clauses)
}
