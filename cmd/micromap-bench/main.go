// Command micromap-bench times micromap against other map
// implementations on the same small-map workload and prints a table.
package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	flag "github.com/spf13/pflag"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/llxisdsh/micromap/internal/bench"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	code := run(ctx, os.Args[1:], os.Stdout, os.Stderr)
	stop()
	os.Exit(code)
}

func run(ctx context.Context, args []string, out, errOut io.Writer) int {
	flagSet := flag.NewFlagSet("micromap-bench", flag.ContinueOnError)
	flagSet.SetOutput(errOut)

	configPath := flagSet.String("config", "", "TOML file with benchmark settings")
	capacities := flagSet.IntSlice("capacities", nil, "Comma-separated map capacities to benchmark")
	rounds := flagSet.Int("rounds", 0, "Workload rounds per case")
	impls := flagSet.StringSlice("impl", nil, fmt.Sprintf("Implementations to run %v", bench.Names()))
	format := flagSet.String("format", "", "Output format: markdown or text")
	logLevel := flagSet.String("log-level", "", "Log level: debug, info, warn, error")
	outPath := flagSet.String("out", "", "Write the table to this file instead of stdout")

	if err := flagSet.Parse(args); err != nil {
		if err == flag.ErrHelp {
			return 0
		}
		fmt.Fprintln(errOut, "error:", err)
		return 2
	}

	cfg := bench.DefaultConfig()
	if *configPath != "" {
		var err error
		if cfg, err = bench.LoadConfig(*configPath); err != nil {
			fmt.Fprintln(errOut, "error:", err)
			return 1
		}
	}
	if flagSet.Changed("capacities") {
		cfg.Capacities = *capacities
	}
	if flagSet.Changed("rounds") {
		cfg.Rounds = *rounds
	}
	if flagSet.Changed("impl") {
		cfg.Implementations = *impls
	}
	if flagSet.Changed("format") {
		cfg.Format = *format
	}
	if flagSet.Changed("log-level") {
		cfg.LogLevel = *logLevel
	}
	if flagSet.Changed("out") {
		cfg.Out = *outPath
	}

	logger, err := newLogger(cfg.LogLevel)
	if err != nil {
		fmt.Fprintln(errOut, "error:", err)
		return 1
	}
	defer logger.Sync()

	runner, err := bench.NewRunner(cfg, logger)
	if err != nil {
		logger.Error("invalid configuration", zap.Error(err))
		return 1
	}
	logger.Info("starting benchmark",
		zap.Ints("capacities", cfg.Capacities),
		zap.Int("rounds", cfg.Rounds),
		zap.Strings("implementations", cfg.Implementations))

	results, runErr := runner.Run(ctx)
	if len(results) == 0 {
		if runErr != nil {
			logger.Error("benchmark failed", zap.Error(runErr))
		}
		return 1
	}

	if cfg.Out == "" {
		if err := bench.WriteTable(out, results, cfg.Format); err != nil {
			logger.Error("cannot write table", zap.Error(err))
			return 1
		}
	} else if err := writeTableFile(cfg.Out, results, cfg.Format); err != nil {
		logger.Error("cannot write output file", zap.String("path", cfg.Out), zap.Error(err))
		return 1
	}
	if runErr != nil {
		logger.Warn("partial results written", zap.Int("cases", len(results)), zap.Error(runErr))
		return 1
	}
	return 0
}

// newLogger builds a console logger on stderr at the given level.
func newLogger(level string) (*zap.Logger, error) {
	lvl := zap.NewAtomicLevel()
	if err := lvl.UnmarshalText([]byte(level)); err != nil {
		return nil, fmt.Errorf("invalid log level %q: %w", level, err)
	}
	config := zap.Config{
		Level:            lvl,
		Encoding:         "console",
		EncoderConfig:    zap.NewDevelopmentEncoderConfig(),
		OutputPaths:      []string{"stderr"},
		ErrorOutputPaths: []string{"stderr"},
	}
	config.EncoderConfig.EncodeLevel = zapcore.CapitalLevelEncoder
	return config.Build()
}

// writeTableFile writes the table to path. A failed close is reported
// like a failed write.
func writeTableFile(path string, results []bench.Result, format string) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := bench.WriteTable(f, results, format); err != nil {
		_ = f.Close()
		return err
	}
	return f.Close()
}
