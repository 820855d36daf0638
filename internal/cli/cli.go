package cli

import (
	"flag"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/specialistvlad/timerwire/internal/app"
	"github.com/specialistvlad/timerwire/internal/processor"
)

// ExitError is a custom error type that includes a specific exit code.
type ExitError struct {
	Code    int
	Message string
}

// Error implements the error interface for ExitError.
func (e *ExitError) Error() string {
	return e.Message
}

// Parse processes command-line arguments. It returns a populated Config,
// a boolean indicating if the program should exit cleanly, or an ExitError.
//
// Values from a settings file apply only where the matching flag was not
// given on the command line.
func Parse(args []string, output io.Writer) (*app.Config, bool, error) {
	slog.Debug("CLI parser started.")
	flagSet := flag.NewFlagSet("timerwire", flag.ContinueOnError)
	flagSet.SetOutput(output)

	flagSet.Usage = func() {
		fmt.Fprint(output, `
timerwire - Wires timer services into deployment units.

Usage:
  timerwire [options] [DESCRIPTOR_PATH]

Arguments:
  DESCRIPTOR_PATH
    Path to a single .hcl deployment descriptor or a directory containing them.

Options:
`)
		flagSet.PrintDefaults()
	}

	descriptorsFlag := flagSet.String("descriptors", "", "Path to the descriptor file or directory.")
	dFlag := flagSet.String("d", "", "Path to the descriptor file or directory (shorthand).")
	settingsFlag := flagSet.String("settings", "", "Path to a YAML settings file.")
	threadPoolFlag := flagSet.String("thread-pool", processor.DefaultThreadPoolName, "Thread pool used by local timer services.")
	dataStoreFlag := flagSet.String("default-data-store", "", "Data store for components without an assignment.")
	distributableFlag := flagSet.Bool("distributable", false, "Register the built-in distributable timer provider.")
	healthPortFlag := flagSet.Int("healthcheck-port", 0, "Port for the HTTP health check and metrics server. 0 is disabled.")
	logFormatFlag := flagSet.String("log-format", "json", "Log output format. Options: 'text' or 'json'.")
	logLevelFlag := flagSet.String("log-level", "info", "Set the logging level. Options: 'debug', 'info', 'warn', 'error'.")
	outputFlag := flagSet.String("output", "text", "Summary output format. Options: 'text' or 'json'.")
	workersFlag := flagSet.Int("workers", 4, "Number of services started concurrently.")

	if err := flagSet.Parse(args); err != nil {
		if err == flag.ErrHelp {
			return nil, true, nil
		}
		return nil, false, &ExitError{Code: 2, Message: err.Error()}
	}
	slog.Debug("Arguments parsed successfully.")

	path := ""
	if *descriptorsFlag != "" {
		path = *descriptorsFlag
	} else if *dFlag != "" {
		path = *dFlag
	} else if flagSet.NArg() > 0 {
		path = flagSet.Arg(0)
	}
	slog.Debug("Descriptor path determined.", "path", path)

	if path == "" {
		slog.Debug("No descriptor path provided, printing usage and exiting.")
		flagSet.Usage()
		return nil, true, nil
	}

	logFormat := strings.ToLower(*logFormatFlag)
	if logFormat != "text" && logFormat != "json" {
		return nil, false, &ExitError{Code: 2, Message: "invalid log-format: must be 'text' or 'json'"}
	}

	logLevel := strings.ToLower(*logLevelFlag)
	switch logLevel {
	case "debug", "info", "warn", "error":
		// valid
	default:
		return nil, false, &ExitError{Code: 2, Message: "invalid log-level: must be 'debug', 'info', 'warn', or 'error'"}
	}

	cfg := app.Config{
		DescriptorPath:   path,
		ThreadPool:       *threadPoolFlag,
		DefaultDataStore: *dataStoreFlag,
		Distributable:    *distributableFlag,
		HealthcheckPort:  *healthPortFlag,
		LogFormat:        logFormat,
		LogLevel:         logLevel,
		OutputFormat:     strings.ToLower(*outputFlag),
		WorkerCount:      *workersFlag,
	}

	if *settingsFlag != "" {
		settings, err := app.LoadSettings(*settingsFlag)
		if err != nil {
			return nil, false, &ExitError{Code: 2, Message: err.Error()}
		}
		explicit := map[string]bool{}
		flagSet.Visit(func(f *flag.Flag) { explicit[f.Name] = true })
		applySettings(&cfg, settings, explicit)
		slog.Debug("Settings file applied.", "path", *settingsFlag)
	}
	slog.Debug("CLI parameter validation complete.")

	config, err := app.NewConfig(cfg)
	if err != nil {
		return nil, false, &ExitError{Code: 2, Message: err.Error()}
	}

	slog.Debug("CLI parser finished successfully.", "config", config)
	return config, false, nil
}

func applySettings(cfg *app.Config, s *app.Settings, explicit map[string]bool) {
	if s.ThreadPool != "" && !explicit["thread-pool"] {
		cfg.ThreadPool = s.ThreadPool
	}
	if s.DefaultDataStore != "" && !explicit["default-data-store"] {
		cfg.DefaultDataStore = s.DefaultDataStore
	}
	if s.Distributable != nil && !explicit["distributable"] {
		cfg.Distributable = *s.Distributable
	}
	if s.Workers > 0 && !explicit["workers"] {
		cfg.WorkerCount = s.Workers
	}
}
