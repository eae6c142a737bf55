// Package cli parses command-line arguments for the imgcodecs inspection
// tool.
package cli

import (
	"flag"
	"fmt"
	"io"
	"strings"
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

// Config holds the parsed command-line configuration.
type Config struct {
	CodecsPath   string
	MyCodecsPath string
	Preload      bool
	LogFormat    string
	LogLevel     string
}

// Parse processes command-line arguments. It returns a populated Config, a
// boolean indicating if the program should exit cleanly, or an ExitError.
func Parse(args []string, output io.Writer) (*Config, bool, error) {
	flagSet := flag.NewFlagSet("imgcodecs", flag.ContinueOnError)
	flagSet.SetOutput(output)

	flagSet.Usage = func() {
		fmt.Fprint(output, `
imgcodecs - enumerate and inspect installed image codec plugins.

Usage:
  imgcodecs [options]

Options:
`)
		flagSet.PrintDefaults()
	}

	codecsPathFlag := flagSet.String("codecs-path", "", "Primary codec search directory. Overrides the environment and the compiled-in default.")
	myCodecsPathFlag := flagSet.String("my-codecs-path", "", "Additional user codec search directory.")
	preloadFlag := flagSet.Bool("preload", false, "Eagerly load every discovered codec's binary module.")
	logFormatFlag := flagSet.String("log-format", "text", "Log output format. Options: 'text' or 'json'.")
	logLevelFlag := flagSet.String("log-level", "info", "Set the logging level. Options: 'debug', 'info', 'warn', 'error'.")

	if err := flagSet.Parse(args); err != nil {
		if err == flag.ErrHelp {
			return nil, true, nil
		}
		return nil, false, &ExitError{Code: 2, Message: err.Error()}
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

	return &Config{
		CodecsPath:   *codecsPathFlag,
		MyCodecsPath: *myCodecsPathFlag,
		Preload:      *preloadFlag,
		LogFormat:    logFormat,
		LogLevel:     logLevel,
	}, false, nil
}
