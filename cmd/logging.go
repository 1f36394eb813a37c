package cmd

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	slogmulti "github.com/samber/slog-multi"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// Parses a log level name (debug, info, warn, error)
func parseLogLevel(name string) (slog.Level, error) {
	var level slog.Level

	if err := level.UnmarshalText([]byte(strings.TrimSpace(name))); err != nil {
		return level, fmt.Errorf("invalid log level '%s': %w", name, err)
	}

	return level, nil
}

// Builds the CLI logger: human readable records on stderr at the configured level,
// plus every record as JSON in the log file if one is configured.
func makeLogger(stderr io.Writer) (*slog.Logger, io.Closer, error) {
	level, err := parseLogLevel(viper.GetString(configLogLevel))
	if err != nil {
		return nil, nil, err
	}

	handlers := []slog.Handler{
		slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: level}),
	}

	var closer io.Closer

	if path := viper.GetString(configLogFile); path != "" {
		file, err := Fs.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
		if err != nil {
			return nil, nil, fmt.Errorf("could not open log file: %w", err)
		}

		handlers = append(handlers, slog.NewJSONHandler(file, &slog.HandlerOptions{Level: slog.LevelDebug}))
		closer = file
	}

	return slog.New(slogmulti.Fanout(handlers...)), closer, nil
}

func setupLogging(cmd *cobra.Command, args []string) error {
	l, closer, err := makeLogger(cmd.ErrOrStderr())
	if err != nil {
		return err
	}

	logger, logCloser = l, closer
	logger.Debug("command started", "command", cmd.CommandPath(), "args", args)

	if configErr != nil {
		logger.Warn("could not read config file", "error", configErr)
	} else if used := viper.ConfigFileUsed(); used != "" {
		logger.Debug("using config file", "path", used)
	}

	return nil
}

func closeLogging(cmd *cobra.Command, args []string) {
	if logCloser != nil {
		logCloser.Close()
		logCloser = nil
	}
}
