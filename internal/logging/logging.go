package logging

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"runtime"
	"strconv"

	charmlog "github.com/charmbracelet/log"
	"gopkg.in/natefinch/lumberjack.v2"
)

// Logger is the public logger instance accessible from all packages.
// It discards everything until Initialize is called.
var Logger = slog.New(slog.NewJSONHandler(io.Discard, nil))

// Options configures Initialize
type Options struct {
	Debug       bool
	File        string // custom log file; default is the OS log directory
	MaxLogFiles int    // rotated backups to keep, 0 = unlimited
	MaxSizeMB   int
}

// Initialize sets up the logger based on the debug flag and configuration.
// It returns the path of the log file, or "" when logging is discarded.
func Initialize(opts Options) (string, error) {
	// Check environment variables for inherited debug settings
	if os.Getenv("SITENOTES_DEBUG") == "1" {
		opts.Debug = true
	}
	if envFile := os.Getenv("SITENOTES_LOG_FILE"); envFile != "" && opts.File == "" {
		opts.File = envFile
	}
	if envMax := os.Getenv("SITENOTES_MAX_LOG_FILES"); envMax != "" {
		if parsed, err := strconv.Atoi(envMax); err == nil {
			opts.MaxLogFiles = parsed
		}
	}

	if !opts.Debug && opts.File == "" {
		Logger = slog.New(slog.NewJSONHandler(io.Discard, nil))
		return "", nil
	}

	logFilePath := opts.File
	if logFilePath == "" {
		logDir, err := getLogDir()
		if err != nil {
			return "", fmt.Errorf("failed to get log directory: %w", err)
		}
		logFilePath = filepath.Join(logDir, "sitenotes.log")
	}
	if err := os.MkdirAll(filepath.Dir(logFilePath), 0755); err != nil {
		return "", fmt.Errorf("failed to create log directory: %w", err)
	}

	maxSize := opts.MaxSizeMB
	if maxSize <= 0 {
		maxSize = 10
	}
	fileWriter := &lumberjack.Logger{
		Filename:   logFilePath,
		MaxSize:    maxSize, // megabytes
		MaxBackups: opts.MaxLogFiles,
		MaxAge:     28, // days
		Compress:   true,
	}

	var writer io.Writer = fileWriter
	level := charmlog.InfoLevel
	if opts.Debug {
		// In debug mode, write to both stderr and file
		writer = io.MultiWriter(os.Stderr, fileWriter)
		level = charmlog.DebugLevel
	}

	handler := charmlog.NewWithOptions(writer, charmlog.Options{
		Level:           level,
		Prefix:          "sitenotes",
		ReportCaller:    opts.Debug,
		ReportTimestamp: true,
	})
	Logger = slog.New(handler)

	Logger.Info("Logging initialized", "log_file", logFilePath, "debug", opts.Debug)
	return logFilePath, nil
}

// getLogDir returns the OS-specific log directory
func getLogDir() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}

	switch runtime.GOOS {
	case "darwin":
		return filepath.Join(homeDir, "Library", "Logs", "sitenotes"), nil
	case "linux":
		stateHome := os.Getenv("XDG_STATE_HOME")
		if stateHome == "" {
			stateHome = filepath.Join(homeDir, ".local", "state")
		}
		return filepath.Join(stateHome, "sitenotes"), nil
	case "windows":
		localAppData := os.Getenv("LOCALAPPDATA")
		if localAppData == "" {
			localAppData = filepath.Join(homeDir, "AppData", "Local")
		}
		return filepath.Join(localAppData, "sitenotes", "logs"), nil
	default:
		return filepath.Join(homeDir, ".sitenotes", "logs"), nil
	}
}
