package logger

import (
	"fmt"
	"io"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"
)

const timeFormat = "15:04:05"

var (
	once       sync.Once
	mu         sync.Mutex
	configured bool
	file       *os.File
	Log        zerolog.Logger
)

// Configure sets up the shared logger with a compact time format and file:line callers.
// When logFile is set, output is also written to that file until Close or the next Configure.
func Configure(level zerolog.Level, logFile string) error {
	var f *os.File
	if logFile != "" {
		var err error
		f, err = os.OpenFile(logFile, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o644)
		if err != nil {
			return fmt.Errorf("open log file: %w", err)
		}
	}
	mu.Lock()
	defer mu.Unlock()
	closeFile()
	file = f
	Log = build(level, f)
	configured = true
	return nil
}

// Get returns the shared logger. Without a prior Configure it logs to the console at debug level.
func Get() *zerolog.Logger {
	once.Do(func() {
		mu.Lock()
		defer mu.Unlock()
		if !configured {
			Log = build(zerolog.DebugLevel, nil)
			configured = true
		}
	})
	return &Log
}

// Close flushes and closes the log file. Logging continues on the console at the same level.
func Close() error {
	mu.Lock()
	defer mu.Unlock()
	if file == nil {
		return nil
	}
	err := closeFile()
	Log = build(Log.GetLevel(), nil)
	return err
}

func closeFile() error {
	if file == nil {
		return nil
	}
	err := file.Sync()
	if closeErr := file.Close(); err == nil {
		err = closeErr
	}
	file = nil
	return err
}

// ParseLevel accepts zerolog level names and falls back to info.
func ParseLevel(name string) zerolog.Level {
	level, err := zerolog.ParseLevel(strings.ToLower(name))
	if err != nil || name == "" {
		return zerolog.InfoLevel
	}
	return level
}

func build(level zerolog.Level, logFile *os.File) zerolog.Logger {
	zerolog.CallerMarshalFunc = func(_ uintptr, file string, line int) string {
		if lastSlash := strings.LastIndexByte(file, '/'); lastSlash >= 0 {
			file = file[lastSlash+1:]
		}
		return fmt.Sprintf("%s:%d", file, line)
	}

	var out io.Writer = zerolog.ConsoleWriter{
		Out:        os.Stdout,
		TimeFormat: timeFormat,
	}
	if logFile != nil {
		out = zerolog.MultiLevelWriter(out, logFile)
	}
	zerolog.TimeFieldFormat = time.RFC3339
	return zerolog.New(out).Level(level).With().Timestamp().Caller().Logger()
}
