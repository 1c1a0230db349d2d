package logger

import (
	"fmt"
	"log"
	"os"
	"sync/atomic"
	"time"

	"github.com/getsentry/sentry-go"
)

var (
	InfoLogger  *log.Logger
	ErrorLogger *log.Logger
	DebugLogger *log.Logger
	WarnLogger  *log.Logger

	sentryEnabled bool
	debugEnabled  atomic.Bool
)

func init() {
	InfoLogger = log.New(os.Stdout, "INFO: ", log.Ldate|log.Ltime|log.Lshortfile)
	ErrorLogger = log.New(os.Stderr, "ERROR: ", log.Ldate|log.Ltime|log.Lshortfile)
	DebugLogger = log.New(os.Stdout, "DEBUG: ", log.Ldate|log.Ltime|log.Lshortfile)
	WarnLogger = log.New(os.Stdout, "WARN: ", log.Ldate|log.Ltime|log.Lshortfile)
}

func Info(format string, v ...interface{}) {
	InfoLogger.Output(2, fmt.Sprintf(format, v...))
}

func Error(format string, v ...interface{}) {
	ErrorLogger.Output(2, fmt.Sprintf(format, v...))
}

// SetEnvironment turns debug output on for development.
func SetEnvironment(environment string) {
	debugEnabled.Store(environment == "development")
}

func Debug(format string, v ...interface{}) {
	if debugEnabled.Load() {
		DebugLogger.Output(2, fmt.Sprintf(format, v...))
	}
}

func Warn(format string, v ...interface{}) {
	WarnLogger.Output(2, fmt.Sprintf(format, v...))
}

func Fatal(format string, v ...interface{}) {
	ErrorLogger.Output(2, fmt.Sprintf(format, v...))
	Flush()
	os.Exit(1)
}

// InitSentry turns on error reporting. An empty DSN keeps it off.
func InitSentry(dsn, environment string) error {
	if dsn == "" {
		return nil
	}

	if err := sentry.Init(sentry.ClientOptions{
		Dsn:              dsn,
		AttachStacktrace: true,
		Environment:      environment,
	}); err != nil {
		return err
	}

	sentryEnabled = true
	return nil
}

// Capture reports err to Sentry when it is configured.
func Capture(err error) {
	if err == nil || !sentryEnabled {
		return
	}
	sentry.CaptureException(err)
}

func Flush() {
	if sentryEnabled {
		sentry.Flush(2 * time.Second)
	}
}

// LogStoreError records a failed document store call for one record.
func LogStoreError(collection, action, id string, err error) {
	Error("store error: collection=%s, action=%s, id=%s, error=%v", collection, action, id, err)
}
