package logging

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"os"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
)

// ApplicationLogger defines the interface for structured application logging
type ApplicationLogger interface {
	Debug(ctx context.Context, message string, fields Fields)
	Info(ctx context.Context, message string, fields Fields)
	Warn(ctx context.Context, message string, fields Fields)
	Error(ctx context.Context, message string, fields Fields)
	ErrorWithError(ctx context.Context, err error, message string, fields Fields)
	LogPerformance(ctx context.Context, operation string, duration time.Duration, fields Fields)
	WithComponent(component string) ApplicationLogger
}

// Fields represents structured logging fields
type Fields map[string]interface{}

// Config represents logger configuration
type Config struct {
	Level  string
	Format string // json, text
	Output string // stdout, stderr, buffer (for testing)
}

// applicationLoggerImpl implements ApplicationLogger
type applicationLoggerImpl struct {
	config    Config
	component string
	buffer    *bytes.Buffer // For testing
	logger    *log.Logger
	mu        *sync.Mutex
}

// LogEntry represents the structure of log entries
type LogEntry struct {
	Timestamp     string                 `json:"timestamp"`
	Level         string                 `json:"level"`
	Message       string                 `json:"message"`
	CorrelationID string                 `json:"correlation_id"`
	Component     string                 `json:"component"`
	Operation     string                 `json:"operation,omitempty"`
	Duration      string                 `json:"duration,omitempty"`
	Error         string                 `json:"error,omitempty"`
	Metadata      map[string]interface{} `json:"metadata,omitempty"`
}

// Context keys for correlation ID management
type contextKey string

const CorrelationIDKey contextKey = "correlation_id"

var levelOrder = map[string]int{
	"DEBUG": 0,
	"INFO":  1,
	"WARN":  2,
	"ERROR": 3,
}

// NewApplicationLogger creates a new application logger
func NewApplicationLogger(config Config) (ApplicationLogger, error) {
	if err := validateConfig(config); err != nil {
		return nil, err
	}

	logger := &applicationLoggerImpl{
		config: config,
		mu:     &sync.Mutex{},
	}

	var out io.Writer
	switch config.Output {
	case "buffer":
		logger.buffer = &bytes.Buffer{}
		out = logger.buffer
	case "stdout":
		out = os.Stdout
	default:
		out = os.Stderr
	}
	logger.logger = log.New(out, "", 0)

	return logger, nil
}

// validateConfig validates logger configuration
func validateConfig(config Config) error {
	if _, ok := levelOrder[strings.ToUpper(config.Level)]; !ok {
		return fmt.Errorf("invalid log level: %s", config.Level)
	}

	if config.Format != "json" && config.Format != "text" {
		return fmt.Errorf("invalid log format: %s", config.Format)
	}

	switch config.Output {
	case "stdout", "stderr", "buffer":
	default:
		return fmt.Errorf("invalid log output: %s", config.Output)
	}

	return nil
}

// shouldLog determines if a message should be logged based on level
func (l *applicationLoggerImpl) shouldLog(level string) bool {
	return levelOrder[level] >= levelOrder[strings.ToUpper(l.config.Level)]
}

// Debug logs debug messages
func (l *applicationLoggerImpl) Debug(ctx context.Context, message string, fields Fields) {
	if l.shouldLog("DEBUG") {
		l.logEntry(ctx, "DEBUG", message, "", fields)
	}
}

// Info logs info messages
func (l *applicationLoggerImpl) Info(ctx context.Context, message string, fields Fields) {
	if l.shouldLog("INFO") {
		l.logEntry(ctx, "INFO", message, "", fields)
	}
}

// Warn logs warning messages
func (l *applicationLoggerImpl) Warn(ctx context.Context, message string, fields Fields) {
	if l.shouldLog("WARN") {
		l.logEntry(ctx, "WARN", message, "", fields)
	}
}

// Error logs error messages
func (l *applicationLoggerImpl) Error(ctx context.Context, message string, fields Fields) {
	if l.shouldLog("ERROR") {
		l.logEntry(ctx, "ERROR", message, "", fields)
	}
}

// ErrorWithError logs error messages with an error object
func (l *applicationLoggerImpl) ErrorWithError(ctx context.Context, err error, message string, fields Fields) {
	if l.shouldLog("ERROR") {
		errStr := ""
		if err != nil {
			errStr = err.Error()
		}
		l.logEntry(ctx, "ERROR", message, errStr, fields)
	}
}

// LogPerformance logs how long an operation took
func (l *applicationLoggerImpl) LogPerformance(ctx context.Context, operation string, duration time.Duration, fields Fields) {
	if !l.shouldLog("DEBUG") {
		return
	}
	merged := make(Fields, len(fields)+2)
	for k, v := range fields {
		merged[k] = v
	}
	merged["operation"] = operation
	merged["duration"] = duration.String()
	l.logEntry(ctx, "DEBUG", fmt.Sprintf("Performance metrics for %s", operation), "", merged)
}

// WithComponent creates a new logger instance with a specific component
func (l *applicationLoggerImpl) WithComponent(component string) ApplicationLogger {
	return &applicationLoggerImpl{
		config:    l.config,
		component: component,
		buffer:    l.buffer,
		logger:    l.logger,
		mu:        l.mu,
	}
}

// logEntry builds and writes a structured log entry
func (l *applicationLoggerImpl) logEntry(ctx context.Context, level, message, errorStr string, fields Fields) {
	component := l.component
	if component == "" {
		component = "default"
	}

	entry := &LogEntry{
		Timestamp:     time.Now().UTC().Format(time.RFC3339),
		Level:         level,
		Message:       message,
		CorrelationID: getOrGenerateCorrelationID(ctx),
		Component:     component,
		Error:         errorStr,
	}

	if len(fields) > 0 {
		entry.Metadata = make(map[string]interface{}, len(fields))
		for key, value := range fields {
			switch key {
			case "operation":
				if s, ok := value.(string); ok {
					entry.Operation = s
				}
			case "duration":
				if s, ok := value.(string); ok {
					entry.Duration = s
				}
			}
			entry.Metadata[key] = value
		}
	}

	l.writeLogEntry(entry)
}

// writeLogEntry handles the actual writing of log entries
func (l *applicationLoggerImpl) writeLogEntry(entry *LogEntry) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.config.Format == "json" {
		jsonData, err := json.Marshal(entry)
		if err != nil {
			return
		}
		l.logger.Println(string(jsonData))
		return
	}

	var b strings.Builder
	fmt.Fprintf(&b, "[%s] %s %s: %s", entry.Timestamp, entry.Level, entry.Component, entry.Message)
	if entry.Error != "" {
		fmt.Fprintf(&b, " error=%q", entry.Error)
	}
	keys := make([]string, 0, len(entry.Metadata))
	for k := range entry.Metadata {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		fmt.Fprintf(&b, " %s=%v", k, entry.Metadata[k])
	}
	l.logger.Println(b.String())
}

// getOrGenerateCorrelationID gets correlation ID from context or generates a new one
func getOrGenerateCorrelationID(ctx context.Context) string {
	if correlationID := GetCorrelationID(ctx); correlationID != "" {
		return correlationID
	}
	return uuid.New().String()
}

// WithCorrelationID returns a context carrying the given correlation ID.
func WithCorrelationID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, CorrelationIDKey, id)
}

// NewCorrelationContext returns a context with a freshly generated correlation ID,
// one per CLI invocation.
func NewCorrelationContext(ctx context.Context) context.Context {
	return WithCorrelationID(ctx, uuid.New().String())
}

// GetCorrelationID extracts the correlation ID from ctx, if any.
func GetCorrelationID(ctx context.Context) string {
	if ctx == nil {
		return ""
	}
	if id, ok := ctx.Value(CorrelationIDKey).(string); ok {
		return id
	}
	return ""
}
