package utils

import (
	"fmt"
	"io"
	"os"
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

const (
	logLevelDebugStringConstant          = "debug"
	logLevelInfoStringConstant           = "info"
	logLevelWarnStringConstant           = "warn"
	logLevelErrorStringConstant          = "error"
	logFormatStructuredStringConstant    = "structured"
	logFormatConsoleStringConstant       = "console"
	unsupportedLogLevelTemplateConstant  = "unsupported log level: %s"
	unsupportedLogFormatTemplateConstant = "unsupported log format: %s"
	loggerTimeKeyConstant                = "time"
	loggerMessageKeyConstant             = "message"
)

// LogLevel enumerates supported logging granularities.
type LogLevel string

// Exported log level constants for reuse across packages.
const (
	LogLevelDebug LogLevel = LogLevel(logLevelDebugStringConstant)
	LogLevelInfo  LogLevel = LogLevel(logLevelInfoStringConstant)
	LogLevelWarn  LogLevel = LogLevel(logLevelWarnStringConstant)
	LogLevelError LogLevel = LogLevel(logLevelErrorStringConstant)
)

// LogFormat enumerates supported logger output encodings.
type LogFormat string

// Exported log format constants for reuse across packages.
const (
	LogFormatStructured LogFormat = LogFormat(logFormatStructuredStringConstant)
	LogFormatConsole    LogFormat = LogFormat(logFormatConsoleStringConstant)
)

// Defaults applied when no level or format is configured. Only warnings and errors reach stderr unless asked.
const (
	DefaultLogLevel  = LogLevelWarn
	DefaultLogFormat = LogFormatConsole
)

var logLevelMapping = map[LogLevel]zapcore.Level{
	LogLevelDebug: zapcore.DebugLevel,
	LogLevelInfo:  zapcore.InfoLevel,
	LogLevelWarn:  zapcore.WarnLevel,
	LogLevelError: zapcore.ErrorLevel,
}

// ParseLogLevel normalizes a configured level name. Empty input selects DefaultLogLevel.
func ParseLogLevel(rawLevel string) (LogLevel, error) {
	normalizedLevel := LogLevel(strings.ToLower(strings.TrimSpace(rawLevel)))
	if len(normalizedLevel) == 0 {
		return DefaultLogLevel, nil
	}
	if _, supported := logLevelMapping[normalizedLevel]; !supported {
		return "", fmt.Errorf(unsupportedLogLevelTemplateConstant, rawLevel)
	}
	return normalizedLevel, nil
}

// ParseLogFormat normalizes a configured format name. Empty input selects DefaultLogFormat.
func ParseLogFormat(rawFormat string) (LogFormat, error) {
	normalizedFormat := LogFormat(strings.ToLower(strings.TrimSpace(rawFormat)))
	switch normalizedFormat {
	case "":
		return DefaultLogFormat, nil
	case LogFormatStructured, LogFormatConsole:
		return normalizedFormat, nil
	default:
		return "", fmt.Errorf(unsupportedLogFormatTemplateConstant, rawFormat)
	}
}

// LoggerFactory builds zap.Logger instances writing to a single diagnostic stream.
type LoggerFactory struct {
	outputWriter io.Writer
}

// NewLoggerFactory constructs a logger factory writing to standard error.
func NewLoggerFactory() *LoggerFactory {
	return NewLoggerFactoryWithWriter(os.Stderr)
}

// NewLoggerFactoryWithWriter constructs a logger factory writing to the provided writer.
func NewLoggerFactoryWithWriter(outputWriter io.Writer) *LoggerFactory {
	if outputWriter == nil {
		outputWriter = os.Stderr
	}
	return &LoggerFactory{outputWriter: outputWriter}
}

// CreateLogger produces a zap.Logger honoring the requested log level and format.
func (factory *LoggerFactory) CreateLogger(requestedLogLevel LogLevel, requestedLogFormat LogFormat) (*zap.Logger, error) {
	zapLogLevel, levelExists := logLevelMapping[requestedLogLevel]
	if !levelExists {
		return nil, fmt.Errorf(unsupportedLogLevelTemplateConstant, requestedLogLevel)
	}

	encoderConfiguration := zap.NewProductionEncoderConfig()
	encoderConfiguration.TimeKey = loggerTimeKeyConstant
	encoderConfiguration.MessageKey = loggerMessageKeyConstant
	encoderConfiguration.EncodeTime = zapcore.ISO8601TimeEncoder

	var encoder zapcore.Encoder
	switch requestedLogFormat {
	case LogFormatStructured:
		encoder = zapcore.NewJSONEncoder(encoderConfiguration)
	case LogFormatConsole:
		encoderConfiguration.EncodeLevel = zapcore.CapitalLevelEncoder
		encoderConfiguration.CallerKey = zapcore.OmitKey
		encoder = zapcore.NewConsoleEncoder(encoderConfiguration)
	default:
		return nil, fmt.Errorf(unsupportedLogFormatTemplateConstant, requestedLogFormat)
	}

	outputSink := zapcore.AddSync(NewFlushingWriter(factory.outputWriter))
	core := zapcore.NewCore(encoder, outputSink, zap.NewAtomicLevelAt(zapLogLevel))
	return zap.New(core), nil
}
