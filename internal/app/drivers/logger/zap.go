package logger

import (
	"log"

	"mindscreen-service/internal/app/config"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

const serviceName = "mindscreen-service"

func parseLevel(level string) zapcore.Level {
	parsed, err := zapcore.ParseLevel(level)
	if err != nil {
		return zap.InfoLevel
	}
	return parsed
}

// outputPaths writes to files only in production; error output always reaches stderr.
func outputPaths(driverConfig *config.DriverConfig, env string) ([]string, []string) {
	if env == "production" {
		return []string{driverConfig.Logger.OutputFileName},
			[]string{"stderr", driverConfig.Logger.OutputErrorFileName}
	}
	return []string{"stdout"}, []string{"stderr"}
}

func NewZapLogger(driverConfig *config.DriverConfig, internalConfig *config.InternalConfig) *zap.Logger {
	output, errorOutput := outputPaths(driverConfig, internalConfig.App.Env)

	encoderConfig := zapcore.EncoderConfig{
		TimeKey:        "time",
		LevelKey:       "level",
		NameKey:        "logger",
		CallerKey:      "caller",
		MessageKey:     "msg",
		StacktraceKey:  "stacktrace",
		LineEnding:     zapcore.DefaultLineEnding,
		EncodeLevel:    zapcore.LowercaseLevelEncoder,
		EncodeTime:     zapcore.ISO8601TimeEncoder,
		EncodeDuration: zapcore.StringDurationEncoder,
		EncodeCaller:   zapcore.ShortCallerEncoder,
	}

	cfg := zap.Config{
		Level:            zap.NewAtomicLevelAt(parseLevel(driverConfig.Logger.Level)),
		Development:      internalConfig.App.Env == "development",
		Encoding:         "json",
		EncoderConfig:    encoderConfig,
		OutputPaths:      output,
		ErrorOutputPaths: errorOutput,
		InitialFields: map[string]interface{}{
			"service": serviceName,
			"version": internalConfig.App.Version,
		},
	}

	zapLogger, err := cfg.Build()
	if err != nil {
		log.Fatalf("Error while initializing zap logger: %v", err)
	}
	return zapLogger
}
