package main

import (
	"log"
	"os"

	"github.com/book-catalog/cmd/api/config"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// SetupLogging initializes the logging module. Production logs are
// JSON, development logs use the console encoder. Both go to stdout so
// the process manifest can capture them.
func SetupLogging(cfg *config.Config) (*zap.Logger, func()) {
	var encoder zapcore.Encoder

	encoderConfig := zap.NewProductionEncoderConfig()
	encoderConfig.TimeKey = "timestamp"
	encoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	if cfg.IsProduction {
		encoder = zapcore.NewJSONEncoder(encoderConfig)
	} else {
		encoder = zapcore.NewConsoleEncoder(encoderConfig)
	}

	core := zapcore.NewCore(encoder, zapcore.AddSync(os.Stdout), cfg.LogLevel)
	logger := zap.New(core, zap.AddCaller(), zap.AddStacktrace(zapcore.ErrorLevel))

	flusher := func() {
		if err := logger.Sync(); err != nil {
			log.Println("error during flushing of buffered log entries:", err)
		}
	}

	return logger, flusher
}
