package initializers

import (
	"fmt"

	"github.com/Kariqs/agromarket-api/config"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Logger is never nil so packages can log before InitLogger runs.
var Logger = zap.NewNop()

func InitLogger(cfg *config.Config) error {
	zapCfg := zap.NewProductionConfig()
	if cfg.IsDevelopment() {
		zapCfg = zap.NewDevelopmentConfig()
	}

	level, err := zapcore.ParseLevel(cfg.Server.LogLevel)
	if err != nil {
		return fmt.Errorf("invalid log level %q: %w", cfg.Server.LogLevel, err)
	}
	zapCfg.Level = zap.NewAtomicLevelAt(level)

	logger, err := zapCfg.Build()
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	Logger = logger
	return nil
}
