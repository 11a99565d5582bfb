package initializers

import (
	"fmt"

	"github.com/Kariqs/agromarket-api/config"
	"go.uber.org/zap"
	"gorm.io/driver/mysql"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var DB *gorm.DB

func OpenDB(driver, dsn string) (*gorm.DB, error) {
	var dialector gorm.Dialector
	switch driver {
	case "mysql":
		dialector = mysql.Open(dsn)
	case "sqlite":
		dialector = sqlite.Open(dsn)
	default:
		return nil, fmt.Errorf("unsupported database driver %q", driver)
	}

	db, err := gorm.Open(dialector, &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to %s database: %w", driver, err)
	}
	return db, nil
}

func ConnectToDB(cfg *config.Config) {
	db, err := OpenDB(cfg.Database.Driver, cfg.Database.DSN)
	if err != nil {
		Logger.Fatal("could not connect to database", zap.Error(err))
	}
	DB = db
	Logger.Info("connected to database", zap.String("driver", cfg.Database.Driver))
}
