package initializers

import (
	"fmt"
	"log/slog"

	"gorm.io/driver/mysql"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var DB *gorm.DB

// OpenDatabase opens dsn with the named driver: mysql, postgres or sqlite.
func OpenDatabase(driver, dsn string) (*gorm.DB, error) {
	var dialector gorm.Dialector
	switch driver {
	case "mysql":
		dialector = mysql.Open(dsn)
	case "postgres":
		dialector = postgres.Open(dsn)
	case "sqlite":
		dialector = sqlite.Open(dsn)
	default:
		return nil, fmt.Errorf("unsupported DB_DRIVER %q", driver)
	}

	db, err := gorm.Open(dialector, &gorm.Config{Logger: logger.Default.LogMode(logger.Warn)})
	if err != nil {
		return nil, fmt.Errorf("open %s database: %w", driver, err)
	}
	return db, nil
}

func ConnectToDB() error {
	if Cfg.DBDSN == "" {
		return fmt.Errorf("DB_DSN is not set")
	}
	db, err := OpenDatabase(Cfg.DBDriver, Cfg.DBDSN)
	if err != nil {
		return err
	}
	DB = db
	slog.Info("Connected to database", "driver", Cfg.DBDriver)
	return nil
}
