package db

import (
	"fmt"

	"github.com/glebarez/sqlite"
	gorm_logrus "github.com/onrik/gorm-logrus"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var DB *gorm.DB

const (
	DriverPostgres = "postgres"
	DriverSqlite   = "sqlite"
)

type ConnectConfig struct {
	Driver     string
	Host       string
	Port       string
	Database   string
	User       string
	Password   string
	SqlitePath string
	DebugMode  bool
	Migrate    bool
}

func dialector(cfg ConnectConfig) (gorm.Dialector, error) {
	switch cfg.Driver {
	case DriverPostgres, "":
		dbConnString := fmt.Sprintf("host=%s port=%s user=%s dbname=%s sslmode=disable password=%s",
			cfg.Host, cfg.Port, cfg.User, cfg.Database, cfg.Password)
		return postgres.Open(dbConnString), nil
	case DriverSqlite:
		return sqlite.Open(cfg.SqlitePath + "?_pragma=foreign_keys(1)&_pragma=busy_timeout(5000)"), nil
	}
	return nil, errors.Errorf("неизвестный драйвер БД: %v", cfg.Driver)
}

func Connect(cfg ConnectConfig) (err error) {
	if DB != nil {
		return nil
	}
	d, err := dialector(cfg)
	if err != nil {
		return err
	}
	db, err := gorm.Open(d, &gorm.Config{
		Logger: gorm_logrus.New(),
	})
	if err != nil {
		return errors.Wrap(err, "Ошибка подключения к БД")
	}
	if cfg.DebugMode {
		db.Logger = logger.Default.LogMode(logger.Info)
		DB = db.Debug()
	} else {
		DB = db
	}
	if cfg.Driver == DriverSqlite {
		// sqlite не поддерживает параллельную запись
		sqlDB, err := DB.DB()
		if err != nil {
			return errors.Wrap(err, "Ошибка подключения к БД")
		}
		sqlDB.SetMaxOpenConns(1)
	}
	if cfg.Migrate {
		if err = AutoMigrateDB(); err != nil {
			return err
		}
	}
	log.WithField("driver", DB.Dialector.Name()).Info("Сервис успешно подключен к БД")
	return nil
}

func PingDB() error {
	db, err := DB.DB()
	if err != nil {
		return err
	}
	if err = db.Ping(); err != nil {
		return err
	}
	return nil
}
