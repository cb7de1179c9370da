package factory

import (
	"fmt"
	"time"

	"github.com/classpad/classpad-server/pkg/config"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func NewDatabaseConnection(appCnf *config.AppConfig) error {
	info := appCnf.DatabaseInfo
	dsn := fmt.Sprintf("%s:%s@tcp(%s:%d)/%s?charset=utf8mb4&parseTime=True&loc=UTC", info.Username, info.Password, info.Host, info.Port, info.DBName)

	cnf := &gorm.Config{}
	if appCnf.Client.Debug {
		cnf.Logger = logger.Default.LogMode(logger.Info)
	} else {
		cnf.Logger = logger.New(
			appCnf.Logger,
			logger.Config{
				SlowThreshold:             time.Second,
				LogLevel:                  logger.Warn,
				IgnoreRecordNotFoundError: true,
			},
		)
	}

	db, err := gorm.Open(mysql.Open(dsn), cnf)
	if err != nil {
		return err
	}

	d, err := db.DB()
	if err != nil {
		return err
	}
	d.SetConnMaxLifetime(time.Minute * 4)
	d.SetMaxOpenConns(100)

	appCnf.ORM = db
	return nil
}
