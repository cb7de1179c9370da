package helpers

import (
	"github.com/classpad/classpad-server/pkg/config"
	"github.com/sirupsen/logrus"
)

func HandleCloseConnections() error {
	if config.GetConfig() == nil {
		return nil
	}

	db, err := config.GetConfig().ORM.DB()
	if err == nil {
		_ = db.Close()
	}

	_ = config.GetConfig().RDS.Close()

	logrus.Exit(0)

	return nil
}
