package periodicmodel

import (
	"github.com/classpad/classpad-server/pkg/config"
	"github.com/classpad/classpad-server/pkg/services/dbservice"
	"github.com/classpad/classpad-server/pkg/services/redisservice"
	"github.com/classpad/classpad-server/pkg/services/whiteboard"
	"github.com/sirupsen/logrus"
)

type PeriodicModel struct {
	app    *config.AppConfig
	ds     *dbservice.DatabaseService
	rs     *redisservice.RedisService
	wb     *whiteboard.WhiteboardService
	logger *logrus.Entry
}

func New(app *config.AppConfig, ds *dbservice.DatabaseService, rs *redisservice.RedisService, wb *whiteboard.WhiteboardService) *PeriodicModel {
	if app == nil {
		app = config.GetConfig()
	}
	if ds == nil {
		ds = dbservice.New(app.ORM)
	}
	if rs == nil {
		rs = redisservice.New(app.RDS)
	}
	if wb == nil {
		wb = whiteboard.New(app)
	}

	return &PeriodicModel{
		app:    app,
		ds:     ds,
		rs:     rs,
		wb:     wb,
		logger: app.Logger.WithField("model", "periodic"),
	}
}
