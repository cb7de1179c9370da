package recordingmodel

import (
	"github.com/classpad/classpad-server/pkg/config"
	"github.com/classpad/classpad-server/pkg/services/dbservice"
	"github.com/classpad/classpad-server/pkg/services/whiteboard"
	"github.com/sirupsen/logrus"
)

type RecordingModel struct {
	app    *config.AppConfig
	ds     *dbservice.DatabaseService
	wb     *whiteboard.WhiteboardService
	logger *logrus.Entry
}

func New(app *config.AppConfig, ds *dbservice.DatabaseService, wb *whiteboard.WhiteboardService) *RecordingModel {
	if app == nil {
		app = config.GetConfig()
	}
	if ds == nil {
		ds = dbservice.New(app.ORM)
	}
	if wb == nil {
		wb = whiteboard.New(app)
	}

	return &RecordingModel{
		app:    app,
		ds:     ds,
		wb:     wb,
		logger: app.Logger.WithField("model", "recording"),
	}
}
