package filemodel

import (
	"strings"

	"github.com/classpad/classpad-server/pkg/config"
	"github.com/classpad/classpad-server/pkg/services/dbservice"
	"github.com/classpad/classpad-server/pkg/services/whiteboard"
	"github.com/sirupsen/logrus"
)

type FileModel struct {
	app    *config.AppConfig
	ds     *dbservice.DatabaseService
	wb     *whiteboard.WhiteboardService
	logger *logrus.Entry
}

func New(app *config.AppConfig, ds *dbservice.DatabaseService, wb *whiteboard.WhiteboardService) *FileModel {
	if app == nil {
		app = config.GetConfig()
	}
	if ds == nil {
		ds = dbservice.New(app.ORM)
	}
	if wb == nil {
		wb = whiteboard.New(app)
	}

	return &FileModel{
		app:    app,
		ds:     ds,
		wb:     wb,
		logger: app.Logger.WithField("model", "file"),
	}
}

// determineTaskKind picks the conversion mode from the resource suffix.
// Slide formats convert dynamically (paginated, previewable); everything
// else is packed statically.
func determineTaskKind(resource string) whiteboard.TaskKind {
	lower := strings.ToLower(resource)
	if strings.HasSuffix(lower, ".pptx") || strings.HasSuffix(lower, ".ppt") {
		return whiteboard.TaskKindDynamic
	}
	return whiteboard.TaskKindStatic
}
