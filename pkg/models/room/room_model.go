package roommodel

import (
	"github.com/classpad/classpad-server/pkg/config"
	"github.com/classpad/classpad-server/pkg/dbmodels"
	"github.com/classpad/classpad-server/pkg/errcode"
	"github.com/classpad/classpad-server/pkg/helpers"
	"github.com/classpad/classpad-server/pkg/services/dbservice"
	"github.com/classpad/classpad-server/pkg/services/redisservice"
	"github.com/classpad/classpad-server/pkg/services/whiteboard"
	"github.com/sirupsen/logrus"
)

type RoomModel struct {
	app      *config.AppConfig
	ds       *dbservice.DatabaseService
	rs       *redisservice.RedisService
	wb       *whiteboard.WhiteboardService
	notifier *helpers.WebhookNotifier
	logger   *logrus.Entry
}

func New(app *config.AppConfig, ds *dbservice.DatabaseService, rs *redisservice.RedisService, wb *whiteboard.WhiteboardService) *RoomModel {
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

	return &RoomModel{
		app:      app,
		ds:       ds,
		rs:       rs,
		wb:       wb,
		notifier: helpers.NewWebhookNotifier(app),
		logger:   app.Logger.WithField("model", "room"),
	}
}

// Shutdown drains webhook deliveries still in flight.
func (m *RoomModel) Shutdown() {
	m.notifier.StopWait()
}

// transitionError picks the legacy reject code for an illegal room
// transition, matching what clients already handle.
func transitionError(from, to dbmodels.RoomStatus) *errcode.Error {
	switch {
	case from == dbmodels.RoomStatusStopped:
		return errcode.New(errcode.RoomIsEnded)
	case to == dbmodels.RoomStatusStarted:
		return errcode.New(errcode.RoomNotIsIdle)
	default:
		return errcode.New(errcode.RoomNotRunning)
	}
}
