package factory

import (
	"github.com/classpad/classpad-server/pkg/config"
	"github.com/classpad/classpad-server/pkg/controllers"
	authmodel "github.com/classpad/classpad-server/pkg/models/auth"
	filemodel "github.com/classpad/classpad-server/pkg/models/file"
	periodicmodel "github.com/classpad/classpad-server/pkg/models/periodic"
	recordingmodel "github.com/classpad/classpad-server/pkg/models/recording"
	roommodel "github.com/classpad/classpad-server/pkg/models/room"
	"github.com/classpad/classpad-server/pkg/services/dbservice"
	"github.com/classpad/classpad-server/pkg/services/redisservice"
	"github.com/classpad/classpad-server/pkg/services/whiteboard"
)

// ApplicationControllers holds all the controllers.
type ApplicationControllers struct {
	AuthController      *controllers.AuthController
	RoomController      *controllers.RoomController
	PeriodicController  *controllers.PeriodicController
	RecordingController *controllers.RecordingController
	FileController      *controllers.FileController
}

// Application is the root struct holding all dependencies.
type Application struct {
	Controllers *ApplicationControllers
	AppConfig   *config.AppConfig
	roomModel   *roommodel.RoomModel
}

// NewApplication wires services, models and controllers together from a
// prepared AppConfig (live ORM, redis and logger handles attached).
func NewApplication(appConfig *config.AppConfig) *Application {
	ds := dbservice.New(appConfig.ORM)
	rs := redisservice.New(appConfig.RDS)
	wb := whiteboard.New(appConfig)

	authModel := authmodel.New(appConfig)
	roomModel := roommodel.New(appConfig, ds, rs, wb)
	periodicModel := periodicmodel.New(appConfig, ds, rs, wb)
	recordingModel := recordingmodel.New(appConfig, ds, wb)
	fileModel := filemodel.New(appConfig, ds, wb)

	return &Application{
		AppConfig: appConfig,
		roomModel: roomModel,
		Controllers: &ApplicationControllers{
			AuthController:      controllers.NewAuthController(appConfig, authModel),
			RoomController:      controllers.NewRoomController(roomModel),
			PeriodicController:  controllers.NewPeriodicController(periodicModel),
			RecordingController: controllers.NewRecordingController(recordingModel),
			FileController:      controllers.NewFileController(fileModel),
		},
	}
}

// Shutdown drains anything still in flight.
func (a *Application) Shutdown() {
	a.roomModel.Shutdown()
}
