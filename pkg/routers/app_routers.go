package routers

import (
	"io"
	"runtime"

	"github.com/ansrivas/fiberprometheus/v2"
	"github.com/classpad/classpad-server/pkg/config"
	"github.com/classpad/classpad-server/pkg/controllers"
	"github.com/classpad/classpad-server/pkg/factory"
	"github.com/classpad/classpad-server/version"
	"github.com/goccy/go-json"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	rr "github.com/gofiber/fiber/v2/middleware/recover"
)

// router holds the dependencies for route registration, so New() stays a
// readable sequence of smaller methods.
type router struct {
	app  *fiber.App
	ctrl *factory.ApplicationControllers
}

func New(appConfig *config.AppConfig, ctrl *factory.ApplicationControllers) *fiber.App {
	cnf := fiber.Config{
		JSONEncoder: json.Marshal,
		JSONDecoder: json.Unmarshal,
		AppName:     "classpad version: " + version.Version + " runtime: " + runtime.Version(),
	}
	if appConfig.Client.ProxyHeader != "" {
		cnf.ProxyHeader = appConfig.Client.ProxyHeader
	}

	app := fiber.New(cnf)

	app.Use(logger.New(logger.Config{
		Done: func(c *fiber.Ctx, logString []byte) {
			appConfig.Logger.Debugln(string(logString))
		},
		Format: "${status} | ${latency} | ${ip} | ${method} | ${path} | ${error}",
		Output: io.Discard,
	}))

	if appConfig.Client.PrometheusConf.Enable {
		prometheus := fiberprometheus.New("classpad")
		prometheus.RegisterAt(app, appConfig.Client.PrometheusConf.MetricsPath)
		app.Use(prometheus.Middleware)
	}

	app.Use(rr.New())
	app.Use(cors.New(cors.Config{
		AllowMethods: "POST,GET,OPTIONS",
	}))

	r := &router{
		app:  app,
		ctrl: ctrl,
	}

	r.registerBaseRoutes()
	r.registerAuthRoutes()
	r.registerAPIRoutes()

	// This MUST be the last middleware to be registered.
	app.Use(func(c *fiber.Ctx) error {
		return c.Status(fiber.StatusNotFound).SendString("not found")
	})

	return app
}

func (r *router) registerBaseRoutes() {
	r.app.Get("/healthCheck", controllers.HandleHealthCheck)
}

func (r *router) registerAuthRoutes() {
	auth := r.app.Group("/auth", r.ctrl.AuthController.HandleAuthHeaderCheck)
	auth.Post("/getToken", r.ctrl.AuthController.HandleGenerateToken)
}

func (r *router) registerAPIRoutes() {
	api := r.app.Group("/v1", r.ctrl.AuthController.HandleVerifyHeaderToken)

	room := api.Group("/room")
	room.Post("/create", r.ctrl.RoomController.HandleRoomCreate)
	room.Post("/join", r.ctrl.RoomController.HandleRoomJoin)
	room.Post("/list", r.ctrl.RoomController.HandleRoomList)
	room.Post("/info", r.ctrl.RoomController.HandleRoomInfo)
	room.Post("/info/users", r.ctrl.RoomController.HandleRoomUsers)
	room.Post("/updateStatus/started", r.ctrl.RoomController.HandleRoomStarted)
	room.Post("/updateStatus/paused", r.ctrl.RoomController.HandleRoomPaused)
	room.Post("/updateStatus/stopped", r.ctrl.RoomController.HandleRoomStopped)
	room.Post("/cancel", r.ctrl.RoomController.HandleRoomCancel)

	periodic := api.Group("/periodic")
	periodic.Post("/create", r.ctrl.PeriodicController.HandlePeriodicCreate)
	periodic.Post("/info", r.ctrl.PeriodicController.HandlePeriodicInfo)
	periodic.Post("/subRoomInfo", r.ctrl.PeriodicController.HandlePeriodicSubRoomInfo)
	periodic.Post("/cancel", r.ctrl.PeriodicController.HandlePeriodicCancel)
	periodic.Post("/cancelSubRoom", r.ctrl.PeriodicController.HandlePeriodicSubRoomCancel)

	record := api.Group("/record")
	record.Post("/acquire", r.ctrl.RecordingController.HandleRecordAcquire)
	record.Post("/started", r.ctrl.RecordingController.HandleRecordStarted)
	record.Post("/stopped", r.ctrl.RecordingController.HandleRecordStopped)
	record.Post("/info", r.ctrl.RecordingController.HandleRecordInfo)

	file := api.Group("/cloudStorage")
	file.Post("/convertStart", r.ctrl.FileController.HandleFileConvertStart)
	file.Post("/convertFinish", r.ctrl.FileController.HandleFileConvertFinish)
}
