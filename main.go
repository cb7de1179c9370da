package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/classpad/classpad-server/helpers"
	"github.com/classpad/classpad-server/pkg/config"
	"github.com/classpad/classpad-server/pkg/factory"
	"github.com/classpad/classpad-server/pkg/logging"
	"github.com/classpad/classpad-server/pkg/routers"
	"github.com/classpad/classpad-server/version"
	"github.com/sirupsen/logrus"
	"github.com/urfave/cli/v3"
)

func main() {
	cli.VersionPrinter = func(c *cli.Command) {
		fmt.Printf("%s\n", c.Version)
	}

	app := &cli.Command{
		Name:        "classpad-server",
		Usage:       "Booking backend for recurring classroom sessions",
		Description: "without option will start server",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:        "config",
				Usage:       "Configuration file",
				DefaultText: "config.yaml",
				Value:       "config.yaml",
			},
		},
		Action:  startServer,
		Version: version.Version,
	}
	err := app.Run(context.Background(), os.Args)
	if err != nil {
		logrus.Fatalln(err)
	}
}

func startServer(ctx context.Context, c *cli.Command) error {
	appCnf, err := helpers.ReadConfig(c.String("config"))
	if err != nil {
		panic(err)
	}
	// set this config for global usage
	config.SetAppConfig(appCnf)

	logger, err := logging.NewLogger(&appCnf.LogSettings)
	if err != nil {
		logrus.WithError(err).Fatal("Failed to setup logger")
	}
	appCnf.Logger = logger

	// now prepare our server
	err = helpers.PrepareServer(appCnf)
	if err != nil {
		logger.Fatalln(err)
	}

	application := factory.NewApplication(appCnf)
	defer application.Shutdown()

	// defer close connections
	defer helpers.HandleCloseConnections()

	rt := routers.New(appCnf, application.Controllers)
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)

	go func() {
		sig := <-sigChan
		logger.Infoln("exit requested, shutting down", "signal", sig)
		_ = rt.Shutdown()
	}()

	err = rt.Listen(fmt.Sprintf(":%d", appCnf.Client.Port))
	if err != nil {
		logger.Fatalln(err)
	}
	return nil
}
