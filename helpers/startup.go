package helpers

import (
	"context"
	"os"

	"github.com/classpad/classpad-server/pkg/config"
	"github.com/classpad/classpad-server/pkg/factory"
	"gopkg.in/yaml.v3"
)

// PrepareServer attaches the live database and redis handles to the
// config. The logger must already be set.
func PrepareServer(appCnf *config.AppConfig) error {
	err := factory.NewDatabaseConnection(appCnf)
	if err != nil {
		return err
	}

	err = factory.NewRedisConnection(context.Background(), appCnf)
	if err != nil {
		return err
	}

	return nil
}

func ReadConfig(cnfFile string) (*config.AppConfig, error) {
	yamlFile, err := os.ReadFile(cnfFile)
	if err != nil {
		return nil, err
	}

	appCnf := new(config.AppConfig)
	err = yaml.Unmarshal(yamlFile, &appCnf)
	if err != nil {
		return nil, err
	}

	wd, err := os.Getwd()
	if err != nil {
		return nil, err
	}
	appCnf.RootWorkingDir = wd

	return appCnf, nil
}
