package main

import (
	"sync"

	"github.com/sirupsen/logrus"

	"github.com/khata-labs/ledger-server/api"
	"github.com/khata-labs/ledger-server/internal/config"
	"github.com/khata-labs/ledger-server/internal/logging"
	"github.com/khata-labs/ledger-server/internal/operator"
	"github.com/khata-labs/ledger-server/internal/service"
	"github.com/khata-labs/ledger-server/internal/storage"
)

func main() {
	logger := logging.SetupLogging()
	logrus.Info("ledger-server starting")

	envConfig, err := config.ProcessEnvironmentVariables()
	if err != nil {
		logrus.WithError(err).Fatal("config.ProcessEnvironmentVariables")
		return
	}

	dbStorage, err := storage.NewStorage(envConfig)
	if err != nil {
		logrus.WithError(err).Fatal("storage.NewStorage")
		return
	}

	delegator := operator.NewOperatorDelegator(dbStorage, envConfig.OperatorWorkers)
	delegator.Start()
	defer delegator.Stop()

	svc := service.NewService(dbStorage, delegator)

	wg := sync.WaitGroup{}
	wg.Add(1)

	go func() {
		httpRest := api.Rest{
			Logger:  logger,
			Port:    envConfig.HTTPPort,
			Service: svc,
		}
		httpRest.Serve()
	}()

	wg.Wait()
}
