package main

import (
	"context"
	"sync"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"

	"github.com/carson-networks/ledger-server/api"
	"github.com/carson-networks/ledger-server/internal/config"
	"github.com/carson-networks/ledger-server/internal/directory"
	"github.com/carson-networks/ledger-server/internal/logging"
	"github.com/carson-networks/ledger-server/internal/operator"
	"github.com/carson-networks/ledger-server/internal/service"
	"github.com/carson-networks/ledger-server/internal/state"
	"github.com/carson-networks/ledger-server/internal/storage"
	"github.com/carson-networks/ledger-server/internal/storage/file"
	"github.com/carson-networks/ledger-server/internal/storage/memory"
	"github.com/carson-networks/ledger-server/internal/storage/sqlite"
)

func main() {
	_ = godotenv.Load()

	logger := logging.SetupLogging()
	logrus.Info("ledger-server starting")

	envConfig, err := config.ProcessEnvironmentVariables()
	if err != nil {
		logrus.WithError(err).Fatal("config.ProcessEnvironmentVariables")
		return
	}

	store, err := openSnapshot(envConfig)
	if err != nil {
		logrus.WithError(err).Fatal("main.openSnapshot")
		return
	}
	defer store.Close()

	dir, err := store.Load(context.Background())
	if err != nil {
		// A damaged snapshot must not keep the server down. Start empty;
		// the first flush rewrites it.
		logrus.WithError(err).Warn("main.Load.starting with empty directory")
		dir = directory.New()
	}

	st := state.New(dir, store)

	delegator := operator.NewOperatorDelegator(st, envConfig.OperatorWorkers)
	delegator.Start()
	defer delegator.Stop()

	svc := service.NewService(st, delegator, logger)

	wg := sync.WaitGroup{}
	wg.Add(1)

	go func() {
		httpRest := api.Rest{
			Logger:  logger,
			Port:    envConfig.Port,
			Service: svc,
		}
		httpRest.Serve()
	}()

	wg.Wait()
}

func openSnapshot(cfg *config.Config) (storage.Snapshot, error) {
	switch cfg.DataBackend {
	case "memory":
		return memory.New(), nil
	case "file":
		return file.New(cfg.SnapshotPath), nil
	default:
		return sqlite.Open(cfg.SQLiteDBPath)
	}
}
