package main

import (
	"github.com/sirupsen/logrus"

	server_config "github.com/carson-networks/ledger-server/internal/config"
	"github.com/carson-networks/ledger-server/internal/storage/sqlite"
)

func main() {
	env, err := server_config.ProcessEnvironmentVariables()
	if err != nil {
		logrus.WithError(err).Fatal("ProcessEnvironmentVariables")
		return
	}

	err = sqlite.RunMigrations(env.SQLiteDBPath)
	if err != nil {
		logrus.WithError(err).Fatal("sqlite.RunMigrations")
		return
	}

	logrus.WithField("dbPath", env.SQLiteDBPath).Info("Migration status")
}
