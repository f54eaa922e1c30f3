package config

import (
	"os"
	"strconv"
)

type Config struct {
	Port            string
	DataBackend     string
	SQLiteDBPath    string
	SnapshotPath    string
	OperatorWorkers int
}

func ProcessEnvironmentVariables() (*Config, error) {
	// Defaults match the local single-process setup
	env := Config{
		Port:            "9446",
		DataBackend:     "sqlite",
		SQLiteDBPath:    "ledger.db",
		SnapshotPath:    "ledger.snapshot",
		OperatorWorkers: 1,
	}

	envPort := os.Getenv("PORT")
	envDataBackend := os.Getenv("DATA_BACKEND")
	envSQLiteDBPath := os.Getenv("SQLITE_DB_PATH")
	envSnapshotPath := os.Getenv("SNAPSHOT_PATH")
	envOperatorWorkers := os.Getenv("OPERATOR_WORKERS")

	if len(envPort) != 0 {
		env.Port = envPort
	}

	if len(envDataBackend) != 0 {
		env.DataBackend = envDataBackend
	}

	if len(envSQLiteDBPath) != 0 {
		env.SQLiteDBPath = envSQLiteDBPath
	}

	if len(envSnapshotPath) != 0 {
		env.SnapshotPath = envSnapshotPath
	}

	if len(envOperatorWorkers) != 0 {
		workers, err := strconv.Atoi(envOperatorWorkers)
		if err != nil {
			return nil, err
		}
		env.OperatorWorkers = workers
	}

	return &env, nil
}
