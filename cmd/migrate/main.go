package main

import (
	"database/sql"
	"time"

	"github.com/sirupsen/logrus"
	"handsettle-server/internal/config"
	"handsettle-server/pkg/db"
)

func main() {
	cfg := config.Instance()

	var driver, dsn string
	switch cfg.Store {
	case config.StorePostgres:
		driver, dsn = db.DriverPostgres, cfg.PGDSN
	case config.StoreSQLite:
		driver, dsn = db.DriverSQLite, cfg.SQLitePath
	default:
		logrus.WithField("store", cfg.Store).Info("nothing to migrate")
		return
	}

	dbh := waitForDB(driver, dsn)
	defer dbh.Close()

	if err := db.Migrate(dbh, driver, cfg.MigrationsPath); err != nil {
		logrus.WithError(err).Fatal("could not run migrations")
	}
}

func waitForDB(driver, dsn string) *sql.DB {
	timeout := time.NewTimer(time.Second * 10)
	for {
		select {
		case <-timeout.C:
			logrus.Fatal("could not connect to database")
		default:
			dbh, err := db.Open(driver, dsn)
			if err == nil {
				return dbh
			}

			logrus.WithError(err).Debug("waiting for database")
			time.Sleep(time.Millisecond * 500)
		}
	}
}
