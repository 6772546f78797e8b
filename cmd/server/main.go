package main

import (
	"database/sql"
	"flag"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/gorilla/handlers"
	"github.com/rs/cors"
	"github.com/sirupsen/logrus"
	"handsettle-server/internal/config"
	"handsettle-server/internal/mux"
	"handsettle-server/pkg/db"
	"handsettle-server/pkg/handstore"
)

const readTimeout = time.Second * 5
const writeTimeout = time.Second * 10

// Version is the server version
var Version = "v0.0.0-dev"

var addr = flag.String("addr", ":5000", "the listen address")

func main() {
	flag.Parse()
	setupLogger()

	cfg := config.Instance()
	store, closer := openStore(cfg)
	if closer != nil {
		defer closer.Close()
	}

	c := cors.New(cors.Options{
		AllowedOrigins: cfg.CORS.AllowedOrigins,
		AllowedHeaders: []string{"Origin", "Accept", "Content-Type", "X-Requested-With"},
		AllowedMethods: []string{http.MethodGet, http.MethodPost},
	})

	srv := &http.Server{
		Addr:         *addr,
		Handler:      loggingHandler(c.Handler(mux.NewMux(Version, store, logrus.StandardLogger(), cfg.HistoryLimit))),
		ReadTimeout:  readTimeout,
		WriteTimeout: writeTimeout,
	}

	logrus.WithFields(logrus.Fields{
		"addr":  srv.Addr,
		"store": cfg.Store,
	}).Info("listening")
	logrus.Fatal(srv.ListenAndServe())
}

// openStore opens the configured store and runs its migrations
// The returned database is nil for the memory store
func openStore(cfg config.Config) (handstore.Store, *sql.DB) {
	var driver, dsn string
	switch cfg.Store {
	case config.StoreMemory:
		logrus.Warn("using the memory store, hands will not survive a restart")
		return handstore.NewMemoryStore(), nil
	case config.StorePostgres:
		driver, dsn = db.DriverPostgres, cfg.PGDSN
	case config.StoreSQLite:
		driver, dsn = db.DriverSQLite, cfg.SQLitePath
	}

	dbh, err := db.Open(driver, dsn)
	if err != nil {
		logrus.WithError(err).WithField("driver", driver).Fatal("could not open database")
	}

	if err := db.Migrate(dbh, driver, cfg.MigrationsPath); err != nil {
		logrus.WithError(err).Fatal("could not run migrations")
	}

	store, err := handstore.NewSQLStore(dbh, driver)
	if err != nil {
		logrus.WithError(err).Fatal("could not create store")
	}

	return store, dbh
}

func loggingHandler(next http.Handler) http.Handler {
	if config.Instance().Log.DisableAccessLogs {
		return next
	}

	return handlers.CombinedLoggingHandler(os.Stdout, next)
}

func setupLogger() {
	if lvl := config.Instance().Log.Level; lvl != "" {
		level, err := logrus.ParseLevel(lvl)
		if err != nil {
			logrus.WithError(err).Fatal("could not parse level")
		}

		logrus.SetLevel(level)
	}

	if strings.ToLower(os.Getenv("LOG_FORMAT")) == "json" {
		logrus.SetFormatter(&logrus.JSONFormatter{})
	}
}
