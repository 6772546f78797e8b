package mux

import (
	"net/http"

	gmux "github.com/gorilla/mux"
	"github.com/sirupsen/logrus"
	"handsettle-server/internal/rng"
	"handsettle-server/pkg/handstore"
)

const uuidPattern = "(?i)[a-f0-9]{8}(?:-[a-f0-9]{4}){3}-[a-f0-9]{12}"

// Mux handles HTTP requests
type Mux struct {
	*gmux.Router
	config  config
	version string
	store   handstore.Store
	logger  logrus.FieldLogger
	rng     rng.Generator
}

type config struct {
	// historyLimit is the maximum number of hands returned by a single listing
	historyLimit int
}

// NewMux returns a new HTTP mux
func NewMux(version string, store handstore.Store, logger logrus.FieldLogger, historyLimit int) *Mux {
	this := &Mux{
		Router:  gmux.NewRouter(),
		version: version,
		store:   store,
		logger:  logger,
		rng:     rng.Crypto{},
		config: config{
			historyLimit: historyLimit,
		},
	}

	r := this.Router
	r.Methods(http.MethodGet).Path("/health").Handler(this.getHealth())

	api := r.PathPrefix("/api/hands").Subrouter()
	api.Methods(http.MethodGet).Path("").Handler(this.getHands())
	api.Methods(http.MethodPost).Path("").Handler(this.postHands())
	api.Methods(http.MethodPost).Path("/settle").Handler(this.postHandsSettle())
	api.Methods(http.MethodGet).Path("/deal").Handler(this.getHandsDeal())
	api.Methods(http.MethodGet).Path("/{id:" + uuidPattern + "}").Handler(this.getHandsID())

	r.NotFoundHandler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeJSONError(w, http.StatusNotFound, nil)
	})

	return this
}
