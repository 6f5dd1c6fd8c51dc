// Package bootstrap constructs the triage service components once per
// process and wires them together. Engines are built here and injected, so
// no package holds implicit global state.
package bootstrap

import (
	"github.com/civicgrid/triage/internal/api"
	"github.com/civicgrid/triage/internal/config"
	"github.com/civicgrid/triage/internal/geo"
	"github.com/civicgrid/triage/internal/logger"
	"github.com/civicgrid/triage/internal/policy"
	"github.com/civicgrid/triage/internal/triage"
)

// App holds the fully wired service.
type App struct {
	Config *config.Config
	Log    logger.Logger
	Server *api.Server
}

// New loads configuration, builds the logger, loads the policy corpus, and
// constructs the engines and HTTP server. The corpus load is the only
// startup side effect; a missing corpus degrades retrieval, it does not
// block startup.
func New(configPath string) (*App, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, err
	}

	log, err := logger.New(logger.Config{
		Level:       cfg.Logging.Level,
		Development: cfg.Service.Debug,
	})
	if err != nil {
		return nil, err
	}

	engine := triage.NewEngine(log)

	corpus := policy.LoadCorpus(cfg.Policy.CorpusPath, log)
	retriever := policy.NewRetriever(corpus, cfg.Policy.Threshold, log)

	geoEngine := geo.NewEngine(log)

	handler := api.NewHandler(engine, retriever, geoEngine, cfg.Geo, log)
	server := api.NewServer(cfg, handler, log)

	return &App{
		Config: cfg,
		Log:    log,
		Server: server,
	}, nil
}
