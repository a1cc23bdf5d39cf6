package cmd

import (
	"os"

	"github.com/Laisky/errors/v2"
	"github.com/urfave/cli/v3"

	"hubgrip/internal/config"
	"hubgrip/internal/eventbus"
	"hubgrip/internal/hub"
	"hubgrip/internal/log"
)

// Version is set at build time
var Version = "dev"

const logFileName = "hubgrip.log"

// session bundles what every command needs to talk to the hub
type session struct {
	bus       eventbus.EventBus
	configSvc config.ConfigService
	cfg       *config.Config
	client    *hub.Client
	searcher  hub.Searcher
}

// newSession loads the configuration and builds the hub client.
// Global flags override the config file.
func newSession(c *cli.Command) (*session, error) {
	bus := eventbus.New()
	svc := config.NewConfigServiceWithBus(bus, c.String("config"))

	cfg, err := svc.Load()
	if err != nil {
		logger.Errorf("Error loading config: %v", err)
		cfg = config.DefaultConfig()
	}
	if u := c.String("api-url"); u != "" {
		cfg.APIURL = u
	}
	if c.Bool("debug") {
		cfg.Debug = true
	}
	log.SetGlobalDebug(cfg.Debug)

	client, err := hub.NewClient(cfg.APIURL,
		hub.WithTimeout(cfg.Timeout.Duration),
		hub.WithMaxRetries(cfg.MaxRetries),
		hub.WithRateLimit(cfg.RequestsPerSecond),
		hub.WithUserAgent("hubgrip/"+Version),
	)
	if err != nil {
		bus.Close()
		return nil, errors.Wrap(err, "create hub client")
	}

	return &session{
		bus:       bus,
		configSvc: svc,
		cfg:       cfg,
		client:    client,
		searcher:  hub.NewCachingSearcher(client, hub.NewPageCache(cfg.CacheSize, cfg.CacheTTL.Duration)),
	}, nil
}

func (s *session) Close() {
	s.client.Close()
	s.bus.Close()
}

// openLog sends log output to the log file, returning a closer.
// Failing to open it keeps logging on stderr.
func openLog() func() {
	f, err := os.OpenFile(logFileName, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0666)
	if err != nil {
		logger.Warnf("Could not open log file: %v", err)
		return func() {}
	}
	log.SetOutput(f)
	return func() { f.Close() }
}

var logger = log.ForService("cmd")
