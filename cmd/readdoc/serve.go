package main

import (
	"fmt"
	"log/slog"

	"github.com/fwojciec/readdoc"
	"github.com/fwojciec/readdoc/docx"
	"github.com/fwojciec/readdoc/extract"
	"github.com/fwojciec/readdoc/fs"
	rdhttp "github.com/fwojciec/readdoc/http"
	"github.com/fwojciec/readdoc/jwt"
	rdprom "github.com/fwojciec/readdoc/prometheus"
	rdslog "github.com/fwojciec/readdoc/slog"
	"github.com/fwojciec/readdoc/sqlite"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Run executes the serve command. It blocks until the context is cancelled.
func (c *ServeCmd) Run(deps *Dependencies) error {
	cfg, err := c.config(deps.Getenv)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", readdoc.ErrorMessage(err))
		return err
	}

	logger := slog.New(slog.NewJSONHandler(deps.Stderr, nil))

	var jobs readdoc.JobService
	if cfg.DBPath != "" {
		db := sqlite.NewDB(cfg.DBPath)
		if err := db.Open(); err != nil {
			return fmt.Errorf("failed to open database at %q: %w", cfg.DBPath, err)
		}
		defer db.Close()
		jobs = sqlite.NewJobService(db)
	}

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	metrics := rdprom.NewMetrics(reg)

	blobs := fs.NewBlobStore(cfg.StorageDir, []byte(cfg.SigningKey), cfg.BaseURL())

	var extractor readdoc.Extractor = extract.NewExtractor(docx.NewCodec())
	extractor = rdslog.NewLoggingExtractor(extractor, logger)
	extractor = rdprom.NewInstrumentedExtractor(extractor, metrics)

	svc := &extract.Service{
		Store:        rdslog.NewLoggingObjectStore(blobs, logger),
		Extractor:    extractor,
		Jobs:         jobs,
		URLTTL:       cfg.URLTTL,
		DeleteInputs: cfg.DeleteInputs,
	}

	s := rdhttp.NewServer()
	s.Addr = cfg.Addr
	s.AllowedOrigins = cfg.AllowedOrigins
	s.MaxUploadBytes = cfg.MaxUploadBytes
	s.ProcessService = rdslog.NewLoggingProcessService(svc, logger)
	s.JobService = jobs
	s.TokenVerifier = jwt.NewVerifier([]byte(cfg.JWTSecret))
	s.Files = blobs
	s.Metrics = promhttp.HandlerFor(reg, promhttp.HandlerOpts{})
	s.Logger = logger
	if cfg.RateLimit > 0 {
		s.Limiter = rdhttp.NewUserLimiter(cfg.RateLimit, cfg.RateBurst)
	}

	if err := s.Open(); err != nil {
		return fmt.Errorf("failed to listen on %s: %w", cfg.Addr, err)
	}
	logger.Info("listening", "addr", s.URL(), "storage", cfg.StorageDir, "db", cfg.DBPath)
	fmt.Fprintf(deps.Stdout, "Listening on %s\n", s.URL())

	<-deps.Ctx.Done()

	logger.Info("shutting down")
	return s.Close()
}

// config resolves the server configuration: defaults, then the config
// file, then the environment, then flags.
func (c *ServeCmd) config(getenv func(string) string) (*ServerConfig, error) {
	cfg, err := LoadServerConfig(c.Config)
	if err != nil {
		return nil, err
	}
	if err := cfg.ApplyEnv(getenv); err != nil {
		return nil, err
	}

	if c.Addr != "" {
		cfg.Addr = c.Addr
	}
	if c.StorageDir != "" {
		cfg.StorageDir = c.StorageDir
	}
	if c.PublicURL != "" {
		cfg.PublicURL = c.PublicURL
	}
	if len(c.AllowedOrigins) > 0 {
		cfg.AllowedOrigins = c.AllowedOrigins
	}
	if c.RateLimit > 0 {
		cfg.RateLimit = c.RateLimit
	}
	if c.URLTTL > 0 {
		cfg.URLTTL = c.URLTTL
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}
