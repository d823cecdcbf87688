package main

import (
	"context"
	"io"
	"log/slog"
	"time"

	"github.com/fwojciec/readdoc"
)

// Dependencies holds all services and configuration for command execution.
type Dependencies struct {
	Ctx       context.Context
	Stdout    io.Writer
	Stderr    io.Writer
	Getenv    func(string) string
	Logger    *slog.Logger
	Codec     readdoc.DocumentCodec
	Extractor readdoc.Extractor
	Jobs      readdoc.JobService
}

// CLI defines the command-line interface structure for Kong.
type CLI struct {
	Verbose   bool   `short:"v" help:"Log each extraction to stderr"`
	DB        string `env:"READDOC_DB" help:"Job history database path"`
	NoHistory bool   `help:"Do not record extractions in the job history"`

	Extract ExtractCmd `cmd:"" help:"Keep highlighted or underlined text (either marking)"`
	And     AndCmd     `cmd:"" help:"Keep text that is both highlighted and underlined"`
	Inspect InspectCmd `cmd:"" help:"Show how paragraphs and runs are classified"`
	Serve   ServeCmd   `cmd:"" help:"Run the extraction HTTP API"`
	Token   TokenCmd   `cmd:"" help:"Mint a bearer token for the HTTP API"`
	Jobs    JobsCmd    `cmd:"" help:"List recorded extractions"`
}

// ExtractCmd is the "extract" subcommand.
type ExtractCmd struct {
	Files       []string `arg:"" help:"Input .docx files"`
	Highlighted bool     `short:"H" help:"Keep highlighted runs only"`
	Underlined  bool     `short:"U" help:"Keep underlined runs only"`
	Concurrency int      `short:"c" default:"4" help:"Files processed at once"`
}

// AndCmd is the "and" subcommand.
type AndCmd struct {
	Files       []string `arg:"" help:"Input .docx files"`
	Concurrency int      `short:"c" default:"4" help:"Files processed at once"`
}

// InspectCmd is the "inspect" subcommand.
type InspectCmd struct {
	File  string `arg:"" help:"Input .docx file"`
	Limit int    `short:"n" help:"Show at most N paragraphs (0 for all)"`
	Runs  bool   `short:"r" help:"Show highlight and underline values of marked runs"`
}

// ServeCmd is the "serve" subcommand. Flags override the config file and
// environment.
type ServeCmd struct {
	Config         string        `short:"f" type:"path" help:"YAML config file"`
	Addr           string        `help:"Listen address"`
	StorageDir     string        `type:"path" help:"Object storage directory"`
	PublicURL      string        `name:"public-url" help:"Base URL for download links"`
	AllowedOrigins []string      `name:"allowed-origin" help:"CORS origin (repeatable)"`
	RateLimit      float64       `help:"Requests per second per user"`
	URLTTL         time.Duration `name:"url-ttl" help:"Download link lifetime"`
}

// TokenCmd is the "token" subcommand.
type TokenCmd struct {
	UserID string        `arg:"" help:"User ID to issue the token for"`
	TTL    time.Duration `default:"24h" help:"Token lifetime"`
	Secret string        `env:"READDOC_JWT_SECRET" required:"" help:"JWT signing secret"`
}

// JobsCmd is the "jobs" subcommand.
type JobsCmd struct {
	User  string `short:"u" help:"Only show jobs for this user"`
	Limit int    `short:"n" default:"20" help:"Number of jobs to show"`
}
