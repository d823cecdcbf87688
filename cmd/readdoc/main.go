package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/alecthomas/kong"
	"github.com/fwojciec/readdoc"
	"github.com/fwojciec/readdoc/docx"
	"github.com/fwojciec/readdoc/extract"
	rdslog "github.com/fwojciec/readdoc/slog"
	"github.com/fwojciec/readdoc/sqlite"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	m := NewMain()

	if err := m.Run(ctx, os.Args[1:], os.Stdout, os.Stderr); err != nil {
		fmt.Fprintln(os.Stderr, err)
		stop()
		os.Exit(1)
	}
}

// Main represents the program.
type Main struct {
	// Database path. Set before calling Run().
	DBPath string

	// SQLite database used by the job history.
	DB *sqlite.DB

	// Job history. When set before Run, no database is opened.
	JobService readdoc.JobService

	// Getenv reads the environment. Defaults to os.Getenv.
	Getenv func(string) string
}

// NewMain returns a new instance of Main with defaults.
func NewMain() *Main {
	return &Main{
		DBPath: defaultDBPath(),
		Getenv: os.Getenv,
	}
}

// Close gracefully stops the program.
func (m *Main) Close() error {
	if m.DB != nil {
		return m.DB.Close()
	}
	return nil
}

// Run executes the CLI with the given arguments.
func (m *Main) Run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	getenv := m.Getenv
	if getenv == nil {
		getenv = os.Getenv
	}

	// Initialize dependencies struct for Kong binding
	deps := &Dependencies{
		Ctx:    ctx,
		Stdout: stdout,
		Stderr: stderr,
		Getenv: getenv,
	}

	cli := &CLI{}
	parser, err := kong.New(cli,
		kong.Name("readdoc"),
		kong.Description("Reduce .docx files to their highlighted and underlined text."),
		kong.Writers(stdout, stderr),
		kong.Exit(func(int) {}), // Don't exit on help
		kong.Bind(deps),
	)
	if err != nil {
		return fmt.Errorf("failed to create parser: %w", err)
	}

	if len(args) == 0 {
		_, _ = parser.Parse([]string{"--help"})
		return fmt.Errorf("no command specified. Run 'readdoc --help' to see available commands")
	}

	cmd := args[0]
	if cmd == "help" || cmd == "--help" || cmd == "-h" {
		_, _ = parser.Parse([]string{"--help"})
		return nil
	}

	kongCtx, err := parser.Parse(args)
	if err != nil {
		return err
	}

	// Logging is off unless requested
	level := slog.LevelWarn
	if cli.Verbose {
		level = slog.LevelDebug
	}
	deps.Logger = slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: level}))

	codec := docx.NewCodec()
	deps.Codec = codec
	deps.Extractor = rdslog.NewLoggingExtractor(extract.NewExtractor(codec), deps.Logger)

	if m.needsHistory(kongCtx.Selected().Name, cli) {
		if m.JobService == nil {
			if cli.DB != "" {
				m.DBPath = cli.DB
			}
			m.DB = sqlite.NewDB(m.DBPath)
			if err := m.DB.Open(); err != nil {
				fmt.Fprintf(stderr, "Hint: Set READDOC_DB or pass --no-history\n")
				return fmt.Errorf("failed to open database at %q: %w", m.DBPath, err)
			}
			defer m.Close()
			m.JobService = sqlite.NewJobService(m.DB)
		}
		deps.Jobs = m.JobService
	}

	return kongCtx.Run(deps)
}

// needsHistory reports whether the selected command reads or writes the
// job history.
func (m *Main) needsHistory(cmd string, cli *CLI) bool {
	switch cmd {
	case "jobs":
		return true
	case "extract", "and":
		return !cli.NoHistory
	}
	return false
}

func defaultDBPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "readdoc.db"
	}
	dir := filepath.Join(home, ".readdoc")
	_ = os.MkdirAll(dir, 0755)
	return filepath.Join(dir, "readdoc.db")
}
