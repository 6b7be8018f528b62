// Package cmd implements the subcommands of fmload.
package cmd

import (
	"cmp"
	"errors"
	"flag"
	"fmt"
	"io/fs"
	"os"
	"time"

	"github.com/charmbracelet/glamour"
	"github.com/etnz/fondos/pipeline"
	"github.com/google/subcommands"
	"github.com/joho/godotenv"
	"golang.org/x/term"
)

// Register the subcommands.
// A main package will call Register() to allow subcommands, and Execute() on the user-selected one.
func Register(c *subcommands.Commander) {
	c.Register(&loadCmd{}, "")
	c.Register(&planCmd{}, "")
	c.Register(&keysCmd{}, "")
	c.Register(&topicCmd{}, "")
}

// as a CLI application, it has a very short lived lifecycle, so it is ok to use global variables.

var envFile = flag.String("env", ".env", "dotenv file holding SUPABASE_URL and SUPABASE_KEY, ignored when absent")

// loadEnv reads the dotenv file. Variables already set in the environment win.
func loadEnv() error {
	if err := godotenv.Load(*envFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("%w: cannot read %q: %w", pipeline.ErrConfig, *envFile, err)
	}
	return nil
}

// configFrom returns the default configuration with the store credentials
// found by getenv.
func configFrom(getenv func(string) string) pipeline.Config {
	cfg := pipeline.DefaultConfig()
	cfg.BaseURL = getenv("SUPABASE_URL")
	cfg.APIKey = cmp.Or(getenv("SUPABASE_KEY"), getenv("SUPABASE_SERVICE_ROLE_KEY"))
	return cfg
}

// sourceFlags selects the extracts.
type sourceFlags struct {
	returns string
	costs   string
}

func (s *sourceFlags) SetFlags(f *flag.FlagSet) {
	f.StringVar(&s.returns, "returns", pipeline.DefaultReturnsFile, "returns extract (.xlsx or .csv)")
	f.StringVar(&s.costs, "costs", pipeline.DefaultCostsFile, "costs extract (.xlsx or .csv)")
}

func (s *sourceFlags) apply(cfg *pipeline.Config) {
	cfg.ReturnsFile = s.returns
	cfg.CostsFile = s.costs
}

// storeFlags tunes the access to the remote store.
type storeFlags struct {
	batch   int
	page    int
	timeout time.Duration
	retries int
	pause   time.Duration
	verbose bool
}

func (s *storeFlags) SetFlags(f *flag.FlagSet) {
	d := pipeline.DefaultConfig()
	f.IntVar(&s.batch, "batch", d.BatchSize, "records per write request")
	f.IntVar(&s.page, "page", d.PageSize, "rows per registry read request")
	f.DurationVar(&s.timeout, "timeout", d.Timeout, "timeout of a single request")
	f.IntVar(&s.retries, "retries", 0, "extra attempts for requests failing on a network or server error")
	f.DurationVar(&s.pause, "pause", 0, "minimum delay between two write requests")
	f.BoolVar(&s.verbose, "v", false, "log every HTTP request")
}

func (s *storeFlags) apply(cfg *pipeline.Config) {
	cfg.BatchSize = s.batch
	cfg.PageSize = s.page
	cfg.Timeout = s.timeout
	cfg.Retries = s.retries
	cfg.Pause = s.pause
	cfg.Verbose = s.verbose
}

// storeConfig returns the configuration of a command reaching the store.
func storeConfig(src *sourceFlags, store *storeFlags) (pipeline.Config, error) {
	if err := loadEnv(); err != nil {
		return pipeline.Config{}, err
	}
	cfg := configFrom(os.Getenv)
	if src != nil {
		src.apply(&cfg)
	}
	store.apply(&cfg)
	return cfg, nil
}

// exit reports err and returns the matching exit status.
func exit(err error) subcommands.ExitStatus {
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
	}
	return subcommands.ExitStatus(pipeline.ExitCode(err))
}

// printMarkdown renders doc on a terminal, and prints it raw otherwise.
func printMarkdown(doc string) {
	fd := int(os.Stdout.Fd())
	if !term.IsTerminal(fd) {
		fmt.Print(doc)
		return
	}
	width, _, err := term.GetSize(fd)
	if err != nil || width <= 0 {
		width = 80
	}
	r, err := glamour.NewTermRenderer(glamour.WithAutoStyle(), glamour.WithWordWrap(width))
	if err != nil {
		fmt.Print(doc)
		return
	}
	out, err := r.Render(doc)
	if err != nil {
		fmt.Print(doc)
		return
	}
	fmt.Print(out)
}
