package pipeline

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/etnz/fondos/supabase"
)

// Default input files, named after the CMF extract they come from.
const (
	DefaultReturnsFile = "articles-91848.xlsx"
	DefaultCostsFile   = "articles-91847.xlsx"
)

// Config holds every setting of a run. It is built once and never modified.
type Config struct {
	BaseURL string
	APIKey  string

	ReturnsFile string
	CostsFile   string

	BatchSize int
	PageSize  int
	Timeout   time.Duration
	Retries   int
	Pause     time.Duration
	Verbose   bool
}

// DefaultConfig returns a Config with default files and transport settings,
// and no credentials.
func DefaultConfig() Config {
	return Config{
		ReturnsFile: DefaultReturnsFile,
		CostsFile:   DefaultCostsFile,
		BatchSize:   supabase.DefaultBatchSize,
		PageSize:    supabase.DefaultPageSize,
		Timeout:     supabase.DefaultTimeout,
	}
}

// placeholders are the values shipped in configuration templates.
var placeholders = []string{
	"TU_URL_AQUI",
	"TU_KEY_AQUI",
	"https://xxxxx.supabase.co",
	"eyJ...",
}

func isPlaceholder(v string) bool {
	for _, p := range placeholders {
		if strings.EqualFold(strings.TrimRight(v, "/"), p) {
			return true
		}
	}
	return false
}

// Validate checks that the configuration can reach the remote store.
// Every failure wraps ErrConfig.
func (c Config) Validate() error {
	switch {
	case strings.TrimSpace(c.BaseURL) == "":
		return fmt.Errorf("%w: the store URL is not set (SUPABASE_URL)", ErrConfig)
	case strings.TrimSpace(c.APIKey) == "":
		return fmt.Errorf("%w: the store key is not set (SUPABASE_KEY)", ErrConfig)
	case isPlaceholder(c.BaseURL):
		return fmt.Errorf("%w: the store URL is still the placeholder %q", ErrConfig, c.BaseURL)
	case isPlaceholder(c.APIKey):
		return fmt.Errorf("%w: the store key is still a placeholder", ErrConfig)
	}
	u, err := url.Parse(c.BaseURL)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return fmt.Errorf("%w: invalid store URL %q", ErrConfig, c.BaseURL)
	}
	if c.BatchSize <= 0 {
		return fmt.Errorf("%w: batch size must be positive, got %d", ErrConfig, c.BatchSize)
	}
	if c.PageSize <= 0 {
		return fmt.Errorf("%w: page size must be positive, got %d", ErrConfig, c.PageSize)
	}
	if c.Retries < 0 {
		return fmt.Errorf("%w: retries must not be negative, got %d", ErrConfig, c.Retries)
	}
	return nil
}

// Options returns the settings of the store client.
func (c Config) Options() supabase.Options {
	return supabase.Options{
		BaseURL:   c.BaseURL,
		APIKey:    c.APIKey,
		BatchSize: c.BatchSize,
		PageSize:  c.PageSize,
		Timeout:   c.Timeout,
		Retries:   c.Retries,
		Pause:     c.Pause,
		Verbose:   c.Verbose,
	}
}
