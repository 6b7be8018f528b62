// Package supabase talks to the remote fund store through its PostgREST
// interface (https://<project>.supabase.co/rest/v1/<collection>).
package supabase

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/PaesslerAG/jsonpath"
	"github.com/hashicorp/go-retryablehttp"
	"golang.org/x/time/rate"
)

// Default values of Options.
const (
	DefaultBatchSize = 100
	DefaultPageSize  = 1000 // PostgREST default max-rows
	DefaultTimeout   = 30 * time.Second
)

// Options configures a Client.
type Options struct {
	BaseURL   string        // project URL, e.g. https://xxxxx.supabase.co
	APIKey    string        // sent both as apikey and bearer token
	BatchSize int           // records per write request
	PageSize  int           // rows per read request
	Timeout   time.Duration // per request
	Retries   int           // extra attempts on transport faults and 5xx; 0 disables retries
	Pause     time.Duration // minimum delay between two write requests
	Verbose   bool          // log every HTTP request
}

// Client is a PostgREST client. It is meant for sequential use.
type Client struct {
	base    string
	apiKey  string
	batch   int
	page    int
	http    *retryablehttp.Client
	limiter *rate.Limiter
}

// New returns a Client for o. Zero values of o fall back to the defaults.
func New(o Options) *Client {
	if o.BatchSize <= 0 {
		o.BatchSize = DefaultBatchSize
	}
	if o.PageSize <= 0 {
		o.PageSize = DefaultPageSize
	}
	if o.Timeout <= 0 {
		o.Timeout = DefaultTimeout
	}

	hc := retryablehttp.NewClient()
	hc.RetryMax = max(o.Retries, 0)
	hc.RetryWaitMin = 500 * time.Millisecond
	hc.RetryWaitMax = 5 * time.Second
	hc.HTTPClient.Timeout = o.Timeout
	// keep the last response: the caller reports its status.
	hc.ErrorHandler = retryablehttp.PassthroughErrorHandler
	hc.Logger = nil
	if o.Verbose {
		hc.Logger = log.Default()
		hc.ResponseLogHook = func(_ retryablehttp.Logger, resp *http.Response) {
			log.Printf("%v %v/%v %v", resp.Request.Method, resp.Request.URL.Host, resp.Request.URL.Path, resp.Status)
		}
	}

	limiter := rate.NewLimiter(rate.Inf, 1)
	if o.Pause > 0 {
		limiter = rate.NewLimiter(rate.Every(o.Pause), 1)
	}

	return &Client{
		base:    restRoot(o.BaseURL),
		apiKey:  o.APIKey,
		batch:   o.BatchSize,
		page:    o.PageSize,
		http:    hc,
		limiter: limiter,
	}
}

// restRoot returns the PostgREST root of a project URL, with a trailing slash.
func restRoot(base string) string {
	base = strings.TrimRight(base, "/")
	if !strings.HasSuffix(base, "/rest/v1") {
		base += "/rest/v1"
	}
	return base + "/"
}

// URL returns the resource URL of collection.
func (c *Client) URL(collection string) string { return c.base + collection }

// header returns the fixed header set of every request.
func (c *Client) header() http.Header {
	h := make(http.Header)
	h.Set("apikey", c.apiKey)
	h.Set("Authorization", "Bearer "+c.apiKey)
	h.Set("Content-Type", "application/json")
	h.Set("Prefer", "return=representation")
	return h
}

// do sends a request and returns the status and body of the response.
func (c *Client) do(req *retryablehttp.Request) (*http.Response, []byte, error) {
	for k, v := range c.header() {
		req.Header[k] = v
	}
	resp, err := c.http.Do(req)
	if err != nil {
		return nil, nil, fmt.Errorf("cannot execute http request: %w", err)
	}
	defer resp.Body.Close()

	var buf bytes.Buffer
	if _, err := io.Copy(&buf, resp.Body); err != nil {
		return resp, nil, fmt.Errorf("cannot read receiving http body: %w", err)
	}
	return resp, buf.Bytes(), nil
}

// success reports whether status acknowledges the request.
func success(status int) bool { return status >= 200 && status < 300 }

// StatusError is a response that did not acknowledge the request.
type StatusError struct {
	Code    int
	Status  string
	Message string
}

func (e *StatusError) Error() string {
	if e.Message == "" {
		return e.Status
	}
	return fmt.Sprintf("%s: %s", e.Status, e.Message)
}

// maxErrorText caps the body excerpt kept in a StatusError.
const maxErrorText = 200

// errorText extracts a readable message from an error body. PostgREST errors
// are JSON objects with a message (and sometimes a hint), anything else is
// truncated.
func errorText(body []byte) string {
	var v any
	if err := json.Unmarshal(body, &v); err == nil {
		var parts []string
		for _, path := range []string{"$.message", "$.details", "$.hint"} {
			if s, err := jsonpath.Get(path, v); err == nil {
				if str, ok := s.(string); ok && str != "" {
					parts = append(parts, str)
				}
			}
		}
		if len(parts) > 0 {
			return strings.Join(parts, "; ")
		}
	}
	text := strings.TrimSpace(string(body))
	if len(text) > maxErrorText {
		text = text[:maxErrorText]
	}
	return text
}
