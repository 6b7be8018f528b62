package supabase

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"

	"github.com/etnz/fondos"
	"github.com/hashicorp/go-retryablehttp"
)

// BatchError is the failure of a single write request.
type BatchError struct {
	Collection string
	Offset     int // index of the first record of the batch
	Size       int
	Err        error
}

func (e *BatchError) Error() string {
	return fmt.Sprintf("batch %d of %s (%d records): %v", e.Offset, e.Collection, e.Size, e.Err)
}

func (e *BatchError) Unwrap() error { return e.Err }

// Failed returns every BatchError carried by err.
func Failed(err error) []*BatchError {
	var batches []*BatchError
	var walk func(error)
	walk = func(err error) {
		switch e := err.(type) {
		case nil:
		case *BatchError:
			batches = append(batches, e)
		case interface{ Unwrap() []error }:
			for _, inner := range e.Unwrap() {
				walk(inner)
			}
		}
	}
	walk(err)
	return batches
}

// Insert posts records to collection in batches and returns how many records
// belong to acknowledged batches.
//
// A failing batch (bad status, transport fault, malformed response) is logged
// and skipped; its records are not counted and the next batch is still sent.
// The failures are returned joined together. Insert only stops early when ctx
// is done.
func (c *Client) Insert(ctx context.Context, collection string, records []fondos.Record) (int, error) {
	total := 0
	var errs error
	for i := 0; i < len(records); i += c.batch {
		if err := ctx.Err(); err != nil {
			return total, errors.Join(errs, err)
		}
		chunk := records[i:min(i+c.batch, len(records))]

		if err := c.post(ctx, collection, chunk); err != nil {
			berr := &BatchError{Collection: collection, Offset: i, Size: len(chunk), Err: err}
			log.Printf("  error in batch %d: %v", i, err)
			errs = errors.Join(errs, berr)
			continue
		}
		total += len(chunk)
		log.Printf("  inserted %d/%d records", total, len(records))
	}
	return total, errs
}

// post writes a single batch.
func (c *Client) post(ctx context.Context, collection string, chunk []fondos.Record) error {
	payload, err := json.Marshal(chunk)
	if err != nil {
		return fmt.Errorf("cannot encode batch: %w", err)
	}
	if err := c.limiter.Wait(ctx); err != nil {
		return err
	}

	req, err := retryablehttp.NewRequestWithContext(ctx, http.MethodPost, c.URL(collection), payload)
	if err != nil {
		return fmt.Errorf("cannot create http request %q: %w", c.URL(collection), err)
	}
	resp, body, err := c.do(req)
	if err != nil {
		return err
	}
	if !success(resp.StatusCode) {
		return &StatusError{Code: resp.StatusCode, Status: resp.Status, Message: errorText(body)}
	}
	// the written representation comes back, it must at least be JSON.
	if len(body) > 0 && !json.Valid(body) {
		return fmt.Errorf("malformed response (%s): %q", resp.Status, errorText(body))
	}
	return nil
}
