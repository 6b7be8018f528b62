// Package pipeline sequences the load of the CMF fund extracts into the
// remote store: validate the configuration, read both extracts, load the fund
// registry, resolve the fund ids, then load return and cost records.
//
// Only a bad configuration, a missing or unreadable extract and an unusable
// registry stop a run. Rejected batches and unresolved rows are counted in the
// Summary and the run goes on.
package pipeline

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log"
	"time"

	"github.com/etnz/fondos"
	"github.com/etnz/fondos/source"
	"github.com/etnz/fondos/supabase"
	"github.com/google/uuid"
)

// Store is the remote store, as seen by a run.
type Store interface {
	// Insert writes records to collection and returns how many were acknowledged.
	Insert(ctx context.Context, collection string, records []fondos.Record) (int, error)
	// Keys returns the id of every fund in the registry.
	Keys(ctx context.Context) (fondos.KeyMap, error)
}

// Reader loads an extract against a schema.
type Reader func(path string, schema fondos.Schema) (*fondos.Table, error)

// Pipeline is a single run. It is not reusable.
type Pipeline struct {
	cfg   Config
	store Store
	read  Reader

	summary Summary
}

// New returns a Pipeline loading into store. A nil store means the remote
// store described by cfg.
func New(cfg Config, store Store) *Pipeline {
	if store == nil {
		store = supabase.New(cfg.Options())
	}
	return &Pipeline{cfg: cfg, store: store, read: source.Read}
}

func (p *Pipeline) enter(s State) {
	p.summary.Reached = s
	log.Printf("== %v", s)
}

// abort ends the run on a fatal error.
func (p *Pipeline) abort(err error) error {
	p.summary.State = Aborted
	p.summary.Err = err
	log.Printf("aborted in %v: %v", p.summary.Reached, err)
	return err
}

// Run executes every step and returns the account of the run. The error is
// non nil only when the run is Aborted.
func (p *Pipeline) Run(ctx context.Context) (Summary, error) {
	start := time.Now()
	p.summary = Summary{RunID: uuid.New(), State: Init, Reached: Init}
	log.Printf("run %v", p.summary.RunID)
	err := p.run(ctx)
	if err == nil {
		p.summary.State = Done
		p.enter(Done)
	}
	p.summary.Duration = time.Since(start)
	return p.summary, err
}

func (p *Pipeline) run(ctx context.Context) error {
	s := &p.summary

	p.enter(ValidateConfig)
	if err := p.cfg.Validate(); err != nil {
		return p.abort(err)
	}

	p.enter(ReadSources)
	returns, costs, err := readExtracts(p.read, p.cfg)
	if err != nil {
		return p.abort(err)
	}
	s.InvalidCells = returns.Invalid + costs.Invalid

	p.enter(LoadRegistry)
	funds, stats := fondos.BuildRegistry(returns, costs)
	s.Registry = stats
	log.Printf("%d funds (%d duplicates dropped, %d rows without key)", stats.Funds, stats.Duplicates, stats.InvalidKey)
	if s.FundsLoaded, err = p.insert(ctx, fondos.CollectionFunds, funds); err != nil {
		return p.abort(err)
	}

	p.enter(ResolveKeys)
	ids, err := p.store.Keys(ctx)
	if err != nil {
		return p.abort(fmt.Errorf("%w: %w", ErrResolution, err))
	}
	if len(ids) == 0 {
		return p.abort(fmt.Errorf("%w: the registry %s is empty", ErrResolution, fondos.CollectionFunds))
	}
	s.KeysResolved = len(ids)
	log.Printf("%d funds resolved", len(ids))

	p.enter(LoadReturns)
	records, rstats := fondos.BuildReturns(returns, ids)
	s.Returns = rstats
	logFacts("return", rstats)
	if s.ReturnsLoaded, err = p.insert(ctx, fondos.CollectionReturns, records); err != nil {
		return p.abort(err)
	}

	p.enter(LoadCosts)
	records, cstats := fondos.BuildCosts(costs, ids)
	s.Costs = cstats
	s.Assets = totalAssets(records)
	logFacts("cost", cstats)
	if s.CostsLoaded, err = p.insert(ctx, fondos.CollectionCosts, records); err != nil {
		return p.abort(err)
	}
	return nil
}

// ReadExtracts reads the returns and costs extracts named by cfg.
// A missing file wraps ErrSourceMissing, any other failure ErrSourceInvalid.
func ReadExtracts(cfg Config) (returns, costs *fondos.Table, err error) {
	return readExtracts(source.Read, cfg)
}

func readExtracts(read Reader, cfg Config) (returns, costs *fondos.Table, err error) {
	if returns, err = readSource(read, cfg.ReturnsFile, fondos.ReturnsSchema); err != nil {
		return nil, nil, err
	}
	if costs, err = readSource(read, cfg.CostsFile, fondos.CostsSchema); err != nil {
		return nil, nil, err
	}
	log.Printf("read %d return rows and %d cost rows", returns.Len(), costs.Len())
	return returns, costs, nil
}

// readSource reads an extract and classifies its failure.
func readSource(read Reader, path string, schema fondos.Schema) (*fondos.Table, error) {
	t, err := read(path, schema)
	switch {
	case err == nil:
		return t, nil
	case errors.Is(err, fs.ErrNotExist):
		return nil, fmt.Errorf("%w: %s: %w", ErrSourceMissing, path, err)
	default:
		return nil, fmt.Errorf("%w: %w", ErrSourceInvalid, err)
	}
}

// insert loads records into collection. Rejected batches are counted and the
// run goes on; only a cancelled context is fatal.
func (p *Pipeline) insert(ctx context.Context, collection string, records []fondos.Record) (int, error) {
	log.Printf("inserting %d records into %s", len(records), collection)
	n, err := p.store.Insert(ctx, collection, records)
	if err != nil {
		if cerr := ctx.Err(); cerr != nil {
			return n, cerr
		}
		failed := len(supabase.Failed(err))
		if failed == 0 {
			failed = 1
		}
		p.summary.FailedBatches += failed
		log.Printf("%d of %d records rejected by %s", len(records)-n, len(records), collection)
	}
	return n, nil
}

func logFacts(kind string, s fondos.FactStats) {
	log.Printf("%d %s records from %d rows (%d unresolved, %d without key)", s.Built, kind, s.Rows, s.Unresolved, s.InvalidKey)
	if s.DateCorrected > 0 {
		log.Printf("warning: %d %s records dated %v for lack of a readable fm_fecha", s.DateCorrected, kind, fondos.FallbackAsOf)
	}
}
