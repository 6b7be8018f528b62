package pipeline

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"testing"

	"github.com/etnz/fondos"
	"github.com/etnz/fondos/supabase"
	"github.com/shopspring/decimal"
)

// fakeStore records inserts and assigns ids to the funds it receives.
type fakeStore struct {
	inserted map[string][]fondos.Record
	ids      fondos.KeyMap
	keysErr  error
	reject   map[string]bool // collections whose batches are all rejected
}

func newFakeStore() *fakeStore {
	return &fakeStore{inserted: make(map[string][]fondos.Record), ids: make(fondos.KeyMap)}
}

func (s *fakeStore) Insert(_ context.Context, collection string, records []fondos.Record) (int, error) {
	if s.reject[collection] {
		return 0, errors.Join(&supabase.BatchError{Collection: collection, Size: len(records), Err: errors.New("400 Bad Request")})
	}
	s.inserted[collection] = append(s.inserted[collection], records...)
	if collection == fondos.CollectionFunds {
		for _, r := range records {
			k := fondos.Key{Run: r[fondos.ColRun].(int64), Serie: r[fondos.ColSerie].(string)}
			s.ids[k] = int64(len(s.ids) + 1)
		}
	}
	return len(records), nil
}

func (s *fakeStore) Keys(context.Context) (fondos.KeyMap, error) {
	if s.keysErr != nil {
		return fondos.KeyMap{}, s.keysErr
	}
	return s.ids, nil
}

func validConfig() Config {
	cfg := DefaultConfig()
	cfg.BaseURL = "https://abcd.supabase.co"
	cfg.APIKey = "service-key"
	cfg.ReturnsFile = "returns.xlsx"
	cfg.CostsFile = "costs.xlsx"
	return cfg
}

// memReader serves extracts from memory.
func memReader(t *testing.T) Reader {
	return func(path string, schema fondos.Schema) (*fondos.Table, error) {
		tb := fondos.NewTable(path, schema)
		var rows []map[string]string
		switch path {
		case "returns.xlsx":
			rows = []map[string]string{
				{fondos.ColRun: "1001", fondos.ColSerie: "A", fondos.ColInvestorClass: "APV", fondos.ColAsOf: "20250630", "rent_real_1a": "3.5"},
				{fondos.ColRun: "2002", fondos.ColSerie: "B", fondos.ColAsOf: "20250630"},
			}
		case "costs.xlsx":
			rows = []map[string]string{
				{fondos.ColRun: "1001", fondos.ColSerie: "A", fondos.ColAssets: "150000.0"},
				{fondos.ColRun: "2002", fondos.ColSerie: "B", fondos.ColAssets: "0.5"},
			}
		default:
			return nil, fmt.Errorf("cannot open extract %q: %w", path, fs.ErrNotExist)
		}
		for _, r := range rows {
			if err := tb.Append(r); err != nil {
				t.Fatalf("Append() unexpected error: %v", err)
			}
		}
		return tb, nil
	}
}

func newPipeline(t *testing.T, cfg Config, store Store) *Pipeline {
	p := New(cfg, store)
	p.read = memReader(t)
	return p
}

func TestRun_Done(t *testing.T) {
	store := newFakeStore()
	got, err := newPipeline(t, validConfig(), store).Run(context.Background())
	if err != nil {
		t.Fatalf("Run() unexpected error: %v", err)
	}
	if got.State != Done {
		t.Errorf("State = %v, want Done", got.State)
	}
	if got.FundsLoaded != 2 || got.KeysResolved != 2 || got.ReturnsLoaded != 2 || got.CostsLoaded != 2 {
		t.Errorf("Run() summary = %+v", got)
	}
	if !got.Complete() {
		t.Errorf("Complete() = false, want true for %+v", got)
	}
	if want := decimal.RequireFromString("150000.5"); !got.Assets.Equal(want) {
		t.Errorf("Assets = %v, want %v", got.Assets, want)
	}
	r := store.inserted[fondos.CollectionReturns][0]
	if r[fondos.ColFund] != int64(1) || r["rent_real_1a"] != 3.5 {
		t.Errorf("first return record = %v", r)
	}
}

func TestRun_Aborted(t *testing.T) {
	placeholder := validConfig()
	placeholder.BaseURL = "https://xxxxx.supabase.co"

	missing := validConfig()
	missing.CostsFile = "articles-91847.xlsx"

	tests := []struct {
		name    string
		cfg     Config
		keysErr error
		reached State
		want    error
		code    int
	}{
		{"placeholder", placeholder, nil, ValidateConfig, ErrConfig, 3},
		{"missing source", missing, nil, ReadSources, ErrSourceMissing, 4},
		{"registry read fails", validConfig(), &supabase.StatusError{Code: 500, Status: "500 Internal Server Error"}, ResolveKeys, ErrResolution, 6},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := newFakeStore()
			store.keysErr = tt.keysErr
			got, err := newPipeline(t, tt.cfg, store).Run(context.Background())
			if !errors.Is(err, tt.want) {
				t.Fatalf("Run() error = %v, want %v", err, tt.want)
			}
			if got.State != Aborted || got.Reached != tt.reached {
				t.Errorf("Run() ended %v in %v, want Aborted in %v", got.State, got.Reached, tt.reached)
			}
			if n := len(store.inserted[fondos.CollectionReturns]) + len(store.inserted[fondos.CollectionCosts]); n != 0 {
				t.Errorf("Run() inserted %d fact records after abort", n)
			}
			if code := ExitCode(err); code != tt.code {
				t.Errorf("ExitCode() = %d, want %d", code, tt.code)
			}
			if got.Complete() {
				t.Error("Complete() = true for an aborted run")
			}
		})
	}
}

func TestRun_EmptyRegistry(t *testing.T) {
	store := newFakeStore()
	store.reject = map[string]bool{fondos.CollectionFunds: true}

	got, err := newPipeline(t, validConfig(), store).Run(context.Background())
	if !errors.Is(err, ErrResolution) {
		t.Fatalf("Run() error = %v, want ErrResolution", err)
	}
	if got.FailedBatches != 1 || got.FundsLoaded != 0 {
		t.Errorf("Run() summary = %+v", got)
	}
}

func TestRun_PartialLoad(t *testing.T) {
	store := newFakeStore()
	store.reject = map[string]bool{fondos.CollectionCosts: true}

	got, err := newPipeline(t, validConfig(), store).Run(context.Background())
	if err != nil {
		t.Fatalf("Run() unexpected error: %v", err)
	}
	if got.State != Done || got.Complete() {
		t.Errorf("Run() = %v, complete %v, want Done and incomplete", got.State, got.Complete())
	}
	if got.CostsLoaded != 0 || got.Costs.Built != 2 || got.FailedBatches != 1 {
		t.Errorf("Run() summary = %+v", got)
	}
}

func TestRun_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	store := &cancelledStore{}
	got, err := newPipeline(t, validConfig(), store).Run(ctx)
	if !errors.Is(err, context.Canceled) || got.State != Aborted {
		t.Errorf("Run() = %v, %v, want Aborted, context.Canceled", got.State, err)
	}
	if ExitCode(err) != 1 {
		t.Errorf("ExitCode(%v) = %d, want 1", err, ExitCode(err))
	}
}

type cancelledStore struct{}

func (cancelledStore) Insert(ctx context.Context, _ string, _ []fondos.Record) (int, error) {
	return 0, ctx.Err()
}

func (cancelledStore) Keys(context.Context) (fondos.KeyMap, error) { return nil, nil }
