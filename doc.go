// Package fondos models the CMF mutual fund extracts and turns them into the
// records of a remote fund registry.
//
// Two extracts are involved:
//   - the returns extract, one row per fund series with its return figures,
//   - the costs extract, one row per fund series with its synthetic cost and
//     assets under management.
//
// A fund series is identified by its natural Key (fo_run, fm_serie). The
// registry (fondos_mutuos) holds one record per Key, built by BuildRegistry
// as an outer join of both extracts. Once the registry is stored remotely, each
// Key receives a surrogate id, collected in a KeyMap, and BuildReturns and
// BuildCosts produce the fact records that reference it.
//
// Every record is sparse: a field that was not reported in the source is
// omitted rather than written as zero or null.
//
// This package serves as the foundational logic for the `fmload` command-line
// tool; reading files and talking to the remote store live in the source and
// supabase packages.
package fondos
