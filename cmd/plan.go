package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/etnz/fondos"
	"github.com/etnz/fondos/pipeline"
	"github.com/etnz/fondos/renderer"
	"github.com/google/subcommands"
)

// planCmd builds the registry offline.
type planCmd struct {
	src    sourceFlags
	output string
}

func (*planCmd) Name() string     { return "plan" }
func (*planCmd) Synopsis() string { return "show the funds a load would register, offline" }
func (*planCmd) Usage() string {
	return `fmload plan [-returns <file>] [-costs <file>] [-o <registry.jsonl>]

  Reads both extracts and builds the fund registry without reaching the store.
`
}

func (c *planCmd) SetFlags(f *flag.FlagSet) {
	c.src.SetFlags(f)
	f.StringVar(&c.output, "o", "", "write the registry records to this file, as JSON lines")
}

func (c *planCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	cfg := pipeline.DefaultConfig()
	c.src.apply(&cfg)

	returns, costs, err := pipeline.ReadExtracts(cfg)
	if err != nil {
		return exit(err)
	}
	funds, stats := fondos.BuildRegistry(returns, costs)

	if c.output != "" {
		if err := writeRecords(c.output, funds); err != nil {
			return exit(err)
		}
	}

	printMarkdown(renderer.PlanMarkdown(&renderer.Plan{
		ReturnsFile:  cfg.ReturnsFile,
		CostsFile:    cfg.CostsFile,
		InvalidCells: returns.Invalid + costs.Invalid,
		Registry:     stats,
		Classes:      fondos.ClassCounts(funds),
	}))
	return subcommands.ExitSuccess
}

func writeRecords(filename string, records []fondos.Record) error {
	f, err := os.Create(filename)
	if err != nil {
		return fmt.Errorf("cannot create %q: %w", filename, err)
	}
	if err := fondos.EncodeRecords(f, records); err != nil {
		f.Close()
		return fmt.Errorf("cannot write %q: %w", filename, err)
	}
	return f.Close()
}
