package cmd

import (
	"context"
	"flag"

	"github.com/etnz/fondos/pipeline"
	"github.com/etnz/fondos/renderer"
	"github.com/google/subcommands"
)

type loadCmd struct {
	src   sourceFlags
	store storeFlags
}

func (*loadCmd) Name() string     { return "load" }
func (*loadCmd) Synopsis() string { return "load both extracts into the fund database" }
func (*loadCmd) Usage() string {
	return `fmload load [-returns <file>] [-costs <file>] [-batch <n>] [-retries <n>] ...

  Registers the funds of both extracts, resolves their ids and loads their
  return and cost records. See 'fmload topic load'.
`
}

func (c *loadCmd) SetFlags(f *flag.FlagSet) {
	c.src.SetFlags(f)
	c.store.SetFlags(f)
}

func (c *loadCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	cfg, err := storeConfig(&c.src, &c.store)
	if err != nil {
		return exit(err)
	}

	summary, err := pipeline.New(cfg, nil).Run(ctx)
	printMarkdown(renderer.SummaryMarkdown(&summary))
	return exit(err)
}
