package cmd

import (
	"context"
	"flag"
	"fmt"

	"github.com/etnz/fondos/pipeline"
	"github.com/etnz/fondos/supabase"
	"github.com/google/subcommands"
)

type keysCmd struct {
	store storeFlags
}

func (*keysCmd) Name() string     { return "keys" }
func (*keysCmd) Synopsis() string { return "count the funds registered in the store" }
func (*keysCmd) Usage() string {
	return `fmload keys [-page <n>]

  Reads the fund registry back from the store and prints how many funds can
  be resolved. Useful to check the credentials before a load.
`
}

func (c *keysCmd) SetFlags(f *flag.FlagSet) { c.store.SetFlags(f) }

func (c *keysCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	cfg, err := storeConfig(nil, &c.store)
	if err != nil {
		return exit(err)
	}
	if err := cfg.Validate(); err != nil {
		return exit(err)
	}

	ids, err := supabase.New(cfg.Options()).Keys(ctx)
	if err != nil {
		return exit(fmt.Errorf("%w: %w", pipeline.ErrResolution, err))
	}
	fmt.Printf("%d funds registered\n", len(ids))
	return subcommands.ExitSuccess
}
