package main

import (
	"flag"

	"github.com/etnz/fondos/docs"
	"github.com/google/subcommands"
	"github.com/posener/complete/v2"
	"github.com/posener/complete/v2/predict"
)

// fileFlags are the flags naming a file.
var fileFlags = map[string]bool{"env": true, "returns": true, "costs": true, "o": true}

// completion returns the completion tree of every registered subcommand.
func completion(commander *subcommands.Commander) *complete.Command {
	root := &complete.Command{
		Sub:   make(map[string]*complete.Command),
		Flags: predictors(flag.CommandLine),
	}
	commander.VisitCommands(func(_ *subcommands.CommandGroup, c subcommands.Command) {
		fs := flag.NewFlagSet(c.Name(), flag.ContinueOnError)
		c.SetFlags(fs)
		sub := &complete.Command{Flags: predictors(fs)}
		if c.Name() == "topic" {
			sub.Args = predict.Set(docs.Names())
		}
		root.Sub[c.Name()] = sub
	})
	return root
}

func predictors(fs *flag.FlagSet) map[string]complete.Predictor {
	flags := make(map[string]complete.Predictor)
	fs.VisitAll(func(f *flag.Flag) {
		switch {
		case fileFlags[f.Name]:
			flags[f.Name] = predict.Files("*")
		case isBool(f):
			flags[f.Name] = predict.Nothing
		default:
			flags[f.Name] = predict.Something
		}
	})
	return flags
}

func isBool(f *flag.Flag) bool {
	b, ok := f.Value.(interface{ IsBoolFlag() bool })
	return ok && b.IsBoolFlag()
}
