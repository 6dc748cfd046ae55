package cmd

import (
	"flag"

	"github.com/google/subcommands"
	"github.com/posener/complete/v2"
	"github.com/posener/complete/v2/predict"
)

// Completion returns the shell completion of the commands registered in 'c'.
func Completion(c *subcommands.Commander) *complete.Command {
	root := &complete.Command{
		Sub:   map[string]*complete.Command{},
		Flags: flagPredictors(flag.CommandLine),
	}
	c.VisitCommands(func(_ *subcommands.CommandGroup, cmd subcommands.Command) {
		fs := flag.NewFlagSet(cmd.Name(), flag.ContinueOnError)
		cmd.SetFlags(fs)
		root.Sub[cmd.Name()] = &complete.Command{Flags: flagPredictors(fs), Args: predictArgs(cmd.Name())}
	})
	return root
}

// flagPredictors predicts the values of the flags of 'fs'.
func flagPredictors(fs *flag.FlagSet) map[string]complete.Predictor {
	flags := map[string]complete.Predictor{}
	fs.VisitAll(func(f *flag.Flag) {
		switch f.Name {
		case "goal-policy":
			flags[f.Name] = predict.Set{"first", "soonest", "shortfall"}
		case "type":
			flags[f.Name] = predict.Set{"income", "expense"}
		case "format":
			flags[f.Name] = predict.Set{"json", "xml"}
		case "dir":
			flags[f.Name] = predict.Dirs("*")
		default:
			if b, ok := f.Value.(interface{ IsBoolFlag() bool }); ok && b.IsBoolFlag() {
				flags[f.Name] = predict.Nothing
			} else {
				flags[f.Name] = predict.Something
			}
		}
	})
	return flags
}

// predictArgs predicts the positional arguments of command 'name'.
func predictArgs(name string) complete.Predictor {
	switch name {
	case "import-holdings":
		return predict.Files("*")
	case "topic":
		return predict.Set(topics())
	default:
		return predict.Nothing
	}
}
