package cli

import (
	"github.com/spf13/pflag"

	"github.com/yaklabco/dllup/pkg/config"
)

// globalFlags are the persistent flags shared by every command.
type globalFlags struct {
	debug      bool
	configPath string
	color      string
}

func (g *globalFlags) flagSet() *pflag.FlagSet {
	fs := pflag.NewFlagSet("global", pflag.ContinueOnError)
	fs.BoolVar(&g.debug, "debug", false, "enable debug logging")
	fs.StringVar(&g.configPath, "config", "", "path to config file")
	fs.StringVar(&g.color, "color", string(config.ColorAuto), "colorize output: auto, always, never")
	return fs
}

// classifyFlags configure classification and are shared by the commands that
// classify documents.
type classifyFlags struct {
	grammars      []string
	duplicateRefs string
	guessUntagged bool
	noAnchors     bool
	ignore        []string
	jobs          int
}

func (c *classifyFlags) flagSet() *pflag.FlagSet {
	fs := pflag.NewFlagSet("classify", pflag.ContinueOnError)
	fs.StringSliceVarP(&c.grammars, "grammar", "g", nil, "sub-grammar binding tag[=grammar][.dialect] (repeatable)")
	fs.StringVar(&c.duplicateRefs, "duplicate-refs", "", "winning definition of a duplicated reference id: last, first")
	fs.BoolVar(&c.guessUntagged, "guess-untagged", false, "guess the language of fences without a lang line")
	fs.BoolVar(&c.noAnchors, "no-anchors", false, "do not compute heading anchors")
	fs.StringSliceVar(&c.ignore, "ignore", nil, "glob patterns to ignore")
	fs.IntVarP(&c.jobs, "jobs", "j", 0, "number of parallel workers (0 = auto)")
	return fs
}

// apply copies the flags that were set on the command line into cfg.
func (c *classifyFlags) apply(fs *pflag.FlagSet, cfg *config.Config) {
	if fs.Changed("grammar") {
		cfg.Grammars = c.grammars
	}
	cfg.DuplicateRefs = c.duplicateRefs
	if fs.Changed("guess-untagged") {
		cfg.GuessUntagged = config.Bool(c.guessUntagged)
	}
	if fs.Changed("no-anchors") {
		cfg.HeadingAnchors = config.Bool(!c.noAnchors)
	}
	if fs.Changed("ignore") {
		cfg.Ignore = c.ignore
	}
	cfg.Jobs = c.jobs
}
