package main

import "github.com/spf13/pflag"

// config holds every flag the entry harness reads (spec §10.3). Zero
// values fall back to the same defaults internal/vm and its heap/stack
// packages already apply, so an empty config is always valid.
type config struct {
	program      string
	input        int32
	take         int
	slabCapacity int
	gcThreshold  int64
	stackDepth   int
	maxSlab      int64
	maxEvalDepth int
	logLevel     string
}

func defaultConfig() *config {
	return &config{
		program:  "from",
		take:     10,
		logLevel: "info",
	}
}

func (c *config) registerFlags(fs *pflag.FlagSet) {
	fs.StringVar(&c.program, "program", c.program, "demonstration program to run (constant, arithmetic, identity-list, sqr, from, mutual-cons)")
	fs.Int32Var(&c.input, "input", 0, "argument for programs that take one; overrides stdin")
	fs.IntVar(&c.take, "take", c.take, "maximum number of list elements to print")
	fs.IntVar(&c.slabCapacity, "slab-capacity", c.slabCapacity, "initial node heap slab capacity (0 = package default)")
	fs.Int64Var(&c.gcThreshold, "gc-threshold", c.gcThreshold, "initial occupancy at which GC first runs (0 = package default)")
	fs.IntVar(&c.stackDepth, "stack-depth", c.stackDepth, "initial operand stack capacity (0 = package default)")
	fs.Int64Var(&c.maxSlab, "max-slab-capacity", c.maxSlab, "fatal occupancy cap for the node heap (0 = unbounded)")
	fs.IntVar(&c.maxEvalDepth, "max-eval-depth", c.maxEvalDepth, "fatal nesting cap for recursive eval (0 = unbounded)")
	fs.StringVar(&c.logLevel, "log-level", c.logLevel, "logrus level: debug, info, warn, error")
}
