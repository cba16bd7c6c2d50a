package app

import "flag"

// Config represents the command-line parameters for the application.
type Config struct {
	Sim     string
	Scale   int
	TPS     int
	Seed    int64
	Engine  string
	Workers int
}

// NewConfig returns a Config populated with sensible defaults.
func NewConfig() *Config {
	return &Config{Sim: "grayscott", Scale: 3, TPS: 60, Seed: 42, Engine: "pool"}
}

// Bind attaches the configuration to the provided FlagSet.
func (c *Config) Bind(fs *flag.FlagSet) {
	fs.StringVar(&c.Sim, "sim", c.Sim, "simulation to run")
	fs.IntVar(&c.Scale, "scale", c.Scale, "pixel scale multiplier")
	fs.IntVar(&c.TPS, "tps", c.TPS, "ticks per second")
	fs.Int64Var(&c.Seed, "seed", c.Seed, "seed for simulation reset")
	fs.StringVar(&c.Engine, "engine", c.Engine, "execution engine: serial, pool, or opencl")
	fs.IntVar(&c.Workers, "workers", c.Workers, "worker count for the pool engine (0 = one per CPU)")
}
