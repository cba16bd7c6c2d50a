package grayscott

import "strconv"

// Params holds the reaction-diffusion coefficients.
type Params struct {
	Da float32
	Db float32
	F  float32
	K  float32
	Dt float32
}

// Config holds grid, engine, and kernel parameters for the simulation.
type Config struct {
	Width   int
	Height  int
	Seeds   int
	Engine  string
	Workers int
	Params  Params
}

// DefaultConfig returns the default configuration. Dt is stable in [1.0, 1.4]
// for the default coefficients.
func DefaultConfig() Config {
	return Config{
		Width:  256,
		Height: 256,
		Seeds:  12,
		Engine: "pool",
		Params: Params{Da: 0.16, Db: 0.08, F: 0.055, K: 0.062, Dt: 1.0},
	}
}

// FromMap populates a Config from a string map.
func FromMap(cfg map[string]string) Config {
	c := DefaultConfig()
	if cfg == nil {
		return c
	}
	if v, ok := cfg["w"]; ok {
		if parsed, err := strconv.Atoi(v); err == nil && parsed > 2 {
			c.Width = parsed
		}
	}
	if v, ok := cfg["h"]; ok {
		if parsed, err := strconv.Atoi(v); err == nil && parsed > 2 {
			c.Height = parsed
		}
	}
	if v, ok := cfg["seeds"]; ok {
		if parsed, err := strconv.Atoi(v); err == nil && parsed >= 0 {
			c.Seeds = parsed
		}
	}
	if v, ok := cfg["engine"]; ok && v != "" {
		c.Engine = v
	}
	if v, ok := cfg["workers"]; ok {
		if parsed, err := strconv.Atoi(v); err == nil {
			c.Workers = parsed
		}
	}
	parseFloat(cfg, "da", &c.Params.Da)
	parseFloat(cfg, "db", &c.Params.Db)
	parseFloat(cfg, "f", &c.Params.F)
	parseFloat(cfg, "k", &c.Params.K)
	parseFloat(cfg, "dt", &c.Params.Dt)
	return c
}

func parseFloat(cfg map[string]string, key string, dst *float32) {
	v, ok := cfg[key]
	if !ok {
		return
	}
	if parsed, err := strconv.ParseFloat(v, 32); err == nil && parsed > 0 {
		*dst = float32(parsed)
	}
}
