package wave

import "strconv"

// Params holds the wave propagation coefficients.
type Params struct {
	Damping  float32
	Strength float32
}

// Config holds grid, engine, and kernel parameters for the simulation.
type Config struct {
	Width   int
	Height  int
	Engine  string
	Workers int
	Params  Params
}

// DefaultConfig returns the default configuration.
func DefaultConfig() Config {
	return Config{
		Width:  256,
		Height: 256,
		Engine: "pool",
		Params: Params{Damping: 0.99, Strength: 0.5},
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
	if v, ok := cfg["engine"]; ok && v != "" {
		c.Engine = v
	}
	if v, ok := cfg["workers"]; ok {
		if parsed, err := strconv.Atoi(v); err == nil {
			c.Workers = parsed
		}
	}
	if v, ok := cfg["damping"]; ok {
		if parsed, err := strconv.ParseFloat(v, 32); err == nil && parsed > 0 {
			c.Params.Damping = float32(parsed)
		}
	}
	if v, ok := cfg["strength"]; ok {
		if parsed, err := strconv.ParseFloat(v, 32); err == nil && parsed > 0 {
			c.Params.Strength = float32(parsed)
		}
	}
	return c
}
