//go:build ebiten

package main

import (
	"errors"
	"flag"
	"log"
	"strconv"

	"fieldlab/internal/app"
	"fieldlab/internal/core"
	_ "fieldlab/internal/sims/grayscott"
	_ "fieldlab/internal/sims/wave"

	"github.com/hajimehoshi/ebiten/v2"
)

func main() {
	cfg := app.NewConfig()
	cfg.Bind(flag.CommandLine)
	flag.Parse()

	factory, ok := core.Sims()[cfg.Sim]
	if !ok {
		log.Fatalf("unknown sim %q", cfg.Sim)
	}

	sim := factory(map[string]string{
		"engine":  cfg.Engine,
		"workers": strconv.Itoa(cfg.Workers),
	})
	sim.Reset(cfg.Seed)

	game := app.New(sim, cfg.Scale, cfg.Seed)
	size := sim.Size()

	ebiten.SetWindowTitle("fieldlab — " + sim.Name())
	ebiten.SetTPS(cfg.TPS)
	ebiten.SetWindowSize(size.W*cfg.Scale, size.H*cfg.Scale)

	if err := ebiten.RunGame(game); err != nil && !errors.Is(err, ebiten.Termination) {
		log.Fatal(err)
	}
}
