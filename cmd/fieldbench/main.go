package main

import (
	"flag"
	"fmt"
	"image"
	"image/png"
	"log"
	"math"
	"os"
	"runtime"
	"strconv"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	"fieldlab/internal/core"
	_ "fieldlab/internal/sims/grayscott"
	_ "fieldlab/internal/sims/wave"
)

type kvList []string

func (l *kvList) String() string {
	return strings.Join(*l, ",")
}

func (l *kvList) Set(value string) error {
	*l = append(*l, value)
	return nil
}

func main() {
	simName := flag.String("sim", "grayscott", "simulation to run")
	steps := flag.Int("steps", 1000, "number of ticks to simulate")
	seed := flag.Int64("seed", 42, "seed for the initial state")
	snapshot := flag.String("snapshot", "", "write the final tone-mapped frame to this PNG file")
	compare := flag.Bool("compare", false, "benchmark serial vs pool engines across worker counts")
	workers := flag.Int("workers", runtime.NumCPU(), "max worker count for -compare")
	var overrides kvList
	flag.Var(&overrides, "set", "sim parameter override in key=value form (repeatable)")
	flag.Parse()

	factory, ok := core.Sims()[*simName]
	if !ok {
		log.Fatalf("unknown sim %q", *simName)
	}

	if *compare {
		runComparison(factory, *simName, *steps, *seed, *workers, overrides)
		return
	}

	sim := factory(overrideMap(overrides))
	sim.Reset(*seed)

	progress := core.NewFixedStep(1)
	start := time.Now()
	for i := 0; i < *steps; i++ {
		sim.Step()
		if progress.ShouldStep() {
			log.Printf("step %d/%d", i+1, *steps)
		}
	}
	elapsed := time.Since(start)
	fmt.Printf("%s: %d steps in %s (%.0f steps/s)\n",
		*simName, *steps, elapsed.Round(time.Millisecond), float64(*steps)/elapsed.Seconds())

	if fp, ok := sim.(core.FieldProvider); ok {
		printStats(fp.Field())
	}
	if *snapshot != "" {
		if err := writeSnapshot(sim, *snapshot); err != nil {
			log.Fatalf("writing snapshot: %v", err)
		}
		fmt.Printf("wrote %s\n", *snapshot)
	}
	closeSim(sim)
}

func runComparison(factory core.Factory, name string, steps int, seed int64, maxWorkers int, overrides kvList) {
	type candidate struct {
		label   string
		engine  string
		workers int
	}
	candidates := []candidate{{label: "serial", engine: "serial"}}
	for n := 1; n <= maxWorkers; n *= 2 {
		candidates = append(candidates, candidate{label: fmt.Sprintf("pool-%d", n), engine: "pool", workers: n})
	}

	type result struct {
		elapsed  time.Duration
		checksum float64
	}
	results := make([]result, len(candidates))

	var g errgroup.Group
	// One candidate at a time so timings do not contend for cores.
	g.SetLimit(1)
	for i, cand := range candidates {
		i, cand := i, cand
		g.Go(func() error {
			cfg := overrideMap(overrides)
			cfg["engine"] = cand.engine
			cfg["workers"] = strconv.Itoa(cand.workers)
			sim := factory(cfg)
			sim.Reset(seed)
			start := time.Now()
			for s := 0; s < steps; s++ {
				sim.Step()
			}
			elapsed := time.Since(start)
			sum := 0.0
			if fp, ok := sim.(core.FieldProvider); ok {
				sum = checksum(fp.Field())
			}
			closeSim(sim)
			results[i] = result{elapsed: elapsed, checksum: sum}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		log.Fatal(err)
	}

	fmt.Printf("%s, %d steps, seed %d:\n", name, steps, seed)
	for i, r := range results {
		fmt.Printf("  %-9s %10s  %9.1f steps/s  checksum %.6f\n",
			candidates[i].label, r.elapsed.Round(time.Millisecond),
			float64(steps)/r.elapsed.Seconds(), r.checksum)
	}
	for i, r := range results[1:] {
		if math.Abs(r.checksum-results[0].checksum) > 1e-6 {
			log.Fatalf("engine mismatch: %s checksum %.9f differs from serial %.9f",
				candidates[i+1].label, r.checksum, results[0].checksum)
		}
	}
	fmt.Println("all engines agree")
}

func overrideMap(overrides kvList) map[string]string {
	cfg := map[string]string{}
	for _, kv := range overrides {
		parts := strings.SplitN(kv, "=", 2)
		if len(parts) != 2 {
			continue
		}
		cfg[parts[0]] = parts[1]
	}
	return cfg
}

func printStats(f *core.Field) {
	report := func(name string, vals []float32) {
		min, max := vals[0], vals[0]
		sum := 0.0
		for _, v := range vals {
			if v < min {
				min = v
			}
			if v > max {
				max = v
			}
			sum += float64(v)
		}
		fmt.Printf("  channel %s: min %.4f max %.4f mean %.4f\n",
			name, min, max, sum/float64(len(vals)))
	}
	report("A", f.A)
	report("B", f.B)
}

func checksum(f *core.Field) float64 {
	sum := 0.0
	for i := range f.A {
		sum += float64(f.A[i]) + float64(f.B[i])
	}
	return sum
}

func writeSnapshot(sim core.Sim, path string) error {
	size := sim.Size()
	img := image.NewRGBA(image.Rect(0, 0, size.W, size.H))
	sim.RGBA(img.Pix)
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	return png.Encode(f, img)
}

func closeSim(sim core.Sim) {
	if c, ok := sim.(interface{ Close() }); ok {
		c.Close()
	}
}
