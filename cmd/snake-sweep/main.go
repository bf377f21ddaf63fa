package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"runtime"
	"sort"
	"strings"
	"time"

	"snake-grid/internal/app"
	"snake-grid/internal/autopilot"
	"snake-grid/internal/core"
)

func main() {
	cfg := app.NewConfig()
	if err := cfg.LoadEnv(""); err != nil {
		log.Fatal(err)
	}
	cfg.Bind(flag.CommandLine)
	games := flag.Int("games", 200, "games to play per placer")
	ticks := flag.Int("ticks", 2000, "tick limit per game")
	workers := flag.Int("workers", runtime.NumCPU(), "number of worker goroutines")
	placers := flag.String("placers", strings.Join(core.Placers(), ","), "comma-separated food placers to compare")
	flag.Parse()

	if err := cfg.Validate(); err != nil {
		log.Fatalf("invalid configuration: %v", err)
	}
	if *workers < 1 {
		log.Fatalf("invalid configuration: -workers must be at least 1, got %d", *workers)
	}
	closer, err := app.SetupLogging(cfg.LogFile)
	if err != nil {
		log.Fatal(err)
	}
	if closer != nil {
		defer closer.Close()
	}

	var jobs []autopilot.Job
	for _, name := range strings.Split(*placers, ",") {
		for i := 0; i < *games; i++ {
			jobs = append(jobs, autopilot.Job{Placer: name, Seed: cfg.Seed + int64(i) + 1})
		}
	}

	fmt.Printf("Playing %d games on a %dx%d board (%d workers, %d tick limit)\n",
		len(jobs), cfg.GridSize, cfg.GridSize, *workers, *ticks)

	start := time.Now()
	all := autopilot.Sweep(cfg.Game(), jobs, *workers, *ticks, func(j autopilot.Job, err error) {
		log.Printf("placer %s seed %d: %v", j.Placer, j.Seed, err)
	})
	elapsed := time.Since(start)
	if len(all) == 0 {
		fmt.Fprintln(os.Stderr, "no games completed")
		os.Exit(1)
	}

	summaries := autopilot.Summarize(all)
	keys := make([]string, 0, len(summaries))
	for k := range summaries {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	fmt.Printf("\nResults (elapsed %s):\n", elapsed.Round(time.Millisecond))
	for _, k := range keys {
		fmt.Println(summaries[k])
	}

	sort.Slice(all, func(i, j int) bool { return all[i].Score > all[j].Score })
	best := all[0]
	fmt.Printf("\nBest game: score=%d ticks=%d end=%s placer=%s seed=%d\n",
		best.Score, best.Ticks, best.End, best.Placer, best.Seed)
}
