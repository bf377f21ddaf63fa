package autopilot

import (
	"fmt"
	"sync"

	"snake-grid/internal/core"
	"snake-grid/internal/snake"
)

// GameResult records one unattended game.
type GameResult struct {
	Placer string
	Seed   int64
	Score  int
	Ticks  int
	// End is WallCollision, SelfCollision or Idle when the tick limit ran out.
	End snake.Outcome
	// FoodOnSnake counts placements that landed on the body.
	FoodOnSnake int
}

// Play runs one game of cfg steered by a Pilot for at most maxTicks ticks.
func Play(cfg snake.Config, placer string, seed int64, maxTicks int) (GameResult, error) {
	if err := cfg.Validate(); err != nil {
		return GameResult{}, err
	}
	p, err := core.NewPlacer(placer, core.NewRNG(seed))
	if err != nil {
		return GameResult{}, err
	}
	g := cfg.Grid()
	engine := snake.NewEngine(g, p)
	pilot := New(g)
	res := GameResult{Placer: placer, Seed: seed, End: snake.Idle}

	s := snake.NewState(cfg)
	for res.Ticks < maxTicks {
		d, _ := pilot.Next(s).Direction()
		var out snake.Outcome
		s, out = engine.Tick(s, d)
		res.Ticks++
		if out == snake.Ate && s.Occupies(s.Food) {
			res.FoodOnSnake++
		}
		if out.Collided() {
			res.End = out
			break
		}
	}
	res.Score = s.Score
	return res, nil
}

// Job names one game of a sweep.
type Job struct {
	Placer string
	Seed   int64
}

// Sweep plays every job of cfg on a pool of workers, at least one. Jobs that
// fail to start are passed to onErr when it is non-nil and left out of the
// results. Results arrive in completion order.
func Sweep(cfg snake.Config, jobs []Job, workers, maxTicks int, onErr func(Job, error)) []GameResult {
	workers = max(1, workers)
	queue := make(chan Job)
	results := make(chan GameResult)
	var wg sync.WaitGroup

	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := range queue {
				res, err := Play(cfg, j.Placer, j.Seed, maxTicks)
				if err != nil {
					if onErr != nil {
						onErr(j, err)
					}
					continue
				}
				results <- res
			}
		}()
	}

	go func() {
		wg.Wait()
		close(results)
	}()

	go func() {
		for _, j := range jobs {
			queue <- j
		}
		close(queue)
	}()

	var all []GameResult
	for res := range results {
		all = append(all, res)
	}
	return all
}

// Summary aggregates results for one placer.
type Summary struct {
	Placer      string
	Games       int
	MeanScore   float64
	MaxScore    int
	Wall        int
	Self        int
	Timeouts    int
	FoodOnSnake int
}

func (s Summary) String() string {
	return fmt.Sprintf("%-8s games=%d mean=%.2f max=%d wall=%d self=%d timeout=%d foodOnSnake=%d",
		s.Placer, s.Games, s.MeanScore, s.MaxScore, s.Wall, s.Self, s.Timeouts, s.FoodOnSnake)
}

// Summarize folds results into one Summary per placer, keyed by name.
func Summarize(results []GameResult) map[string]Summary {
	out := make(map[string]Summary)
	totals := make(map[string]int)
	for _, r := range results {
		s := out[r.Placer]
		s.Placer = r.Placer
		s.Games++
		totals[r.Placer] += r.Score
		s.MaxScore = max(s.MaxScore, r.Score)
		s.FoodOnSnake += r.FoodOnSnake
		switch r.End {
		case snake.WallCollision:
			s.Wall++
		case snake.SelfCollision:
			s.Self++
		default:
			s.Timeouts++
		}
		out[r.Placer] = s
	}
	for name, s := range out {
		s.MeanScore = float64(totals[name]) / float64(s.Games)
		out[name] = s
	}
	return out
}
