// Package session is the outer batch orchestrator: it runs many
// independent simulator sessions concurrently on a fixed pool of worker
// goroutines, each session with its own PRNG seed derived from a single
// base seed.
// This is the layer spec section 5 describes as "the outer prover may
// own multiple independent sessions in parallel threads" — concurrency
// lives here, never inside a single SimulateOne round, matching the
// Non-goal against thread-level parallelism within one simulation round.
package session

import (
	"fmt"
	"math/rand/v2"
	"os"
	"sync"
	"sync/atomic"
	"time"

	"github.com/oisee/aigsim/pkg/circuit"
	"github.com/oisee/aigsim/pkg/sim"
	"github.com/oisee/aigsim/pkg/witness"
)

// CircuitSpec names one circuit and the simulation geometry to run it
// with.
type CircuitSpec struct {
	Name          string
	Aig           *circuit.Circuit
	NPref         int
	NFrames       int
	WordsPerFrame int
}

// Result is one circuit's outcome: whether any true PO went non-constant
// and, if so, the witness that reproduces it.
type Result struct {
	Name        string
	NonConstOut bool
	Witness     *witness.Witness
}

// Config controls the batch run. Progress is reported on os.Stderr
// every 10s when Verbose is set, the same cadence pkg/search's
// WorkerPool uses.
type Config struct {
	BaseSeed uint64
	Workers  int
	Verbose  bool
}

// Run simulates every spec concurrently on cfg.Workers goroutines (8
// when Workers <= 0) and returns results in input order. Each spec's PRNG seed is derived from
// cfg.BaseSeed the same way pkg/stoke derives one seed per chain:
// seed = BaseSeed + index * 0x9E3779B97F4A7C15.
func Run(cfg Config, specs []CircuitSpec) []Result {
	workers := cfg.Workers
	if workers <= 0 {
		workers = 8
	}

	results := make([]Result, len(specs))
	jobs := make(chan int)
	var completed atomic.Int64
	var wg sync.WaitGroup

	start := time.Now()
	var progressWg sync.WaitGroup
	stop := make(chan struct{})
	if cfg.Verbose {
		progressWg.Add(1)
		go func() {
			defer progressWg.Done()
			ticker := time.NewTicker(10 * time.Second)
			defer ticker.Stop()
			for {
				select {
				case <-stop:
					return
				case <-ticker.C:
					fmt.Fprintf(os.Stderr, "  [%.0fs] %d/%d sessions done\n",
						time.Since(start).Seconds(), completed.Load(), len(specs))
				}
			}
		}()
	}

	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range jobs {
				results[i] = runOne(cfg.BaseSeed, i, specs[i])
				completed.Add(1)
			}
		}()
	}
	for i := range specs {
		jobs <- i
	}
	close(jobs)
	wg.Wait()
	close(stop)
	progressWg.Wait()

	return results
}

func runOne(baseSeed uint64, index int, spec CircuitSpec) Result {
	seed := baseSeed + uint64(index)*0x9E3779B97F4A7C15
	rng := rand.New(rand.NewPCG(seed, seed^0xDEADBEEF))

	s := sim.SimulateSeq(spec.Aig, rng, spec.NPref, spec.NFrames, spec.WordsPerFrame)
	res := Result{Name: spec.Name, NonConstOut: s.NonConstOut()}
	if s.NonConstOut() {
		w, err := witness.GetCounterExample(s)
		if err == nil {
			res.Witness = w
		}
	}
	return res
}
