// Command aigsim is a demonstration CLI over pkg/sim, pkg/witness,
// pkg/refine and pkg/session. It is an external collaborator, not part
// of the simulator's own surface: spec section 6 is explicit that the
// simulator owns no file, socket, or CLI surface of its own. Real AIG
// parsing (structural hashing, a file format) is out of scope, so every
// subcommand here builds one of a handful of small demo circuits rather
// than reading one from disk.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/oisee/aigsim/pkg/circuit"
	"github.com/oisee/aigsim/pkg/refine"
	"github.com/oisee/aigsim/pkg/session"
	"github.com/oisee/aigsim/pkg/sim"
	"github.com/oisee/aigsim/pkg/witness"
)

func main() {
	if err := rootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func rootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "aigsim",
		Short: "Demo driver for the sequential bit-parallel AIG simulator",
	}
	root.AddCommand(simulateCmd(), witnessCmd(), exportCmd(), batchCmd(), refineCmd())
	return root
}

// demoCircuit builds the "ramp" circuit used across several subcommands:
// one true PI x0, one latch with Li = x0 OR lo, and PO = lo AND x0.
func demoCircuit() *circuit.Circuit {
	b := circuit.NewBuilder()
	x0 := b.AddTruePI()
	lo := b.AddLatch()
	orAnd := b.AddAnd(x0, true, lo, true, false)
	b.AddLi(orAnd, true)
	and := b.AddAnd(lo, false, x0, false, false)
	b.AddTruePO(and, false)
	return b.Build()
}

func simulateCmd() *cobra.Command {
	var seed uint64
	var nPref, nFrames, wordsPerFrame int
	var comb bool

	cmd := &cobra.Command{
		Use:   "simulate",
		Short: "Run one simulation session over the built-in demo circuit",
		RunE: func(cmd *cobra.Command, args []string) error {
			aig := demoCircuit()
			rng := newRand(seed)

			if comb {
				s := sim.SimulateComb(aig, rng, wordsPerFrame)
				fmt.Printf("combinational run: words=%d\n", s.WordsPerFrame())
				return nil
			}
			s := sim.SimulateSeq(aig, rng, nPref, nFrames, wordsPerFrame)
			fmt.Printf("sequential run: frames=%d words/frame=%d nonConstOut=%v\n",
				s.NumFrames(), s.WordsPerFrame(), s.NonConstOut())
			return nil
		},
	}
	cmd.Flags().Uint64Var(&seed, "seed", 1, "PRNG seed")
	cmd.Flags().IntVar(&nPref, "prefix", 0, "prefix frames")
	cmd.Flags().IntVar(&nFrames, "frames", 4, "frames to simulate")
	cmd.Flags().IntVar(&wordsPerFrame, "words", 4, "words per frame")
	cmd.Flags().BoolVar(&comb, "comb", false, "run combinational instead of sequential")
	return cmd
}

func witnessCmd() *cobra.Command {
	var seed uint64
	var nFrames, wordsPerFrame int

	cmd := &cobra.Command{
		Use:   "witness",
		Short: "Simulate the demo circuit and dump a counter-example, if any",
		RunE: func(cmd *cobra.Command, args []string) error {
			aig := demoCircuit()
			rng := newRand(seed)
			s := sim.SimulateSeq(aig, rng, 0, nFrames, wordsPerFrame)
			if !s.NonConstOut() {
				fmt.Println("no non-constant output; no witness")
				return nil
			}
			w, err := witness.GetCounterExample(s)
			if err != nil {
				return fmt.Errorf("witness: %w", err)
			}
			if w == nil {
				fmt.Println("no failing output found in scanned range")
				return nil
			}
			fmt.Printf("witness: po=%d frame=%d\n", w.IPo, w.IFrame)
			_, err = witness.WriteCounterExample(w, aig, os.Stdout)
			return err
		},
	}
	cmd.Flags().Uint64Var(&seed, "seed", 1, "PRNG seed")
	cmd.Flags().IntVar(&nFrames, "frames", 4, "frames to simulate")
	cmd.Flags().IntVar(&wordsPerFrame, "words", 4, "words per frame")
	return cmd
}

func exportCmd() *cobra.Command {
	var seed uint64
	var nFrames, wordsPerFrame int

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Simulate the demo circuit and emit its counter-example as one JSON object",
		RunE: func(cmd *cobra.Command, args []string) error {
			aig := demoCircuit()
			rng := newRand(seed)
			s := sim.SimulateSeq(aig, rng, 0, nFrames, wordsPerFrame)
			if !s.NonConstOut() {
				fmt.Println(`{"nonConstOut":false}`)
				return nil
			}
			w, err := witness.GetCounterExample(s)
			if err != nil {
				return fmt.Errorf("witness: %w", err)
			}
			if w == nil {
				fmt.Println(`{"nonConstOut":true,"witness":null}`)
				return nil
			}
			out, err := w.ExportJSON("demo")
			if err != nil {
				return fmt.Errorf("witness: %w", err)
			}
			fmt.Println(string(out))
			return nil
		},
	}
	cmd.Flags().Uint64Var(&seed, "seed", 1, "PRNG seed")
	cmd.Flags().IntVar(&nFrames, "frames", 4, "frames to simulate")
	cmd.Flags().IntVar(&wordsPerFrame, "words", 4, "words per frame")
	return cmd
}

func batchCmd() *cobra.Command {
	var seed uint64
	var count, workers, nFrames, wordsPerFrame int
	var verbose bool
	var checkpointPath string

	cmd := &cobra.Command{
		Use:   "batch",
		Short: "Run many independent sessions over copies of the demo circuit",
		RunE: func(cmd *cobra.Command, args []string) error {
			specs := make([]session.CircuitSpec, count)
			for i := range specs {
				specs[i] = session.CircuitSpec{
					Name: fmt.Sprintf("demo-%d", i), Aig: demoCircuit(),
					NPref: 0, NFrames: nFrames, WordsPerFrame: wordsPerFrame,
				}
			}
			cfg := session.Config{BaseSeed: seed, Workers: workers, Verbose: verbose}

			cp := session.Checkpoint{}
			if checkpointPath != "" {
				if loaded, err := session.LoadCheckpoint(checkpointPath); err == nil {
					cp = loaded
					fmt.Printf("resuming from checkpoint at index %d\n", cp.NextIndex)
				}
			}
			cp = session.RunResumable(cfg, specs, cp)
			for _, r := range cp.Completed {
				fmt.Printf("%s: nonConstOut=%v hasWitness=%v\n", r.Name, r.NonConstOut, r.Witness != nil)
			}
			if checkpointPath != "" {
				return session.SaveCheckpoint(checkpointPath, cp)
			}
			return nil
		},
	}
	cmd.Flags().Uint64Var(&seed, "seed", 1, "base PRNG seed")
	cmd.Flags().IntVar(&count, "count", 4, "number of sessions to run")
	cmd.Flags().IntVar(&workers, "workers", 4, "concurrent workers")
	cmd.Flags().IntVar(&nFrames, "frames", 4, "frames per session")
	cmd.Flags().IntVar(&wordsPerFrame, "words", 2, "words per frame")
	cmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "print progress every 10s")
	cmd.Flags().StringVar(&checkpointPath, "checkpoint", "", "checkpoint file path")
	return cmd
}

func refineCmd() *cobra.Command {
	var seed uint64

	cmd := &cobra.Command{
		Use:   "refine",
		Short: "Rank candidate-equal node pairs in the demo circuit",
		RunE: func(cmd *cobra.Command, args []string) error {
			aig := demoCircuit()
			rng := newRand(seed)
			s := sim.Allocate(aig, rng, 0, 1, 4)
			s.Initialize(false)
			s.SimulateOne()

			candidates := aig.Topo()
			classes := refine.Bucket(s, candidates)
			for _, c := range classes {
				for _, g := range refine.Split(s, c) {
					fmt.Printf("equal class: %v\n", g.Members)
				}
			}
			return nil
		},
	}
	cmd.Flags().Uint64Var(&seed, "seed", 1, "PRNG seed")
	return cmd
}
