package sim

import "github.com/oisee/aigsim/pkg/circuit"

// SimulateOne drives evaluation across every frame: at frame f, every
// internal AND is evaluated in topological order, then every true PO
// and latch-input is populated by copying its fanin, then (except at
// the last frame) every latch pair is transferred into frame f+1.
func (s *Session) SimulateOne() {
	aig := s.aig
	topo := aig.Topo()
	truePOs := aig.TruePOs()
	los := aig.Los()
	lis := aig.Lis()

	for f := 0; f < s.numFrames; f++ {
		for _, n := range topo {
			s.NodeSimulate(n, f)
		}
		for _, po := range truePOs {
			s.NodeCopyFanin(po, f)
		}
		for _, li := range lis {
			s.NodeCopyFanin(li, f)
		}
		if f < s.numFrames-1 {
			for i, li := range lis {
				s.NodeTransferNext(li, los[i], f)
			}
		}
	}
}

// SimulateOneFrame is the single-frame convenience form: evaluate nodes
// at frame 0, populate latch-inputs only (not true POs), then transfer
// them into latch-outputs at frame 0 for the next external step.
func (s *Session) SimulateOneFrame() {
	aig := s.aig
	for _, n := range aig.Topo() {
		s.NodeSimulate(n, 0)
	}
	los := aig.Los()
	lis := aig.Lis()
	for _, li := range lis {
		s.NodeCopyFanin(li, 0)
	}
	for i, li := range lis {
		copy(s.WordsFrame(los[i], 0), s.WordsFrame(li, 0))
	}
}

// Initialize seeds PIs before a simulation run. fInit=true is the
// sequential path: true PIs get random values and every latch-output
// starts at constant 0. fInit=false assigns random to every PI,
// including latch-outputs (combinational/uninitialized semantics).
//
// Preconditions for fInit=true: NumRegs > 0 and NumRegs < NumPI.
func (s *Session) Initialize(fInit bool) {
	aig := s.aig
	if fInit {
		if aig.NumRegs() <= 0 || aig.NumRegs() >= aig.NumPI() {
			panic("sim: Initialize(true) requires 0 < NumRegs < NumPI")
		}
		for _, pi := range aig.TruePIs() {
			s.AssignRandom(pi)
		}
		for _, lo := range aig.Los() {
			for f := 0; f < s.numFrames; f++ {
				s.AssignConst(lo, 0, f)
			}
		}
		return
	}
	for _, pi := range aig.AllPIs() {
		s.AssignRandom(pi)
	}
}

// Reinitialize assigns random to true PIs and transfers each
// latch-input's last-frame window into the corresponding
// latch-output's frame-0 window, stitching the next round of
// sequential simulation onto the state this session ended in.
func (s *Session) Reinitialize() {
	aig := s.aig
	for _, pi := range aig.TruePIs() {
		s.AssignRandom(pi)
	}
	los := aig.Los()
	lis := aig.Lis()
	for i, lo := range los {
		s.NodeTransferFirst(lis[i], lo)
	}
}

// SimulateComb allocates a one-frame, zero-prefix session and runs a
// single combinational simulation round.
func SimulateComb(aig *circuit.Circuit, rng RandSource, nWords int) *Session {
	s := Allocate(aig, rng, 0, 1, nWords)
	s.Initialize(false)
	s.SimulateOne()
	return s
}

// SimulateSeq allocates a sequential session and runs an initialized
// simulation round, recording whether any true PO left the scanned
// range non-constant.
func SimulateSeq(aig *circuit.Circuit, rng RandSource, nPref, nFrames, nWords int) *Session {
	s := Allocate(aig, rng, nPref, nFrames, nWords)
	s.Initialize(true)
	s.SimulateOne()
	s.nonConstOut = s.CheckNonConstOutputs()
	return s
}

// ResimulateSeq reinitializes an existing session and runs another
// sequential simulation round on top of it.
func ResimulateSeq(s *Session) {
	s.Reinitialize()
	s.SimulateOne()
	s.nonConstOut = s.CheckNonConstOutputs()
}
