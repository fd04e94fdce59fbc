package sim

import "github.com/oisee/aigsim/pkg/bitv"

// requirePI panics (a contract violation per spec section 7) if id is not
// a PI of the pinned circuit.
func (s *Session) requirePI(id int) {
	if !s.aig.IsPI(id) {
		panic("sim: node is not a PI")
	}
}

// AssignRandom fills all WordsPerNode words of pi with PRNG words, then
// left-shifts the first word of every frame by one bit, forcing the
// reference pattern (bit 0 of word 0) to 0.
func (s *Session) AssignRandom(pi int) {
	s.requirePI(pi)
	w := s.Words(pi)
	for i := range w {
		w[i] = s.rng.Uint32()
	}
	for f := 0; f < s.numFrames; f++ {
		off := f * s.wordsPerFrame
		w[off] <<= 1
	}
}

// AssignRandomFrame PRNG-fills only frame f's window of pi. It does not
// clear the reference bit; callers compose this with other assignments
// when they need that guarantee.
func (s *Session) AssignRandomFrame(pi, f int) {
	s.requirePI(pi)
	wf := s.WordsFrame(pi, f)
	for i := range wf {
		wf[i] = s.rng.Uint32()
	}
}

// AssignConst sets frame f's window of pi to all-zeros (bit == 0) or
// all-ones (bit != 0).
func (s *Session) AssignConst(pi, bit, f int) {
	s.requirePI(pi)
	wf := s.WordsFrame(pi, f)
	var v uint32
	if bit != 0 {
		v = 0xFFFFFFFF
	}
	for i := range wf {
		wf[i] = v
	}
}

// SetWord writes one specific word at (pi, f, w).
func (s *Session) SetWord(pi, w int, word uint32, f int) {
	s.requirePI(pi)
	wf := s.WordsFrame(pi, f)
	wf[w] = word
}

// boolToInt is the AssignConst bit argument a HasBit result feeds.
func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}

// AssignDist1 seeds the circuit from a packed pattern pat encoding one
// valuation for each PI. When the session has exactly one frame it also
// writes distance-1 perturbations: pattern 0 is the base valuation,
// pattern i+1 differs from it only in PI i. With more than one frame the
// perturbation fan-out is controlled by SetUseDist1MultiFrame (default off,
// matching the dead fUseDist1 flag in the source this is drawn from).
func (s *Session) AssignDist1(pat []uint32) {
	if s.numFrames == 1 {
		s.assignDist1SingleFrame(pat)
		return
	}
	s.assignDist1MultiFrame(pat)
}

// SetUseDist1MultiFrame(true), called before AssignDist1 on a
// multi-frame session, enables the frame-0 distance-1 perturbation that
// the original source guarded with a flag left permanently off. Default
// false reproduces the shipped (no fan-out) behavior.
//
// This lives on Session rather than as a package var so independently
// configured sessions (pkg/session's batch orchestrator) can disagree.
func (s *Session) SetUseDist1MultiFrame(v bool) { s.useDist1MultiFrame = v }

func (s *Session) assignDist1SingleFrame(pat []uint32) {
	aig := s.aig
	pis := aig.AllPIs()
	n := aig.NumPI()
	maxBit := s.wordsPerNode*32 - 1
	if n > maxBit {
		n = maxBit
	}
	// Ssw_SmlObjAssignConst broadcasts the bit across the PI's whole word
	// range unconditionally; only the later flip loop is bounded by n.
	for idx, pi := range pis {
		s.AssignConst(pi, boolToInt(bitv.HasBit(pat, idx)), 0)
	}
	for idx := 0; idx < n; idx++ {
		w := s.Words(pis[idx])
		bitv.XorBit(w, idx+1)
	}
}

func (s *Session) assignDist1MultiFrame(pat []uint32) {
	aig := s.aig
	truePis := aig.TruePIs()
	los := aig.Los()

	// Ssw_SmlObjAssignConst broadcasts the bit across the whole frame
	// unconditionally, for every true PI in every frame and every
	// latch-output at frame 0.
	idx := 0
	for f := 0; f < s.numFrames; f++ {
		for _, pi := range truePis {
			s.AssignConst(pi, boolToInt(bitv.HasBit(pat, idx)), f)
			idx++
		}
	}
	for _, lo := range los {
		s.AssignConst(lo, boolToInt(bitv.HasBit(pat, idx)), 0)
		idx++
	}

	if !s.useDist1MultiFrame {
		return
	}
	pis := aig.AllPIs()
	n := len(pis)
	maxBit := s.wordsPerFrame*32 - 1
	if n > maxBit {
		n = maxBit
	}
	for i := 0; i < n; i++ {
		bitv.XorBit(s.WordsFrame(pis[i], 0), i+1)
	}
}

// AssignDist1Plus seeds every PI from pat at frame 0, perturbs bits
// 1..N at frame 0 the same way AssignDist1 does for a single-frame
// session, then fills frames 1..NumFrames-1 with fresh random words.
func (s *Session) AssignDist1Plus(pat []uint32) {
	aig := s.aig
	pis := aig.AllPIs()
	n := len(pis)
	maxBit := s.wordsPerFrame*32 - 1
	if n > maxBit {
		n = maxBit
	}
	// Ssw_SmlObjAssignConst broadcasts the bit across the whole frame-0
	// window unconditionally; only the flip loop is bounded by n.
	for idx, pi := range pis {
		s.AssignConst(pi, boolToInt(bitv.HasBit(pat, idx)), 0)
	}
	for idx := 0; idx < n; idx++ {
		bitv.XorBit(s.WordsFrame(pis[idx], 0), idx+1)
	}
	for f := 1; f < s.numFrames; f++ {
		for _, pi := range pis {
			s.AssignRandomFrame(pi, f)
		}
	}
}
