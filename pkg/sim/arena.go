// Package sim is the simulation engine: the node-indexed bit-packed
// arena (C2), PI assignment (C3), the AND-node evaluator (C4), the
// frame driver (C5), the observation operators (C6), and session
// lifecycle (C8). One Session belongs to one caller; it must not be
// shared across goroutines while simulation is in progress — the outer
// orchestrator in pkg/session owns that concern by running independent
// Sessions concurrently instead.
package sim

import "github.com/oisee/aigsim/pkg/circuit"

// RandSource is the PRNG handle a Session consumes for PI assignment.
// *rand.Rand (math/rand/v2) satisfies this. Sessions never share a
// PRNG with the AIG manager or with each other; each session gets its
// own seeded source so parallel sessions stay reproducible regardless
// of goroutine scheduling.
type RandSource interface {
	Uint32() uint32
}

// Session is one allocation of the simulation arena, pinned to one
// Circuit for its whole lifetime.
type Session struct {
	aig *circuit.Circuit
	rng RandSource

	numPref       int
	numFrames     int // total frames, = numPref + user frames
	wordsPerFrame int
	wordsPerNode  int // numFrames * wordsPerFrame
	wordsPref     int // numPref * wordsPerFrame

	data []uint32 // len = aig.NumObjects() * wordsPerNode

	nonConstOut        bool
	useDist1MultiFrame bool
}

// Allocate zero-initializes a new Session pinned to aig with the given
// geometry. NumObjects, NumFrames and WordsPerFrame are fixed for the
// life of the session; there is no grow operation.
func Allocate(aig *circuit.Circuit, rng RandSource, nPref, nFrames, wordsPerFrame int) *Session {
	if nFrames < 1 {
		panic("sim: nFrames must be >= 1")
	}
	if wordsPerFrame < 1 {
		panic("sim: wordsPerFrame must be >= 1")
	}
	total := nPref + nFrames
	s := &Session{
		aig:           aig,
		rng:           rng,
		numPref:       nPref,
		numFrames:     total,
		wordsPerFrame: wordsPerFrame,
		wordsPerNode:  total * wordsPerFrame,
		wordsPref:     nPref * wordsPerFrame,
	}
	s.data = make([]uint32, aig.NumObjects()*s.wordsPerNode)
	return s
}

// Clean zeroes all data words, preserving geometry.
func (s *Session) Clean() {
	for i := range s.data {
		s.data[i] = 0
	}
}

// Free releases the arena. The Session must not be used afterward.
func (s *Session) Free() {
	s.data = nil
}

// Circuit returns the pinned AIG.
func (s *Session) Circuit() *circuit.Circuit { return s.aig }

// NumPref is the number of prefix frames excluded from equivalence scans.
func (s *Session) NumPref() int { return s.numPref }

// NumFrames is the total number of frames simulated.
func (s *Session) NumFrames() int { return s.numFrames }

// WordsPerFrame is the word width of one frame.
func (s *Session) WordsPerFrame() int { return s.wordsPerFrame }

// WordsPerNode is NumFrames * WordsPerFrame.
func (s *Session) WordsPerNode() int { return s.wordsPerNode }

// WordsPref is NumPref * WordsPerFrame.
func (s *Session) WordsPref() int { return s.wordsPref }

// NonConstOut reports whether CheckNonConstOutputs found a non-zero true
// PO the last time it ran (set by SimulateSeq/ResimulateSeq).
func (s *Session) NonConstOut() bool { return s.nonConstOut }

// Words returns the full mutable window of WordsPerNode words for node id.
func (s *Session) Words(id int) []uint32 {
	base := id * s.wordsPerNode
	return s.data[base : base+s.wordsPerNode]
}

// WordsFrame returns the WordsPerFrame-wide window for node id at frame f.
func (s *Session) WordsFrame(id, f int) []uint32 {
	w := s.Words(id)
	off := f * s.wordsPerFrame
	return w[off : off+s.wordsPerFrame]
}
