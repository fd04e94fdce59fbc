// Package witness implements the counter-example builder (C7): locating
// the earliest failing output bit, materializing a self-describing
// witness, and self-validating it by deterministic single-pattern
// replay.
package witness

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"

	"github.com/oisee/aigsim/pkg/bitv"
	"github.com/oisee/aigsim/pkg/circuit"
	"github.com/oisee/aigsim/pkg/sim"
)

// Witness is a bit-packed record of a PI/latch valuation that, when
// replayed, drives PO IPo to 1 at frame IFrame. Bits holds NRegs bits of
// initial latch state followed by (IFrame+1) frame-blocks of NPis true-PI
// bits each, independent of any arena.
type Witness struct {
	IPo    int
	IFrame int
	NRegs  int
	NPis   int
	NBits  int
	Bits   []uint32
}

// Model is the result of the combinational witness search (CheckOutput):
// one bit value per PI plus the id of the PO whose fanin produced it.
type Model struct {
	Values []int // one 0/1 per PI, in circuit.AllPIs() order
	PO     int
}

// CheckOutput scans true POs in registration order; for the first PO
// whose fanin0 has a non-zero word anywhere in its arena window, it picks
// the first non-zero word and its lowest set bit to form a global
// pattern index, then reads every PI's value at that bit. Returns nil if
// every true PO is constant-zero (a normal outcome, not an error).
//
// This reads fanin0's raw words directly, the same way
// Ssw_SmlCheckOutputSavePattern does: the PO's own edge inversion is not
// applied here, matching the source exactly (Ssw_SmlObjIsConstWord and
// this function both scan Aig_ObjFanin0(pObjPo)'s sim array uncorrected).
func CheckOutput(s *sim.Session) *Model {
	aig := s.Circuit()
	for _, po := range aig.TruePOs() {
		fanin0, _ := aig.Fanin0(po)
		win := s.Words(fanin0)
		for i, word := range win {
			if word == 0 {
				continue
			}
			k := bitv.FirstSetBit(word)
			bestPat := i*32 + k

			values := make([]int, aig.NumPI())
			for idx, pi := range aig.AllPIs() {
				if bitv.HasBit(s.Words(pi), bestPat) {
					values[idx] = 1
				}
			}
			return &Model{Values: values, PO: po}
		}
	}
	return nil
}

// GetCounterExample requires s.NonConstOut() to be true. It locates the
// first true PO with a non-zero word at or past the prefix, derives the
// failing frame and in-frame bit, builds a Witness, and self-validates it
// via RunCounterExample. A replay mismatch is reported as an error rather
// than a silently wrong witness.
func GetCounterExample(s *sim.Session) (*Witness, error) {
	if !s.NonConstOut() {
		panic("witness: GetCounterExample requires NonConstOut")
	}
	aig := s.Circuit()
	wpf := s.WordsPerFrame()

	for _, po := range aig.TruePOs() {
		full := s.Words(po)
		for i := s.WordsPref(); i < len(full); i++ {
			if full[i] == 0 {
				continue
			}
			k := bitv.FirstSetBit(full[i])
			iFrame := i / wpf
			iBit := 32*(i%wpf) + k
			return buildWitness(s, po, iFrame, iBit)
		}
	}
	return nil, nil
}

func buildWitness(s *sim.Session, po, iFrame, iBit int) (*Witness, error) {
	aig := s.Circuit()
	nRegs := aig.NumRegs()
	truePis := aig.TruePIs()
	nPis := len(truePis)
	nBits := nRegs + nPis*(iFrame+1)

	w := &Witness{
		IPo: po, IFrame: iFrame,
		NRegs: nRegs, NPis: nPis, NBits: nBits,
		Bits: make([]uint32, bitv.BitWordNum(nBits)),
	}

	for k, lo := range aig.Los() {
		if bitv.HasBit(s.WordsFrame(lo, 0), iBit) {
			bitv.SetBit(w.Bits, k)
		}
	}
	wpf32 := s.WordsPerFrame() * 32
	for f := 0; f <= iFrame; f++ {
		global := wpf32*f + iBit
		for k, pi := range truePis {
			if bitv.HasBit(s.Words(pi), global) {
				bitv.SetBit(w.Bits, nRegs+nPis*f+k)
			}
		}
	}

	ok, err := RunCounterExample(aig, w)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, fmt.Errorf("witness: replay mismatch for PO %d at frame %d", po, iFrame)
	}
	return w, nil
}

func seedFromWitness(s *sim.Session, aig *circuit.Circuit, w *Witness) {
	for k, lo := range aig.Los() {
		bit := 0
		if bitv.HasBit(w.Bits, k) {
			bit = 1
		}
		s.AssignConst(lo, bit, 0)
	}
	truePis := aig.TruePIs()
	for f := 0; f <= w.IFrame; f++ {
		for k, pi := range truePis {
			bit := 0
			if bitv.HasBit(w.Bits, w.NRegs+w.NPis*f+k) {
				bit = 1
			}
			s.AssignConst(pi, bit, f)
		}
	}
}

// RunCounterExample allocates a fresh one-word single-pattern session
// over IFrame+1 frames, seeds it from the witness, simulates, and
// reports whether the witness's PO is non-zero at frame IFrame.
func RunCounterExample(aig *circuit.Circuit, w *Witness) (bool, error) {
	s := sim.Allocate(aig, nil, 0, w.IFrame+1, 1)
	seedFromWitness(s, aig, w)
	s.SimulateOne()
	return s.WordsFrame(w.IPo, w.IFrame)[0] != 0, nil
}

// FindOutputCounterExample seeds and simulates the same way
// RunCounterExample does, but returns the index (into TruePOs()) of the
// first non-zero true PO at frame IFrame, or -1 if none is non-zero.
func FindOutputCounterExample(aig *circuit.Circuit, w *Witness) int {
	s := sim.Allocate(aig, nil, 0, w.IFrame+1, 1)
	seedFromWitness(s, aig, w)
	s.SimulateOne()
	for idx, po := range aig.TruePOs() {
		if s.WordsFrame(po, w.IFrame)[0] != 0 {
			return idx
		}
	}
	return -1
}

// FromUnrolled converts a combinational Model produced against a
// time-unrolled copy of aig (one PI per true-PI-per-frame, one PO per
// true-PO-per-frame) into a sequential Witness. The failing PO/frame is
// recovered by matching the Model's recorded PO id against
// framesPoIDs, then re-keying framesPoIDs' index through a
// NumTruePO-stride: iPo = idx % NumTruePO, iFrame = idx / NumTruePO.
// The Model's values fill the witness's true-PI frame blocks in order;
// the initial latch state is all zero. Self-validates by replay, like
// GetCounterExample.
func FromUnrolled(aig *circuit.Circuit, framesPoIDs []int, model *Model) (*Witness, error) {
	idx := -1
	for i, id := range framesPoIDs {
		if id == model.PO {
			idx = i
			break
		}
	}
	if idx < 0 {
		return nil, fmt.Errorf("witness: model PO id %d not found among unrolled frame POs", model.PO)
	}
	numTruePo := len(aig.TruePOs())
	if numTruePo == 0 {
		return nil, fmt.Errorf("witness: circuit has no true POs")
	}
	iPo := idx % numTruePo
	iFrame := idx / numTruePo

	nRegs := aig.NumRegs()
	nPis := len(aig.TruePIs())
	nBits := nRegs + nPis*(iFrame+1)
	w := &Witness{
		IPo: aig.TruePOs()[iPo], IFrame: iFrame,
		NRegs: nRegs, NPis: nPis, NBits: nBits,
		Bits: make([]uint32, bitv.BitWordNum(nBits)),
	}
	nPiBits := nPis * (iFrame + 1)
	for i := 0; i < nPiBits && i < len(model.Values); i++ {
		if model.Values[i] != 0 {
			bitv.SetBit(w.Bits, nRegs+i)
		}
	}

	ok, err := RunCounterExample(aig, w)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, fmt.Errorf("witness: replay mismatch after FromUnrolled")
	}
	return w, nil
}

// Trivial allocates a witness whose data bits are all zero, used for POs
// that are trivially true at a known frame and need no real valuation.
func Trivial(iPo, nRegs, nPis, iFrame int) *Witness {
	nBits := nRegs + nPis*(iFrame+1)
	return &Witness{
		IPo: iPo, IFrame: iFrame,
		NRegs: nRegs, NPis: nPis, NBits: nBits,
		Bits: make([]uint32, bitv.BitWordNum(nBits)),
	}
}

// Widen returns a copy of w with its register section widened to
// nRegsNew; new registers take value 0, and the PI section is copied
// verbatim at its new offset.
func (w *Witness) Widen(nRegsNew int) *Witness {
	if nRegsNew < w.NRegs {
		panic("witness: Widen requires nRegsNew >= NRegs")
	}
	nBits := nRegsNew + w.NPis*(w.IFrame+1)
	out := &Witness{
		IPo: w.IPo, IFrame: w.IFrame,
		NRegs: nRegsNew, NPis: w.NPis, NBits: nBits,
		Bits: make([]uint32, bitv.BitWordNum(nBits)),
	}
	for k := 0; k < w.NRegs; k++ {
		if bitv.HasBit(w.Bits, k) {
			bitv.SetBit(out.Bits, k)
		}
	}
	for i := w.NRegs; i < w.NBits; i++ {
		if bitv.HasBit(w.Bits, i) {
			bitv.SetBit(out.Bits, i-w.NRegs+nRegsNew)
		}
	}
	return out
}

// WriteCounterExample replays w (true-PI bits only; latch-outputs are
// seeded to 0 regardless of w's recorded initial state, matching the
// shipped dump format) and writes one text line per frame to out: each
// line is NumTruePI characters of '0'/'1' in true-PI iteration order, no
// separator, newline-terminated. Returns whether replay reproduced the
// failure at w.IPo/w.IFrame.
func WriteCounterExample(w *Witness, aig *circuit.Circuit, out io.Writer) (bool, error) {
	s := sim.Allocate(aig, nil, 0, w.IFrame+1, 1)
	for _, lo := range aig.Los() {
		s.AssignConst(lo, 0, 0)
	}
	truePis := aig.TruePIs()
	for f := 0; f <= w.IFrame; f++ {
		for k, pi := range truePis {
			bit := 0
			if bitv.HasBit(w.Bits, w.NRegs+w.NPis*f+k) {
				bit = 1
			}
			s.AssignConst(pi, bit, f)
		}
	}
	s.SimulateOne()
	retValue := s.WordsFrame(w.IPo, w.IFrame)[0] != 0

	bw := bufio.NewWriter(out)
	for f := 0; f <= w.IFrame; f++ {
		line := make([]byte, len(truePis))
		for k := range truePis {
			bit := 0
			if bitv.HasBit(w.Bits, w.NRegs+w.NPis*f+k) {
				bit = 1
			}
			if bit != 0 {
				line[k] = '1'
			} else {
				line[k] = '0'
			}
		}
		if _, err := bw.Write(line); err != nil {
			return retValue, err
		}
		if err := bw.WriteByte('\n'); err != nil {
			return retValue, err
		}
	}
	if err := bw.Flush(); err != nil {
		return retValue, err
	}
	return retValue, nil
}

// Export is the JSON wire shape for one witness: {circuit, po, frame,
// nRegs, nPis, bits}, one bit per array entry (0/1) over w.NBits, grounded on the
// teacher's verifyJSONL decode loop (cmd/z80opt/main.go), which reads
// one JSON object per line off a bufio.Scanner.
type Export struct {
	Circuit string `json:"circuit"`
	PO      int    `json:"po"`
	Frame   int    `json:"frame"`
	NRegs   int    `json:"nRegs"`
	NPis    int    `json:"nPis"`
	Bits    []int  `json:"bits"`
}

// ExportJSON marshals w into the Export wire shape, tagging it with a
// caller-supplied circuit name (the witness itself carries no name —
// it is independent of any arena or circuit identity beyond node ids).
func (w *Witness) ExportJSON(circuitName string) ([]byte, error) {
	bits := make([]int, w.NBits)
	for i := range bits {
		if bitv.HasBit(w.Bits, i) {
			bits[i] = 1
		}
	}
	return json.Marshal(Export{
		Circuit: circuitName,
		PO:      w.IPo,
		Frame:   w.IFrame,
		NRegs:   w.NRegs,
		NPis:    w.NPis,
		Bits:    bits,
	})
}
