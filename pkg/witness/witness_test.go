package witness

import (
	"bytes"
	"encoding/json"
	"math/rand/v2"
	"testing"

	"github.com/oisee/aigsim/pkg/circuit"
	"github.com/oisee/aigsim/pkg/sim"
)

func newRNG(seed uint64) *rand.Rand {
	return rand.New(rand.NewPCG(seed, seed^0x9E3779B97F4A7C15))
}

// buildRampCircuit builds: one true PI x0, one latch with
// Li = x0 OR Lo (De Morgan'd through inverted-fanin AND + inverted Li
// copy, so no AND node ever needs phase=true), PO = Lo AND x0.
func buildRampCircuit() (*circuit.Circuit, int, int) {
	b := circuit.NewBuilder()
	x0 := b.AddTruePI()
	lo := b.AddLatch()
	orAnd := b.AddAnd(x0, true, lo, true, false) // NOT x0 AND NOT lo
	b.AddLi(orAnd, true)                         // Li = NOT(that) = x0 OR lo
	poAnd := b.AddAnd(lo, false, x0, false, false)
	po := b.AddTruePO(poAnd, false)
	aig := b.Build()
	return aig, x0, po
}

func TestCounterExampleExtraction(t *testing.T) {
	aig, _, _ := buildRampCircuit()

	s := sim.SimulateSeq(aig, newRNG(20), 0, 4, 4)
	if !s.NonConstOut() {
		t.Fatalf("expected NonConstOut true for the ramp circuit")
	}

	w, err := GetCounterExample(s)
	if err != nil {
		t.Fatalf("GetCounterExample error: %v", err)
	}
	if w == nil {
		t.Fatalf("expected a non-nil witness")
	}
	if w.IFrame < 1 {
		t.Fatalf("expected IFrame >= 1, got %d", w.IFrame)
	}
	ok, err := RunCounterExample(aig, w)
	if err != nil {
		t.Fatalf("RunCounterExample error: %v", err)
	}
	if !ok {
		t.Fatalf("RunCounterExample should reproduce the failure")
	}
}

func TestWitnessRoundTripThroughWriteCounterExample(t *testing.T) {
	aig, _, _ := buildRampCircuit()
	s := sim.SimulateSeq(aig, newRNG(21), 0, 4, 4)
	if !s.NonConstOut() {
		t.Fatalf("expected NonConstOut true")
	}
	w, err := GetCounterExample(s)
	if err != nil || w == nil {
		t.Fatalf("GetCounterExample failed: w=%v err=%v", w, err)
	}

	var buf bytes.Buffer
	ok, err := WriteCounterExample(w, aig, &buf)
	if err != nil {
		t.Fatalf("WriteCounterExample error: %v", err)
	}
	if !ok {
		t.Fatalf("WriteCounterExample replay should reproduce the failure")
	}

	lines := bytes.Split(bytes.TrimRight(buf.Bytes(), "\n"), []byte("\n"))
	if len(lines) != w.IFrame+1 {
		t.Fatalf("expected %d lines, got %d", w.IFrame+1, len(lines))
	}
	for _, line := range lines {
		if len(line) != len(aig.TruePIs()) {
			t.Fatalf("line length = %d, want %d", len(line), len(aig.TruePIs()))
		}
		for _, c := range line {
			if c != '0' && c != '1' {
				t.Fatalf("unexpected character %q in witness line", c)
			}
		}
	}
}

func TestTrivialAndWiden(t *testing.T) {
	w := Trivial(3, 1, 2, 2)
	if w.NBits != 1+2*3 {
		t.Fatalf("NBits = %d, want %d", w.NBits, 1+2*3)
	}
	for i := 0; i < w.NBits; i++ {
		if bitAt(w, i) {
			t.Fatalf("Trivial witness should be all-zero, bit %d set", i)
		}
	}

	wide := w.Widen(5)
	if wide.NRegs != 5 {
		t.Fatalf("Widen: NRegs = %d, want 5", wide.NRegs)
	}
	if wide.NBits != 5+2*3 {
		t.Fatalf("Widen: NBits = %d, want %d", wide.NBits, 5+2*3)
	}
}

func bitAt(w *Witness, i int) bool {
	return w.Bits[i/32]&(1<<uint(i%32)) != 0
}

func TestExportJSON(t *testing.T) {
	aig, _, _ := buildRampCircuit()
	s := sim.SimulateSeq(aig, newRNG(23), 0, 4, 4)
	if !s.NonConstOut() {
		t.Fatalf("expected NonConstOut true")
	}
	w, err := GetCounterExample(s)
	if err != nil || w == nil {
		t.Fatalf("GetCounterExample failed: w=%v err=%v", w, err)
	}

	raw, err := w.ExportJSON("ramp")
	if err != nil {
		t.Fatalf("ExportJSON error: %v", err)
	}
	var decoded Export
	if err := json.Unmarshal(raw, &decoded); err != nil {
		t.Fatalf("json.Unmarshal: %v", err)
	}
	if decoded.Circuit != "ramp" || decoded.PO != w.IPo || decoded.Frame != w.IFrame {
		t.Fatalf("decoded = %+v, want circuit=ramp po=%d frame=%d", decoded, w.IPo, w.IFrame)
	}
	if len(decoded.Bits) != w.NBits {
		t.Fatalf("decoded.Bits length = %d, want %d", len(decoded.Bits), w.NBits)
	}
	for i, b := range decoded.Bits {
		want := 0
		if bitAt(w, i) {
			want = 1
		}
		if b != want {
			t.Fatalf("bit %d = %d, want %d", i, b, want)
		}
	}
}

func TestCheckOutputUsesRawFaninNotInverted(t *testing.T) {
	b := circuit.NewBuilder()
	x0 := b.AddTruePI()
	b.AddTruePO(x0, true) // PO = NOT x0, inv0 = true
	aig := b.Build()

	s := sim.Allocate(aig, newRNG(24), 0, 1, 1)
	s.AssignConst(x0, 0, 0) // fanin0 (x0) raw word forced to all-zero
	s.SimulateOne()

	// If CheckOutput applied the PO's own edge inversion before scanning,
	// it would see an all-ones word here (NOT of all-zero) and report a
	// model. Ssw_SmlCheckOutputSavePattern never applies that inversion —
	// it scans Aig_ObjFanin0(pObjPo)'s raw sim array directly — so the
	// correct result is nil.
	if m := CheckOutput(s); m != nil {
		t.Fatalf("expected nil model: fanin0 (x0) raw word is all-zero, got %+v", m)
	}
}

func TestBufferCombinationalCheckOutput(t *testing.T) {
	b := circuit.NewBuilder()
	x0 := b.AddTruePI()
	b.AddTruePO(x0, false)
	aig := b.Build()

	s := sim.SimulateComb(aig, newRNG(22), 1)
	m := CheckOutput(s)
	if m == nil {
		t.Fatalf("expected a non-nil model for a non-constant buffer PO")
	}
	if len(m.Values) != aig.NumPI() {
		t.Fatalf("model values length = %d, want %d", len(m.Values), aig.NumPI())
	}
}
