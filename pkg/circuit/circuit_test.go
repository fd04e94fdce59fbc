package circuit

import "testing"

func TestBuilderBuffer(t *testing.T) {
	b := NewBuilder()
	x0 := b.AddTruePI()
	b.AddTruePO(x0, false)
	c := b.Build()

	if c.NumPI() != 1 || c.NumPO() != 1 || c.NumRegs() != 0 {
		t.Fatalf("got NumPI=%d NumPO=%d NumRegs=%d", c.NumPI(), c.NumPO(), c.NumRegs())
	}
	if !c.IsPI(x0) {
		t.Fatalf("x0 should be a PI")
	}
	fanin, inv := c.Fanin0(c.TruePOs()[0])
	if fanin != x0 || inv {
		t.Fatalf("PO fanin = (%d,%v), want (%d,false)", fanin, inv, x0)
	}
}

func TestBuilderLatch(t *testing.T) {
	b := NewBuilder()
	x0 := b.AddTruePI()
	lo := b.AddLatch()
	li := b.AddLi(x0, false)
	b.AddTruePO(lo, false)
	c := b.Build()

	if c.NumRegs() != 1 {
		t.Fatalf("NumRegs = %d, want 1", c.NumRegs())
	}
	if c.Los()[0] != lo || c.Lis()[0] != li {
		t.Fatalf("latch pairing mismatch: los=%v lis=%v", c.Los(), c.Lis())
	}
	if c.NumTruePI() != 1 {
		t.Fatalf("NumTruePI = %d, want 1", c.NumTruePI())
	}
}

func TestBuilderUnpairedLatchPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatalf("expected panic for unpaired latch")
		}
	}()
	b := NewBuilder()
	b.AddLatch()
	b.Build()
}

func TestBuilderAnd(t *testing.T) {
	b := NewBuilder()
	x0 := b.AddTruePI()
	x1 := b.AddTruePI()
	and := b.AddAnd(x0, false, x1, true, false)
	b.AddTruePO(and, false)
	c := b.Build()

	if !c.IsAnd(and) {
		t.Fatalf("expected AND node")
	}
	if got := c.Topo(); len(got) != 1 || got[0] != and {
		t.Fatalf("Topo() = %v, want [%d]", got, and)
	}
	f0, i0 := c.Fanin0(and)
	f1, i1 := c.Fanin1(and)
	if f0 != x0 || i0 != false || f1 != x1 || i1 != true {
		t.Fatalf("fanins = (%d,%v) (%d,%v)", f0, i0, f1, i1)
	}
}
