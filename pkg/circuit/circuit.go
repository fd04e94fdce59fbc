// Package circuit defines the read-only AIG contract the simulator
// consumes (spec section 3's "Circuit (external)") and a small in-memory
// builder used to construct AIGs for tests and the CLI demo. The real
// AIG manager — structural hashing, rewriting, the SAT-based equivalence
// checker — is out of scope; this package only needs to be a faithful,
// minimal collaborator.
package circuit

// Kind classifies a node in the AIG.
type Kind int

const (
	KindPI Kind = iota
	KindAnd
	KindPO
)

// Circuit is a read-only And-Inverter Graph. Every node has a stable
// dense Id in [0, NumObjects). Latches are modeled as matched PI/PO
// pairs: the first NumTruePI PIs are real inputs, the remaining NumRegs
// PIs are latch-outputs (Lo); symmetrically the first NumTruePO POs are
// real outputs, the remaining NumRegs POs are latch-inputs (Li).
type Circuit struct {
	kind   []Kind
	fanin0 []int
	fanin1 []int
	inv0   []bool
	inv1   []bool
	phase  []bool

	topo []int // internal AND nodes in topological (build) order

	truePIs []int
	los     []int // latch-outputs, paired index-for-index with lis
	lis     []int // latch-inputs
	truePOs []int
}

// NumObjects is the size of the dense id space.
func (c *Circuit) NumObjects() int { return len(c.kind) }

// IsPI reports whether id is a primary input (true input or latch-output).
func (c *Circuit) IsPI(id int) bool { return c.kind[id] == KindPI }

// IsPO reports whether id is a primary output (true output or latch-input).
func (c *Circuit) IsPO(id int) bool { return c.kind[id] == KindPO }

// IsAnd reports whether id is an internal AND node.
func (c *Circuit) IsAnd(id int) bool { return c.kind[id] == KindAnd }

// Fanin0 returns the first fanin id and its edge inversion for an AND or
// PO-kind node.
func (c *Circuit) Fanin0(id int) (fanin int, inv bool) { return c.fanin0[id], c.inv0[id] }

// Fanin1 returns the second fanin id and its edge inversion for an AND node.
func (c *Circuit) Fanin1(id int) (fanin int, inv bool) { return c.fanin1[id], c.inv1[id] }

// Phase returns the node-level polarity bit used for constant-folding
// canonicalization.
func (c *Circuit) Phase(id int) bool { return c.phase[id] }

// Topo returns internal AND node ids in topological order.
func (c *Circuit) Topo() []int { return c.topo }

// TruePIs returns the true (non-latch) primary input ids in registration order.
func (c *Circuit) TruePIs() []int { return c.truePIs }

// Los returns latch-output ids in registration order.
func (c *Circuit) Los() []int { return c.los }

// Lis returns latch-input ids, paired index-for-index with Los.
func (c *Circuit) Lis() []int { return c.lis }

// TruePOs returns true (non-latch) primary output ids in registration order.
func (c *Circuit) TruePOs() []int { return c.truePOs }

// NumPI is the total PI count, true inputs plus latch-outputs.
func (c *Circuit) NumPI() int { return len(c.truePIs) + len(c.los) }

// NumPO is the total PO count, true outputs plus latch-inputs.
func (c *Circuit) NumPO() int { return len(c.truePOs) + len(c.lis) }

// NumRegs is the number of latches.
func (c *Circuit) NumRegs() int { return len(c.los) }

// NumTruePI is NumPI - NumRegs.
func (c *Circuit) NumTruePI() int { return len(c.truePIs) }

// AllPIs returns every PI id, true inputs first then latch-outputs, the
// order PI-indexed assignment code (pkg/sim) depends on.
func (c *Circuit) AllPIs() []int {
	out := make([]int, 0, c.NumPI())
	out = append(out, c.truePIs...)
	out = append(out, c.los...)
	return out
}
