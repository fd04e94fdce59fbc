package circuit

// Builder constructs a Circuit bottom-up: every node a caller adds may
// only reference ids already returned by an earlier Add* call, so the
// order of AddAnd calls is already a valid topological order (the same
// discipline a structurally-hashed AIG manager enforces on its callers).
type Builder struct {
	c         Circuit
	pendingLo []int // lo ids added via AddLatch, awaiting their AddLi
}

// NewBuilder returns an empty Builder.
func NewBuilder() *Builder {
	return &Builder{}
}

func (b *Builder) push(k Kind) int {
	id := len(b.c.kind)
	b.c.kind = append(b.c.kind, k)
	b.c.fanin0 = append(b.c.fanin0, 0)
	b.c.fanin1 = append(b.c.fanin1, 0)
	b.c.inv0 = append(b.c.inv0, false)
	b.c.inv1 = append(b.c.inv1, false)
	b.c.phase = append(b.c.phase, false)
	return id
}

// AddTruePI adds a real (non-latch) primary input and returns its id.
func (b *Builder) AddTruePI() int {
	id := b.push(KindPI)
	b.c.truePIs = append(b.c.truePIs, id)
	return id
}

// AddLatch adds a latch-output PI node. The caller must later pair it
// with AddLi to supply the latch's next-state function.
func (b *Builder) AddLatch() int {
	id := b.push(KindPI)
	b.pendingLo = append(b.pendingLo, id)
	return id
}

// AddLi adds the latch-input PO for the oldest still-unpaired AddLatch
// call, fed by fanin0 (possibly inverted). Panics if no latch is awaiting
// its Li, matching the contract-violation error kind from spec section 7.
func (b *Builder) AddLi(fanin0 int, inv0 bool) int {
	if len(b.pendingLo) == 0 {
		panic("circuit: AddLi with no pending AddLatch")
	}
	lo := b.pendingLo[0]
	b.pendingLo = b.pendingLo[1:]
	id := b.push(KindPO)
	b.c.fanin0[id] = fanin0
	b.c.inv0[id] = inv0
	b.c.los = append(b.c.los, lo)
	b.c.lis = append(b.c.lis, id)
	return id
}

// AddAnd adds an internal AND node with two fanins and their edge
// inversions, plus the node's own phase bit.
func (b *Builder) AddAnd(fanin0 int, inv0 bool, fanin1 int, inv1 bool, phase bool) int {
	id := b.push(KindAnd)
	b.c.fanin0[id] = fanin0
	b.c.inv0[id] = inv0
	b.c.fanin1[id] = fanin1
	b.c.inv1[id] = inv1
	b.c.phase[id] = phase
	b.c.topo = append(b.c.topo, id)
	return id
}

// AddTruePO adds a real (non-latch) primary output fed by fanin0.
func (b *Builder) AddTruePO(fanin0 int, inv0 bool) int {
	id := b.push(KindPO)
	b.c.fanin0[id] = fanin0
	b.c.inv0[id] = inv0
	b.c.truePOs = append(b.c.truePOs, id)
	return id
}

// Build finalizes the Circuit. Panics if any AddLatch call was never
// paired with an AddLi.
func (b *Builder) Build() *Circuit {
	if len(b.pendingLo) != 0 {
		panic("circuit: unpaired latch-output without AddLi")
	}
	out := b.c
	return &out
}
