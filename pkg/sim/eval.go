package sim

// NodeSimulate computes node n's word window at frame f from its two
// fanins. Let p = n's phase, (c0, c1) the fanins' edge inversions, and
// (phi0, phi1) = (fanin0's own phase XOR c0, fanin1's own phase XOR c1).
// The four (phi0, phi1) cases and the two p sub-cases collapse into
// exactly one of eight bitwise expressions; dispatching once per node
// on (phi0, phi1, p) keeps the per-word loop branch-free so it
// vectorizes trivially.
func (s *Session) NodeSimulate(n, f int) {
	if !s.aig.IsAnd(n) {
		panic("sim: NodeSimulate on a non-AND node")
	}
	a0, c0 := s.aig.Fanin0(n)
	a1, c1 := s.aig.Fanin1(n)
	phi0 := s.aig.Phase(a0) != c0
	phi1 := s.aig.Phase(a1) != c1
	p := s.aig.Phase(n)

	w0 := s.WordsFrame(a0, f)
	w1 := s.WordsFrame(a1, f)
	out := s.WordsFrame(n, f)

	switch {
	case !phi0 && !phi1 && !p:
		for i := range out {
			out[i] = w0[i] & w1[i]
		}
	case !phi0 && !phi1 && p:
		for i := range out {
			out[i] = ^(w0[i] & w1[i])
		}
	case !phi0 && phi1 && !p:
		for i := range out {
			out[i] = w0[i] &^ w1[i]
		}
	case !phi0 && phi1 && p:
		for i := range out {
			out[i] = ^(w0[i] &^ w1[i])
		}
	case phi0 && !phi1 && !p:
		for i := range out {
			out[i] = w1[i] &^ w0[i]
		}
	case phi0 && !phi1 && p:
		for i := range out {
			out[i] = ^(w1[i] &^ w0[i])
		}
	case phi0 && phi1 && !p:
		for i := range out {
			out[i] = ^(w0[i] | w1[i])
		}
	default: // phi0 && phi1 && p
		for i := range out {
			out[i] = w0[i] | w1[i]
		}
	}
}

// NodeCopyFanin copies fanin0's window at frame f into po, inverting if
// c0 is set. po must be PO-kind (a true PO or a latch-input); its own
// phase bit is irrelevant, POs carry no constant-folding.
func (s *Session) NodeCopyFanin(po, f int) {
	if !s.aig.IsPO(po) {
		panic("sim: NodeCopyFanin on a non-PO node")
	}
	a0, c0 := s.aig.Fanin0(po)
	w0 := s.WordsFrame(a0, f)
	out := s.WordsFrame(po, f)
	if c0 {
		for i := range out {
			out[i] = ^w0[i]
		}
	} else {
		copy(out, w0)
	}
}

// NodeTransferNext copies li's words at frame f into lo's words at
// frame f+1 verbatim. Precondition: f < NumFrames-1.
func (s *Session) NodeTransferNext(li, lo, f int) {
	if f >= s.numFrames-1 {
		panic("sim: NodeTransferNext requires f < NumFrames-1")
	}
	copy(s.WordsFrame(lo, f+1), s.WordsFrame(li, f))
}

// NodeTransferFirst copies li's words at the last frame into lo's
// frame-0 window. Used to stitch consecutive sequential simulation
// rounds together.
func (s *Session) NodeTransferFirst(li, lo int) {
	copy(s.WordsFrame(lo, 0), s.WordsFrame(li, s.numFrames-1))
}
