package sim

import "github.com/oisee/aigsim/pkg/bitv"

// primes128 is the fixed table HashWord mixes scanned words against,
// taken verbatim from s_SPrimes. Its only job is to spread bit patterns
// across a 32-bit hash; the specific primes are a constant of the
// design, not a tunable.
var primes128 = [128]uint32{
	1009, 1049, 1093, 1151, 1201, 1249, 1297, 1361, 1427, 1459,
	1499, 1559, 1607, 1657, 1709, 1759, 1823, 1877, 1933, 1997,
	2039, 2089, 2141, 2213, 2269, 2311, 2371, 2411, 2467, 2543,
	2609, 2663, 2699, 2741, 2797, 2851, 2909, 2969, 3037, 3089,
	3169, 3221, 3299, 3331, 3389, 3461, 3517, 3557, 3613, 3671,
	3719, 3779, 3847, 3907, 3943, 4013, 4073, 4129, 4201, 4243,
	4289, 4363, 4441, 4493, 4549, 4621, 4663, 4729, 4793, 4871,
	4933, 4973, 5021, 5087, 5153, 5227, 5281, 5351, 5417, 5471,
	5519, 5573, 5651, 5693, 5749, 5821, 5861, 5923, 6011, 6073,
	6131, 6199, 6257, 6301, 6353, 6397, 6481, 6563, 6619, 6689,
	6737, 6803, 6863, 6917, 6977, 7027, 7109, 7187, 7237, 7309,
	7393, 7477, 7523, 7561, 7607, 7681, 7727, 7817, 7877, 7933,
	8011, 8039, 8059, 8081, 8093, 8111, 8123, 8147,
}

// scanned returns the window of a node's words that equivalence
// sampling observes, [WordsPref, WordsPerNode) — prefix frames are
// skipped so startup transients don't taint an equivalence verdict.
func (s *Session) scanned(id int) []uint32 {
	w := s.Words(id)
	return w[s.wordsPref:]
}

// IsConstWord reports whether every scanned word of n is zero.
func (s *Session) IsConstWord(n int) bool {
	for _, w := range s.scanned(n) {
		if w != 0 {
			return false
		}
	}
	return true
}

// NodeIsZero is IsConstWord under the name the observation operators
// use when framing the question as "is this node's simulation zero."
// The two were duplicate entry points with the same body in the source
// this is grounded on; this package exposes only one.
func (s *Session) NodeIsZero(n int) bool { return s.IsConstWord(n) }

// AreEqualWord reports whether every scanned word of n0 and n1 match.
func (s *Session) AreEqualWord(n0, n1 int) bool {
	w0 := s.scanned(n0)
	w1 := s.scanned(n1)
	for i := range w0 {
		if w0[i] != w1[i] {
			return false
		}
	}
	return true
}

// HashWord multiplies each scanned word of n by a fixed prime keyed by
// its position, mod 128, and XORs the products together. It requires WordsPerNode <= 128 (a contract
// violation otherwise, per spec section 7).
func (s *Session) HashWord(n int) uint32 {
	if s.wordsPerNode > 128 {
		panic("sim: HashWord requires WordsPerNode <= 128")
	}
	var h uint32
	for i, w := range s.scanned(n) {
		h ^= w * primes128[(s.wordsPref+i)&0x7F]
	}
	return h
}

// NotEquWeight sums the popcounts of sim[n0] XOR sim[n1] over the
// scanned range: a sample-estimated Hamming distance used to rank
// candidate-equal node pairs for the equivalence-class refiner.
func (s *Session) NotEquWeight(n0, n1 int) uint32 {
	w0 := s.scanned(n0)
	w1 := s.scanned(n1)
	var sum uint32
	for i := range w0 {
		sum += uint32(bitv.PopCount(w0[i] ^ w1[i]))
	}
	return sum
}

// CheckXorImplication returns true iff, over the scanned range, cand
// (respecting its own edge inversion relative to li/lo) never witnesses
// li != lo: cand implies li == lo has no counter-sample in the data.
func (s *Session) CheckXorImplication(li, lo, cand int, candInv bool) bool {
	wLi := s.scanned(li)
	wLo := s.scanned(lo)
	wCand := s.scanned(cand)
	for i := range wLi {
		diff := wLi[i] ^ wLo[i]
		var masked uint32
		if candInv {
			masked = ^wCand[i] & diff
		} else {
			masked = wCand[i] & diff
		}
		if masked != 0 {
			return false
		}
	}
	return true
}

// CountXorImplication counts bits where cand (respecting its own edge
// inversion) is true and li == lo: positive evidence for the
// implication, used as a ranking signal rather than a boolean verdict.
func (s *Session) CountXorImplication(li, lo, cand int, candInv bool) uint32 {
	wLi := s.scanned(li)
	wLo := s.scanned(lo)
	wCand := s.scanned(cand)
	var count uint32
	for i := range wLi {
		same := ^(wLi[i] ^ wLo[i])
		var masked uint32
		if candInv {
			masked = ^wCand[i] & same
		} else {
			masked = wCand[i] & same
		}
		count += uint32(bitv.PopCount(masked))
	}
	return count
}

// NodeCountOnes pops the count across all words of the node, including
// the prefix frames that the scanned-range operators skip.
func (s *Session) NodeCountOnes(n int) uint32 {
	var count uint32
	for _, w := range s.Words(n) {
		count += uint32(bitv.PopCount(w))
	}
	return count
}

// CheckNonConstOutputs reports whether any true PO has a non-zero word
// in the scanned range.
func (s *Session) CheckNonConstOutputs() bool {
	for _, po := range s.aig.TruePOs() {
		if !s.IsConstWord(po) {
			return true
		}
	}
	return false
}

// IsConstBit is the cheap structural counterpart to IsConstWord: it
// uses only the node's phase and a scratch markB bit, with no
// simulation data involved.
func IsConstBit(phase, markB bool) bool { return phase == markB }

// AreEqualBit is the cheap structural counterpart to AreEqualWord.
func AreEqualBit(phase0, markB0, phase1, markB1 bool) bool {
	return (phase0 == markB0) == (phase1 == markB1)
}

// EqualInFrame compares two nodes' single-frame windows directly,
// without paying for a full scanned-range AreEqualWord. pkg/refine does
// not call it; its Split uses AreEqualWord alone.
func (s *Session) EqualInFrame(n0, n1, f int) bool {
	w0 := s.WordsFrame(n0, f)
	w1 := s.WordsFrame(n1, f)
	for i := range w0 {
		if w0[i] != w1[i] {
			return false
		}
	}
	return true
}
