// Package refine is the equivalence-class refiner that rides on top of
// the C6 observation operators in pkg/sim: it buckets internal nodes by
// HashWord into candidate-equal classes the way pkg/search's
// FingerprintMap buckets instruction sequences by Fingerprint, then
// splits each bucket with AreEqualWord and ranks within-bucket survivors
// by NotEquWeight, the sample-estimated Hamming distance. It never
// simulates — the session it reads must already be fully simulated — so
// fanning this out across goroutines does not touch the single-threaded
// simulation round the spec requires.
package refine

import (
	"sort"
	"sync"
	"sync/atomic"

	"github.com/oisee/aigsim/pkg/sim"
)

// Class is a set of node ids whose HashWord collided; members still need
// an exact AreEqualWord check before being trusted as truly equivalent.
type Class struct {
	Hash    uint32
	Members []int
}

// Bucket groups candidate node ids into hash-collision classes.
func Bucket(s *sim.Session, candidates []int) []Class {
	buckets := make(map[uint32][]int, len(candidates))
	for _, n := range candidates {
		h := s.HashWord(n)
		buckets[h] = append(buckets[h], n)
	}
	classes := make([]Class, 0, len(buckets))
	for h, members := range buckets {
		if len(members) < 2 {
			continue
		}
		classes = append(classes, Class{Hash: h, Members: members})
	}
	sort.Slice(classes, func(i, j int) bool { return classes[i].Hash < classes[j].Hash })
	return classes
}

// Split partitions a hash-collision Class into exact-equal sub-classes
// using AreEqualWord, the definitive (not sampled) check.
func Split(s *sim.Session, c Class) []Class {
	var out []Class
	assigned := make([]bool, len(c.Members))
	for i, n := range c.Members {
		if assigned[i] {
			continue
		}
		group := []int{n}
		assigned[i] = true
		for j := i + 1; j < len(c.Members); j++ {
			if assigned[j] {
				continue
			}
			if s.AreEqualWord(n, c.Members[j]) {
				group = append(group, c.Members[j])
				assigned[j] = true
			}
		}
		if len(group) > 1 {
			out = append(out, Class{Hash: c.Hash, Members: group})
		}
	}
	return out
}

// RankedPair is a candidate-distinct node pair annotated with its
// sample-estimated Hamming distance, ascending so the closest-to-equal
// pairs (the ones worth feeding to a real SAT-based equivalence check)
// sort first.
type RankedPair struct {
	A, B   int
	Weight uint32
}

// RankCandidates scores every pair with NotEquWeight concurrently — pure
// reads of an already-simulated session, not a new simulation round —
// and returns them sorted by ascending weight. Progress mirrors the
// worker-pool shape pkg/search uses for its own candidate sweeps.
func RankCandidates(s *sim.Session, pairs [][2]int) []RankedPair {
	out := make([]RankedPair, len(pairs))
	var completed atomic.Int64

	const workers = 8
	jobs := make(chan int)
	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range jobs {
				a, b := pairs[i][0], pairs[i][1]
				out[i] = RankedPair{A: a, B: b, Weight: s.NotEquWeight(a, b)}
				completed.Add(1)
			}
		}()
	}
	for i := range pairs {
		jobs <- i
	}
	close(jobs)
	wg.Wait()

	sort.Slice(out, func(i, j int) bool { return out[i].Weight < out[j].Weight })
	return out
}

// ImplicationRank scores latch-input/latch-output pairs against a
// candidate implication gate by CountXorImplication, the ranking
// counterpart to the boolean CheckXorImplication.
type ImplicationRank struct {
	Li, Lo, Cand int
	CandInv      bool
	Count        uint32
}

// RankImplications evaluates CountXorImplication for each candidate and
// sorts descending: the strongest-supported implications first.
func RankImplications(s *sim.Session, cands []ImplicationRank) []ImplicationRank {
	out := make([]ImplicationRank, len(cands))
	copy(out, cands)
	for i := range out {
		out[i].Count = s.CountXorImplication(out[i].Li, out[i].Lo, out[i].Cand, out[i].CandInv)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Count > out[j].Count })
	return out
}
