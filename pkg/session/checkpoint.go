package session

import (
	"encoding/gob"
	"fmt"
	"os"

	"github.com/oisee/aigsim/pkg/witness"
)

func init() {
	gob.Register(witness.Witness{})
}

// Checkpoint is resumable batch-run state, grounded on the teacher's
// result.Checkpoint/gob idiom: a long-running batch over many circuits
// can be interrupted and picked back up without resimulating work
// already done.
type Checkpoint struct {
	Completed []Result
	NextIndex int
}

// SaveCheckpoint gob-encodes cp to path.
func SaveCheckpoint(path string, cp Checkpoint) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("session: create checkpoint: %w", err)
	}
	defer f.Close()
	if err := gob.NewEncoder(f).Encode(cp); err != nil {
		return fmt.Errorf("session: encode checkpoint: %w", err)
	}
	return nil
}

// LoadCheckpoint decodes a Checkpoint previously written by SaveCheckpoint.
func LoadCheckpoint(path string) (Checkpoint, error) {
	var cp Checkpoint
	f, err := os.Open(path)
	if err != nil {
		return cp, fmt.Errorf("session: open checkpoint: %w", err)
	}
	defer f.Close()
	if err := gob.NewDecoder(f).Decode(&cp); err != nil {
		return cp, fmt.Errorf("session: decode checkpoint: %w", err)
	}
	return cp, nil
}

// RunResumable runs specs[cp.NextIndex:] and appends their results onto
// cp.Completed, returning the updated checkpoint. Callers persist the
// result with SaveCheckpoint at whatever cadence suits a long batch.
// Each remaining spec gets the seed an uninterrupted Run over all of
// specs would give it.
func RunResumable(cfg Config, specs []CircuitSpec, cp Checkpoint) Checkpoint {
	remaining := specs[cp.NextIndex:]
	cfg.BaseSeed += uint64(cp.NextIndex) * 0x9E3779B97F4A7C15
	results := Run(cfg, remaining)
	cp.Completed = append(cp.Completed, results...)
	cp.NextIndex = len(specs)
	return cp
}
