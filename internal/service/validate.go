package service

import (
	"fmt"
	"sort"

	"github.com/abdur-rahman-shawl/young-minds-availability-api/internal/models"
)

// ValidateTimeBlock checks a candidate block for internal validity and
// non-conflict against the other blocks of the same day. Every violation is
// collected, never short-circuited, so callers can surface all errors at
// once. Pure function; no state is touched.
func ValidateTimeBlock(candidate models.TimeBlock, others []models.TimeBlock) []string {
	var violations []string

	start, startErr := models.ParseMinutes(candidate.StartTime)
	if startErr != nil {
		violations = append(violations, fmt.Sprintf("start time %q is not a valid HH:MM value", candidate.StartTime))
	}
	end, endErr := models.ParseMinutes(candidate.EndTime)
	if endErr != nil {
		violations = append(violations, fmt.Sprintf("end time %q is not a valid HH:MM value", candidate.EndTime))
	}
	if startErr == nil && endErr == nil && start >= end {
		violations = append(violations, fmt.Sprintf("start time %s must be before end time %s", candidate.StartTime, candidate.EndTime))
	}

	if !candidate.Type.Valid() {
		violations = append(violations, fmt.Sprintf("unknown block type %q", string(candidate.Type)))
	}

	if startErr == nil && endErr == nil {
		for _, other := range others {
			if candidate.Overlaps(other) {
				violations = append(violations, fmt.Sprintf("block %s-%s overlaps existing %s block %s-%s",
					candidate.StartTime, candidate.EndTime, other.Type, other.StartTime, other.EndTime))
			}
		}
	}

	if candidate.Type == models.BlockAvailable && candidate.MaxConcurrentBookings != nil && *candidate.MaxConcurrentBookings < 1 {
		violations = append(violations, "maxConcurrentBookings must be a positive integer")
	}

	return violations
}

// ValidateBlockSet validates every block of a set against the rest of the
// set, concatenating all violations. Used by bulk pattern writes where the
// whole day's list arrives at once.
func ValidateBlockSet(blocks []models.TimeBlock) []string {
	var violations []string
	for i, block := range blocks {
		violations = append(violations, ValidateTimeBlock(block, ExcludeIndex(blocks, i))...)
	}
	return violations
}

// ExcludeIndex returns the block list without the element at idx. Editing a
// block validates against this so a block never conflicts with its own prior
// state. An out-of-range idx returns a copy of the full list.
func ExcludeIndex(blocks []models.TimeBlock, idx int) []models.TimeBlock {
	out := make([]models.TimeBlock, 0, len(blocks))
	for i, b := range blocks {
		if i == idx {
			continue
		}
		out = append(out, b)
	}
	return out
}

// NormalizeBlocks returns the canonical minimal representation of a day's
// block list: sorted ascending by start time (ties by end time) with any two
// adjacent or overlapping blocks of the same type merged into one spanning
// block. Assumes validator invariants already hold, so blocks of different
// types never overlap here. Idempotent.
func NormalizeBlocks(blocks []models.TimeBlock) []models.TimeBlock {
	if len(blocks) == 0 {
		return []models.TimeBlock{}
	}

	sorted := make([]models.TimeBlock, len(blocks))
	for i, b := range blocks {
		sorted[i] = b.Clone()
	}
	sort.SliceStable(sorted, func(i, j int) bool {
		si, ei, _ := sorted[i].Bounds()
		sj, ej, _ := sorted[j].Bounds()
		if si != sj {
			return si < sj
		}
		return ei < ej
	})

	out := make([]models.TimeBlock, 0, len(sorted))
	current := sorted[0]
	for _, next := range sorted[1:] {
		_, ce, _ := current.Bounds()
		ns, ne, _ := next.Bounds()
		if next.Type == current.Type && ns <= ce {
			if ne > ce {
				current.EndTime = models.FormatMinutes(ne)
			}
			if next.Capacity() > current.Capacity() {
				current.MaxConcurrentBookings = next.MaxConcurrentBookings
			}
			continue
		}
		out = append(out, current)
		current = next
	}
	out = append(out, current)
	return out
}
