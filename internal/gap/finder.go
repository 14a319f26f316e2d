package gap

import (
	"github.com/shinji-kodama/alids/internal/model"
)

// FindFree returns every identifier strictly between two consecutive
// identifiers of the same category.
//
// Records are walked in (category, identifier) order. A copy of records is
// sorted first, so callers may pass records in any order; on input already
// produced by the extractor the sort is a no-op.
//
// Algorithm:
//  1. The first record, and the first record after a category change, only
//     become the predecessor. No gap is computed against a missing
//     predecessor.
//  2. Otherwise, if current - previous != 1, every integer in
//     (previous, current) is emitted, tagged with the current category.
//     Duplicates (current == previous) emit nothing. On sorted input the
//     difference is never negative, so the check is current - previous > 1,
//     which cannot overflow for non-negative identifiers.
//  3. The current record always becomes the predecessor.
//
// The result is empty, never nil, when there are no gaps. Every missing
// identifier gets its own entry, so two records far apart, such as 1 and
// 2000000000, produce a result of that size. Callers scanning untrusted
// sources should bound the spread of identifiers first.
func FindFree(records []model.ExtensionRecord) []model.FreeIDEntry {
	sorted := make([]model.ExtensionRecord, len(records))
	copy(sorted, records)
	model.SortRecords(sorted)

	free := make([]model.FreeIDEntry, 0)

	var (
		havePrev     bool
		prevID       int
		prevCategory string
	)
	for _, rec := range sorted {
		if havePrev && model.SameCategory(rec.Category, prevCategory) && rec.Identifier-prevID > 1 {
			for id := prevID + 1; id < rec.Identifier; id++ {
				free = append(free, model.FreeIDEntry{Identifier: id, Category: rec.Category})
			}
		}

		havePrev = true
		prevID = rec.Identifier
		prevCategory = rec.Category
	}

	return free
}
