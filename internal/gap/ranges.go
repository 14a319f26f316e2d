package gap

import (
	"fmt"
	"sort"
	"strings"

	"github.com/shinji-kodama/alids/internal/model"
)

// usedByCategory indexes the identifiers in use per category key, and keeps
// the categories in first-seen sorted order with their original spelling.
type usedByCategory struct {
	order []string
	names map[string]string
	used  map[string]map[int]bool
}

func indexRecords(records []model.ExtensionRecord) *usedByCategory {
	sorted := make([]model.ExtensionRecord, len(records))
	copy(sorted, records)
	model.SortRecords(sorted)

	u := &usedByCategory{
		names: make(map[string]string),
		used:  make(map[string]map[int]bool),
	}
	for _, rec := range sorted {
		key := model.CategoryKey(rec.Category)
		if _, ok := u.used[key]; !ok {
			u.order = append(u.order, key)
			u.names[key] = rec.Category
			u.used[key] = make(map[int]bool)
		}
		u.used[key][rec.Identifier] = true
	}
	return u
}

// isTaken reports whether id is already used by the category.
func (u *usedByCategory) isTaken(key string, id int) bool {
	return u.used[key][id]
}

// FreeInRanges returns, for every category present in records, each
// identifier inside ranges that the category does not use.
//
// Categories appear in sort order and identifiers ascend within each
// category. Overlapping ranges report an identifier once. Categories that
// have no records are not reported; use NextFree to start a new category.
// The result holds one entry per free identifier, so its size grows with the
// width of the ranges.
func FreeInRanges(records []model.ExtensionRecord, ranges []model.IDRange) ([]model.FreeIDEntry, error) {
	if err := validateRanges(ranges); err != nil {
		return nil, err
	}

	u := indexRecords(records)
	merged := mergeRanges(ranges)

	free := make([]model.FreeIDEntry, 0)
	for _, key := range u.order {
		eachID(merged, func(id int) bool {
			if !u.isTaken(key, id) {
				free = append(free, model.FreeIDEntry{Identifier: id, Category: u.names[key]})
			}
			return true
		})
	}
	return free, nil
}

// NextFree returns the lowest identifier inside ranges that category does
// not use yet. A category without records gets the first identifier of the
// lowest range.
//
// The search is sequential from the lowest range upward and stops at the
// first untaken identifier, so the same identifier is suggested until it is
// taken. Returns an error wrapping model.ErrNoFreeID when the ranges are
// exhausted.
func NextFree(records []model.ExtensionRecord, ranges []model.IDRange, category string) (model.FreeIDEntry, error) {
	if err := model.ValidateCategory(category); err != nil {
		return model.FreeIDEntry{}, fmt.Errorf("%w: %v", model.ErrInvalidArgument, err)
	}
	if err := validateRanges(ranges); err != nil {
		return model.FreeIDEntry{}, err
	}

	u := indexRecords(records)
	key := model.CategoryKey(category)
	name := category
	if known, ok := u.names[key]; ok {
		name = known
	}

	next, found := 0, false
	eachID(mergeRanges(ranges), func(id int) bool {
		if u.isTaken(key, id) {
			return true
		}
		next, found = id, true
		return false
	})
	if found {
		return model.FreeIDEntry{Identifier: next, Category: name}, nil
	}
	return model.FreeIDEntry{}, fmt.Errorf("%s: all identifiers in %s are in use: %w",
		category, formatRanges(ranges), model.ErrNoFreeID)
}

func validateRanges(ranges []model.IDRange) error {
	if len(ranges) == 0 {
		return fmt.Errorf("no id ranges declared: %w", model.ErrInvalidArgument)
	}
	for _, r := range ranges {
		if err := r.Validate(); err != nil {
			return fmt.Errorf("%w: %v", model.ErrInvalidArgument, err)
		}
	}
	return nil
}

// mergeRanges returns ranges sorted by lower bound with overlapping ranges
// joined, so every identifier belongs to at most one result range.
func mergeRanges(ranges []model.IDRange) []model.IDRange {
	var merged []model.IDRange
	for _, r := range sortedRanges(ranges) {
		if n := len(merged); n > 0 && r.From <= merged[n-1].To {
			if r.To > merged[n-1].To {
				merged[n-1].To = r.To
			}
			continue
		}
		merged = append(merged, r)
	}
	return merged
}

// eachID calls fn for every identifier of ranges in ascending order until fn
// returns false. ranges must be disjoint and sorted, as from mergeRanges.
// Nothing is materialized, and a range ending at math.MaxInt terminates.
func eachID(ranges []model.IDRange, fn func(id int) bool) {
	for _, r := range ranges {
		for id := r.From; ; id++ {
			if !fn(id) {
				return
			}
			if id == r.To {
				break
			}
		}
	}
}

func sortedRanges(ranges []model.IDRange) []model.IDRange {
	out := make([]model.IDRange, len(ranges))
	copy(out, ranges)
	sort.Slice(out, func(i, j int) bool {
		if out[i].From != out[j].From {
			return out[i].From < out[j].From
		}
		return out[i].To < out[j].To
	})
	return out
}

func formatRanges(ranges []model.IDRange) string {
	parts := make([]string, 0, len(ranges))
	for _, r := range sortedRanges(ranges) {
		parts = append(parts, r.String())
	}
	return strings.Join(parts, ", ")
}
