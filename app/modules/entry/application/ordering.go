package entryservice

import (
	"sort"

	entrydb "github.com/leetrboo/leetrboo-api/app/modules/entry/infrastructure/repositories"
)

// SortEntriesForDisplay produces the deterministic display order: scored
// entries first, descending by score; unscored entries after, most recent
// first. Equal scores keep their arrival order. The input slice is not
// mutated.
func SortEntriesForDisplay(entries []*entrydb.ParticipantEntry) []*entrydb.ParticipantEntry {
	sorted := make([]*entrydb.ParticipantEntry, len(entries))
	copy(sorted, entries)

	sort.SliceStable(sorted, func(i, j int) bool {
		a, b := sorted[i], sorted[j]
		switch {
		case a.Score != nil && b.Score != nil:
			return *a.Score > *b.Score
		case a.Score != nil:
			return true
		case b.Score != nil:
			return false
		default:
			return a.CreatedAt.After(b.CreatedAt)
		}
	})

	return sorted
}
