package entrydb

import "context"

// Repository defines the persistence operations for participant entries.
// Organizer-scoped reads and writes carry the owner's user ID so row
// visibility is enforced at the query level.
type Repository interface {
	// JoinByCode atomically looks up the competition by invite code and
	// inserts a participant entry against it, in one transaction.
	JoinByCode(ctx context.Context, code, playerName, videoURL string) (*ParticipantEntry, error)

	Insert(ctx context.Context, entry *ParticipantEntry) error
	ListByCompetition(ctx context.Context, competitionID int64, ownerID string) ([]*ParticipantEntry, error)
	Update(ctx context.Context, id int64, ownerID string, update *EntryUpdate) (*ParticipantEntry, error)
	// Delete removes an entry and reports the competition it belonged to.
	Delete(ctx context.Context, id int64, ownerID string) (competitionID int64, err error)
}
