package entrydb

import "context"

// ------------------------
// Fake Entry Repo
// ------------------------

// FakeRepository provides a programmable stub for the Repository interface.
type FakeRepository struct {
	trace []string

	JoinByCodeFunc        func(ctx context.Context, code, playerName, videoURL string) (*ParticipantEntry, error)
	InsertFunc            func(ctx context.Context, entry *ParticipantEntry) error
	ListByCompetitionFunc func(ctx context.Context, competitionID int64, ownerID string) ([]*ParticipantEntry, error)
	UpdateFunc            func(ctx context.Context, id int64, ownerID string, update *EntryUpdate) (*ParticipantEntry, error)
	DeleteFunc            func(ctx context.Context, id int64, ownerID string) (int64, error)
}

// Trace returns the ordered list of repository calls observed.
func (f *FakeRepository) Trace() []string { return f.trace }

func (f *FakeRepository) JoinByCode(ctx context.Context, code, playerName, videoURL string) (*ParticipantEntry, error) {
	f.trace = append(f.trace, "JoinByCode")
	if f.JoinByCodeFunc != nil {
		return f.JoinByCodeFunc(ctx, code, playerName, videoURL)
	}
	return nil, ErrCodeNotFound
}

func (f *FakeRepository) Insert(ctx context.Context, entry *ParticipantEntry) error {
	f.trace = append(f.trace, "Insert")
	if f.InsertFunc != nil {
		return f.InsertFunc(ctx, entry)
	}
	return nil
}

func (f *FakeRepository) ListByCompetition(ctx context.Context, competitionID int64, ownerID string) ([]*ParticipantEntry, error) {
	f.trace = append(f.trace, "ListByCompetition")
	if f.ListByCompetitionFunc != nil {
		return f.ListByCompetitionFunc(ctx, competitionID, ownerID)
	}
	return nil, nil
}

func (f *FakeRepository) Update(ctx context.Context, id int64, ownerID string, update *EntryUpdate) (*ParticipantEntry, error) {
	f.trace = append(f.trace, "Update")
	if f.UpdateFunc != nil {
		return f.UpdateFunc(ctx, id, ownerID, update)
	}
	return nil, ErrNotFound
}

func (f *FakeRepository) Delete(ctx context.Context, id int64, ownerID string) (int64, error) {
	f.trace = append(f.trace, "Delete")
	if f.DeleteFunc != nil {
		return f.DeleteFunc(ctx, id, ownerID)
	}
	return 0, ErrNotFound
}
