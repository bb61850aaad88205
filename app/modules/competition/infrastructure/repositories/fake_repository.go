package competitiondb

import "context"

// ------------------------
// Fake Competition Repo
// ------------------------

// FakeRepository provides a programmable stub for the Repository interface.
type FakeRepository struct {
	trace []string

	CreateFunc        func(ctx context.Context, competition *Competition) error
	GetByIDFunc       func(ctx context.Context, id int64) (*Competition, error)
	GetByCodeFunc     func(ctx context.Context, code string) (*Competition, error)
	CodeExistsFunc    func(ctx context.Context, code string) (bool, error)
	ListByCreatorFunc func(ctx context.Context, createdBy string) ([]*Competition, error)
	UpdateThemeFunc   func(ctx context.Context, id int64, createdBy string, theme Theme) error
}

// Trace returns the ordered list of repository calls observed.
func (f *FakeRepository) Trace() []string { return f.trace }

func (f *FakeRepository) Create(ctx context.Context, competition *Competition) error {
	f.trace = append(f.trace, "Create")
	if f.CreateFunc != nil {
		return f.CreateFunc(ctx, competition)
	}
	return nil
}

func (f *FakeRepository) GetByID(ctx context.Context, id int64) (*Competition, error) {
	f.trace = append(f.trace, "GetByID")
	if f.GetByIDFunc != nil {
		return f.GetByIDFunc(ctx, id)
	}
	return nil, ErrNotFound
}

func (f *FakeRepository) GetByCode(ctx context.Context, code string) (*Competition, error) {
	f.trace = append(f.trace, "GetByCode")
	if f.GetByCodeFunc != nil {
		return f.GetByCodeFunc(ctx, code)
	}
	return nil, ErrNotFound
}

func (f *FakeRepository) CodeExists(ctx context.Context, code string) (bool, error) {
	f.trace = append(f.trace, "CodeExists")
	if f.CodeExistsFunc != nil {
		return f.CodeExistsFunc(ctx, code)
	}
	return false, nil
}

func (f *FakeRepository) ListByCreator(ctx context.Context, createdBy string) ([]*Competition, error) {
	f.trace = append(f.trace, "ListByCreator")
	if f.ListByCreatorFunc != nil {
		return f.ListByCreatorFunc(ctx, createdBy)
	}
	return nil, nil
}

func (f *FakeRepository) UpdateTheme(ctx context.Context, id int64, createdBy string, theme Theme) error {
	f.trace = append(f.trace, "UpdateTheme")
	if f.UpdateThemeFunc != nil {
		return f.UpdateThemeFunc(ctx, id, createdBy, theme)
	}
	return nil
}
