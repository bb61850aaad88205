package testutils

import (
	"fmt"
	"time"

	"github.com/brianvoe/gofakeit/v7"

	competitiondb "github.com/leetrboo/leetrboo-api/app/modules/competition/infrastructure/repositories"
	entrydb "github.com/leetrboo/leetrboo-api/app/modules/entry/infrastructure/repositories"
)

// TestDataGenerator produces realistic competitions and participant entries
// for tests. A fixed seed makes a run reproducible.
type TestDataGenerator struct {
	faker *gofakeit.Faker
	seed  int64
}

// NewTestDataGenerator creates a generator with an optional seed.
func NewTestDataGenerator(seed ...int64) *TestDataGenerator {
	var s int64
	if len(seed) > 0 {
		s = seed[0]
	} else {
		s = time.Now().UnixNano()
	}

	return &TestDataGenerator{
		faker: gofakeit.New(uint64(s)),
		seed:  s,
	}
}

// Seed returns the seed in use, for reproducing a failed run.
func (g *TestDataGenerator) Seed() int64 {
	return g.seed
}

// GenerateCompetition builds a competition owned by createdBy with a
// plausible six-digit code.
func (g *TestDataGenerator) GenerateCompetition(id int64, createdBy string) *competitiondb.Competition {
	themes := []competitiondb.Theme{
		competitiondb.ThemeClassic,
		competitiondb.ThemeKaraoke,
		competitiondb.ThemeHalloween,
		competitiondb.ThemeHoliday,
	}

	return &competitiondb.Competition{
		ID:              id,
		Name:            g.faker.Company() + " " + g.faker.HackerNoun(),
		CreatedBy:       createdBy,
		CompetitionCode: fmt.Sprintf("%06d", g.faker.Number(100000, 999999)),
		Theme:           themes[g.faker.Number(0, len(themes)-1)],
		CreatedAt:       g.faker.DateRange(time.Now().Add(-30*24*time.Hour), time.Now()),
	}
}

// GenerateEntry builds a participant entry for the competition. Roughly half
// the entries carry a score.
func (g *TestDataGenerator) GenerateEntry(id, competitionID int64) *entrydb.ParticipantEntry {
	entry := &entrydb.ParticipantEntry{
		ID:            id,
		CompetitionID: competitionID,
		PlayerName:    g.faker.Username(),
		VideoURL:      fmt.Sprintf("https://example.com/videos/%s", g.faker.UUID()),
		CreatedAt:     g.faker.DateRange(time.Now().Add(-7*24*time.Hour), time.Now()),
	}
	if g.faker.Bool() {
		score := g.faker.Number(0, 100)
		entry.Score = &score
	}
	return entry
}

// GenerateEntries builds n entries for the competition with distinct IDs.
func (g *TestDataGenerator) GenerateEntries(competitionID int64, n int) []*entrydb.ParticipantEntry {
	entries := make([]*entrydb.ParticipantEntry, 0, n)
	for i := 0; i < n; i++ {
		entries = append(entries, g.GenerateEntry(int64(i+1), competitionID))
	}
	return entries
}
