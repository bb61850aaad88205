package competitiondb

import (
	"time"

	"github.com/uptrace/bun"
)

// Theme is a cosmetic tag chosen by the organizer. It never affects behavior.
type Theme string

const (
	ThemeClassic   Theme = "classic"
	ThemeKaraoke   Theme = "karaoke"
	ThemeHalloween Theme = "halloween"
	ThemeHoliday   Theme = "holiday"
)

// IsValid reports whether the theme is one of the known tags.
func (t Theme) IsValid() bool {
	switch t {
	case ThemeClassic, ThemeKaraoke, ThemeHalloween, ThemeHoliday:
		return true
	}
	return false
}

// Competition is an organizer-owned contest with a shareable invite code.
type Competition struct {
	bun.BaseModel `bun:"table:competitions,alias:c"`

	ID              int64     `bun:"id,pk,autoincrement" json:"id"`
	Name            string    `bun:"name,notnull" json:"name"`
	CreatedBy       string    `bun:"created_by,notnull" json:"created_by"`
	CompetitionCode string    `bun:"competition_code,unique,notnull" json:"competition_code"`
	Theme           Theme     `bun:"theme,notnull,default:'classic'" json:"theme"`
	CreatedAt       time.Time `bun:"created_at,notnull,default:current_timestamp" json:"created_at"`
}
