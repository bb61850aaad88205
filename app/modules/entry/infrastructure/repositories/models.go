package entrydb

import (
	"time"

	"github.com/uptrace/bun"
)

// ParticipantEntry is a submission (name + video link) tied to one
// competition, optionally scored and commented by the organizer.
type ParticipantEntry struct {
	bun.BaseModel `bun:"table:player_entries,alias:pe"`

	ID            int64     `bun:"id,pk,autoincrement" json:"id"`
	CompetitionID int64     `bun:"competition_id,notnull" json:"competition_id"`
	PlayerName    string    `bun:"player_name,notnull" json:"player_name"`
	VideoURL      string    `bun:"video_url,notnull" json:"video_url"`
	Score         *int      `bun:"score,nullzero" json:"score,omitempty"`
	Comments      *string   `bun:"comments,nullzero" json:"comments,omitempty"`
	CreatedAt     time.Time `bun:"created_at,notnull,default:current_timestamp" json:"created_at"`
}

// EntryUpdate carries the organizer-editable fields. Nil means "leave as is".
type EntryUpdate struct {
	Score    *int
	Comments *string
}
