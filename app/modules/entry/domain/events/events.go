// Package entryevents defines the topics and payloads published by the entry
// module. The organizer's realtime feed is driven entirely by these events.
package entryevents

import "time"

const (
	EntryCreated = "entry.created"
	EntryUpdated = "entry.updated"
	EntryDeleted = "entry.deleted"
)

// EntryPayload is the payload for EntryCreated and EntryUpdated.
type EntryPayload struct {
	EntryID       int64     `json:"entry_id"`
	CompetitionID int64     `json:"competition_id"`
	PlayerName    string    `json:"player_name"`
	VideoURL      string    `json:"video_url"`
	Score         *int      `json:"score,omitempty"`
	Comments      *string   `json:"comments,omitempty"`
	CreatedAt     time.Time `json:"created_at"`
}

// EntryDeletedPayload is the payload for EntryDeleted.
type EntryDeletedPayload struct {
	EntryID       int64 `json:"entry_id"`
	CompetitionID int64 `json:"competition_id"`
}

// MetadataCompetitionID is the message metadata key carrying the competition
// ID, used by subscribers to filter without unmarshalling the payload.
const MetadataCompetitionID = "competition_id"
