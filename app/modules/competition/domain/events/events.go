// Package competitionevents defines the topics and payloads published by the
// competition module.
package competitionevents

const (
	// CompetitionCreated is published after a competition row is persisted.
	CompetitionCreated = "competition.created"

	// CompetitionThemeUpdated is published after a cosmetic theme change.
	CompetitionThemeUpdated = "competition.theme_updated"
)

// CompetitionCreatedPayload is the payload for CompetitionCreated.
type CompetitionCreatedPayload struct {
	CompetitionID   int64  `json:"competition_id"`
	Name            string `json:"name"`
	CompetitionCode string `json:"competition_code"`
	CreatedBy       string `json:"created_by"`
}

// CompetitionThemeUpdatedPayload is the payload for CompetitionThemeUpdated.
type CompetitionThemeUpdatedPayload struct {
	CompetitionID int64  `json:"competition_id"`
	Theme         string `json:"theme"`
}
