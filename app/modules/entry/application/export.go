package entryservice

import (
	"context"
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/leetrboo/leetrboo-api/app/shared"

	entrydb "github.com/leetrboo/leetrboo-api/app/modules/entry/infrastructure/repositories"
)

// ExportScoreboard renders the competition's entries, in display order, as an
// XLSX workbook.
func (s *ServiceImpl) ExportScoreboard(ctx context.Context, session *shared.Session, competitionID int64) ([]byte, error) {
	entries, err := s.ListEntries(ctx, session, competitionID)
	if err != nil {
		return nil, err
	}

	f := excelize.NewFile()
	defer f.Close()

	const sheet = "Scoreboard"
	index, err := f.NewSheet(sheet)
	if err != nil {
		return nil, fmt.Errorf("failed to create sheet: %w", err)
	}
	f.SetActiveSheet(index)
	if err := f.DeleteSheet("Sheet1"); err != nil {
		return nil, fmt.Errorf("failed to remove default sheet: %w", err)
	}

	headers := []string{"Rank", "Player", "Video URL", "Score", "Comments", "Submitted"}
	for col, header := range headers {
		cell, err := excelize.CoordinatesToCellName(col+1, 1)
		if err != nil {
			return nil, fmt.Errorf("failed to compute header cell: %w", err)
		}
		if err := f.SetCellValue(sheet, cell, header); err != nil {
			return nil, fmt.Errorf("failed to write header: %w", err)
		}
	}

	for row, entry := range entries {
		values := []any{
			row + 1,
			entry.PlayerName,
			entry.VideoURL,
			scoreCell(entry),
			commentsCell(entry),
			entry.CreatedAt.Format("2006-01-02 15:04"),
		}
		for col, value := range values {
			cell, err := excelize.CoordinatesToCellName(col+1, row+2)
			if err != nil {
				return nil, fmt.Errorf("failed to compute cell: %w", err)
			}
			if err := f.SetCellValue(sheet, cell, value); err != nil {
				return nil, fmt.Errorf("failed to write cell: %w", err)
			}
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("failed to serialize workbook: %w", err)
	}
	return buf.Bytes(), nil
}

func scoreCell(entry *entrydb.ParticipantEntry) any {
	if entry.Score == nil {
		return ""
	}
	return *entry.Score
}

func commentsCell(entry *entrydb.ParticipantEntry) string {
	if entry.Comments == nil {
		return ""
	}
	return *entry.Comments
}
