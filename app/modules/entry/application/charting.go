package entryservice

import (
	"bytes"
	"context"
	"fmt"

	"github.com/wcharczuk/go-chart/v2"

	"github.com/leetrboo/leetrboo-api/app/shared"
)

// RenderScoreChart produces a PNG bar chart of the competition's scored
// entries, in display order. Unscored entries are omitted.
func (s *ServiceImpl) RenderScoreChart(ctx context.Context, session *shared.Session, competitionID int64) ([]byte, error) {
	entries, err := s.ListEntries(ctx, session, competitionID)
	if err != nil {
		return nil, err
	}

	var bars []chart.Value
	for _, entry := range entries {
		if entry.Score == nil {
			continue
		}
		bars = append(bars, chart.Value{
			Label: entry.PlayerName,
			Value: float64(*entry.Score),
		})
	}
	if len(bars) == 0 {
		return nil, fmt.Errorf("no scored entries to chart")
	}

	graph := chart.BarChart{
		Title:    "Scores",
		Width:    800,
		Height:   400,
		BarWidth: 40,
		Bars:     bars,
	}

	buffer := bytes.NewBuffer([]byte{})
	if err := graph.Render(chart.PNG, buffer); err != nil {
		return nil, fmt.Errorf("failed to render chart: %w", err)
	}
	return buffer.Bytes(), nil
}
