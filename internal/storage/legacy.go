package storage

import (
	"context"
	"encoding/json"
	"fmt"
	"math"
	"strings"
	"time"
)

// LegacyScore is one entry of a browser-era high score list:
// [{"score": 1234, "time": "03:12", "date": "1/2/2024"}, ...]
type LegacyScore struct {
	Score float64 `json:"score"`
	Time  string  `json:"time"`
	Date  string  `json:"date"`
}

// ParseLegacyScores decodes a legacy score list. Entries without a numeric
// score or a string time are dropped. A document that is not a JSON array
// yields an error and no entries.
func ParseLegacyScores(data []byte) ([]LegacyScore, error) {
	var raw []json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("storage: legacy scores are not a list: %w", err)
	}

	scores := make([]LegacyScore, 0, len(raw))
	for _, item := range raw {
		var fields map[string]any
		if err := json.Unmarshal(item, &fields); err != nil || fields == nil {
			continue
		}
		score, ok := fields["score"].(float64)
		if !ok {
			continue
		}
		when, ok := fields["time"].(string)
		if !ok {
			continue
		}
		date, _ := fields["date"].(string)
		scores = append(scores, LegacyScore{Score: score, Time: when, Date: date})
	}
	return scores, nil
}

// legacyDateLayouts are the locale date formats browsers commonly produce.
var legacyDateLayouts = []string{
	"1/2/2006",
	"2006-01-02",
	"02.01.2006",
	"2/1/2006",
}

func parseLegacyDate(s string) time.Time {
	s = strings.TrimSpace(s)
	for _, layout := range legacyDateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t
		}
	}
	return time.Time{}
}

// ImportLegacy saves legacy entries as runs. Only the best MaxHighScores
// survive, as with any other save. It returns how many entries were stored.
func (s *Store) ImportLegacy(ctx context.Context, scores []LegacyScore) (int, error) {
	n := 0
	for _, ls := range scores {
		_, err := s.SaveRun(ctx, RunRecord{
			Score:     int(math.Max(0, math.Floor(ls.Score))),
			Time:      ls.Time,
			CreatedAt: parseLegacyDate(ls.Date),
		})
		if err != nil {
			return n, err
		}
		n++
	}
	return n, nil
}
