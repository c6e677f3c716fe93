package storage

import (
	"context"
	"testing"
)

func TestParseLegacyScoresFiltersMalformed(t *testing.T) {
	data := []byte(`[
		{"score": 1500, "time": "04:10", "date": "3/14/2024"},
		{"score": "800", "time": "02:00"},
		{"score": 700},
		null,
		42,
		{"score": 300.7, "time": "01:00"}
	]`)

	scores, err := ParseLegacyScores(data)
	if err != nil {
		t.Fatalf("ParseLegacyScores() failed: %v", err)
	}
	if len(scores) != 2 {
		t.Fatalf("Expected 2 valid entries, got %d: %+v", len(scores), scores)
	}
	if scores[0].Score != 1500 || scores[0].Time != "04:10" || scores[0].Date != "3/14/2024" {
		t.Errorf("scores[0] = %+v", scores[0])
	}
	if scores[1].Date != "" {
		t.Errorf("scores[1].Date = %q, want empty", scores[1].Date)
	}
}

func TestParseLegacyScoresRejectsNonList(t *testing.T) {
	for _, doc := range []string{`{"score": 1}`, `not json`, ``} {
		scores, err := ParseLegacyScores([]byte(doc))
		if err == nil {
			t.Errorf("ParseLegacyScores(%q) succeeded", doc)
		}
		if len(scores) != 0 {
			t.Errorf("ParseLegacyScores(%q) returned entries", doc)
		}
	}
}

func TestImportLegacy(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()

	n, err := store.ImportLegacy(ctx, []LegacyScore{
		{Score: 1500, Time: "04:10", Date: "3/14/2024"},
		{Score: 300.7, Time: "01:00", Date: "garbage"},
	})
	if err != nil {
		t.Fatalf("ImportLegacy() failed: %v", err)
	}
	if n != 2 {
		t.Errorf("imported %d, want 2", n)
	}

	runs, _ := store.TopRuns(ctx, 5)
	if len(runs) != 2 || runs[0].Score != 1500 || runs[1].Score != 300 {
		t.Fatalf("runs = %+v", runs)
	}
	if runs[0].CreatedAt.Year() != 2024 || runs[0].CreatedAt.Month() != 3 {
		t.Errorf("legacy date not kept: %v", runs[0].CreatedAt)
	}
}
