package match

import (
	"testing"

	"recruitdesk/internal/types"
)

func TestRank(t *testing.T) {
	results := []types.MatchResult{
		{Filename: "a.pdf", MatchPercentage: 55.5, UploadIndex: 0},
		{Filename: "b.pdf", MatchPercentage: 91.2, UploadIndex: 1},
		{Filename: "c.pdf", MatchPercentage: 55.5, UploadIndex: 2},
		{Filename: "d.pdf", MatchPercentage: 12.0, UploadIndex: 3},
	}

	ranked := Rank(results)

	expected := []string{"b.pdf", "a.pdf", "c.pdf", "d.pdf"}
	if len(ranked) != len(expected) {
		t.Fatalf("len = %d, expected %d", len(ranked), len(expected))
	}
	for i, name := range expected {
		if ranked[i].Filename != name {
			t.Errorf("position %d: got %s, expected %s", i, ranked[i].Filename, name)
		}
	}

	// descending order
	for i := 1; i < len(ranked); i++ {
		if ranked[i].MatchPercentage > ranked[i-1].MatchPercentage {
			t.Errorf("not descending at position %d", i)
		}
	}

	// input untouched
	if results[0].Filename != "a.pdf" || results[1].Filename != "b.pdf" {
		t.Error("Rank mutated its input")
	}
}

func TestRankEmpty(t *testing.T) {
	ranked := Rank([]types.MatchResult{})
	if len(ranked) != 0 {
		t.Errorf("len = %d, expected 0", len(ranked))
	}
}

func TestRankTiesKeepUploadOrder(t *testing.T) {
	results := []types.MatchResult{
		{Filename: "third.pdf", MatchPercentage: 50, UploadIndex: 2},
		{Filename: "first.pdf", MatchPercentage: 50, UploadIndex: 0},
		{Filename: "second.pdf", MatchPercentage: 50, UploadIndex: 1},
	}

	ranked := Rank(results)
	expected := []string{"first.pdf", "second.pdf", "third.pdf"}
	for i, name := range expected {
		if ranked[i].Filename != name {
			t.Errorf("position %d: got %s, expected %s", i, ranked[i].Filename, name)
		}
	}
}
