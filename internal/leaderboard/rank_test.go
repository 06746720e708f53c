package leaderboard

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/osse101/ContestBot_Go/internal/domain"
)

func TestRank_CompetitionRankingWithTies(t *testing.T) {
	entries := Rank([]domain.TeamTotal{
		{TeamID: "delta", TotalPoints: 5},
		{TeamID: "charlie", TotalPoints: 20},
		{TeamID: "bravo", TotalPoints: 20},
		{TeamID: "alpha", TotalPoints: 5},
		{TeamID: "echo", TotalPoints: 0},
	})

	var ids []string
	var ranks []int
	for _, e := range entries {
		ids = append(ids, e.TeamID)
		ranks = append(ranks, e.Rank)
	}
	assert.Equal(t, []string{"bravo", "charlie", "alpha", "delta", "echo"}, ids)
	assert.Equal(t, []int{1, 1, 3, 3, 5}, ranks)
}

func TestRank_Empty(t *testing.T) {
	assert.Empty(t, Rank(nil))
}

func TestDiff(t *testing.T) {
	drifts := Diff(
		[]domain.TeamTotal{{TeamID: "a", TotalPoints: 10}, {TeamID: "b", TotalPoints: 7}, {TeamID: "c"}},
		[]domain.TeamTally{{TeamID: "a", TotalPoints: 10}, {TeamID: "b", TotalPoints: 5}, {TeamID: "orphan", TotalPoints: 3}},
	)
	assert.Equal(t, []domain.Drift{
		{TeamID: "b", Running: 7, Recomputed: 5},
		{TeamID: "orphan", Running: 0, Recomputed: 3},
	}, drifts)
}
