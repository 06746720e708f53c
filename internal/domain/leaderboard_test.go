package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTally(t *testing.T) {
	teams := []Team{{ID: "blue", Name: "Blue"}, {ID: "red", Name: "Red"}, {ID: "green", Name: "Green"}}
	contribs := []Contribution{
		{TeamID: "red", Kind: KindArticle, State: StateApproved, AwardedPoints: 10},
		{TeamID: "red", Kind: KindPhoto, State: StateApproved, AwardedPoints: 5},
		{TeamID: "red", Kind: KindPhoto, State: StatePending},
		{TeamID: "blue", Kind: KindPhoto, State: StateRejected},
		{TeamID: "blue", Kind: KindArticle, State: StateApproved, AwardedPoints: 10},
	}

	got := Tally(teams, contribs)
	require.Len(t, got, 3)

	assert.Equal(t, TeamTally{TeamID: "blue", TeamName: "Blue", TotalPoints: 10, ArticlePoints: 10, ApprovedCount: 1}, got[0])
	assert.Equal(t, TeamTally{TeamID: "green", TeamName: "Green"}, got[1])
	assert.Equal(t, TeamTally{TeamID: "red", TeamName: "Red", TotalPoints: 15, ArticlePoints: 10, PhotoPoints: 5, ApprovedCount: 2}, got[2])
}

func TestTally_UnknownTeamStillCounted(t *testing.T) {
	got := Tally(nil, []Contribution{{TeamID: "ghost", Kind: KindPhoto, State: StateApproved, AwardedPoints: 5}})
	require.Len(t, got, 1)
	assert.Equal(t, int64(5), got[0].TotalPoints)
}
