package leaderboard

import (
	"sort"

	"github.com/osse101/ContestBot_Go/internal/domain"
)

// Rank orders totals by points descending, then team ID ascending, and assigns
// competition ranks: tied totals share a rank and the next rank skips (1, 2, 2, 4).
func Rank(totals []domain.TeamTotal) []domain.LeaderboardEntry {
	sorted := make([]domain.TeamTotal, len(totals))
	copy(sorted, totals)
	sort.SliceStable(sorted, func(i, j int) bool {
		if sorted[i].TotalPoints != sorted[j].TotalPoints {
			return sorted[i].TotalPoints > sorted[j].TotalPoints
		}
		return sorted[i].TeamID < sorted[j].TeamID
	})

	entries := make([]domain.LeaderboardEntry, len(sorted))
	for i, t := range sorted {
		rank := i + 1
		if i > 0 && t.TotalPoints == sorted[i-1].TotalPoints {
			rank = entries[i-1].Rank
		}
		entries[i] = domain.LeaderboardEntry{
			TeamID:      t.TeamID,
			TeamName:    t.TeamName,
			TotalPoints: t.TotalPoints,
			Rank:        rank,
		}
	}
	return entries
}

// Diff compares running totals with recomputed tallies. Teams present on only one side
// count as zero on the other. The result is ordered by team ID.
func Diff(totals []domain.TeamTotal, tallies []domain.TeamTally) []domain.Drift {
	running := make(map[string]int64, len(totals))
	for _, t := range totals {
		running[t.TeamID] = t.TotalPoints
	}
	recomputed := make(map[string]int64, len(tallies))
	for _, t := range tallies {
		recomputed[t.TeamID] = t.TotalPoints
	}

	var drifts []domain.Drift
	seen := make(map[string]struct{}, len(running))
	check := func(teamID string) {
		if _, ok := seen[teamID]; ok {
			return
		}
		seen[teamID] = struct{}{}
		if running[teamID] != recomputed[teamID] {
			drifts = append(drifts, domain.Drift{TeamID: teamID, Running: running[teamID], Recomputed: recomputed[teamID]})
		}
	}
	for id := range running {
		check(id)
	}
	for id := range recomputed {
		check(id)
	}

	sort.Slice(drifts, func(i, j int) bool { return drifts[i].TeamID < drifts[j].TeamID })
	return drifts
}
