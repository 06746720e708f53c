package domain

import "sort"

// LeaderboardEntry is one ranked row of the standings.
type LeaderboardEntry struct {
	TeamID      string `json:"team_id"`
	TeamName    string `json:"team_name"`
	TotalPoints int64  `json:"total_points"`
	Rank        int    `json:"rank"`
}

// TeamTotal is a running total as stored, before ranking.
type TeamTotal struct {
	TeamID      string `json:"team_id"`
	TeamName    string `json:"team_name"`
	TotalPoints int64  `json:"total_points"`
}

// TeamTally is a total rebuilt from approved contributions, broken down by kind.
type TeamTally struct {
	TeamID        string `json:"team_id"`
	TeamName      string `json:"team_name"`
	TotalPoints   int64  `json:"total_points"`
	ArticlePoints int64  `json:"article_points"`
	PhotoPoints   int64  `json:"photo_points"`
	ApprovedCount int64  `json:"approved_count"`
}

// Drift records a team whose running total disagrees with its recomputed total.
type Drift struct {
	TeamID     string `json:"team_id"`
	Running    int64  `json:"running_total"`
	Recomputed int64  `json:"recomputed_total"`
}

// Tally sums awarded points of approved contributions per team.
// Every team in teams appears in the result, including those with no approvals.
// Contributions referencing unknown teams are still tallied.
// The result is sorted by team ID.
func Tally(teams []Team, contributions []Contribution) []TeamTally {
	byTeam := make(map[string]*TeamTally, len(teams))
	for _, t := range teams {
		byTeam[t.ID] = &TeamTally{TeamID: t.ID, TeamName: t.Name}
	}

	for i := range contributions {
		c := &contributions[i]
		if c.State != StateApproved {
			continue
		}
		tally, ok := byTeam[c.TeamID]
		if !ok {
			tally = &TeamTally{TeamID: c.TeamID}
			byTeam[c.TeamID] = tally
		}
		tally.TotalPoints += c.AwardedPoints
		tally.ApprovedCount++
		switch c.Kind {
		case KindArticle:
			tally.ArticlePoints += c.AwardedPoints
		case KindPhoto:
			tally.PhotoPoints += c.AwardedPoints
		}
	}

	out := make([]TeamTally, 0, len(byTeam))
	for _, t := range byTeam {
		out = append(out, *t)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].TeamID < out[j].TeamID })
	return out
}
