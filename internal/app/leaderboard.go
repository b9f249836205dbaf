package app

import (
	"sort"

	"qr-quiz-service/internal/domain"
)

// Aggregate groups records by display name and ranks the groups by total score.
//
// Records sharing a user name are merged even when their user ids differ. An empty
// quizID keeps every record. Equal totals are ordered by name ascending.
func Aggregate(records []domain.ResultRecord, quizID string) []domain.LeaderboardEntry {
	type totals struct {
		score int
		count int
	}

	groups := make(map[string]*totals)
	order := make([]string, 0)
	for _, record := range records {
		if quizID != "" && record.QuizID != quizID {
			continue
		}
		group, ok := groups[record.UserName]
		if !ok {
			group = &totals{}
			groups[record.UserName] = group
			order = append(order, record.UserName)
		}
		group.score += record.Score
		group.count++
	}

	entries := make([]domain.LeaderboardEntry, 0, len(order))
	for _, name := range order {
		group := groups[name]
		entries = append(entries, domain.LeaderboardEntry{
			UserName:     name,
			TotalScore:   group.score,
			QuizCount:    group.count,
			AverageScore: float64(group.score) / float64(group.count),
		})
	}

	sort.SliceStable(entries, func(i, j int) bool {
		if entries[i].TotalScore != entries[j].TotalScore {
			return entries[i].TotalScore > entries[j].TotalScore
		}
		return entries[i].UserName < entries[j].UserName
	})
	for i := range entries {
		entries[i].Rank = i + 1
	}
	return entries
}
