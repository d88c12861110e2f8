package app

import (
	"time"

	"github.com/Sandip75/backend-task/internal/repository"
)

const rankingSize = 20

type RankingService struct {
	userRepo        *repository.UserRepository
	loginRecordRepo *repository.LoginRecordRepository
	now             func() time.Time
}

// RankingEntry is one leaderboard row. All three fields are nil on the
// placeholder rows that pad the board to twenty entries.
type RankingEntry struct {
	Username   *string `json:"username"`
	LoginCount *int64  `json:"loginCount"`
	Rank       *int    `json:"rank"`
}

func NewRankingService(userRepo *repository.UserRepository, loginRecordRepo *repository.LoginRecordRepository) *RankingService {
	return &RankingService{
		userRepo:        userRepo,
		loginRecordRepo: loginRecordRepo,
		now:             time.Now,
	}
}

// WeeklyRanking builds the top-20 board for the current week. Ties share a
// rank and the next distinct count resumes at its list position, so counts
// [5,5,3] rank as 1,1,3.
func (s *RankingService) WeeklyRanking() ([]RankingEntry, error) {
	users, err := s.userRepo.ListAll()
	if err != nil {
		return nil, err
	}
	usernames := make(map[string]string, len(users))
	for _, u := range users {
		usernames[u.ID] = u.Username
	}

	start, end := weekWindow(s.now())
	counts, err := s.loginRecordRepo.CountInWindow(start, end)
	if err != nil {
		return nil, err
	}

	entries := make([]RankingEntry, 0, rankingSize)
	rank := 0
	var prevCount int64
	for _, row := range counts {
		username, known := usernames[row.UserID]
		if !known {
			continue
		}
		if rank == 0 || row.Count != prevCount {
			rank = len(entries) + 1
		}
		prevCount = row.Count

		name := username
		count := row.Count
		r := rank
		entries = append(entries, RankingEntry{
			Username:   &name,
			LoginCount: &count,
			Rank:       &r,
		})
	}

	if len(entries) > rankingSize {
		entries = entries[:rankingSize]
	}
	for len(entries) < rankingSize {
		entries = append(entries, RankingEntry{})
	}
	return entries, nil
}

// weekWindow returns the current week's bounds in server-local time:
// Monday 00:00:00 through Sunday 23:59:59, both inclusive.
func weekWindow(now time.Time) (time.Time, time.Time) {
	daysSinceMonday := (int(now.Weekday()) + 6) % 7
	start := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location()).
		AddDate(0, 0, -daysSinceMonday)
	end := start.AddDate(0, 0, 7).Add(-time.Second)
	return start, end
}
