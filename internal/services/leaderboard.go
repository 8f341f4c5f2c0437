package services

import (
	"sort"

	"github.com/makerport/makerport/internal/models"
	"github.com/makerport/makerport/internal/store"
)

// LeaderboardService ranks makers by points and keeps their earned badges
// up to date. Badges are never revoked: once a requirement has been met the
// badge stays on the record.
type LeaderboardService struct {
	users    *store.Users
	projects *store.Projects
	catalog  *Catalog
}

// NewLeaderboardService creates the leaderboard service.
func NewLeaderboardService(users *store.Users, projects *store.Projects, catalog *Catalog) *LeaderboardService {
	return &LeaderboardService{users: users, projects: projects, catalog: catalog}
}

// Top returns up to n users ordered by points, highest first. Ties keep
// stored order.
func (l *LeaderboardService) Top(n int) []models.UserRecord {
	users := l.users.All()
	sort.SliceStable(users, func(i, j int) bool {
		return users[i].Points > users[j].Points
	})
	if n > 0 && len(users) > n {
		users = users[:n]
	}
	return users
}

// EvaluateBadges checks every catalog badge against the user's current
// record and their projects, persisting any newly earned badges. Returns the
// full badge id list after evaluation.
func (l *LeaderboardService) EvaluateBadges(userID string) ([]string, error) {
	var own []models.ProjectRecord
	for _, p := range l.projects.All() {
		if p.AuthorID == userID {
			own = append(own, p)
		}
	}

	rec, err := l.users.Mutate(userID, func(u *models.UserRecord) error {
		for _, badge := range l.catalog.Badges() {
			if u.HasBadge(badge.ID) {
				continue
			}
			if badge.Requirement(*u, own) {
				u.Badges = append(u.Badges, badge.ID)
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return rec.Badges, nil
}

// UserBadges resolves a user's earned badge ids against the catalog.
func (l *LeaderboardService) UserBadges(userID string) []Badge {
	rec, _, err := l.users.Get(userID)
	if err != nil {
		return nil
	}
	var out []Badge
	for _, id := range rec.Badges {
		if badge, ok := l.catalog.Badge(id); ok {
			out = append(out, badge)
		}
	}
	return out
}
