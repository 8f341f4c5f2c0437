package services

import "github.com/makerport/makerport/internal/models"

// Award is a giftable recognition that can be attached to a project any
// number of times.
type Award struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Icon string `json:"icon"`
}

// Badge is a profile achievement. Requirement reports whether the user has
// earned it given their record and their projects.
type Badge struct {
	ID          string                                                             `json:"id"`
	Name        string                                                             `json:"name"`
	Description string                                                             `json:"description"`
	Icon        string                                                             `json:"icon"`
	Requirement func(user models.UserRecord, projects []models.ProjectRecord) bool `json:"-"`
}

// Points holds the award values for each scored action.
type Points struct {
	PublishProject      int
	ReceiveAppreciation int
	ReceiveLove         int
	ReceiveAward        int
	LeaveComment        int
	GiveAppreciation    int
	SubmitMadeIt        int
}

// Catalog bundles the static gamification configuration. It is built once at
// startup and never mutated afterwards.
type Catalog struct {
	Points Points
	awards []Award
	badges []Badge
}

func completedCount(projects []models.ProjectRecord) int {
	n := 0
	for _, p := range projects {
		if p.Status == models.StatusCompleted {
			n++
		}
	}
	return n
}

// NewCatalog builds the default award, badge and point tables.
func NewCatalog() *Catalog {
	return &Catalog{
		Points: Points{
			PublishProject:      50,
			ReceiveAppreciation: 5,
			ReceiveLove:         5,
			ReceiveAward:        15,
			LeaveComment:        5,
			GiveAppreciation:    2,
			SubmitMadeIt:        20,
		},
		awards: []Award{
			{ID: "creative", Name: "Creative Genius", Icon: "🎨"},
			{ID: "helpful", Name: "Super Helpful", Icon: "🤝"},
			{ID: "innovative", Name: "Innovator", Icon: "🚀"},
			{ID: "aesthetic", Name: "Beautiful Build", Icon: "✨"},
		},
		badges: []Badge{
			{
				ID:          "first_project",
				Name:        "First Steps",
				Description: "Published your first project",
				Icon:        "🌱",
				Requirement: func(_ models.UserRecord, projects []models.ProjectRecord) bool {
					return completedCount(projects) >= 1
				},
			},
			{
				ID:          "popular_maker",
				Name:        "Popular Maker",
				Description: "Earned 50 maker points",
				Icon:        "⭐",
				Requirement: func(user models.UserRecord, _ []models.ProjectRecord) bool {
					return user.Points >= 50
				},
			},
			{
				ID:          "master_crafter",
				Name:        "Master Crafter",
				Description: "Published 5 projects",
				Icon:        "🏆",
				Requirement: func(_ models.UserRecord, projects []models.ProjectRecord) bool {
					return completedCount(projects) >= 5
				},
			},
			{
				ID:          "community_star",
				Name:        "Community Star",
				Description: "Earned 100 maker points",
				Icon:        "🌟",
				Requirement: func(user models.UserRecord, _ []models.ProjectRecord) bool {
					return user.Points >= 100
				},
			},
		},
	}
}

// Awards returns the award list in catalog order.
func (c *Catalog) Awards() []Award {
	out := make([]Award, len(c.awards))
	copy(out, c.awards)
	return out
}

// Badges returns the badge list in catalog order.
func (c *Catalog) Badges() []Badge {
	out := make([]Badge, len(c.badges))
	copy(out, c.badges)
	return out
}

// Award looks up an award by id.
func (c *Catalog) Award(id string) (Award, bool) {
	for _, a := range c.awards {
		if a.ID == id {
			return a, true
		}
	}
	return Award{}, false
}

// Badge looks up a badge by id.
func (c *Catalog) Badge(id string) (Badge, bool) {
	for _, b := range c.badges {
		if b.ID == id {
			return b, true
		}
	}
	return Badge{}, false
}
