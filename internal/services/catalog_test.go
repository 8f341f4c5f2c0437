package services

import (
	"testing"

	"github.com/makerport/makerport/internal/models"
)

func TestCatalog_PointValues(t *testing.T) {
	c := NewCatalog()

	if c.Points.ReceiveAward != 15 {
		t.Errorf("ReceiveAward = %d, expected 15", c.Points.ReceiveAward)
	}
	if c.Points.LeaveComment != 5 {
		t.Errorf("LeaveComment = %d, expected 5", c.Points.LeaveComment)
	}
	if c.Points.GiveAppreciation != 2 {
		t.Errorf("GiveAppreciation = %d, expected 2", c.Points.GiveAppreciation)
	}
}

func TestCatalog_AwardLookup(t *testing.T) {
	c := NewCatalog()

	a, ok := c.Award("creative")
	if !ok {
		t.Fatal("creative award missing")
	}
	if a.Icon != "🎨" {
		t.Errorf("Icon = %q", a.Icon)
	}

	if _, ok := c.Award("nonexistent"); ok {
		t.Error("unknown award id should not resolve")
	}
}

func TestCatalog_BadgeRequirements(t *testing.T) {
	c := NewCatalog()

	completed := []models.ProjectRecord{{ID: "p1", Status: models.StatusCompleted}}
	drafts := []models.ProjectRecord{{ID: "p2", Status: models.StatusDraft}}

	first, _ := c.Badge("first_project")
	if !first.Requirement(models.UserRecord{}, completed) {
		t.Error("first_project should unlock with one completed project")
	}
	if first.Requirement(models.UserRecord{}, drafts) {
		t.Error("first_project should not unlock with drafts only")
	}

	popular, _ := c.Badge("popular_maker")
	if popular.Requirement(models.UserRecord{Points: 49}, nil) {
		t.Error("popular_maker should need 50 points")
	}
	if !popular.Requirement(models.UserRecord{Points: 50}, nil) {
		t.Error("popular_maker should unlock at 50 points")
	}

	star, _ := c.Badge("community_star")
	if !star.Requirement(models.UserRecord{Points: 120}, nil) {
		t.Error("community_star should unlock at 120 points")
	}

	master, _ := c.Badge("master_crafter")
	five := make([]models.ProjectRecord, 5)
	for i := range five {
		five[i].Status = models.StatusCompleted
	}
	if !master.Requirement(models.UserRecord{}, five) {
		t.Error("master_crafter should unlock with 5 completed projects")
	}
}
