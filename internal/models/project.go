package models

import (
	"encoding/json"
	"time"
)

// Project lifecycle status values. Drafts are private to their author;
// completed projects appear in the public portfolio.
const (
	StatusDraft     = "draft"
	StatusCompleted = "completed"
)

// Reaction kinds accepted by the social engine.
const (
	ReactionLove       = "love"
	ReactionAppreciate = "appreciate"
	ReactionBadge      = "badge"
)

// DefaultTitle is the placeholder title for a freshly opened draft.
const DefaultTitle = "New Maker Project"

// Step is a single documented build step. Image, when present, is an inline
// self-describing data URI.
type Step struct {
	ID    string `json:"id"`
	Text  string `json:"text"`
	Image string `json:"image,omitempty"`
}

// Reactions are per-project appreciation counters.
type Reactions struct {
	Love       int `json:"love"`
	Appreciate int `json:"appreciate"`
	Badges     int `json:"badges"`
}

// Comment is immutable once created.
type Comment struct {
	ID        string    `json:"id"`
	UserID    string    `json:"user_id"`
	Username  string    `json:"username"`
	Avatar    string    `json:"avatar,omitempty"`
	Text      string    `json:"text"`
	Timestamp time.Time `json:"timestamp"`
}

// ProjectSocial holds the community state of a project. Awards keeps grant
// order and allows duplicates; each instance counts independently.
type ProjectSocial struct {
	Comments     []Comment `json:"comments"`
	Awards       []string  `json:"awards"`
	MadeItPhotos []string  `json:"made_it_photos"`
}

// ProjectRecord is the canonical project shape persisted in the projects
// collection. ID is assigned at first commit, never reassigned.
type ProjectRecord struct {
	ID            string          `json:"id,omitempty"`
	AuthorID      string          `json:"author_id,omitempty"`
	Title         string          `json:"title"`
	Description   string          `json:"description"`
	Materials     []string        `json:"materials"`
	Steps         []Step          `json:"steps"`
	Status        string          `json:"status,omitempty"`
	LastEdited    time.Time       `json:"last_edited"`
	Difficulty    string          `json:"difficulty,omitempty"`
	TimeEstimated string          `json:"time_estimated,omitempty"`
	Category      string          `json:"category,omitempty"`
	PosterData    json.RawMessage `json:"poster_data,omitempty"`
	Reactions     Reactions       `json:"reactions"`
	Views         int             `json:"views"`
	Social        ProjectSocial   `json:"social"`
}

// Normalize enforces the editor working-copy invariants: materials and steps
// are never empty (an empty collection becomes one blank entry) and the title
// falls back to the placeholder.
func (p *ProjectRecord) Normalize() {
	if p.Title == "" {
		p.Title = DefaultTitle
	}
	if len(p.Materials) == 0 {
		p.Materials = []string{""}
	}
	if len(p.Steps) == 0 {
		p.Steps = []Step{{ID: "1", Text: ""}}
	}
}

// Clone returns a deep copy, so a committed snapshot cannot be mutated by
// later edits to the working copy.
func (p ProjectRecord) Clone() ProjectRecord {
	out := p
	out.Materials = append([]string(nil), p.Materials...)
	out.Steps = append([]Step(nil), p.Steps...)
	out.Social.Comments = append([]Comment(nil), p.Social.Comments...)
	out.Social.Awards = append([]string(nil), p.Social.Awards...)
	out.Social.MadeItPhotos = append([]string(nil), p.Social.MadeItPhotos...)
	out.PosterData = append(json.RawMessage(nil), p.PosterData...)
	return out
}

// ApplyEditorFields copies the editor-owned fields of p onto dst, leaving the
// socially-mutated fields (reactions, views, social) of dst intact. Used when
// a commit races a social write on the same record.
func (p ProjectRecord) ApplyEditorFields(dst *ProjectRecord) {
	dst.ID = p.ID
	dst.AuthorID = p.AuthorID
	dst.Title = p.Title
	dst.Description = p.Description
	dst.Materials = append([]string(nil), p.Materials...)
	dst.Steps = append([]Step(nil), p.Steps...)
	dst.Status = p.Status
	dst.LastEdited = p.LastEdited
	dst.Difficulty = p.Difficulty
	dst.TimeEstimated = p.TimeEstimated
	dst.Category = p.Category
	if len(p.PosterData) > 0 {
		dst.PosterData = append(json.RawMessage(nil), p.PosterData...)
	}
}
