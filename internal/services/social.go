package services

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/makerport/makerport/internal/models"
	"github.com/makerport/makerport/internal/store"
	"github.com/makerport/makerport/pkg/logger"
)

var (
	// ErrNotSignedIn is returned when an action needs an authenticated actor.
	ErrNotSignedIn = errors.New("not signed in")
	// ErrUnknownReaction is returned for reaction kinds outside the catalog.
	ErrUnknownReaction = errors.New("unknown reaction kind")
	// ErrUnknownAward is returned for award ids outside the catalog.
	ErrUnknownAward = errors.New("unknown award")
)

// SocialEngine handles all community interaction with published projects:
// views, reactions, comments, awards and made-it photos. Point grants go
// through the users collection and refresh any open session of the earner.
type SocialEngine struct {
	projects    *store.Projects
	users       *store.Users
	catalog     *Catalog
	sessions    *SessionManager
	hub         *Hub
	queue       TaskQueue
	leaderboard *LeaderboardService
}

// NewSocialEngine creates the engine. hub, queue and leaderboard may be nil.
func NewSocialEngine(projects *store.Projects, users *store.Users, catalog *Catalog, sessions *SessionManager, hub *Hub, queue TaskQueue) *SocialEngine {
	return &SocialEngine{
		projects: projects,
		users:    users,
		catalog:  catalog,
		sessions: sessions,
		hub:      hub,
		queue:    queue,
	}
}

// SetLeaderboard wires badge re-evaluation after point grants.
func (s *SocialEngine) SetLeaderboard(lb *LeaderboardService) {
	s.leaderboard = lb
}

// RecordView increments a project's view counter and returns the new count.
// Every view counts; repeat visits by the same viewer are not deduplicated.
func (s *SocialEngine) RecordView(projectID string) (int, error) {
	rec, err := s.projects.Mutate(projectID, func(p *models.ProjectRecord) error {
		p.Views++
		return nil
	})
	if err != nil {
		return 0, err
	}
	s.publishChange(projectID, "view")
	return rec.Views, nil
}

// RecordReaction increments one of the project's reaction counters. Anyone
// may react; a signed-in actor earns appreciation-giver points, the project
// owner earns none.
func (s *SocialEngine) RecordReaction(projectID, kind, actorID string) (models.Reactions, error) {
	rec, err := s.projects.Mutate(projectID, func(p *models.ProjectRecord) error {
		switch kind {
		case models.ReactionLove:
			p.Reactions.Love++
		case models.ReactionAppreciate:
			p.Reactions.Appreciate++
		case models.ReactionBadge:
			p.Reactions.Badges++
		default:
			return fmt.Errorf("%w: %s", ErrUnknownReaction, kind)
		}
		return nil
	})
	if err != nil {
		return models.Reactions{}, err
	}

	if s.signedIn(actorID) {
		s.addPoints(actorID, s.catalog.Points.GiveAppreciation, "gave appreciation")
	}

	s.publishChange(projectID, "reaction")
	s.recordActivity("social", "reaction", actorID, projectID, kind)
	return rec.Reactions, nil
}

// AddComment appends a comment to the project and rewards the commenter.
// An unauthenticated actor cannot comment.
func (s *SocialEngine) AddComment(projectID, actorID, text string) (models.Comment, error) {
	if !s.signedIn(actorID) {
		return models.Comment{}, ErrNotSignedIn
	}

	user, _ := s.sessions.CurrentUser(actorID)
	comment := models.Comment{
		ID:        uuid.NewString(),
		UserID:    actorID,
		Username:  user.Username,
		Avatar:    user.Avatar,
		Text:      text,
		Timestamp: time.Now(),
	}

	_, err := s.projects.Mutate(projectID, func(p *models.ProjectRecord) error {
		p.Social.Comments = append(p.Social.Comments, comment)
		return nil
	})
	if err != nil {
		return models.Comment{}, err
	}

	s.addPoints(actorID, s.catalog.Points.LeaveComment, "left a comment")
	s.publishChange(projectID, "comment")
	s.recordActivity("social", "comment", actorID, projectID, "commented on project")
	return comment, nil
}

// AwardProject gifts an award to a project. Awards stack: gifting the same
// award twice appends two instances and each counts. The project author earns
// receive points when resolvable; the gifter always earns giving points.
func (s *SocialEngine) AwardProject(projectID, awardID, gifterID string) (models.ProjectRecord, error) {
	if !s.signedIn(gifterID) {
		return models.ProjectRecord{}, ErrNotSignedIn
	}
	if _, ok := s.catalog.Award(awardID); !ok {
		return models.ProjectRecord{}, fmt.Errorf("%w: %s", ErrUnknownAward, awardID)
	}

	rec, err := s.projects.Mutate(projectID, func(p *models.ProjectRecord) error {
		p.Social.Awards = append(p.Social.Awards, awardID)
		return nil
	})
	if err != nil {
		return models.ProjectRecord{}, err
	}

	if rec.AuthorID != "" {
		s.addPoints(rec.AuthorID, s.catalog.Points.ReceiveAward, "received an award")
	}
	s.addPoints(gifterID, s.catalog.Points.GiveAppreciation, "gifted an award")

	s.publishChange(projectID, "award")
	s.recordActivity("social", "award", gifterID, projectID, awardID)
	return rec, nil
}

// AddMadeItPhoto attaches an "I made it" photo to the project and rewards
// the submitter.
func (s *SocialEngine) AddMadeItPhoto(projectID, actorID, photo string) (models.ProjectRecord, error) {
	if !s.signedIn(actorID) {
		return models.ProjectRecord{}, ErrNotSignedIn
	}

	rec, err := s.projects.Mutate(projectID, func(p *models.ProjectRecord) error {
		p.Social.MadeItPhotos = append(p.Social.MadeItPhotos, photo)
		return nil
	})
	if err != nil {
		return models.ProjectRecord{}, err
	}

	s.addPoints(actorID, s.catalog.Points.SubmitMadeIt, "submitted a made-it photo")
	s.publishChange(projectID, "made_it")
	s.recordActivity("social", "made_it", actorID, projectID, "shared a build photo")
	return rec, nil
}

// addPoints grants points to a user, refreshes their session cache and
// re-evaluates badges.
func (s *SocialEngine) addPoints(userID string, points int, reason string) {
	if points == 0 {
		return
	}
	if _, _, err := s.users.Get(userID); errors.Is(err, store.ErrNotFound) {
		logger.Debug().Str("user_id", userID).Msg("point grant skipped, unknown user")
		return
	}
	_, err := s.users.Mutate(userID, func(u *models.UserRecord) error {
		u.Points += points
		return nil
	})
	if err != nil {
		logger.Error().Err(err).Str("user_id", userID).Int("points", points).Msg("point grant failed")
		return
	}

	s.sessions.RefreshUser(userID)
	if s.leaderboard != nil {
		s.leaderboard.EvaluateBadges(userID)
		s.sessions.RefreshUser(userID)
	}
	if s.hub != nil {
		s.hub.PublishChange(store.CollectionUsers, userID, "points")
	}
	logger.Debug().Str("user_id", userID).Int("points", points).Str("reason", reason).Msg("points granted")
}

func (s *SocialEngine) signedIn(actorID string) bool {
	return actorID != "" && s.sessions.Active(actorID)
}

func (s *SocialEngine) publishChange(projectID, action string) {
	if s.hub != nil {
		s.hub.PublishChange(store.CollectionProjects, projectID, action)
	}
}

func (s *SocialEngine) recordActivity(module, action, actorID, projectID, message string) {
	if s.queue == nil {
		return
	}
	if err := s.queue.Enqueue(&ActivityTask{
		Module:    module,
		Action:    action,
		ActorID:   actorID,
		ProjectID: projectID,
		Message:   message,
	}); err != nil {
		logger.Warn().Err(err).Msg("activity enqueue failed")
	}
}
