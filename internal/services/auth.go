package services

import (
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/makerport/makerport/internal/models"
	"github.com/makerport/makerport/internal/store"
	"github.com/makerport/makerport/internal/utils"
	"github.com/makerport/makerport/pkg/logger"
)

var (
	// ErrInvalidCredentials is returned on a failed local login.
	ErrInvalidCredentials = errors.New("invalid username or password")
	// ErrUsernameTaken is returned when registering an existing username.
	ErrUsernameTaken = errors.New("username already taken")
	// ErrUserNotFound is returned for logins against unknown users.
	ErrUserNotFound = errors.New("user not found")
)

// ExternalProfile is the identity returned by an external sign-in provider.
type ExternalProfile struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	Email   string `json:"email"`
	Picture string `json:"picture"`
}

// AuthService handles sign-in: demo mock identities, external provider
// profiles and local password accounts.
type AuthService struct {
	db       *gorm.DB
	users    *store.Users
	sessions *SessionManager
}

// NewAuthService creates the auth service. db may be nil when local password
// accounts are not used.
func NewAuthService(db *gorm.DB, users *store.Users, sessions *SessionManager) *AuthService {
	return &AuthService{db: db, users: users, sessions: sessions}
}

// EnsureMockUsers seeds the demo identities when the users collection is
// empty. Existing data is never touched.
func (s *AuthService) EnsureMockUsers() error {
	if len(s.users.All()) > 0 {
		return nil
	}

	seed := []models.UserRecord{
		{
			ID:       "user-1",
			Username: "Pratik (Google)",
			Email:    "pratik@example.com",
			Avatar:   "https://api.dicebear.com/7.x/avataaars/svg?seed=Felix",
			Points:   120,
			Badges:   []string{"first_project"},
			Mock:     true,
		},
		{
			ID:       "user-2",
			Username: "Maker (Google)",
			Email:    "maker@example.com",
			Avatar:   "https://api.dicebear.com/7.x/avataaars/svg?seed=Aria",
			Points:   85,
			Mock:     true,
		},
	}

	for _, user := range seed {
		user := user
		if _, err := s.users.Mutate(user.ID, func(u *models.UserRecord) error {
			*u = user
			return nil
		}); err != nil {
			return err
		}
	}
	logger.Info().Int("count", len(seed)).Msg("seeded mock users")
	return nil
}

// LoginMock opens a session for one of the seeded demo identities.
func (s *AuthService) LoginMock(userID string) (*Session, error) {
	rec, _, err := s.users.Get(userID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return s.sessions.SignIn(rec)
}

// LoginExternal opens a session from an external provider profile, creating
// or updating the user record.
func (s *AuthService) LoginExternal(profile ExternalProfile) (*Session, error) {
	if profile.ID == "" {
		return nil, ErrUserNotFound
	}
	return s.sessions.SignIn(models.UserRecord{
		ID:       profile.ID,
		Username: profile.Name,
		Email:    profile.Email,
		Avatar:   profile.Picture,
	})
}

// Register creates a local password account plus its user record and signs
// the new user in.
func (s *AuthService) Register(username, password string) (*Session, error) {
	var count int64
	if err := s.db.Model(&models.Account{}).Where("username = ?", username).Count(&count).Error; err != nil {
		return nil, err
	}
	if count > 0 {
		return nil, ErrUsernameTaken
	}

	hash, err := utils.HashPassword(password)
	if err != nil {
		return nil, err
	}

	userID := uuid.NewString()
	account := models.Account{
		Username:     username,
		PasswordHash: hash,
		UserID:       userID,
	}
	if err := s.db.Create(&account).Error; err != nil {
		return nil, err
	}

	return s.sessions.SignIn(models.UserRecord{
		ID:       userID,
		Username: username,
		Avatar:   "https://api.dicebear.com/7.x/avataaars/svg?seed=" + username,
	})
}

// LoginLocal authenticates a password account and opens a session.
func (s *AuthService) LoginLocal(username, password string) (*Session, error) {
	var account models.Account
	if err := s.db.Where("username = ?", username).First(&account).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}

	if !utils.CheckPassword(password, account.PasswordHash) {
		return nil, ErrInvalidCredentials
	}

	rec, _, err := s.users.Get(account.UserID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			rec = models.UserRecord{ID: account.UserID, Username: account.Username}
		} else {
			return nil, err
		}
	}
	return s.sessions.SignIn(rec)
}

// Logout closes the user's session.
func (s *AuthService) Logout(userID string) {
	s.sessions.Logout(userID)
}
