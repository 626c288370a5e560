package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"luxetickets/internal/status"
	"luxetickets/models"
	"luxetickets/monitoring"
	"luxetickets/security"
)

type RegisterInput struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Name     string `json:"name"`
}

func (in RegisterInput) Validate() error {
	return validation.ValidateStruct(&in,
		validation.Field(&in.Email, validation.Required, is.Email),
		validation.Field(&in.Password, validation.Required, validation.RuneLength(6, 0).Error("password must be at least 6 characters")),
		validation.Field(&in.Name, validation.By(requiredText("name"))),
	)
}

type LoginInput struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (in LoginInput) Validate() error {
	return validation.ValidateStruct(&in,
		validation.Field(&in.Email, validation.Required),
		validation.Field(&in.Password, validation.Required),
	)
}

// Session is a signed-in user and the bearer token for the session.
type Session struct {
	Token     string      `json:"token"`
	ExpiresAt time.Time   `json:"expiresAt"`
	User      models.User `json:"user"`
}

type AuthService struct {
	users    UserRepository
	sessions SessionRepository
	tokens   *security.TokenManager
	monitor  *monitoring.Monitor
	hashCost int
	now      func() time.Time
}

func NewAuthService(users UserRepository, sessions SessionRepository, tokens *security.TokenManager, monitor *monitoring.Monitor) *AuthService {
	return &AuthService{
		users:    users,
		sessions: sessions,
		tokens:   tokens,
		monitor:  monitor,
		hashCost: bcrypt.DefaultCost,
		now:      time.Now,
	}
}

// WithHashCost overrides the bcrypt cost, mainly for tests.
func (s *AuthService) WithHashCost(cost int) *AuthService {
	s.hashCost = cost
	return s
}

func (s *AuthService) Register(ctx context.Context, in RegisterInput) (*Session, error) {
	session, err := s.register(ctx, in)
	s.monitor.TrackAuth("register", err)
	return session, err
}

func (s *AuthService) register(ctx context.Context, in RegisterInput) (*Session, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), s.hashCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	user := models.User{
		ID:        uuid.NewString(),
		Email:     models.NormalizeEmail(in.Email),
		Name:      strings.TrimSpace(in.Name),
		CreatedAt: s.now().UTC(),
	}
	if err := s.users.Create(ctx, models.Credential{User: user, PasswordHash: string(hash)}); err != nil {
		return nil, err
	}

	slog.Info("User registered", "user_id", user.ID)
	return s.startSession(ctx, user)
}

func (s *AuthService) Login(ctx context.Context, in LoginInput) (*Session, error) {
	session, err := s.login(ctx, in)
	s.monitor.TrackAuth("login", err)
	return session, err
}

func (s *AuthService) login(ctx context.Context, in LoginInput) (*Session, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}

	cred, err := s.users.FindByEmail(ctx, models.NormalizeEmail(in.Email))
	if err != nil {
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(cred.PasswordHash), []byte(in.Password)); err != nil {
		if errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
			return nil, status.ErrIncorrectPassword
		}
		return nil, fmt.Errorf("compare password: %w", err)
	}

	return s.startSession(ctx, cred.User)
}

func (s *AuthService) startSession(ctx context.Context, user models.User) (*Session, error) {
	token, claims, err := s.tokens.Issue(user.ID, s.now())
	if err != nil {
		return nil, err
	}
	if err := s.sessions.Create(ctx, claims.SessionID(), user.ID, s.tokens.TTL()); err != nil {
		return nil, fmt.Errorf("store session: %w", err)
	}

	return &Session{Token: token, ExpiresAt: claims.ExpiresAt.Time, User: user}, nil
}

// Logout revokes the session behind token. Unknown or expired tokens are
// already signed out.
func (s *AuthService) Logout(ctx context.Context, token string) error {
	claims, err := s.tokens.Parse(token)
	if err != nil {
		return nil
	}
	err = s.sessions.Delete(ctx, claims.SessionID())
	s.monitor.TrackAuth("logout", err)
	return err
}

// Authenticate resolves a bearer token to the signed-in user.
func (s *AuthService) Authenticate(ctx context.Context, token string) (models.User, error) {
	claims, err := s.tokens.Parse(token)
	if err != nil {
		return models.User{}, status.ErrInvalidSession
	}

	userID, err := s.sessions.Lookup(ctx, claims.SessionID())
	if err != nil {
		return models.User{}, err
	}
	if userID != claims.UserID() {
		return models.User{}, status.ErrInvalidSession
	}

	cred, err := s.users.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, status.ErrUserNotFound) {
			return models.User{}, status.ErrInvalidSession
		}
		return models.User{}, err
	}
	return cred.User, nil
}

// UpdateProfile merges name and phone into the stored user. Email and id
// never change.
func (s *AuthService) UpdateProfile(ctx context.Context, userID string, update models.ProfileUpdate) (models.User, error) {
	if update.Name != nil {
		if err := requiredText("name")(*update.Name); err != nil {
			return models.User{}, validation.Errors{"name": err}
		}
	}

	cred, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return models.User{}, err
	}

	user := cred.User.Apply(update)
	if err := s.users.UpdateUser(ctx, user); err != nil {
		return models.User{}, err
	}
	s.monitor.TrackAuth("update_profile", nil)
	return user, nil
}

func requiredText(label string) validation.RuleFunc {
	return func(value any) error {
		text, _ := value.(string)
		if strings.TrimSpace(text) == "" {
			return validation.NewError("validation_required", label+" cannot be blank")
		}
		return nil
	}
}
