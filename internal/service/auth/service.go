package auth

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"InvestAgent/internal/domain/models"
	domrepo "InvestAgent/internal/domain/repository"
)

var (
	// ErrDuplicateUsername and ErrDuplicateEmail signal registration conflicts.
	ErrDuplicateUsername = errors.New("username already registered")
	ErrDuplicateEmail    = errors.New("email already registered")

	// ErrAuthFailed covers unknown username and wrong password alike so the
	// two cases stay indistinguishable to the caller.
	ErrAuthFailed = errors.New("incorrect username or password")
)

// Service stores credentials and verifies passwords.
type Service struct {
	store   domrepo.Store
	metrics domrepo.Metrics
	cost    int
	now     func() time.Time
}

// NewService creates a credential store. A cost of 0 selects the bcrypt default.
func NewService(store domrepo.Store, metrics domrepo.Metrics, cost int) *Service {
	if cost <= 0 {
		cost = bcrypt.DefaultCost
	}
	return &Service{store: store, metrics: metrics, cost: cost, now: time.Now}
}

// Register creates a credential with a salted one-way password hash.
// The plaintext password is never stored.
func (s *Service) Register(ctx context.Context, username, email, password string) (*models.User, error) {
	var existing models.User
	if err := s.store.FindOne(ctx, domrepo.ColUsers, map[string]any{"username": username}, &existing); err == nil {
		return nil, ErrDuplicateUsername
	} else if !errors.Is(err, domrepo.ErrNotFound) {
		return nil, fmt.Errorf("lookup username: %w", err)
	}
	if err := s.store.FindOne(ctx, domrepo.ColUsers, map[string]any{"email": email}, &existing); err == nil {
		return nil, ErrDuplicateEmail
	} else if !errors.Is(err, domrepo.ErrNotFound) {
		return nil, fmt.Errorf("lookup email: %w", err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), s.cost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	user := models.User{
		ID:             uuid.NewString(),
		Username:       username,
		Email:          email,
		HashedPassword: string(hash),
		IsActive:       true,
		CreatedAt:      s.now().UTC(),
	}

	if _, err := s.store.InsertOne(ctx, domrepo.ColUsers, user); err != nil {
		// Unique indexes on username/email close the check-then-insert race.
		if errors.Is(err, domrepo.ErrDuplicateKey) {
			return nil, ErrDuplicateUsername
		}
		return nil, fmt.Errorf("insert user: %w", err)
	}

	return &user, nil
}

// Authenticate verifies a username/password pair. Unknown usernames and hash
// mismatches both return ErrAuthFailed.
func (s *Service) Authenticate(ctx context.Context, username, password string) (*models.User, error) {
	var user models.User
	if err := s.store.FindOne(ctx, domrepo.ColUsers, map[string]any{"username": username}, &user); err != nil {
		if errors.Is(err, domrepo.ErrNotFound) {
			s.metrics.RecordAuthFailure("unknown_user")
			return nil, ErrAuthFailed
		}
		return nil, fmt.Errorf("lookup user: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.HashedPassword), []byte(password)); err != nil {
		s.metrics.RecordAuthFailure("bad_password")
		return nil, ErrAuthFailed
	}

	return &user, nil
}

// GetUser loads a credential by username.
func (s *Service) GetUser(ctx context.Context, username string) (*models.User, error) {
	var user models.User
	if err := s.store.FindOne(ctx, domrepo.ColUsers, map[string]any{"username": username}, &user); err != nil {
		return nil, err
	}
	return &user, nil
}
