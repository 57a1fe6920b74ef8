package service

import (
	"context" // Request scoped cancellation
	"errors"  // Error inspection
	"strings" // Input normalization
	"time"    // Token lifetime

	"vocab_system/internal/domain" // Importing domain models
	"vocab_system/internal/utils"  // JWT helpers

	"golang.org/x/crypto/bcrypt" // Password hashing
)

// Password length bounds; bcrypt ignores input past 72 bytes
const (
	MinPasswordLen = 8
	MaxPasswordLen = 72
)

// RegisterInput carries a self-registration request
type RegisterInput struct {
	Name     string
	Email    string
	Password string
}

// UserPatch carries an admin update of a user; nil fields are left unchanged
type UserPatch struct {
	Name *string
	Role *string
}

// UserPage is one page of the user listing
type UserPage struct {
	Users      []domain.User `json:"users"`
	Page       int           `json:"page"`
	PageSize   int           `json:"page_size"`
	Total      int64         `json:"total"`
	TotalPages int           `json:"total_pages"`
}

// UserService handles accounts and credentials
type UserService struct {
	repo       UserRepository
	secret     string
	tokenTTL   time.Duration
	bcryptCost int
	clock      Clock
}

// NewUserService creates a user service
func NewUserService(repo UserRepository, secret string, tokenTTL time.Duration, bcryptCost int) *UserService {
	if bcryptCost < bcrypt.MinCost {
		bcryptCost = bcrypt.DefaultCost
	}
	return &UserService{repo: repo, secret: secret, tokenTTL: tokenTTL, bcryptCost: bcryptCost, clock: utcNow}
}

// WithClock replaces the service clock
func (s *UserService) WithClock(clock Clock) *UserService {
	s.clock = clock
	return s
}

// Register creates a regular user and returns it with a session token
func (s *UserService) Register(ctx context.Context, in RegisterInput) (*domain.User, string, error) {
	name := strings.TrimSpace(in.Name)
	email := strings.ToLower(strings.TrimSpace(in.Email))
	if email == "" {
		return nil, "", domain.Validation("email", "required")
	}
	if len(in.Password) < MinPasswordLen || len(in.Password) > MaxPasswordLen {
		return nil, "", domain.Validation("password", "must be between 8 and 72 characters")
	}
	if existing, err := s.repo.FindByEmail(ctx, email); err == nil && existing != nil {
		return nil, "", domain.Conflict(domain.EntityUser, email, domain.ReasonDuplicateEmail)
	} else if err != nil && !domain.IsKind(err, domain.KindNotFound) {
		return nil, "", err
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), s.bcryptCost)
	if err != nil {
		return nil, "", domain.Errorf("hash password", err)
	}
	u := &domain.User{
		Name:      name,
		Email:     email,
		Password:  string(hash),
		Role:      domain.RoleUser, // Admins are only created by the seeder
		CreatedAt: s.clock(),
	}
	if err := s.repo.Create(ctx, u); err != nil {
		return nil, "", err
	}
	token, err := s.issue(u)
	if err != nil {
		return nil, "", err
	}
	return u, token, nil
}

// Login verifies credentials and returns a fresh token
func (s *UserService) Login(ctx context.Context, email, password string) (*domain.User, string, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	u, err := s.repo.FindByEmail(ctx, email)
	if err != nil {
		if domain.IsKind(err, domain.KindNotFound) {
			return nil, "", domain.Auth("invalid email or password")
		}
		return nil, "", err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(u.Password), []byte(password)); err != nil {
		if errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
			return nil, "", domain.Auth("invalid email or password")
		}
		return nil, "", domain.Errorf("compare password", err)
	}
	token, err := s.issue(u)
	if err != nil {
		return nil, "", err
	}
	return u, token, nil
}

// Authenticate resolves a bearer token to the current user record.
// Tokens for deleted users are rejected.
func (s *UserService) Authenticate(ctx context.Context, token string) (*domain.User, error) {
	claims, err := utils.ParseJWT(token, s.secret)
	if err != nil {
		return nil, domain.Auth("invalid or expired token")
	}
	u, err := s.repo.FindByID(ctx, claims.UserID)
	if err != nil {
		if domain.IsKind(err, domain.KindNotFound) {
			return nil, domain.Auth("user no longer exists")
		}
		return nil, err
	}
	return u, nil
}

// Profile returns the user record for id
func (s *UserService) Profile(ctx context.Context, id string) (*domain.User, error) {
	return s.repo.FindByID(ctx, id)
}

// UpdateUser changes a user's name or role
func (s *UserService) UpdateUser(ctx context.Context, id string, patch UserPatch) (*domain.User, error) {
	if patch.Name == nil && patch.Role == nil {
		return nil, domain.Validation("name", "required")
	}
	if patch.Name != nil {
		name := strings.TrimSpace(*patch.Name)
		if name == "" {
			return nil, domain.Validation("name", "required")
		}
		patch.Name = &name
	}
	if patch.Role != nil && !domain.ValidRole(*patch.Role) {
		return nil, domain.Validation("role", "must be user or admin")
	}
	return s.repo.Update(ctx, id, patch.Name, patch.Role)
}

// DeleteUser removes a user and their saved words
func (s *UserService) DeleteUser(ctx context.Context, id string) error {
	return s.repo.Delete(ctx, id)
}

// ListUsers returns one page of users, newest first
func (s *UserService) ListUsers(ctx context.Context, page, pageSize int) (*UserPage, error) {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 || pageSize > 100 {
		pageSize = 20
	}
	users, total, err := s.repo.List(ctx, (page-1)*pageSize, pageSize)
	if err != nil {
		return nil, err
	}
	return &UserPage{
		Users:      users,
		Page:       page,
		PageSize:   pageSize,
		Total:      total,
		TotalPages: (int(total) + pageSize - 1) / pageSize,
	}, nil
}

func (s *UserService) issue(u *domain.User) (string, error) {
	token, err := utils.GenerateJWT(u.ID, u.Role, s.secret, s.tokenTTL)
	if err != nil {
		return "", domain.Errorf("sign token", err)
	}
	return token, nil
}
