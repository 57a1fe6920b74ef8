package store

import (
	"context" // Request scoped cancellation
	"time"    // Time ranges

	"vocab_system/internal/domain" // Importing domain models

	"gorm.io/gorm" // GORM ORM library
)

// UserStore persists user accounts
type UserStore struct {
	db *gorm.DB
}

// NewUserStore creates a user store
func NewUserStore(db *gorm.DB) *UserStore {
	return &UserStore{db: db}
}

// Create inserts a user, rejecting a duplicate email
func (s *UserStore) Create(ctx context.Context, u *domain.User) error {
	if err := s.db.WithContext(ctx).Create(u).Error; err != nil {
		if isDuplicateKey(err) {
			return domain.Conflict(domain.EntityUser, u.Email, domain.ReasonDuplicateEmail)
		}
		return domain.Storage("create user", err)
	}
	return nil
}

// FindByID returns the user with the given id
func (s *UserStore) FindByID(ctx context.Context, id string) (*domain.User, error) {
	return s.findOne(ctx, "id = ?", id)
}

// FindByEmail returns the user registered under email
func (s *UserStore) FindByEmail(ctx context.Context, email string) (*domain.User, error) {
	return s.findOne(ctx, "email = ?", email)
}

func (s *UserStore) findOne(ctx context.Context, query string, arg string) (*domain.User, error) {
	var u domain.User
	if err := s.db.WithContext(ctx).Where(query, arg).First(&u).Error; err != nil {
		if isNotFound(err) {
			return nil, domain.NotFound(domain.EntityUser, arg)
		}
		return nil, domain.Storage("find user", err)
	}
	return &u, nil
}

// Update changes a user's name and/or role
func (s *UserStore) Update(ctx context.Context, id string, name, role *string) (*domain.User, error) {
	updates := map[string]any{}
	if name != nil {
		updates["name"] = *name
	}
	if role != nil {
		updates["role"] = *role
	}
	if len(updates) > 0 {
		res := s.db.WithContext(ctx).Model(&domain.User{}).Where("id = ?", id).Updates(updates)
		if res.Error != nil {
			return nil, domain.Storage("update user", res.Error)
		}
	}
	return s.FindByID(ctx, id)
}

// Delete removes a user together with their saved words
func (s *UserStore) Delete(ctx context.Context, id string) error {
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("user_id = ?", id).Delete(&domain.SavedWord{}).Error; err != nil {
			return domain.Storage("delete saved words", err)
		}
		res := tx.Delete(&domain.User{}, "id = ?", id)
		if res.Error != nil {
			return domain.Storage("delete user", res.Error)
		}
		if res.RowsAffected == 0 {
			return domain.NotFound(domain.EntityUser, id)
		}
		return nil
	})
	if err != nil && domain.KindOf(err) == 0 {
		return domain.Storage("delete user", err)
	}
	return err
}

// List returns a page of users ordered by registration time and the total count
func (s *UserStore) List(ctx context.Context, offset, limit int) ([]domain.User, int64, error) {
	var total int64
	if err := s.db.WithContext(ctx).Model(&domain.User{}).Count(&total).Error; err != nil {
		return nil, 0, domain.Storage("count users", err)
	}
	var users []domain.User
	err := s.db.WithContext(ctx).Order("created_at desc").Order("id").Offset(offset).Limit(limit).Find(&users).Error
	if err != nil {
		return nil, 0, domain.Storage("list users", err)
	}
	return users, total, nil
}

// RegisteredBetween returns the registration times of users created in [from, to)
func (s *UserStore) RegisteredBetween(ctx context.Context, from, to time.Time) ([]time.Time, error) {
	var times []time.Time
	err := s.db.WithContext(ctx).Model(&domain.User{}).
		Where("created_at >= ? AND created_at < ?", from, to).
		Order("created_at").
		Pluck("created_at", &times).Error
	if err != nil {
		return nil, domain.Storage("list registrations", err)
	}
	return times, nil
}
