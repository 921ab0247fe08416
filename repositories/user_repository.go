package repositories

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"linkup/apperrors"
	"linkup/models"
)

type userRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) UserRepository {
	return &userRepository{db: db}
}

// Create stores a new user. The caller is responsible for hashing the
// password before it gets here.
func (r *userRepository) Create(ctx context.Context, user *models.User) error {
	if err := r.db.WithContext(ctx).Create(user).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return apperrors.New(apperrors.ErrConflict, "username or email has already been registered")
		}
		return fmt.Errorf("failed to create user: %w", err)
	}
	return nil
}

func (r *userRepository) FindByUsername(ctx context.Context, username string) (*models.User, error) {
	var user models.User
	err := r.db.WithContext(ctx).Where("username = ?", username).First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperrors.New(apperrors.ErrNotFound, "user not found")
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find user by username: %w", err)
	}
	return &user, nil
}

// FindByID loads a user together with both sides of its social graph.
func (r *userRepository) FindByID(ctx context.Context, id string) (*models.User, error) {
	var user models.User
	err := r.db.WithContext(ctx).
		Preload("Followers").
		Preload("Following").
		First(&user, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperrors.New(apperrors.ErrNotFound, "user not found")
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find user by id: %w", err)
	}
	return &user, nil
}

// Follow creates the directed edge follower -> followee. Both sides of the
// relationship are backed by the same row, written inside one transaction,
// so the graph can never end up asymmetric. Following yourself and
// following the same user twice are rejected.
func (r *userRepository) Follow(ctx context.Context, followerID, followeeID string) error {
	if followerID == followeeID {
		return apperrors.New(apperrors.ErrValidation, "you cannot follow yourself")
	}

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := ensureUserExists(tx, followeeID); err != nil {
			return err
		}
		if err := ensureUserExists(tx, followerID); err != nil {
			return err
		}

		var count int64
		if err := tx.Model(&models.Follow{}).
			Where("follower_id = ? AND followee_id = ?", followerID, followeeID).
			Count(&count).Error; err != nil {
			return fmt.Errorf("failed to check follow state: %w", err)
		}
		if count > 0 {
			return apperrors.New(apperrors.ErrConflict, "you are already following this user")
		}

		follow := models.Follow{FollowerID: followerID, FolloweeID: followeeID}
		if err := tx.Create(&follow).Error; err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return apperrors.New(apperrors.ErrConflict, "you are already following this user")
			}
			return fmt.Errorf("failed to create follow: %w", err)
		}
		return nil
	})
}

// Unfollow removes the edge follower -> followee. Removing an edge that
// does not exist is a no-op, not an error.
func (r *userRepository) Unfollow(ctx context.Context, followerID, followeeID string) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := ensureUserExists(tx, followeeID); err != nil {
			return err
		}

		err := tx.Where("follower_id = ? AND followee_id = ?", followerID, followeeID).
			Delete(&models.Follow{}).Error
		if err != nil {
			return fmt.Errorf("failed to delete follow: %w", err)
		}
		return nil
	})
}

func ensureUserExists(tx *gorm.DB, id string) error {
	var count int64
	if err := tx.Model(&models.User{}).Where("id = ?", id).Count(&count).Error; err != nil {
		return fmt.Errorf("failed to check user existence: %w", err)
	}
	if count == 0 {
		return apperrors.New(apperrors.ErrNotFound, "user not found")
	}
	return nil
}
