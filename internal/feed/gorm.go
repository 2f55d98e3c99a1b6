package feed

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/commonshub/commonshub/internal/db/models"
)

// GormStore implements Store on top of the application database.
type GormStore struct {
	db *gorm.DB
}

// NewGormStore wraps the given database handle.
func NewGormStore(db *gorm.DB) *GormStore {
	return &GormStore{db: db}
}

// RecentDiscussions implements Store. Discussions whose author was
// removed are excluded by joining against the live users table.
func (s *GormStore) RecentDiscussions(ctx context.Context, groupID uint, limit int) ([]models.Discussion, error) {
	var discussions []models.Discussion

	err := s.db.WithContext(ctx).
		Joins("JOIN users ON users.id = discussions.user_id AND users.deleted_at IS NULL").
		Where("discussions.group_id = ?", groupID).
		Preload("User").
		Order("discussions.updated_at DESC").
		Limit(limit).
		Find(&discussions).Error
	if err != nil {
		return nil, err
	}

	return discussions, nil
}

// RecentDocuments implements Store.
func (s *GormStore) RecentDocuments(ctx context.Context, groupID uint, limit int) ([]models.Document, error) {
	var documents []models.Document

	err := s.db.WithContext(ctx).
		Where("group_id = ?", groupID).
		Preload("User").
		Order("updated_at DESC").
		Limit(limit).
		Find(&documents).Error
	if err != nil {
		return nil, err
	}

	return documents, nil
}

// UpcomingActions implements Store.
func (s *GormStore) UpcomingActions(ctx context.Context, groupID uint, now time.Time, limit int) ([]models.Action, error) {
	var actions []models.Action

	err := s.db.WithContext(ctx).
		Where("group_id = ? AND start >= ?", groupID, now).
		Order("start ASC").
		Limit(limit).
		Find(&actions).Error
	if err != nil {
		return nil, err
	}

	return actions, nil
}

// RecentActivities implements Store.
func (s *GormStore) RecentActivities(ctx context.Context, groupID uint, limit int) ([]models.Activity, error) {
	var activities []models.Activity

	err := s.db.WithContext(ctx).
		Where("group_id = ?", groupID).
		Order("created_at DESC").
		Limit(limit).
		Find(&activities).Error
	if err != nil {
		return nil, err
	}

	return activities, nil
}
