package repository

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"listing-checkout/internal/model"
)

// SessionRepository persists the buyer's in-progress checkout choice so it
// survives navigation. Load returns (nil, nil) when no session exists.
type SessionRepository interface {
	Load(ctx context.Context, userID string) (*model.CheckoutSession, error)
	Save(ctx context.Context, session *model.CheckoutSession) error
	Clear(ctx context.Context, userID string) error
}

type sessionRepoImpl struct {
	db *gorm.DB
}

func NewSessionRepository(db *gorm.DB) SessionRepository {
	return &sessionRepoImpl{
		db: db,
	}
}

func (r *sessionRepoImpl) Load(ctx context.Context, userID string) (*model.CheckoutSession, error) {
	var session model.CheckoutSession
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		First(&session).
		Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}

	return &session, nil
}

func (r *sessionRepoImpl) Save(ctx context.Context, session *model.CheckoutSession) error {
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "user_id"}},
		DoUpdates: clause.Assignments(map[string]interface{}{
			"plan_id":     session.PlanID,
			"duration_id": session.DurationID,
			"updated_at":  time.Now(),
		}),
	}).Create(session).Error
}

func (r *sessionRepoImpl) Clear(ctx context.Context, userID string) error {
	return r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Delete(&model.CheckoutSession{}).
		Error
}
