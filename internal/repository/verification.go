package repository

import (
	"context"

	"gorm.io/gorm"

	"listing-checkout/internal/model"
)

type VerificationRepository interface {
	Create(ctx context.Context, doc *model.VerificationDocument) error
}

type verificationRepoImpl struct {
	db *gorm.DB
}

func NewVerificationRepository(db *gorm.DB) VerificationRepository {
	return &verificationRepoImpl{
		db: db,
	}
}

func (r *verificationRepoImpl) Create(ctx context.Context, doc *model.VerificationDocument) error {
	return r.db.WithContext(ctx).Create(doc).Error
}
