package repository

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"listing-checkout/internal/model"
)

type PlanRepository interface {
	Seed(ctx context.Context) error
	List(ctx context.Context) ([]*model.Plan, error)
}

type planRepoImpl struct {
	db *gorm.DB
}

func NewPlanRepository(db *gorm.DB) PlanRepository {
	return &planRepoImpl{
		db: db,
	}
}

func strptr(s string) *string {
	return &s
}

func (r *planRepoImpl) Seed(ctx context.Context) error {
	plans := []model.Plan{
		{ID: "gratis", Name: "Gratis", BasePrice: 0, Features: []string{"1 anuncio activo", "Visibilidad estándar"}, Icon: strptr("leaf")},
		{ID: "basico", Name: "Básico", BasePrice: 100, Features: []string{"3 anuncios activos", "Visibilidad estándar", "Soporte por correo"}, Color: strptr("#2196F3"), Icon: strptr("star")},
		{ID: "destacado", Name: "Destacado", BasePrice: 250, Features: []string{"Anuncio destacado", "Aparece en la portada", "Soporte prioritario"}, Color: strptr("#FF9800"), Icon: strptr("flame")},
		{ID: "premium", Name: "Premium", BasePrice: 500, Features: []string{"Máxima visibilidad", "Primera posición en búsquedas", "Insignia premium", "Soporte prioritario"}, Color: strptr("#9C27B0"), Icon: strptr("crown")},
	}

	return r.db.WithContext(ctx).Clauses(clause.OnConflict{DoNothing: true}).Create(&plans).Error
}

func (r *planRepoImpl) List(ctx context.Context) ([]*model.Plan, error) {
	var plans []*model.Plan
	err := r.db.WithContext(ctx).
		Order("created_at, id").
		Find(&plans).
		Error

	if err != nil {
		return nil, err
	}

	return plans, nil
}
