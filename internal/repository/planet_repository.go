package repository

import (
	"context"

	"github.com/starwars-blog/api/internal/models"
	"gorm.io/gorm"
)

type PlanetRepository interface {
	BaseRepository[models.Planet]
	GetByName(ctx context.Context, name string, dest *models.Planet) error
}

type planetRepository struct {
	BaseRepository[models.Planet]
	db *gorm.DB
}

func NewPlanetRepository(db *gorm.DB) PlanetRepository {
	return &planetRepository{BaseRepository: NewBaseRepository[models.Planet](db, "planet"), db: db}
}

func (r *planetRepository) GetByName(ctx context.Context, name string, dest *models.Planet) error {
	return firstWhere(ctx, r.db, "planet", "name", name, dest)
}
