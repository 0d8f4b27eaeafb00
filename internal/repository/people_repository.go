package repository

import (
	"context"

	"github.com/starwars-blog/api/internal/models"
	"gorm.io/gorm"
)

type PeopleRepository interface {
	BaseRepository[models.People]
	GetByName(ctx context.Context, name string, dest *models.People) error
}

type peopleRepository struct {
	BaseRepository[models.People]
	db *gorm.DB
}

func NewPeopleRepository(db *gorm.DB) PeopleRepository {
	return &peopleRepository{BaseRepository: NewBaseRepository[models.People](db, "person"), db: db}
}

func (r *peopleRepository) GetByName(ctx context.Context, name string, dest *models.People) error {
	return firstWhere(ctx, r.db, "person", "name", name, dest)
}
