package repository

import (
	"context"

	"github.com/starwars-blog/api/internal/models"
	appErr "github.com/starwars-blog/api/pkg/errors"
	"gorm.io/gorm"
)

type FavoriteRepository interface {
	BaseRepository[models.Favorite]
	ListByUser(ctx context.Context, userID uint) ([]models.Favorite, error)
}

type favoriteRepository struct {
	BaseRepository[models.Favorite]
	db *gorm.DB
}

func NewFavoriteRepository(db *gorm.DB) FavoriteRepository {
	return &favoriteRepository{BaseRepository: NewBaseRepository[models.Favorite](db, "favorite"), db: db}
}

func (r *favoriteRepository) ListByUser(ctx context.Context, userID uint) ([]models.Favorite, error) {
	out := make([]models.Favorite, 0)
	if err := r.db.WithContext(ctx).Where("user_id = ?", userID).Order("id ASC").Find(&out).Error; err != nil {
		return nil, appErr.Wrap(err, appErr.CodeInternal, "list favorites by user failed")
	}
	return out, nil
}
