package services

import (
	"context"

	"github.com/starwars-blog/api/internal/models"
	"github.com/starwars-blog/api/internal/repository"
	"github.com/starwars-blog/api/pkg/logger"
	"go.uber.org/zap"
)

type FavoriteService interface {
	ListFavorites(ctx context.Context) ([]models.Favorite, error)
	CreateFavorite(ctx context.Context, input *CreateFavoriteInput) (*models.Favorite, error)
}

type CreateFavoriteInput struct {
	UserID   *uint
	PlanetID *uint
	PeopleID *uint
}

type favoriteService struct {
	favorites repository.FavoriteRepository
}

func NewFavoriteService(favorites repository.FavoriteRepository) FavoriteService {
	return &favoriteService{favorites: favorites}
}

var _ FavoriteService = (*favoriteService)(nil)

func (s *favoriteService) ListFavorites(ctx context.Context) ([]models.Favorite, error) {
	items, err := s.favorites.List(ctx)
	if err != nil {
		return nil, err
	}
	return nonEmpty(items, MsgNoFavorites)
}

// CreateFavorite stores the triple as given: no duplicate check and no lookup
// of the referenced user, planet or character.
func (s *favoriteService) CreateFavorite(ctx context.Context, input *CreateFavoriteInput) (*models.Favorite, error) {
	f := &models.Favorite{UserID: input.UserID, PlanetID: input.PlanetID, PeopleID: input.PeopleID}
	if err := s.favorites.Create(ctx, f); err != nil {
		return nil, err
	}
	logger.L().Info("favorite created", zap.Uint("favorite_id", f.ID))
	return f, nil
}
