package services

import (
	"context"

	"github.com/starwars-blog/api/internal/models"
	"github.com/starwars-blog/api/internal/repository"
	appErr "github.com/starwars-blog/api/pkg/errors"
	"github.com/starwars-blog/api/pkg/logger"
	"go.uber.org/zap"
)

type UserService interface {
	ListUsers(ctx context.Context) ([]models.User, error)
	GetUser(ctx context.Context, id uint) (*models.User, error)
	DeleteUser(ctx context.Context, id uint) error
	CreateUser(ctx context.Context, input *CreateUserInput) (*models.User, error)
	ListUserFavorites(ctx context.Context, userID uint) ([]models.Favorite, error)
}

type CreateUserInput struct {
	Email    string
	Password string
	Name     string
}

type userService struct {
	users     repository.UserRepository
	favorites repository.FavoriteRepository
}

func NewUserService(users repository.UserRepository, favorites repository.FavoriteRepository) UserService {
	return &userService{users: users, favorites: favorites}
}

var _ UserService = (*userService)(nil)

func (s *userService) ListUsers(ctx context.Context) ([]models.User, error) {
	items, err := s.users.List(ctx)
	if err != nil {
		return nil, err
	}
	return nonEmpty(items, MsgNoUsers)
}

func (s *userService) GetUser(ctx context.Context, id uint) (*models.User, error) {
	var u models.User
	if err := s.users.GetByID(ctx, id, &u); err != nil {
		return nil, notFoundAs(err, MsgUserMissing)
	}
	return &u, nil
}

func (s *userService) DeleteUser(ctx context.Context, id uint) error {
	if err := s.users.Delete(ctx, id); err != nil {
		return notFoundAs(err, MsgUserMissing)
	}
	logger.L().Info("user deleted", zap.Uint("user_id", id))
	return nil
}

// CreateUser inserts a user unless one with the same email exists. The check
// and the insert are separate statements.
func (s *userService) CreateUser(ctx context.Context, input *CreateUserInput) (*models.User, error) {
	var existing models.User
	err := s.users.GetByEmail(ctx, input.Email, &existing)
	switch {
	case err == nil:
		return nil, appErr.New(appErr.CodeAlreadyExists, MsgUserExists).WithMeta("user_id", existing.ID)
	case !appErr.IsCode(err, appErr.CodeNotFound):
		return nil, err
	}

	u := &models.User{Email: input.Email, Password: input.Password, Name: input.Name}
	if err := s.users.Create(ctx, u); err != nil {
		return nil, err
	}
	logger.L().Info("user created", zap.Uint("user_id", u.ID))
	return u, nil
}

func (s *userService) ListUserFavorites(ctx context.Context, userID uint) ([]models.Favorite, error) {
	items, err := s.favorites.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	return nonEmpty(items, MsgNoFavorites)
}
