package services

import (
	"context"

	"github.com/starwars-blog/api/internal/models"
	"github.com/starwars-blog/api/internal/repository"
	appErr "github.com/starwars-blog/api/pkg/errors"
	"github.com/starwars-blog/api/pkg/logger"
	"go.uber.org/zap"
)

// CatalogService serves the named catalog tables (planets, people).
type CatalogService[T any] interface {
	List(ctx context.Context) ([]T, error)
	Get(ctx context.Context, id uint) (*T, error)
	Delete(ctx context.Context, id uint) error
	Create(ctx context.Context, input *CreateCatalogInput) (*T, error)
}

type CreateCatalogInput struct {
	Name        string
	Description *string
}

type catalogMessages struct {
	kind    string
	empty   string
	missing string
	exists  string
}

// namedRepository is the subset of the planet and people repositories the catalog needs.
type namedRepository[T any] interface {
	repository.BaseRepository[T]
	GetByName(ctx context.Context, name string, dest *T) error
}

type catalogService[T any] struct {
	repo  namedRepository[T]
	build func(*CreateCatalogInput) *T
	msgs  catalogMessages
}

func NewPlanetService(repo repository.PlanetRepository) CatalogService[models.Planet] {
	return &catalogService[models.Planet]{
		repo: repo,
		build: func(in *CreateCatalogInput) *models.Planet {
			return &models.Planet{Name: in.Name, Description: in.Description}
		},
		msgs: catalogMessages{kind: "planet", empty: MsgNoPlanets, missing: MsgPlanetMissing, exists: MsgPlanetExists},
	}
}

func NewPeopleService(repo repository.PeopleRepository) CatalogService[models.People] {
	return &catalogService[models.People]{
		repo: repo,
		build: func(in *CreateCatalogInput) *models.People {
			return &models.People{Name: in.Name, Description: in.Description}
		},
		msgs: catalogMessages{kind: "person", empty: MsgNoPeople, missing: MsgPersonMissing, exists: MsgPersonExists},
	}
}

func (s *catalogService[T]) List(ctx context.Context) ([]T, error) {
	items, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	return nonEmpty(items, s.msgs.empty)
}

func (s *catalogService[T]) Get(ctx context.Context, id uint) (*T, error) {
	var item T
	if err := s.repo.GetByID(ctx, id, &item); err != nil {
		return nil, notFoundAs(err, s.msgs.missing)
	}
	return &item, nil
}

func (s *catalogService[T]) Delete(ctx context.Context, id uint) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return notFoundAs(err, s.msgs.missing)
	}
	logger.L().Info(s.msgs.kind+" deleted", zap.Uint("id", id))
	return nil
}

// Create inserts a record unless one with the same name exists.
func (s *catalogService[T]) Create(ctx context.Context, input *CreateCatalogInput) (*T, error) {
	var existing T
	err := s.repo.GetByName(ctx, input.Name, &existing)
	switch {
	case err == nil:
		return nil, appErr.New(appErr.CodeAlreadyExists, s.msgs.exists)
	case !appErr.IsCode(err, appErr.CodeNotFound):
		return nil, err
	}

	item := s.build(input)
	if err := s.repo.Create(ctx, item); err != nil {
		return nil, err
	}
	logger.L().Info(s.msgs.kind+" created", zap.String("name", input.Name))
	return item, nil
}
