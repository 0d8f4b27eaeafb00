package api

import (
	"context"

	"gorm.io/gorm"

	"github.com/starwars-blog/api/internal/api/handlers"
	"github.com/starwars-blog/api/internal/repository"
	"github.com/starwars-blog/api/internal/services"
	"github.com/starwars-blog/api/pkg/database"
)

// Wire builds repositories, services and handlers on top of db. Middleware
// settings are left at their zero values for the caller to fill in.
func Wire(db *gorm.DB) Dependencies {
	userRepo := repository.NewUserRepository(db)
	planetRepo := repository.NewPlanetRepository(db)
	peopleRepo := repository.NewPeopleRepository(db)
	favoriteRepo := repository.NewFavoriteRepository(db)

	return Dependencies{
		UsersHandler:     handlers.NewUsersHandler(services.NewUserService(userRepo, favoriteRepo)),
		PeopleHandler:    handlers.NewPeopleHandler(services.NewPeopleService(peopleRepo)),
		PlanetsHandler:   handlers.NewPlanetsHandler(services.NewPlanetService(planetRepo)),
		FavoritesHandler: handlers.NewFavoritesHandler(services.NewFavoriteService(favoriteRepo)),
		HealthHandler: handlers.NewHealthHandler(func(ctx context.Context) error {
			return database.Ping(ctx, db)
		}),
		AllowedOrigins: []string{"*"},
	}
}
