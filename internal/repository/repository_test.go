package repository

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/starwars-blog/api/internal/models"
	"github.com/starwars-blog/api/pkg/database"
	"github.com/starwars-blog/api/pkg/database/databasetest"
	appErr "github.com/starwars-blog/api/pkg/errors"
)

func uintPtr(v uint) *uint { return &v }

func TestUserRepositoryLifecycle(t *testing.T) {
	ctx := context.Background()
	repo := NewUserRepository(databasetest.New(t))

	empty, err := repo.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, empty)

	u := models.User{Email: "leia@alderaan.gov", Password: "help-me", Name: "Leia"}
	require.NoError(t, repo.Create(ctx, &u))
	require.NotZero(t, u.ID)

	var byEmail models.User
	require.NoError(t, repo.GetByEmail(ctx, "leia@alderaan.gov", &byEmail))
	assert.Equal(t, u.ID, byEmail.ID)
	assert.Equal(t, "help-me", byEmail.Password)

	err = repo.GetByEmail(ctx, "vader@empire.gov", &models.User{})
	assert.True(t, appErr.IsCode(err, appErr.CodeNotFound))

	require.NoError(t, repo.Delete(ctx, u.ID))
	err = repo.GetByID(ctx, u.ID, &models.User{})
	assert.True(t, appErr.IsCode(err, appErr.CodeNotFound))

	err = repo.Delete(ctx, u.ID)
	assert.True(t, appErr.IsCode(err, appErr.CodeNotFound))
}

func TestPlanetAndPeopleByName(t *testing.T) {
	ctx := context.Background()
	db := databasetest.New(t)
	planets := NewPlanetRepository(db)
	people := NewPeopleRepository(db)

	desc := "desert world"
	require.NoError(t, planets.Create(ctx, &models.Planet{Name: "Tatooine", Description: &desc}))
	require.NoError(t, planets.Create(ctx, &models.Planet{Name: "Hoth"}))
	require.NoError(t, people.Create(ctx, &models.People{Name: "Han Solo"}))

	var tatooine models.Planet
	require.NoError(t, planets.GetByName(ctx, "Tatooine", &tatooine))
	require.NotNil(t, tatooine.Description)
	assert.Equal(t, "desert world", *tatooine.Description)

	var hoth models.Planet
	require.NoError(t, planets.GetByName(ctx, "Hoth", &hoth))
	assert.Nil(t, hoth.Description)

	all, err := planets.List(ctx)
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, "Tatooine", all[0].Name)

	var han models.People
	require.NoError(t, people.GetByName(ctx, "Han Solo", &han))
	err = people.GetByName(ctx, "Greedo", &models.People{})
	assert.True(t, appErr.IsCode(err, appErr.CodeNotFound))
}

func TestFavoritesAreNotCheckedAgainstReferences(t *testing.T) {
	ctx := context.Background()
	db := databasetest.New(t)
	users := NewUserRepository(db)
	favorites := NewFavoriteRepository(db)

	u := models.User{Email: "r2@astromech.net", Password: "beep", Name: "R2-D2"}
	require.NoError(t, users.Create(ctx, &u))

	require.NoError(t, favorites.Create(ctx, &models.Favorite{UserID: &u.ID, PlanetID: uintPtr(404), PeopleID: uintPtr(500)}))
	require.NoError(t, favorites.Create(ctx, &models.Favorite{UserID: uintPtr(999)}))
	require.NoError(t, favorites.Create(ctx, &models.Favorite{}))

	mine, err := favorites.ListByUser(ctx, u.ID)
	require.NoError(t, err)
	require.Len(t, mine, 1)
	assert.Equal(t, uintPtr(500), mine[0].PeopleID)

	// deleting the user leaves its favorites in place
	require.NoError(t, users.Delete(ctx, u.ID))
	all, err := favorites.List(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 3)

	none, err := favorites.ListByUser(ctx, 12345)
	require.NoError(t, err)
	assert.Empty(t, none)
}

func TestFavoritesSurviveDeletesWithForeignKeysEnforced(t *testing.T) {
	ctx := context.Background()
	url := "sqlite:///" + filepath.Join(t.TempDir(), "fk.db") + "?_pragma=foreign_keys(1)"
	db, err := database.Open(ctx, url, database.Options{})
	require.NoError(t, err)
	t.Cleanup(func() { _ = database.Close(db) })
	require.NoError(t, database.MigrateUp(ctx, db))

	var enforced int
	require.NoError(t, db.Raw("PRAGMA foreign_keys").Scan(&enforced).Error)
	require.Equal(t, 1, enforced)

	users := NewUserRepository(db)
	planets := NewPlanetRepository(db)
	favorites := NewFavoriteRepository(db)

	u := models.User{Email: "padme@naboo.gov", Password: "senate", Name: "Padme"}
	require.NoError(t, users.Create(ctx, &u))
	p := models.Planet{Name: "Naboo"}
	require.NoError(t, planets.Create(ctx, &p))

	fav := models.Favorite{UserID: &u.ID, PlanetID: &p.ID}
	require.NoError(t, favorites.Create(ctx, &fav))
	require.NoError(t, favorites.Create(ctx, &models.Favorite{UserID: uintPtr(999), PeopleID: uintPtr(999)}))

	require.NoError(t, users.Delete(ctx, u.ID))
	require.NoError(t, planets.Delete(ctx, p.ID))

	var got models.Favorite
	require.NoError(t, favorites.GetByID(ctx, fav.ID, &got))
	assert.Equal(t, &u.ID, got.UserID)
	assert.Equal(t, &p.ID, got.PlanetID)
}
