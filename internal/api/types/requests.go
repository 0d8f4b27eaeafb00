package types

// Required fields are pointers so that only a missing key fails validation;
// an empty string is stored as given.
type CreateUserRequest struct {
	Email    *string `json:"email" validate:"required"`
	Password *string `json:"password" validate:"required"`
	Name     *string `json:"name" validate:"required"`
}

type UserFavoritesRequest struct {
	UserID *uint `json:"user_id" validate:"required"`
}

// CreateCatalogRequest is the body for POST /people and POST /planets.
type CreateCatalogRequest struct {
	Name        *string `json:"name" validate:"required"`
	Description *string `json:"description"`
}

type CreateFavoriteRequest struct {
	UserID   *uint `json:"user_id"`
	PlanetID *uint `json:"planet_id"`
	PeopleID *uint `json:"people_id"`
}
