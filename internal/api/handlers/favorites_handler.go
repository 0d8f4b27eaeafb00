package handlers

import (
	"net/http"

	"github.com/starwars-blog/api/internal/api/types"
	"github.com/starwars-blog/api/internal/models"
	"github.com/starwars-blog/api/internal/services"
)

type FavoritesHandler struct {
	svc services.FavoriteService
}

func NewFavoritesHandler(svc services.FavoriteService) *FavoritesHandler {
	return &FavoritesHandler{svc: svc}
}

// List godoc
// @Summary  List favorites
// @Tags     favorites
// @Produce  json
// @Success  200  {array}   models.Favorite
// @Failure  404  {object}  types.MessageResponse
// @Router   /favorites [get]
func (h *FavoritesHandler) List(w http.ResponseWriter, r *http.Request) {
	favs, err := h.svc.ListFavorites(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, models.SerializeAll(favs))
}

// Create godoc
// @Summary  Create a favorite
// @Description  No duplicate check; referenced ids are stored as given.
// @Tags     favorites
// @Accept   json
// @Produce  json
// @Param    body  body      types.CreateFavoriteRequest  true  "New favorite"
// @Success  200   {object}  types.MessageResponse
// @Failure  400   {object}  types.MessageResponse
// @Router   /favorites [post]
func (h *FavoritesHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req types.CreateFavoriteRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, r, err)
		return
	}
	_, err := h.svc.CreateFavorite(r.Context(), &services.CreateFavoriteInput{
		UserID:   req.UserID,
		PlanetID: req.PlanetID,
		PeopleID: req.PeopleID,
	})
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeMsg(w, http.StatusOK, "Favorite created")
}
