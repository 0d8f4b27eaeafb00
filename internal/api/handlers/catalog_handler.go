package handlers

import (
	"net/http"

	"github.com/starwars-blog/api/internal/api/types"
	"github.com/starwars-blog/api/internal/models"
	"github.com/starwars-blog/api/internal/services"
)

// CatalogHandler serves /people and /planets, which differ only in their
// record type and messages.
type CatalogHandler[T models.Serializer] struct {
	svc     services.CatalogService[T]
	missing string
	created string
	deleted string
}

func NewPlanetsHandler(svc services.CatalogService[models.Planet]) *CatalogHandler[models.Planet] {
	return &CatalogHandler[models.Planet]{
		svc:     svc,
		missing: services.MsgPlanetMissing,
		created: "Planet created",
		deleted: "Planet deleted",
	}
}

func NewPeopleHandler(svc services.CatalogService[models.People]) *CatalogHandler[models.People] {
	return &CatalogHandler[models.People]{
		svc:     svc,
		missing: services.MsgPersonMissing,
		created: "Person created",
		deleted: "Person deleted",
	}
}

// List godoc
// @Summary  List planets or people
// @Tags     catalog
// @Produce  json
// @Success  200  {array}   models.Planet
// @Failure  404  {object}  types.MessageResponse
// @Router   /planets [get]
// @Router   /people [get]
func (h *CatalogHandler[T]) List(w http.ResponseWriter, r *http.Request) {
	items, err := h.svc.List(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, models.SerializeAll(items))
}

// Get godoc
// @Summary  Get a planet or person
// @Tags     catalog
// @Produce  json
// @Param    id   path      int  true  "Record ID"
// @Success  200  {object}  models.Planet
// @Failure  404  {object}  types.MessageResponse
// @Router   /planets/{id} [get]
// @Router   /people/{id} [get]
func (h *CatalogHandler[T]) Get(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeMsg(w, http.StatusNotFound, h.missing)
		return
	}
	item, err := h.svc.Get(r.Context(), id)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, (*item).Serialize())
}

// Delete godoc
// @Summary  Delete a planet or person
// @Tags     catalog
// @Produce  json
// @Param    id   path      int  true  "Record ID"
// @Success  200  {object}  types.MessageResponse
// @Failure  404  {object}  types.MessageResponse
// @Router   /planets/{id} [delete]
// @Router   /people/{id} [delete]
func (h *CatalogHandler[T]) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeMsg(w, http.StatusNotFound, h.missing)
		return
	}
	if err := h.svc.Delete(r.Context(), id); err != nil {
		writeError(w, r, err)
		return
	}
	writeMsg(w, http.StatusOK, h.deleted)
}

// Create godoc
// @Summary  Create a planet or person
// @Description  Fails with 404 when a record with the same name exists.
// @Tags     catalog
// @Accept   json
// @Produce  json
// @Param    body  body      types.CreateCatalogRequest  true  "New record"
// @Success  200   {object}  types.MessageResponse
// @Failure  400   {object}  types.MessageResponse
// @Failure  404   {object}  types.MessageResponse
// @Router   /planets [post]
// @Router   /people [post]
func (h *CatalogHandler[T]) Create(w http.ResponseWriter, r *http.Request) {
	var req types.CreateCatalogRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, r, err)
		return
	}
	if _, err := h.svc.Create(r.Context(), &services.CreateCatalogInput{Name: *req.Name, Description: req.Description}); err != nil {
		writeError(w, r, err)
		return
	}
	writeMsg(w, http.StatusOK, h.created)
}
