package handlers

import (
	"bytes"
	"io"
	"net/http"
	"strconv"

	"github.com/starwars-blog/api/internal/api/types"
	"github.com/starwars-blog/api/internal/models"
	"github.com/starwars-blog/api/internal/services"
	appErr "github.com/starwars-blog/api/pkg/errors"
)

type UsersHandler struct {
	svc services.UserService
}

func NewUsersHandler(svc services.UserService) *UsersHandler {
	return &UsersHandler{svc: svc}
}

// List godoc
// @Summary  List users
// @Tags     users
// @Produce  json
// @Success  200  {array}   models.User
// @Failure  404  {object}  types.MessageResponse
// @Router   /user [get]
func (h *UsersHandler) List(w http.ResponseWriter, r *http.Request) {
	users, err := h.svc.ListUsers(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, models.SerializeAll(users))
}

// Get godoc
// @Summary  Get a user
// @Tags     users
// @Produce  json
// @Param    id   path      int  true  "User ID"
// @Success  200  {object}  models.User
// @Failure  404  {object}  types.MessageResponse
// @Router   /user/{id} [get]
func (h *UsersHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeMsg(w, http.StatusNotFound, services.MsgUserMissing)
		return
	}
	u, err := h.svc.GetUser(r.Context(), id)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, u.Serialize())
}

// Delete godoc
// @Summary  Delete a user
// @Tags     users
// @Produce  json
// @Param    id   path      int  true  "User ID"
// @Success  200  {object}  types.MessageResponse
// @Failure  404  {object}  types.MessageResponse
// @Router   /user/{id} [delete]
func (h *UsersHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeMsg(w, http.StatusNotFound, services.MsgUserMissing)
		return
	}
	if err := h.svc.DeleteUser(r.Context(), id); err != nil {
		writeError(w, r, err)
		return
	}
	writeMsg(w, http.StatusOK, "User deleted")
}

// Create godoc
// @Summary  Create a user
// @Description  Fails with 404 when the email is already registered.
// @Tags     users
// @Accept   json
// @Produce  json
// @Param    body  body      types.CreateUserRequest  true  "New user"
// @Success  200   {object}  types.MessageResponse
// @Failure  400   {object}  types.MessageResponse
// @Failure  404   {object}  types.MessageResponse
// @Router   /user [post]
func (h *UsersHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req types.CreateUserRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, r, err)
		return
	}
	_, err := h.svc.CreateUser(r.Context(), &services.CreateUserInput{
		Email:    *req.Email,
		Password: *req.Password,
		Name:     *req.Name,
	})
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeMsg(w, http.StatusOK, "User created")
}

// Favorites godoc
// @Summary  List a user's favorites
// @Description  The user is selected by user_id in the JSON body; a user_id query parameter is accepted when the body is empty.
// @Tags     users
// @Accept   json
// @Produce  json
// @Param    body     body      types.UserFavoritesRequest  false  "Selected user"
// @Param    user_id  query     int                         false  "Selected user"
// @Success  200      {array}   models.Favorite
// @Failure  400      {object}  types.MessageResponse
// @Failure  404      {object}  types.MessageResponse
// @Router   /user/favorites [get]
func (h *UsersHandler) Favorites(w http.ResponseWriter, r *http.Request) {
	userID, err := favoritesUserID(r)
	if err != nil {
		writeError(w, r, err)
		return
	}
	favs, err := h.svc.ListUserFavorites(r.Context(), userID)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, models.SerializeAll(favs))
}

func favoritesUserID(r *http.Request) (uint, error) {
	body, err := io.ReadAll(io.LimitReader(r.Body, maxBodyBytes))
	if err != nil {
		return 0, appErr.Wrap(err, appErr.CodeInvalid, "unreadable body")
	}
	if len(bytes.TrimSpace(body)) == 0 {
		raw := r.URL.Query().Get("user_id")
		if raw == "" {
			return 0, appErr.New(appErr.CodeInvalid, "user_id is required")
		}
		id, err := strconv.ParseUint(raw, 10, 32)
		if err != nil {
			return 0, appErr.Wrap(err, appErr.CodeInvalid, "user_id must be an integer")
		}
		return uint(id), nil
	}

	r.Body = io.NopCloser(bytes.NewReader(body))
	var req types.UserFavoritesRequest
	if err := decodeJSON(r, &req); err != nil {
		return 0, err
	}
	return *req.UserID, nil
}
