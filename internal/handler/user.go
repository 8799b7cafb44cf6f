package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/palaver-dev/palaver/internal/api"
	mw "github.com/palaver-dev/palaver/internal/middleware"
	"github.com/palaver-dev/palaver/internal/utils"
)

func (h *Handler) PromoteUser(w http.ResponseWriter, r *http.Request) {
	actor, ok := mw.UserFromContext(r)
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	userId, err := parseIdParam(chi.URLParam(r, "user"), "user ID")
	if err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}

	user, err := h.auth.Promote(actor, userId)
	if err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}

	writeJSON(w, http.StatusOK, api.NewUserResponse(user))
}

func (h *Handler) ListUsers(w http.ResponseWriter, r *http.Request) {
	actor, ok := mw.UserFromContext(r)
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	users, err := h.auth.Users(actor)
	if err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}

	writeJSON(w, http.StatusOK, api.NewUsersResponse(users))
}
