package controllers

import (
	"encoding/json"
	"errors"
	"net/http"

	"rps-backend/app/dto"
	"rps-backend/app/services"
)

type AdminController struct{ Users *services.UserService }

func NewAdminController(users *services.UserService) *AdminController {
	return &AdminController{Users: users}
}

// ChangeRole reassigns an account's tier. The route is owner-gated; this
// handler only validates the payload and maps store outcomes.
func (c *AdminController) ChangeRole(w http.ResponseWriter, r *http.Request) {
	var req dto.RoleChangeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		errorJSON(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	req.Normalize()
	if err := req.Validate(); err != nil {
		errorJSON(w, http.StatusBadRequest, err.Error())
		return
	}
	if err := c.Users.ChangeRole(req.Username, req.Role); err != nil {
		switch {
		case errors.Is(err, services.ErrInvalidRole):
			errorJSON(w, http.StatusBadRequest, "invalid role")
		case errors.Is(err, services.ErrUserNotFound):
			errorJSON(w, http.StatusNotFound, "user not found")
		default:
			errorJSON(w, http.StatusInternalServerError, "role change failed")
		}
		return
	}
	writeJSON(w, http.StatusOK, map[string]bool{"ok": true})
}
