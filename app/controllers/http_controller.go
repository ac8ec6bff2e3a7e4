package controllers

import (
	"net/http"

	"rps-backend/app/db"

	"gorm.io/gorm"
)

type HTTPController struct{ DB *gorm.DB }

func NewHTTPController(gdb *gorm.DB) *HTTPController { return &HTTPController{DB: gdb} }

func (c *HTTPController) DBHealth(w http.ResponseWriter, r *http.Request) {
	if err := db.Ping(c.DB); err != nil {
		writeJSON(w, http.StatusOK, map[string]any{"ok": false, "error": "database unreachable"})
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"ok": true})
}
