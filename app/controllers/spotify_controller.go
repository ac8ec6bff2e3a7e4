package controllers

import (
	"net/http"

	"rps-backend/app/spotify"
	"rps-backend/global"
)

type SpotifyController struct{ Client *spotify.Client }

func NewSpotifyController(client *spotify.Client) *SpotifyController {
	return &SpotifyController{Client: client}
}

func (c *SpotifyController) Search(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query().Get("q")
	if q == "" {
		errorJSON(w, http.StatusBadRequest, "missing q")
		return
	}
	result, err := c.Client.Search(r.Context(), q)
	if err != nil {
		global.Logger.Error().Err(err).Msg("spotify search failed")
		errorJSON(w, http.StatusInternalServerError, "spotify auth failed")
		return
	}
	writeJSON(w, http.StatusOK, result)
}
