package controllers

import (
	"encoding/json"
	"net/http"
	"strings"

	"rps-backend/app/openai"
	"rps-backend/global"
)

type ChatController struct{ Client *openai.Client }

func NewChatController(client *openai.Client) *ChatController {
	return &ChatController{Client: client}
}

type chatRequest struct {
	Prompt string `json:"prompt"`
}

func (c *ChatController) Chat(w http.ResponseWriter, r *http.Request) {
	var req chatRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		errorJSON(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	req.Prompt = strings.TrimSpace(req.Prompt)
	if req.Prompt == "" {
		errorJSON(w, http.StatusBadRequest, "missing prompt")
		return
	}
	answer, err := c.Client.Chat(r.Context(), req.Prompt)
	if err != nil {
		global.Logger.Error().Err(err).Msg("openai chat failed")
		errorJSON(w, http.StatusBadGateway, "upstream error contacting OpenAI")
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"answer": answer})
}
