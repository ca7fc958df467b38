package controllers

import (
	"encoding/json"
	"log"
	"net/http"
	"strings"

	"petconnect_server_go/ai"
)

// AIController обрабатывает запросы к AI-помощнику.
// При отсутствии ключа DeepSeek Advisor равен nil, и эндпоинты отвечают 503.
type AIController struct {
	Advisor *ai.Advisor
}

func (c *AIController) requireAdvisor(w http.ResponseWriter) bool {
	if c.Advisor == nil {
		respondError(w, http.StatusServiceUnavailable, "AI-помощник не настроен на этом сервере.")
		return false
	}
	return true
}

// Advice отвечает на вопрос владельца о питомце.
// Пример URL: POST /api/ai/advice
func (c *AIController) Advice(w http.ResponseWriter, r *http.Request) {
	if !c.requireAdvisor(w) {
		return
	}

	var req struct {
		Question string `json:"question"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Неверный формат запроса: "+err.Error())
		return
	}
	defer r.Body.Close()

	if strings.TrimSpace(req.Question) == "" {
		respondError(w, http.StatusBadRequest, "Вопрос не может быть пустым.")
		return
	}

	answer, err := c.Advisor.InstantAdvice(r.Context(), req.Question)
	if err != nil {
		log.Printf("Ошибка AI-помощника: %v", err)
		respondError(w, http.StatusBadGateway, "AI-помощник не смог ответить, попробуйте позже.")
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"answer": answer})
}

// IdentifyBreed определяет породу питомца по фотографии (data URI).
// Пример URL: POST /api/ai/identify-breed
func (c *AIController) IdentifyBreed(w http.ResponseWriter, r *http.Request) {
	if !c.requireAdvisor(w) {
		return
	}

	var req struct {
		PhotoDataURI string `json:"photoDataUri"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Неверный формат запроса: "+err.Error())
		return
	}
	defer r.Body.Close()

	if err := ai.ValidateDataURI(req.PhotoDataURI); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	result, err := c.Advisor.IdentifyBreed(r.Context(), req.PhotoDataURI)
	if err != nil {
		log.Printf("Ошибка определения породы: %v", err)
		respondError(w, http.StatusBadGateway, "Не удалось определить породу, попробуйте позже.")
		return
	}
	respondJSON(w, http.StatusOK, result)
}
