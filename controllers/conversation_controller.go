package controllers

import (
	"encoding/json"
	"log"
	"net/http"
	"strings"

	"petconnect_server_go/data"
	"petconnect_server_go/models"
)

// ConversationController обрабатывает личные сообщения.
type ConversationController struct {
	Store *data.Store
}

func (c *ConversationController) toResponse(convo *models.Conversation, viewerID int64) models.ConversationResponse {
	resp := models.ConversationResponse{
		Conversation: *convo,
		Participants: convo.Participants(),
	}
	otherID := convo.OtherParticipant(viewerID)
	other, err := c.Store.GetUserByID(otherID)
	if err != nil || other == nil {
		log.Printf("Не удалось получить собеседника %d для диалога %d: %v", otherID, convo.ID, err)
		resp.Other = models.UserPublicInfo{ID: otherID}
		return resp
	}
	resp.Other = other.PublicInfo()
	return resp
}

// List возвращает диалоги текущего пользователя вместе с данными собеседников.
// Пример URL: GET /api/conversations
func (c *ConversationController) List(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}

	convos, err := c.Store.GetConversationsByUser(userID)
	if err != nil {
		log.Printf("Ошибка при получении диалогов пользователя %d: %v", userID, err)
		respondError(w, http.StatusInternalServerError, "Ошибка сервера при получении диалогов.")
		return
	}

	result := make([]models.ConversationResponse, 0, len(convos))
	for i := range convos {
		result = append(result, c.toResponse(&convos[i], userID))
	}
	respondJSON(w, http.StatusOK, result)
}

// Start открывает диалог с другим пользователем или возвращает существующий.
// Пример URL: POST /api/conversations
func (c *ConversationController) Start(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}

	var req models.StartConversationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Неверный формат запроса: "+err.Error())
		return
	}
	defer r.Body.Close()

	if req.UserID <= 0 {
		respondError(w, http.StatusBadRequest, "Не указан собеседник.")
		return
	}
	if req.UserID == userID {
		respondError(w, http.StatusBadRequest, "Нельзя открыть диалог с самим собой.")
		return
	}

	other, err := c.Store.GetUserByID(req.UserID)
	if err != nil {
		log.Printf("Ошибка при проверке пользователя %d: %v", req.UserID, err)
		respondError(w, http.StatusInternalServerError, "Ошибка сервера при проверке собеседника.")
		return
	}
	if other == nil {
		respondError(w, http.StatusNotFound, "Пользователь не найден.")
		return
	}

	convo, created, err := c.Store.StartConversation(userID, req.UserID, "")
	if err != nil {
		log.Printf("Ошибка при создании диалога %d/%d: %v", userID, req.UserID, err)
		respondError(w, http.StatusInternalServerError, "Не удалось открыть диалог.")
		return
	}

	status := http.StatusOK
	if created {
		status = http.StatusCreated
	}
	respondJSON(w, status, c.toResponse(convo, userID))
}

// Messages возвращает сообщения диалога. Доступно только участникам.
// Пример URL: GET /api/conversations/{id}/messages
func (c *ConversationController) Messages(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	convo, err := c.Store.GetConversationByID(id, userID)
	if err != nil {
		log.Printf("Ошибка при получении диалога %d: %v", id, err)
		respondError(w, http.StatusInternalServerError, "Ошибка сервера при получении диалога.")
		return
	}
	if convo == nil {
		respondError(w, http.StatusNotFound, "Диалог не найден.")
		return
	}

	messages, err := c.Store.GetMessages(id)
	if err != nil {
		log.Printf("Ошибка при получении сообщений диалога %d: %v", id, err)
		respondError(w, http.StatusInternalServerError, "Ошибка сервера при получении сообщений.")
		return
	}
	if messages == nil {
		messages = []models.Message{}
	}
	respondJSON(w, http.StatusOK, messages)
}

// SendMessage отправляет сообщение в диалог. Доступно только участникам.
// Пример URL: POST /api/conversations/{id}/messages
func (c *ConversationController) SendMessage(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	var req models.SendMessageRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Неверный формат запроса: "+err.Error())
		return
	}
	defer r.Body.Close()

	if strings.TrimSpace(req.Content) == "" {
		respondError(w, http.StatusBadRequest, "Текст сообщения не может быть пустым.")
		return
	}

	convo, err := c.Store.GetConversationByID(id, userID)
	if err != nil {
		log.Printf("Ошибка при получении диалога %d: %v", id, err)
		respondError(w, http.StatusInternalServerError, "Ошибка сервера при получении диалога.")
		return
	}
	if convo == nil {
		respondError(w, http.StatusNotFound, "Диалог не найден.")
		return
	}

	msg := &models.Message{
		ConversationID: id,
		SenderID:       userID,
		Content:        req.Content,
	}
	msgID, err := c.Store.SendMessage(msg)
	if err != nil {
		log.Printf("Ошибка при отправке сообщения в диалог %d: %v", id, err)
		respondError(w, http.StatusInternalServerError, "Не удалось отправить сообщение.")
		return
	}
	msg.ID = msgID
	respondJSON(w, http.StatusCreated, msg)
}
