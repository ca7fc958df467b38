package controllers

import (
	"database/sql"
	"encoding/json"
	"log"
	"net/http"
	"strings"
	"time"

	"petconnect_server_go/data"
	"petconnect_server_go/models"
)

// EventController обрабатывает события сообщества.
type EventController struct {
	Store *data.Store
}

func eventToResponse(event *models.Event, viewerID int64) models.EventResponse {
	attendees := decodeIDs(event.AttendeesJson)
	return models.EventResponse{
		Event:     *event,
		Attendees: attendees,
		Attending: containsID(attendees, viewerID),
	}
}

// List возвращает предстоящие события по дате.
// Пример URL: GET /api/events
func (c *EventController) List(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}

	events, err := c.Store.GetUpcomingEvents(time.Now())
	if err != nil {
		log.Printf("Ошибка при получении событий: %v", err)
		respondError(w, http.StatusInternalServerError, "Ошибка сервера при получении событий.")
		return
	}

	result := make([]models.EventResponse, 0, len(events))
	for i := range events {
		result = append(result, eventToResponse(&events[i], userID))
	}
	respondJSON(w, http.StatusOK, result)
}

// Create добавляет событие сообщества.
// Пример URL: POST /api/events
func (c *EventController) Create(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}

	var req models.CreateEventRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Неверный формат запроса: "+err.Error())
		return
	}
	defer r.Body.Close()

	if strings.TrimSpace(req.Title) == "" || strings.TrimSpace(req.Location) == "" {
		respondError(w, http.StatusBadRequest, "Название и место события не могут быть пустыми.")
		return
	}
	if req.Date.IsZero() {
		respondError(w, http.StatusBadRequest, "Дата события обязательна.")
		return
	}

	event := &models.Event{
		AuthorID:    userID,
		Title:       req.Title,
		Description: req.Description,
		Location:    req.Location,
		PetType:     req.PetType,
		Date:        req.Date,
	}
	eventID, err := c.Store.CreateEvent(event)
	if err != nil {
		log.Printf("Ошибка при создании события пользователя %d: %v", userID, err)
		respondError(w, http.StatusInternalServerError, "Не удалось создать событие.")
		return
	}
	event.ID = eventID
	respondJSON(w, http.StatusCreated, eventToResponse(event, userID))
}

// ToggleAttendance переключает участие текущего пользователя в событии.
// Пример URL: POST /api/events/{id}/attend
func (c *EventController) ToggleAttendance(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	attendees, err := c.Store.ToggleAttendance(id, userID)
	if err != nil {
		if err == sql.ErrNoRows {
			respondError(w, http.StatusNotFound, "Событие не найдено.")
			return
		}
		log.Printf("Ошибка при переключении участия в событии %d: %v", id, err)
		respondError(w, http.StatusInternalServerError, "Не удалось обновить участие.")
		return
	}
	respondJSON(w, http.StatusOK, map[string]interface{}{
		"attendees": attendees,
		"attending": containsID(attendees, userID),
	})
}
