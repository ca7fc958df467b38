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
	"petconnect_server_go/recurrence"
)

// ReminderController обрабатывает напоминания и их повторения.
type ReminderController struct {
	Store *data.Store

	// Now подменяется в тестах. По умолчанию time.Now.
	Now func() time.Time
}

func (c *ReminderController) now() time.Time {
	if c.Now != nil {
		return c.Now()
	}
	return time.Now()
}

func (c *ReminderController) toResponse(reminder *models.Reminder) (*models.ReminderResponse, error) {
	days, err := reminder.SelectedWeekdays()
	if err != nil {
		return nil, err
	}
	resp := &models.ReminderResponse{
		Reminder:        *reminder,
		RecurrenceLabel: recurrence.Describe(reminder.Frequency, days),
		Overdue:         !reminder.Completed && reminder.DueAt.Before(c.now()),
	}
	if len(days) > 0 {
		resp.Weekdays = make([]int, 0, len(days))
		for _, d := range days {
			resp.Weekdays = append(resp.Weekdays, int(d))
		}
	}
	return resp, nil
}

// List возвращает напоминания пользователя по возрастанию срока.
// Пример URL: GET /api/reminders
func (c *ReminderController) List(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}

	reminders, err := c.Store.GetRemindersByOwner(userID)
	if err != nil {
		log.Printf("Ошибка при получении напоминаний пользователя %d: %v", userID, err)
		respondError(w, http.StatusInternalServerError, "Ошибка сервера при получении напоминаний.")
		return
	}

	result := make([]models.ReminderResponse, 0, len(reminders))
	for i := range reminders {
		resp, err := c.toResponse(&reminders[i])
		if err != nil {
			log.Printf("Ошибка при разборе напоминания %d: %v", reminders[i].ID, err)
			respondError(w, http.StatusInternalServerError, "Ошибка сервера при разборе напоминания.")
			return
		}
		result = append(result, *resp)
	}
	respondJSON(w, http.StatusOK, result)
}

// Create добавляет напоминание. Для weekly требуется хотя бы один день недели.
// Пример URL: POST /api/reminders
func (c *ReminderController) Create(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}

	var req models.CreateReminderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Неверный формат запроса: "+err.Error())
		return
	}
	defer r.Body.Close()

	if strings.TrimSpace(req.Title) == "" {
		respondError(w, http.StatusBadRequest, "Название напоминания не может быть пустым.")
		return
	}
	if req.DueAt.IsZero() {
		respondError(w, http.StatusBadRequest, "Срок напоминания обязателен (дата и время).")
		return
	}
	if req.Frequency == "" {
		req.Frequency = models.FrequencyOnce
	}
	if !req.Frequency.IsValid() {
		respondError(w, http.StatusBadRequest, "Неизвестная частота повторения: "+string(req.Frequency))
		return
	}
	if req.Frequency == models.FrequencyWeekly && len(req.Weekdays) == 0 {
		respondError(w, http.StatusBadRequest, "Для еженедельного напоминания выберите хотя бы один день недели.")
		return
	}
	if req.Frequency != models.FrequencyWeekly && len(req.Weekdays) > 0 {
		respondError(w, http.StatusBadRequest, "Дни недели применимы только к еженедельным напоминаниям.")
		return
	}

	reminder := &models.Reminder{
		OwnerID:   userID,
		Title:     req.Title,
		Notes:     req.Notes,
		DueAt:     req.DueAt,
		Frequency: req.Frequency,
	}
	if req.Frequency == models.FrequencyWeekly {
		days := make([]time.Weekday, 0, len(req.Weekdays))
		for _, d := range req.Weekdays {
			if d < 0 || d > 6 {
				respondError(w, http.StatusBadRequest, "День недели должен быть в диапазоне 0 (воскресенье) .. 6 (суббота).")
				return
			}
			days = append(days, time.Weekday(d))
		}
		if err := reminder.SetWeekdays(days); err != nil {
			respondError(w, http.StatusBadRequest, "Не удалось сохранить дни недели: "+err.Error())
			return
		}
	}

	reminderID, err := c.Store.CreateReminder(reminder)
	if err != nil {
		log.Printf("Ошибка при создании напоминания пользователя %d: %v", userID, err)
		respondError(w, http.StatusInternalServerError, "Не удалось создать напоминание.")
		return
	}
	reminder.ID = reminderID

	resp, err := c.toResponse(reminder)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "Напоминание создано, но не удалось сформировать ответ.")
		return
	}
	respondJSON(w, http.StatusCreated, resp)
}

// Toggle переключает состояние напоминания. Завершение повторяющегося
// напоминания закрывает текущую запись и создает следующее срабатывание;
// возврат в активные — только переключение флага.
// Пример URL: POST /api/reminders/{id}/toggle
func (c *ReminderController) Toggle(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	reminder, err := c.Store.GetReminderByID(id, userID)
	if err != nil {
		log.Printf("Ошибка при получении напоминания %d: %v", id, err)
		respondError(w, http.StatusInternalServerError, "Ошибка сервера при получении напоминания.")
		return
	}
	if reminder == nil {
		respondError(w, http.StatusNotFound, "Напоминание не найдено.")
		return
	}

	if reminder.Completed {
		if err := c.Store.UncompleteReminder(id, userID); err != nil {
			if err == sql.ErrNoRows {
				// Кто-то успел вернуть его в активные раньше нас.
				respondError(w, http.StatusConflict, "Напоминание уже активно.")
				return
			}
			log.Printf("Ошибка при возврате напоминания %d в активные: %v", id, err)
			respondError(w, http.StatusInternalServerError, "Не удалось вернуть напоминание в активные.")
			return
		}
		updated, err := c.Store.GetReminderByID(id, userID)
		if err != nil || updated == nil {
			respondError(w, http.StatusInternalServerError, "Напоминание обновлено, но не удалось его перечитать.")
			return
		}
		resp, err := c.toResponse(updated)
		if err != nil {
			respondError(w, http.StatusInternalServerError, "Ошибка сервера при разборе напоминания.")
			return
		}
		respondJSON(w, http.StatusOK, map[string]interface{}{"reminder": resp})
		return
	}

	completed, next, err := c.Store.CompleteReminder(id, userID)
	if err != nil {
		switch err {
		case sql.ErrNoRows:
			respondError(w, http.StatusNotFound, "Напоминание не найдено.")
		case data.ErrAlreadyCompleted:
			respondError(w, http.StatusConflict, "Напоминание уже завершено.")
		default:
			log.Printf("Ошибка при завершении напоминания %d: %v", id, err)
			respondError(w, http.StatusInternalServerError, "Не удалось завершить напоминание.")
		}
		return
	}

	completedResp, err := c.toResponse(completed)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "Ошибка сервера при разборе напоминания.")
		return
	}
	payload := map[string]interface{}{"completed": completedResp}
	if next != nil {
		nextResp, err := c.toResponse(next)
		if err != nil {
			respondError(w, http.StatusInternalServerError, "Ошибка сервера при разборе следующего срабатывания.")
			return
		}
		payload["next"] = nextResp
	}
	respondJSON(w, http.StatusOK, payload)
}

// Delete удаляет напоминание владельца.
// Пример URL: DELETE /api/reminders/{id}
func (c *ReminderController) Delete(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	if err := c.Store.DeleteReminder(id, userID); err != nil {
		if err == sql.ErrNoRows {
			respondError(w, http.StatusNotFound, "Напоминание не найдено.")
			return
		}
		log.Printf("Ошибка при удалении напоминания %d: %v", id, err)
		respondError(w, http.StatusInternalServerError, "Не удалось удалить напоминание.")
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}
