package controllers

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"petconnect_server_go/data"
	"petconnect_server_go/middleware"
	"petconnect_server_go/models"
)

func newReminderTestServer(t *testing.T) (*mux.Router, *data.Store) {
	t.Helper()
	store, err := data.Open(":memory:", ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })

	ctrl := &ReminderController{Store: store}
	router := mux.NewRouter()
	router.HandleFunc("/api/reminders", ctrl.List).Methods(http.MethodGet)
	router.HandleFunc("/api/reminders", ctrl.Create).Methods(http.MethodPost)
	router.HandleFunc("/api/reminders/{id}/toggle", ctrl.Toggle).Methods(http.MethodPost)
	router.HandleFunc("/api/reminders/{id}", ctrl.Delete).Methods(http.MethodDelete)
	return router, store
}

func doAuthed(router *mux.Router, userID int64, method, path string, body interface{}) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		json.NewEncoder(&buf).Encode(body)
	}
	req := httptest.NewRequest(method, path, &buf)
	req = req.WithContext(middleware.ContextWithUser(req.Context(), userID, "test@example.com"))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func TestCreateWeeklyReminderRequiresWeekdays(t *testing.T) {
	router, _ := newReminderTestServer(t)

	rec := doAuthed(router, 1, http.MethodPost, "/api/reminders", models.CreateReminderRequest{
		Title:     "Flea treatment",
		DueAt:     time.Date(2025, time.June, 2, 9, 0, 0, 0, time.UTC),
		Frequency: models.FrequencyWeekly,
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestCreateReminderRejectsUnknownFrequency(t *testing.T) {
	router, _ := newReminderTestServer(t)

	rec := doAuthed(router, 1, http.MethodPost, "/api/reminders", map[string]interface{}{
		"title":     "Vet visit",
		"dueAt":     time.Date(2025, time.June, 2, 9, 0, 0, 0, time.UTC),
		"frequency": "yearly",
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestToggleDailyReminderReturnsNextOccurrence(t *testing.T) {
	router, _ := newReminderTestServer(t)

	rec := doAuthed(router, 1, http.MethodPost, "/api/reminders", models.CreateReminderRequest{
		Title:     "Morning walk",
		DueAt:     time.Date(2025, time.June, 2, 8, 30, 0, 0, time.UTC),
		Frequency: models.FrequencyDaily,
	})
	require.Equal(t, http.StatusCreated, rec.Code)

	var created models.ReminderResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &created))
	assert.Equal(t, "Repeats daily", created.RecurrenceLabel)

	rec = doAuthed(router, 1, http.MethodPost, fmt.Sprintf("/api/reminders/%d/toggle", created.ID), nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var payload struct {
		Completed models.ReminderResponse  `json:"completed"`
		Next      *models.ReminderResponse `json:"next"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &payload))
	assert.True(t, payload.Completed.Completed)
	// Закрытая запись больше не повторяется.
	assert.Equal(t, models.FrequencyOnce, payload.Completed.Frequency)
	require.NotNil(t, payload.Next)
	assert.False(t, payload.Next.Completed)
	assert.Equal(t, models.FrequencyDaily, payload.Next.Frequency)
	assert.Equal(t, time.Date(2025, time.June, 3, 8, 30, 0, 0, time.UTC), payload.Next.DueAt.UTC())

	// Повторное завершение уже закрытой записи отвергается.
	rec = doAuthed(router, 1, http.MethodPost, fmt.Sprintf("/api/reminders/%d/toggle", created.ID), nil)
	assert.Equal(t, http.StatusOK, rec.Code) // completed=true, значит toggle вернет в активные

	// В списке обе записи.
	rec = doAuthed(router, 1, http.MethodGet, "/api/reminders", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var list []models.ReminderResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &list))
	assert.Len(t, list, 2)
}

func TestToggleCompletedReminderReactivates(t *testing.T) {
	router, store := newReminderTestServer(t)

	id, err := store.CreateReminder(&models.Reminder{
		OwnerID:   1,
		Title:     "Nail trim",
		DueAt:     time.Date(2025, time.June, 2, 10, 0, 0, 0, time.UTC),
		Frequency: models.FrequencyOnce,
	})
	require.NoError(t, err)

	rec := doAuthed(router, 1, http.MethodPost, fmt.Sprintf("/api/reminders/%d/toggle", id), nil)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = doAuthed(router, 1, http.MethodPost, fmt.Sprintf("/api/reminders/%d/toggle", id), nil)
	require.Equal(t, http.StatusOK, rec.Code)

	reminder, err := store.GetReminderByID(id, 1)
	require.NoError(t, err)
	require.NotNil(t, reminder)
	assert.False(t, reminder.Completed)
}

func TestToggleReminderOwnerIsolation(t *testing.T) {
	router, store := newReminderTestServer(t)

	id, err := store.CreateReminder(&models.Reminder{
		OwnerID:   1,
		Title:     "Medication",
		DueAt:     time.Date(2025, time.June, 2, 10, 0, 0, 0, time.UTC),
		Frequency: models.FrequencyOnce,
	})
	require.NoError(t, err)

	rec := doAuthed(router, 2, http.MethodPost, fmt.Sprintf("/api/reminders/%d/toggle", id), nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = doAuthed(router, 2, http.MethodDelete, fmt.Sprintf("/api/reminders/%d", id), nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestListRemindersMarksOverdue(t *testing.T) {
	router, store := newReminderTestServer(t)

	_, err := store.CreateReminder(&models.Reminder{
		OwnerID:   1,
		Title:     "Overdue walk",
		DueAt:     time.Now().Add(-time.Hour),
		Frequency: models.FrequencyOnce,
	})
	require.NoError(t, err)
	_, err = store.CreateReminder(&models.Reminder{
		OwnerID:   1,
		Title:     "Future vet visit",
		DueAt:     time.Now().Add(24 * time.Hour),
		Frequency: models.FrequencyOnce,
	})
	require.NoError(t, err)

	rec := doAuthed(router, 1, http.MethodGet, "/api/reminders", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var list []models.ReminderResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &list))
	require.Len(t, list, 2)
	assert.True(t, list[0].Overdue)
	assert.False(t, list[1].Overdue)
}
