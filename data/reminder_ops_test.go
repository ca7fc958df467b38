package data

import (
	"database/sql"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"petconnect_server_go/models"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := Open(":memory:", ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })
	return store
}

func TestCompleteOnceReminder(t *testing.T) {
	store := newTestStore(t)

	due := time.Date(2025, time.March, 10, 9, 0, 0, 0, time.UTC)
	id, err := store.CreateReminder(&models.Reminder{
		OwnerID:   1,
		Title:     "Vet appointment",
		DueAt:     due,
		Frequency: models.FrequencyOnce,
	})
	require.NoError(t, err)

	updated, next, err := store.CompleteReminder(id, 1)
	require.NoError(t, err)
	assert.True(t, updated.Completed)
	assert.Equal(t, models.FrequencyOnce, updated.Frequency)
	assert.Nil(t, next)

	reminders, err := store.GetRemindersByOwner(1)
	require.NoError(t, err)
	assert.Len(t, reminders, 1)
}

func TestCompleteDailyReminderSpawnsNext(t *testing.T) {
	store := newTestStore(t)

	due := time.Date(2025, time.March, 10, 9, 0, 0, 0, time.UTC)
	id, err := store.CreateReminder(&models.Reminder{
		OwnerID:   1,
		Title:     "Morning walk",
		Notes:     "Around the park",
		DueAt:     due,
		Frequency: models.FrequencyDaily,
	})
	require.NoError(t, err)

	updated, next, err := store.CompleteReminder(id, 1)
	require.NoError(t, err)

	assert.True(t, updated.Completed)
	assert.Equal(t, models.FrequencyOnce, updated.Frequency)

	require.NotNil(t, next)
	assert.NotZero(t, next.ID)
	assert.NotEqual(t, id, next.ID)
	assert.Equal(t, models.FrequencyDaily, next.Frequency)
	assert.False(t, next.Completed)
	assert.Equal(t, due.AddDate(0, 0, 1), next.DueAt.UTC())
	assert.Equal(t, "Morning walk", next.Title)
	assert.Equal(t, "Around the park", next.Notes)

	reminders, err := store.GetRemindersByOwner(1)
	require.NoError(t, err)
	assert.Len(t, reminders, 2)
}

func TestCompleteWeeklyReminderPersistsWeekdays(t *testing.T) {
	store := newTestStore(t)

	// Понедельник; выбраны пн/ср/пт.
	due := time.Date(2025, time.March, 10, 14, 0, 0, 0, time.UTC)
	r := &models.Reminder{OwnerID: 1, Title: "Flea meds", DueAt: due, Frequency: models.FrequencyWeekly}
	require.NoError(t, r.SetWeekdays([]time.Weekday{time.Monday, time.Wednesday, time.Friday}))

	id, err := store.CreateReminder(r)
	require.NoError(t, err)

	_, next, err := store.CompleteReminder(id, 1)
	require.NoError(t, err)
	require.NotNil(t, next)

	assert.Equal(t, time.Wednesday, next.DueAt.UTC().Weekday())
	days, err := next.SelectedWeekdays()
	require.NoError(t, err)
	assert.Equal(t, []time.Weekday{time.Monday, time.Wednesday, time.Friday}, days)
}

func TestDoubleCompletionRejected(t *testing.T) {
	store := newTestStore(t)

	id, err := store.CreateReminder(&models.Reminder{
		OwnerID:   1,
		Title:     "Brush teeth",
		DueAt:     time.Date(2025, time.March, 10, 9, 0, 0, 0, time.UTC),
		Frequency: models.FrequencyDaily,
	})
	require.NoError(t, err)

	_, _, err = store.CompleteReminder(id, 1)
	require.NoError(t, err)

	// Повторное завершение отвергается и не создает дубликата.
	_, _, err = store.CompleteReminder(id, 1)
	assert.ErrorIs(t, err, ErrAlreadyCompleted)

	reminders, err := store.GetRemindersByOwner(1)
	require.NoError(t, err)
	assert.Len(t, reminders, 2)
}

func TestUncompleteReminder(t *testing.T) {
	store := newTestStore(t)

	id, err := store.CreateReminder(&models.Reminder{
		OwnerID:   1,
		Title:     "Vet appointment",
		DueAt:     time.Date(2025, time.March, 10, 9, 0, 0, 0, time.UTC),
		Frequency: models.FrequencyOnce,
	})
	require.NoError(t, err)

	_, _, err = store.CompleteReminder(id, 1)
	require.NoError(t, err)

	require.NoError(t, store.UncompleteReminder(id, 1))

	reminder, err := store.GetReminderByID(id, 1)
	require.NoError(t, err)
	assert.False(t, reminder.Completed)

	// Активное напоминание назад не переключается.
	assert.ErrorIs(t, store.UncompleteReminder(id, 1), sql.ErrNoRows)
}

func TestReminderOwnerIsolation(t *testing.T) {
	store := newTestStore(t)

	id, err := store.CreateReminder(&models.Reminder{
		OwnerID:   1,
		Title:     "Private reminder",
		DueAt:     time.Now(),
		Frequency: models.FrequencyOnce,
	})
	require.NoError(t, err)

	// Чужое напоминание не читается, не завершается и не удаляется.
	reminder, err := store.GetReminderByID(id, 2)
	require.NoError(t, err)
	assert.Nil(t, reminder)

	_, _, err = store.CompleteReminder(id, 2)
	assert.ErrorIs(t, err, sql.ErrNoRows)

	assert.ErrorIs(t, store.DeleteReminder(id, 2), sql.ErrNoRows)
}

func TestDeleteReminder(t *testing.T) {
	store := newTestStore(t)

	id, err := store.CreateReminder(&models.Reminder{
		OwnerID:   1,
		Title:     "To be removed",
		DueAt:     time.Now(),
		Frequency: models.FrequencyOnce,
	})
	require.NoError(t, err)

	require.NoError(t, store.DeleteReminder(id, 1))

	reminders, err := store.GetRemindersByOwner(1)
	require.NoError(t, err)
	assert.Empty(t, reminders)
}
