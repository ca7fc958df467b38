package recurrence

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"petconnect_server_go/models"
)

func mustWeekdays(t *testing.T, r *models.Reminder, days ...time.Weekday) {
	t.Helper()
	require.NoError(t, r.SetWeekdays(days))
}

func TestComputeCompletionOnce(t *testing.T) {
	r := models.Reminder{
		ID:        7,
		OwnerID:   1,
		Title:     "Give flea medication",
		DueAt:     time.Date(2025, time.March, 10, 9, 0, 0, 0, time.UTC),
		Frequency: models.FrequencyOnce,
	}

	res, err := ComputeCompletion(r)
	require.NoError(t, err)

	assert.True(t, res.UpdatedCurrent.Completed)
	assert.Equal(t, models.FrequencyOnce, res.UpdatedCurrent.Frequency)
	assert.Equal(t, r.DueAt, res.UpdatedCurrent.DueAt)
	assert.Nil(t, res.Next)
}

func TestComputeCompletionDaily(t *testing.T) {
	due := time.Date(2025, time.March, 10, 9, 0, 0, 0, time.UTC)
	r := models.Reminder{OwnerID: 1, Title: "Morning walk", Notes: "Before breakfast", DueAt: due, Frequency: models.FrequencyDaily}

	res, err := ComputeCompletion(r)
	require.NoError(t, err)

	assert.True(t, res.UpdatedCurrent.Completed)
	// Закрытая запись становится once, новая несет исходную политику.
	assert.Equal(t, models.FrequencyOnce, res.UpdatedCurrent.Frequency)
	require.NotNil(t, res.Next)
	assert.Equal(t, models.FrequencyDaily, res.Next.Frequency)
	assert.Equal(t, due.AddDate(0, 0, 1), res.Next.DueAt)
	assert.Equal(t, r.Title, res.Next.Title)
	assert.Equal(t, r.Notes, res.Next.Notes)
	assert.Equal(t, r.OwnerID, res.Next.OwnerID)
	assert.False(t, res.Next.Completed)
	assert.Zero(t, res.Next.ID)
}

func TestComputeCompletionDailyPreservesTimeAcrossDST(t *testing.T) {
	loc, err := time.LoadLocation("America/New_York")
	require.NoError(t, err)

	// 8 марта 2025, за день до перехода на летнее время.
	due := time.Date(2025, time.March, 8, 9, 30, 0, 0, loc)
	next, err := NextOccurrence(due, models.FrequencyDaily, nil)
	require.NoError(t, err)

	assert.Equal(t, 9, next.Hour())
	assert.Equal(t, 30, next.Minute())
	assert.Equal(t, 9, next.Day())
}

func TestNextWeeklySameWeek(t *testing.T) {
	// Понедельник 10 марта 2025, выбраны пн/ср/пт: следующий — среда той же недели.
	due := time.Date(2025, time.March, 10, 14, 0, 0, 0, time.UTC)
	require.Equal(t, time.Monday, due.Weekday())

	next, err := NextOccurrence(due, models.FrequencyWeekly, []time.Weekday{time.Monday, time.Wednesday, time.Friday})
	require.NoError(t, err)

	assert.Equal(t, time.Wednesday, next.Weekday())
	assert.Equal(t, time.Date(2025, time.March, 12, 14, 0, 0, 0, time.UTC), next)
}

func TestNextWeeklyWrapsToNextWeek(t *testing.T) {
	// Пятница 14 марта 2025, выбраны пн/ср/пт: следующий — понедельник следующей недели.
	due := time.Date(2025, time.March, 14, 14, 0, 0, 0, time.UTC)
	require.Equal(t, time.Friday, due.Weekday())

	next, err := NextOccurrence(due, models.FrequencyWeekly, []time.Weekday{time.Monday, time.Wednesday, time.Friday})
	require.NoError(t, err)

	assert.Equal(t, time.Date(2025, time.March, 17, 14, 0, 0, 0, time.UTC), next)
}

func TestNextWeeklySingleDayAdvancesFullWeek(t *testing.T) {
	due := time.Date(2025, time.March, 11, 8, 15, 0, 0, time.UTC) // вторник
	next, err := NextOccurrence(due, models.FrequencyWeekly, []time.Weekday{time.Tuesday})
	require.NoError(t, err)
	assert.Equal(t, due.AddDate(0, 0, 7), next)
}

func TestNextWeeklyUnsortedDuplicateDaysEquivalent(t *testing.T) {
	due := time.Date(2025, time.March, 10, 14, 0, 0, 0, time.UTC)
	canonical, err := NextOccurrence(due, models.FrequencyWeekly, []time.Weekday{time.Monday, time.Wednesday, time.Friday})
	require.NoError(t, err)
	messy, err := NextOccurrence(due, models.FrequencyWeekly, []time.Weekday{time.Friday, time.Monday, time.Wednesday, time.Friday, time.Monday})
	require.NoError(t, err)
	assert.Equal(t, canonical, messy)
}

func TestComputeCompletionWeeklyWithoutDaysFails(t *testing.T) {
	r := models.Reminder{OwnerID: 1, Title: "Trim nails", DueAt: time.Now(), Frequency: models.FrequencyWeekly}
	_, err := ComputeCompletion(r)
	assert.ErrorIs(t, err, ErrNoWeekdays)
}

func TestNextMonthlyClampsToEndOfFebruary(t *testing.T) {
	due := time.Date(2025, time.January, 31, 10, 0, 0, 0, time.UTC)
	next, err := NextOccurrence(due, models.FrequencyMonthly, nil)
	require.NoError(t, err)
	assert.Equal(t, time.Date(2025, time.February, 28, 10, 0, 0, 0, time.UTC), next)
}

func TestNextMonthlyClampsToLeapFebruary(t *testing.T) {
	due := time.Date(2024, time.January, 31, 10, 0, 0, 0, time.UTC)
	next, err := NextOccurrence(due, models.FrequencyMonthly, nil)
	require.NoError(t, err)
	assert.Equal(t, time.Date(2024, time.February, 29, 10, 0, 0, 0, time.UTC), next)
}

func TestNextMonthlyKeepsDayOfMonth(t *testing.T) {
	due := time.Date(2025, time.April, 15, 18, 45, 0, 0, time.UTC)
	next, err := NextOccurrence(due, models.FrequencyMonthly, nil)
	require.NoError(t, err)
	assert.Equal(t, time.Date(2025, time.May, 15, 18, 45, 0, 0, time.UTC), next)
}

func TestNextMonthlyDecemberWrapsYear(t *testing.T) {
	due := time.Date(2025, time.December, 31, 10, 0, 0, 0, time.UTC)
	next, err := NextOccurrence(due, models.FrequencyMonthly, nil)
	require.NoError(t, err)
	assert.Equal(t, time.Date(2026, time.January, 31, 10, 0, 0, 0, time.UTC), next)
}

func TestCompletionIsIdempotentOnClosedRecord(t *testing.T) {
	due := time.Date(2025, time.March, 10, 9, 0, 0, 0, time.UTC)
	r := models.Reminder{OwnerID: 1, Title: "Brush teeth", DueAt: due, Frequency: models.FrequencyDaily}

	first, err := ComputeCompletion(r)
	require.NoError(t, err)
	require.NotNil(t, first.Next)

	// Повторное завершение закрытой записи не порождает новых напоминаний.
	second, err := ComputeCompletion(first.UpdatedCurrent)
	require.NoError(t, err)
	assert.Nil(t, second.Next)
	assert.True(t, second.UpdatedCurrent.Completed)
}

func TestDescribe(t *testing.T) {
	assert.Equal(t, "", Describe(models.FrequencyOnce, nil))
	assert.Equal(t, "Repeats daily", Describe(models.FrequencyDaily, nil))
	assert.Equal(t, "Repeats monthly", Describe(models.FrequencyMonthly, nil))
	assert.Equal(t, "Repeats weekly on Mo, We",
		Describe(models.FrequencyWeekly, []time.Weekday{time.Wednesday, time.Monday}))
	assert.Equal(t, "Repeats weekly on Su, Mo, Tu, We, Th, Fr, Sa",
		Describe(models.FrequencyWeekly, []time.Weekday{
			time.Saturday, time.Friday, time.Thursday, time.Wednesday,
			time.Tuesday, time.Monday, time.Sunday,
		}))
}

func TestSelectedWeekdaysRoundTrip(t *testing.T) {
	var r models.Reminder
	mustWeekdays(t, &r, time.Friday, time.Monday, time.Monday)

	days, err := r.SelectedWeekdays()
	require.NoError(t, err)
	assert.Equal(t, []time.Weekday{time.Monday, time.Friday}, days)
}
