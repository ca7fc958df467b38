// Package recurrence реализует чистое вычисление следующего срабатывания
// повторяющегося напоминания. Никакого I/O: вызывающая сторона сама
// сохраняет обе части результата (см. data.CompleteReminder).
package recurrence

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"petconnect_server_go/models"
)

// ErrNoWeekdays возвращается для weekly-напоминания без выбранных дней недели.
// Это ошибка входных данных: форма создания обязана была ее не пропустить,
// здесь только защитная проверка.
var ErrNoWeekdays = errors.New("weekly recurrence requires at least one selected weekday")

// weekdayAbbrev — сокращения дней недели в порядке политики (вс=0 .. сб=6).
var weekdayAbbrev = [7]string{"Su", "Mo", "Tu", "We", "Th", "Fr", "Sa"}

// CompletionResult — результат завершения напоминания.
// UpdatedCurrent — текущая запись с Completed=true; если политика была
// повторяющейся, она понижена до once (закрытая историческая запись).
// Next — новая запись со следующим сроком, либо nil для once.
type CompletionResult struct {
	UpdatedCurrent models.Reminder
	Next           *models.Reminder
}

// ComputeCompletion вычисляет мутацию завершения напоминания.
// Политика исходной записи переносится в новую без изменений, у исходной
// DueAt не трогается — она лишь помечается выполненной.
func ComputeCompletion(r models.Reminder) (CompletionResult, error) {
	days, err := r.SelectedWeekdays()
	if err != nil {
		return CompletionResult{}, err
	}
	if r.Frequency == models.FrequencyWeekly && len(days) == 0 {
		return CompletionResult{}, ErrNoWeekdays
	}

	updated := r
	updated.Completed = true

	if r.Frequency == models.FrequencyOnce || r.Frequency == "" {
		return CompletionResult{UpdatedCurrent: updated}, nil
	}

	updated.Frequency = models.FrequencyOnce

	nextDue, err := NextOccurrence(r.DueAt, r.Frequency, days)
	if err != nil {
		return CompletionResult{}, err
	}

	next := models.Reminder{
		OwnerID:      r.OwnerID,
		Title:        r.Title,
		Notes:        r.Notes,
		DueAt:        nextDue,
		Completed:    false,
		Frequency:    r.Frequency,
		WeekdaysJson: r.WeekdaysJson,
	}
	return CompletionResult{UpdatedCurrent: updated, Next: &next}, nil
}

// NextOccurrence вычисляет следующий срок по политике повторения.
// Время суток сохраняется во всех ветках. Шаг всегда один: следующий срок
// выводится из срока завершенной записи, а не из "сейчас", поэтому при
// позднем завершении он может оказаться в прошлом.
func NextOccurrence(dueAt time.Time, freq models.Frequency, days []time.Weekday) (time.Time, error) {
	switch freq {
	case models.FrequencyDaily:
		// Календарные сутки, не 86400 секунд: переход через DST сохраняет час.
		return dueAt.AddDate(0, 0, 1), nil
	case models.FrequencyWeekly:
		return nextWeekly(dueAt, days)
	case models.FrequencyMonthly:
		return nextMonthly(dueAt), nil
	}
	return time.Time{}, fmt.Errorf("frequency %q has no next occurrence", freq)
}

// nextWeekly ищет наименьший выбранный день строго после текущего дня недели.
// Если таких не осталось, берется наименьший выбранный день следующей недели.
func nextWeekly(dueAt time.Time, days []time.Weekday) (time.Time, error) {
	days = models.NormalizeWeekdays(days)
	if len(days) == 0 {
		return time.Time{}, ErrNoWeekdays
	}
	cur := dueAt.Weekday()
	for _, d := range days {
		if d > cur {
			return dueAt.AddDate(0, 0, int(d-cur)), nil
		}
	}
	delta := 7 - int(cur) + int(days[0])
	return dueAt.AddDate(0, 0, delta), nil
}

// nextMonthly сдвигает срок на один календарный месяц с сохранением числа.
// Если в целевом месяце меньше дней, число прижимается к последнему дню
// (31 января -> 28/29 февраля); AddDate здесь не годится, он "перелил" бы
// дату в март.
func nextMonthly(dueAt time.Time) time.Time {
	year, month, day := dueAt.Date()
	firstOfNext := time.Date(year, month+1, 1, 0, 0, 0, 0, dueAt.Location())
	ny, nm, _ := firstOfNext.Date()
	if last := daysInMonth(ny, nm); day > last {
		day = last
	}
	hh, mm, ss := dueAt.Clock()
	return time.Date(ny, nm, day, hh, mm, ss, dueAt.Nanosecond(), dueAt.Location())
}

func daysInMonth(year int, month time.Month) int {
	// День 0 следующего месяца — последний день этого.
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

// Describe возвращает отображаемую строку политики повторения.
// Для once метки нет.
func Describe(freq models.Frequency, days []time.Weekday) string {
	switch freq {
	case models.FrequencyDaily:
		return "Repeats daily"
	case models.FrequencyMonthly:
		return "Repeats monthly"
	case models.FrequencyWeekly:
		days = models.NormalizeWeekdays(days)
		if len(days) == 0 {
			return "Repeats weekly"
		}
		abbrevs := make([]string, 0, len(days))
		for _, d := range days {
			abbrevs = append(abbrevs, weekdayAbbrev[d])
		}
		return "Repeats weekly on " + strings.Join(abbrevs, ", ")
	}
	return ""
}
