package models

import (
	"encoding/json"
	"fmt"
	"sort"
	"time"
)

// Frequency определяет политику повторения напоминания.
type Frequency string

const (
	FrequencyOnce    Frequency = "once"
	FrequencyDaily   Frequency = "daily"
	FrequencyWeekly  Frequency = "weekly"
	FrequencyMonthly Frequency = "monthly"
)

// IsValid проверяет, что значение частоты входит в известный набор.
func (f Frequency) IsValid() bool {
	switch f {
	case FrequencyOnce, FrequencyDaily, FrequencyWeekly, FrequencyMonthly:
		return true
	}
	return false
}

// Reminder представляет напоминание пользователя.
// DueAt — всегда полная дата-время (дата + час + минута), не просто дата.
type Reminder struct {
	ID           int64     `json:"id" db:"Id"`
	OwnerID      int64     `json:"ownerId" db:"OwnerId"`
	Title        string    `json:"title" db:"Title"`
	Notes        string    `json:"notes" db:"Notes"`
	DueAt        time.Time `json:"dueAt" db:"DueAt"`
	Completed    bool      `json:"completed" db:"Completed"`
	Frequency    Frequency `json:"frequency" db:"Frequency"`
	WeekdaysJson string    `json:"-" db:"WeekdaysJson"` // JSON-массив int (вс=0 .. сб=6), только для weekly
	CreatedAt    time.Time `json:"-" db:"CreatedAt"`
	UpdatedAt    time.Time `json:"-" db:"UpdatedAt"`
}

// SelectedWeekdays возвращает нормализованный набор дней недели для weekly-напоминания.
func (r *Reminder) SelectedWeekdays() ([]time.Weekday, error) {
	if r.WeekdaysJson == "" {
		return nil, nil
	}
	var raw []int
	if err := json.Unmarshal([]byte(r.WeekdaysJson), &raw); err != nil {
		return nil, fmt.Errorf("failed to parse WeekdaysJson %q: %w", r.WeekdaysJson, err)
	}
	days := make([]time.Weekday, 0, len(raw))
	for _, d := range raw {
		if d < 0 || d > 6 {
			return nil, fmt.Errorf("weekday %d out of range 0..6", d)
		}
		days = append(days, time.Weekday(d))
	}
	return NormalizeWeekdays(days), nil
}

// SetWeekdays сериализует набор дней недели в WeekdaysJson (нормализованно).
func (r *Reminder) SetWeekdays(days []time.Weekday) error {
	days = NormalizeWeekdays(days)
	raw := make([]int, 0, len(days))
	for _, d := range days {
		if d < 0 || d > 6 {
			return fmt.Errorf("weekday %d out of range 0..6", d)
		}
		raw = append(raw, int(d))
	}
	b, err := json.Marshal(raw)
	if err != nil {
		return fmt.Errorf("failed to marshal weekdays: %w", err)
	}
	r.WeekdaysJson = string(b)
	return nil
}

// NormalizeWeekdays убирает дубликаты и сортирует по порядку недели (вс=0 .. сб=6).
// Неупорядоченный или содержащий дубликаты набор ведет себя так же, как канонический.
func NormalizeWeekdays(days []time.Weekday) []time.Weekday {
	if len(days) == 0 {
		return nil
	}
	seen := make(map[time.Weekday]bool, len(days))
	out := make([]time.Weekday, 0, len(days))
	for _, d := range days {
		if !seen[d] {
			seen[d] = true
			out = append(out, d)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// CreateReminderRequest представляет данные формы создания напоминания.
type CreateReminderRequest struct {
	Title     string    `json:"title"`
	Notes     string    `json:"notes"`
	DueAt     time.Time `json:"dueAt"`
	Frequency Frequency `json:"frequency"`
	Weekdays  []int     `json:"weekdays,omitempty"`
}

// ReminderResponse представляет напоминание в ответе API вместе с
// отображаемой строкой повторения.
type ReminderResponse struct {
	Reminder
	Weekdays        []int  `json:"weekdays,omitempty"`
	RecurrenceLabel string `json:"recurrenceLabel,omitempty"`
	Overdue         bool   `json:"overdue"`
}
