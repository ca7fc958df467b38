package data

import (
	"database/sql"
	"fmt"
	"time"

	"petconnect_server_go/models"
)

// CreateEvent создает событие сообщества.
func (s *Store) CreateEvent(event *models.Event) (int64, error) {
	event.CreatedAt = time.Now()
	if event.AttendeesJson == "" {
		event.AttendeesJson = "[]"
	}
	query := `INSERT INTO Events (AuthorId, Title, Description, Location, PetType, Date, AttendeesJson, CreatedAt)
	          VALUES (:AuthorId, :Title, :Description, :Location, :PetType, :Date, :AttendeesJson, :CreatedAt)`
	result, err := s.Main.NamedExec(query, event)
	if err != nil {
		return 0, fmt.Errorf("CreateEvent: ошибка при вставке: %w", err)
	}
	newID, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("CreateEvent: ошибка при получении LastInsertId: %w", err)
	}
	return newID, nil
}

// GetUpcomingEvents извлекает события с датой не раньше указанной,
// ближайшие сверху.
func (s *Store) GetUpcomingEvents(from time.Time) ([]models.Event, error) {
	var events []models.Event
	query := `SELECT Id, AuthorId, Title, Description, Location, PetType, Date, AttendeesJson, CreatedAt
	          FROM Events WHERE Date >= ? ORDER BY Date ASC, Id ASC`
	if err := s.Main.Select(&events, query, from); err != nil {
		return nil, fmt.Errorf("GetUpcomingEvents: ошибка при получении событий: %w", err)
	}
	return events, nil
}

// GetEventByID извлекает событие по ID.
func (s *Store) GetEventByID(id int64) (*models.Event, error) {
	event := &models.Event{}
	query := `SELECT Id, AuthorId, Title, Description, Location, PetType, Date, AttendeesJson, CreatedAt FROM Events WHERE Id = ?`
	err := s.Main.Get(event, query, id)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("GetEventByID: ошибка при получении события ID %d: %w", id, err)
	}
	return event, nil
}

// ToggleAttendance записывает пользователя в участники события или
// убирает из них. Возвращает итоговый список участников.
func (s *Store) ToggleAttendance(eventID, userID int64) ([]int64, error) {
	tx, err := s.Main.Beginx()
	if err != nil {
		return nil, fmt.Errorf("ToggleAttendance: ошибка при открытии транзакции: %w", err)
	}
	defer tx.Rollback()

	var attendeesJson string
	if err := tx.Get(&attendeesJson, `SELECT AttendeesJson FROM Events WHERE Id = ?`, eventID); err != nil {
		if err == sql.ErrNoRows {
			return nil, sql.ErrNoRows
		}
		return nil, fmt.Errorf("ToggleAttendance: ошибка при чтении события ID %d: %w", eventID, err)
	}

	attendees, err := decodeIDSet(attendeesJson)
	if err != nil {
		return nil, err
	}
	attendees = toggleID(attendees, userID)

	encoded, err := encodeIDSet(attendees)
	if err != nil {
		return nil, err
	}
	if _, err := tx.Exec(`UPDATE Events SET AttendeesJson = ? WHERE Id = ?`, encoded, eventID); err != nil {
		return nil, fmt.Errorf("ToggleAttendance: ошибка при обновлении события ID %d: %w", eventID, err)
	}
	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("ToggleAttendance: ошибка при коммите: %w", err)
	}
	return attendees, nil
}
