package data

import (
	"database/sql"
	"errors"
	"fmt"
	"log"
	"time"

	"petconnect_server_go/models"
	"petconnect_server_go/recurrence"
)

// ErrAlreadyCompleted возвращается, когда завершаемое напоминание уже
// помечено выполненным другой сессией. Дубликат следующего срабатывания
// при этом не создается.
var ErrAlreadyCompleted = errors.New("reminder is already completed")

const reminderColumns = `Id, OwnerId, Title, Notes, DueAt, Completed, Frequency, WeekdaysJson, CreatedAt, UpdatedAt`

// CreateReminder создает напоминание. Поле reminder.OwnerID должно быть
// установлено.
func (s *Store) CreateReminder(reminder *models.Reminder) (int64, error) {
	now := time.Now()
	reminder.CreatedAt = now
	reminder.UpdatedAt = now
	if reminder.Frequency == "" {
		reminder.Frequency = models.FrequencyOnce
	}

	query := `INSERT INTO Reminders (OwnerId, Title, Notes, DueAt, Completed, Frequency, WeekdaysJson, CreatedAt, UpdatedAt)
	          VALUES (:OwnerId, :Title, :Notes, :DueAt, :Completed, :Frequency, :WeekdaysJson, :CreatedAt, :UpdatedAt)`
	result, err := s.Main.NamedExec(query, reminder)
	if err != nil {
		return 0, fmt.Errorf("CreateReminder: ошибка при вставке: %w", err)
	}
	newID, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("CreateReminder: ошибка при получении LastInsertId: %w", err)
	}
	log.Printf("Создано напоминание с ID: %d для пользователя %d", newID, reminder.OwnerID)
	return newID, nil
}

// GetReminderByID извлекает напоминание владельца.
func (s *Store) GetReminderByID(id, ownerID int64) (*models.Reminder, error) {
	reminder := &models.Reminder{}
	query := `SELECT ` + reminderColumns + ` FROM Reminders WHERE Id = ? AND OwnerId = ?`
	err := s.Main.Get(reminder, query, id, ownerID)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("GetReminderByID: ошибка при получении напоминания ID %d: %w", id, err)
	}
	return reminder, nil
}

// GetRemindersByOwner извлекает напоминания пользователя по сроку.
func (s *Store) GetRemindersByOwner(ownerID int64) ([]models.Reminder, error) {
	var reminders []models.Reminder
	query := `SELECT ` + reminderColumns + ` FROM Reminders WHERE OwnerId = ? ORDER BY DueAt ASC, Id ASC`
	if err := s.Main.Select(&reminders, query, ownerID); err != nil {
		return nil, fmt.Errorf("GetRemindersByOwner: ошибка при получении напоминаний пользователя %d: %w", ownerID, err)
	}
	return reminders, nil
}

// CompleteReminder завершает напоминание через движок повторений: текущая
// запись закрывается (Completed=1, политика понижается до once), следующее
// срабатывание, если оно есть, вставляется новой записью. Обе мутации идут
// в одной транзакции; UPDATE защищен предикатом Completed = 0, так что
// одновременное двойное завершение отвергается, а не плодит дубликаты.
// Возвращает закрытую запись и созданную следующую (nil для once).
func (s *Store) CompleteReminder(id, ownerID int64) (*models.Reminder, *models.Reminder, error) {
	tx, err := s.Main.Beginx()
	if err != nil {
		return nil, nil, fmt.Errorf("CompleteReminder: ошибка при открытии транзакции: %w", err)
	}
	defer tx.Rollback()

	current := &models.Reminder{}
	query := `SELECT ` + reminderColumns + ` FROM Reminders WHERE Id = ? AND OwnerId = ?`
	if err := tx.Get(current, query, id, ownerID); err != nil {
		if err == sql.ErrNoRows {
			return nil, nil, sql.ErrNoRows
		}
		return nil, nil, fmt.Errorf("CompleteReminder: ошибка при чтении напоминания ID %d: %w", id, err)
	}
	if current.Completed {
		return nil, nil, ErrAlreadyCompleted
	}

	res, err := recurrence.ComputeCompletion(*current)
	if err != nil {
		return nil, nil, err
	}

	now := time.Now()
	// Сначала закрывается текущая запись: при сбое между записями теряется
	// будущее срабатывание, а не появляется дубликат.
	result, err := tx.Exec(`UPDATE Reminders SET Completed = 1, Frequency = ?, UpdatedAt = ? WHERE Id = ? AND Completed = 0`,
		res.UpdatedCurrent.Frequency, now, id)
	if err != nil {
		return nil, nil, fmt.Errorf("CompleteReminder: ошибка при закрытии напоминания ID %d: %w", id, err)
	}
	rowsAffected, _ := result.RowsAffected()
	if rowsAffected == 0 {
		return nil, nil, ErrAlreadyCompleted
	}
	res.UpdatedCurrent.UpdatedAt = now

	if res.Next != nil {
		res.Next.CreatedAt = now
		res.Next.UpdatedAt = now
		insert, err := tx.NamedExec(`INSERT INTO Reminders (OwnerId, Title, Notes, DueAt, Completed, Frequency, WeekdaysJson, CreatedAt, UpdatedAt)
	          VALUES (:OwnerId, :Title, :Notes, :DueAt, :Completed, :Frequency, :WeekdaysJson, :CreatedAt, :UpdatedAt)`, res.Next)
		if err != nil {
			return nil, nil, fmt.Errorf("CompleteReminder: ошибка при вставке следующего срабатывания: %w", err)
		}
		res.Next.ID, err = insert.LastInsertId()
		if err != nil {
			return nil, nil, fmt.Errorf("CompleteReminder: ошибка при получении LastInsertId: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return nil, nil, fmt.Errorf("CompleteReminder: ошибка при коммите: %w", err)
	}
	log.Printf("Завершено напоминание ID: %d (следующее: %v)", id, res.Next != nil)
	return &res.UpdatedCurrent, res.Next, nil
}

// UncompleteReminder возвращает выполненное напоминание в активные.
// Только переключение флага: ни новой записи, ни смены политики.
func (s *Store) UncompleteReminder(id, ownerID int64) error {
	result, err := s.Main.Exec(`UPDATE Reminders SET Completed = 0, UpdatedAt = ? WHERE Id = ? AND OwnerId = ? AND Completed = 1`,
		time.Now(), id, ownerID)
	if err != nil {
		return fmt.Errorf("UncompleteReminder: ошибка при обновлении напоминания ID %d: %w", id, err)
	}
	rowsAffected, _ := result.RowsAffected()
	if rowsAffected == 0 {
		return sql.ErrNoRows
	}
	return nil
}

// DeleteReminder удаляет напоминание владельца.
func (s *Store) DeleteReminder(id, ownerID int64) error {
	result, err := s.Main.Exec(`DELETE FROM Reminders WHERE Id = ? AND OwnerId = ?`, id, ownerID)
	if err != nil {
		return fmt.Errorf("DeleteReminder: ошибка при удалении напоминания ID %d: %w", id, err)
	}
	rowsAffected, _ := result.RowsAffected()
	if rowsAffected == 0 {
		return sql.ErrNoRows
	}
	log.Printf("Удалено напоминание с ID: %d", id)
	return nil
}
