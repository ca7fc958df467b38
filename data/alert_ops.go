package data

import (
	"database/sql"
	"fmt"
	"log"
	"time"

	"petconnect_server_go/models"
)

// CreateLostPetAlert создает оповещение о пропавшем питомце.
func (s *Store) CreateLostPetAlert(alert *models.LostPetAlert) (int64, error) {
	alert.CreatedAt = time.Now()
	if alert.Status == "" {
		alert.Status = models.AlertStatusActive
	}
	query := `INSERT INTO LostPetAlerts (PetId, OwnerId, PetName, PetImageUrl, LastSeenLocation, Status, CreatedAt)
	          VALUES (:PetId, :OwnerId, :PetName, :PetImageUrl, :LastSeenLocation, :Status, :CreatedAt)`
	result, err := s.Main.NamedExec(query, alert)
	if err != nil {
		return 0, fmt.Errorf("CreateLostPetAlert: ошибка при вставке: %w", err)
	}
	newID, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("CreateLostPetAlert: ошибка при получении LastInsertId: %w", err)
	}
	log.Printf("Создано оповещение о пропаже с ID: %d (питомец %q)", newID, alert.PetName)
	return newID, nil
}

// GetActiveAlerts извлекает активные оповещения, новые сверху.
func (s *Store) GetActiveAlerts() ([]models.LostPetAlert, error) {
	var alerts []models.LostPetAlert
	query := `SELECT Id, PetId, OwnerId, PetName, PetImageUrl, LastSeenLocation, Status, CreatedAt
	          FROM LostPetAlerts WHERE Status = ? ORDER BY CreatedAt DESC, Id DESC`
	if err := s.Main.Select(&alerts, query, models.AlertStatusActive); err != nil {
		return nil, fmt.Errorf("GetActiveAlerts: ошибка при получении оповещений: %w", err)
	}
	return alerts, nil
}

// GetAlertByID извлекает оповещение по ID.
func (s *Store) GetAlertByID(id int64) (*models.LostPetAlert, error) {
	alert := &models.LostPetAlert{}
	query := `SELECT Id, PetId, OwnerId, PetName, PetImageUrl, LastSeenLocation, Status, CreatedAt FROM LostPetAlerts WHERE Id = ?`
	err := s.Main.Get(alert, query, id)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("GetAlertByID: ошибка при получении оповещения ID %d: %w", id, err)
	}
	return alert, nil
}

// ResolveAlert помечает оповещение найденным. Только владелец.
func (s *Store) ResolveAlert(id, ownerID int64) error {
	result, err := s.Main.Exec(`UPDATE LostPetAlerts SET Status = ? WHERE Id = ? AND OwnerId = ?`,
		models.AlertStatusResolved, id, ownerID)
	if err != nil {
		return fmt.Errorf("ResolveAlert: ошибка при обновлении оповещения ID %d: %w", id, err)
	}
	rowsAffected, _ := result.RowsAffected()
	if rowsAffected == 0 {
		return sql.ErrNoRows
	}
	return nil
}
