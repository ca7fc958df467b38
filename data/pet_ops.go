package data

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"log"
	"time"

	"petconnect_server_go/models"
)

// CreatePet создает питомца. Поле pet.OwnerID должно быть установлено.
func (s *Store) CreatePet(pet *models.Pet) (int64, error) {
	now := time.Now()
	pet.CreatedAt = now
	pet.UpdatedAt = now
	if pet.VaccinationsJson == "" {
		pet.VaccinationsJson = "[]"
	}
	if pet.MedicalNotesJson == "" {
		pet.MedicalNotesJson = "[]"
	}

	query := `INSERT INTO Pets (OwnerId, Name, Breed, Age, Bio, ImageUrl, VaccinationsJson, MedicalNotesJson, CreatedAt, UpdatedAt)
	          VALUES (:OwnerId, :Name, :Breed, :Age, :Bio, :ImageUrl, :VaccinationsJson, :MedicalNotesJson, :CreatedAt, :UpdatedAt)`
	result, err := s.Main.NamedExec(query, pet)
	if err != nil {
		return 0, fmt.Errorf("CreatePet: ошибка при вставке: %w", err)
	}
	newID, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("CreatePet: ошибка при получении LastInsertId: %w", err)
	}
	log.Printf("Создан питомец с ID: %d для пользователя %d", newID, pet.OwnerID)
	return newID, nil
}

// GetPetByID извлекает питомца по ID.
func (s *Store) GetPetByID(id int64) (*models.Pet, error) {
	pet := &models.Pet{}
	query := `SELECT Id, OwnerId, Name, Breed, Age, Bio, ImageUrl, VaccinationsJson, MedicalNotesJson, CreatedAt, UpdatedAt
	          FROM Pets WHERE Id = ?`
	err := s.Main.Get(pet, query, id)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("GetPetByID: ошибка при получении питомца ID %d: %w", id, err)
	}
	return pet, nil
}

// GetPetsByOwner извлекает всех питомцев пользователя.
func (s *Store) GetPetsByOwner(ownerID int64) ([]models.Pet, error) {
	var pets []models.Pet
	query := `SELECT Id, OwnerId, Name, Breed, Age, Bio, ImageUrl, VaccinationsJson, MedicalNotesJson, CreatedAt, UpdatedAt
	          FROM Pets WHERE OwnerId = ? ORDER BY Id ASC`
	if err := s.Main.Select(&pets, query, ownerID); err != nil {
		return nil, fmt.Errorf("GetPetsByOwner: ошибка при получении питомцев пользователя %d: %w", ownerID, err)
	}
	return pets, nil
}

// UpdatePet обновляет описательные поля питомца. Владелец проверяется в запросе.
func (s *Store) UpdatePet(pet *models.Pet) error {
	pet.UpdatedAt = time.Now()
	query := `UPDATE Pets SET Name = :Name, Breed = :Breed, Age = :Age, Bio = :Bio, ImageUrl = :ImageUrl, UpdatedAt = :UpdatedAt
	          WHERE Id = :Id AND OwnerId = :OwnerId`
	result, err := s.Main.NamedExec(query, pet)
	if err != nil {
		return fmt.Errorf("UpdatePet: ошибка при обновлении питомца ID %d: %w", pet.ID, err)
	}
	rowsAffected, _ := result.RowsAffected()
	if rowsAffected == 0 {
		return sql.ErrNoRows
	}
	return nil
}

// DeletePet удаляет питомца владельца.
func (s *Store) DeletePet(id, ownerID int64) error {
	result, err := s.Main.Exec(`DELETE FROM Pets WHERE Id = ? AND OwnerId = ?`, id, ownerID)
	if err != nil {
		return fmt.Errorf("DeletePet: ошибка при удалении питомца ID %d: %w", id, err)
	}
	rowsAffected, _ := result.RowsAffected()
	if rowsAffected == 0 {
		return sql.ErrNoRows
	}
	return nil
}

// AddVaccination добавляет запись о прививке в медкарту питомца.
func (s *Store) AddVaccination(petID, ownerID int64, v models.Vaccination) error {
	return s.mutatePetRecords(petID, ownerID, func(pet *models.Pet) error {
		records, err := pet.Vaccinations()
		if err != nil {
			return err
		}
		records = append(records, v)
		b, err := json.Marshal(records)
		if err != nil {
			return fmt.Errorf("failed to marshal vaccinations: %w", err)
		}
		pet.VaccinationsJson = string(b)
		return nil
	})
}

// RemoveVaccination убирает совпадающую запись о прививке.
func (s *Store) RemoveVaccination(petID, ownerID int64, v models.Vaccination) error {
	return s.mutatePetRecords(petID, ownerID, func(pet *models.Pet) error {
		records, err := pet.Vaccinations()
		if err != nil {
			return err
		}
		kept := records[:0]
		for _, r := range records {
			if r != v {
				kept = append(kept, r)
			}
		}
		b, err := json.Marshal(kept)
		if err != nil {
			return fmt.Errorf("failed to marshal vaccinations: %w", err)
		}
		pet.VaccinationsJson = string(b)
		return nil
	})
}

// AddMedicalNote добавляет заметку в медкарту питомца.
func (s *Store) AddMedicalNote(petID, ownerID int64, n models.MedicalNote) error {
	return s.mutatePetRecords(petID, ownerID, func(pet *models.Pet) error {
		notes, err := pet.MedicalNotes()
		if err != nil {
			return err
		}
		notes = append(notes, n)
		b, err := json.Marshal(notes)
		if err != nil {
			return fmt.Errorf("failed to marshal medical notes: %w", err)
		}
		pet.MedicalNotesJson = string(b)
		return nil
	})
}

// RemoveMedicalNote убирает совпадающую заметку из медкарты.
func (s *Store) RemoveMedicalNote(petID, ownerID int64, n models.MedicalNote) error {
	return s.mutatePetRecords(petID, ownerID, func(pet *models.Pet) error {
		notes, err := pet.MedicalNotes()
		if err != nil {
			return err
		}
		kept := notes[:0]
		for _, r := range notes {
			if r != n {
				kept = append(kept, r)
			}
		}
		b, err := json.Marshal(kept)
		if err != nil {
			return fmt.Errorf("failed to marshal medical notes: %w", err)
		}
		pet.MedicalNotesJson = string(b)
		return nil
	})
}

// mutatePetRecords читает питомца, применяет мутацию медкарты и пишет
// обратно в одной транзакции.
func (s *Store) mutatePetRecords(petID, ownerID int64, mutate func(*models.Pet) error) error {
	tx, err := s.Main.Beginx()
	if err != nil {
		return fmt.Errorf("mutatePetRecords: ошибка при открытии транзакции: %w", err)
	}
	defer tx.Rollback()

	pet := &models.Pet{}
	query := `SELECT Id, OwnerId, Name, Breed, Age, Bio, ImageUrl, VaccinationsJson, MedicalNotesJson, CreatedAt, UpdatedAt
	          FROM Pets WHERE Id = ? AND OwnerId = ?`
	if err := tx.Get(pet, query, petID, ownerID); err != nil {
		if err == sql.ErrNoRows {
			return sql.ErrNoRows
		}
		return fmt.Errorf("mutatePetRecords: ошибка при чтении питомца ID %d: %w", petID, err)
	}

	if err := mutate(pet); err != nil {
		return err
	}

	_, err = tx.Exec(`UPDATE Pets SET VaccinationsJson = ?, MedicalNotesJson = ?, UpdatedAt = ? WHERE Id = ?`,
		pet.VaccinationsJson, pet.MedicalNotesJson, time.Now(), petID)
	if err != nil {
		return fmt.Errorf("mutatePetRecords: ошибка при обновлении питомца ID %d: %w", petID, err)
	}
	return tx.Commit()
}
