package controllers

import (
	"database/sql"
	"encoding/json"
	"log"
	"net/http"
	"strings"

	"petconnect_server_go/data"
	"petconnect_server_go/models"
)

// PetController обрабатывает питомцев и их медицинские карты.
type PetController struct {
	Store *data.Store
}

func petToResponse(pet *models.Pet) (*models.PetResponse, error) {
	vaccinations, err := pet.Vaccinations()
	if err != nil {
		return nil, err
	}
	notes, err := pet.MedicalNotes()
	if err != nil {
		return nil, err
	}
	if vaccinations == nil {
		vaccinations = []models.Vaccination{}
	}
	if notes == nil {
		notes = []models.MedicalNote{}
	}
	return &models.PetResponse{Pet: *pet, Vaccinations: vaccinations, MedicalNotes: notes}, nil
}

// List возвращает питомцев текущего пользователя.
// Пример URL: GET /api/pets
func (c *PetController) List(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}

	pets, err := c.Store.GetPetsByOwner(userID)
	if err != nil {
		log.Printf("Ошибка при получении питомцев пользователя %d: %v", userID, err)
		respondError(w, http.StatusInternalServerError, "Ошибка сервера при получении питомцев.")
		return
	}

	result := make([]models.PetResponse, 0, len(pets))
	for i := range pets {
		resp, err := petToResponse(&pets[i])
		if err != nil {
			log.Printf("Ошибка при разборе медкарты питомца %d: %v", pets[i].ID, err)
			respondError(w, http.StatusInternalServerError, "Ошибка сервера при разборе данных питомца.")
			return
		}
		result = append(result, *resp)
	}
	respondJSON(w, http.StatusOK, result)
}

// Create добавляет питомца текущему пользователю.
// Пример URL: POST /api/pets
func (c *PetController) Create(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}

	var pet models.Pet
	if err := json.NewDecoder(r.Body).Decode(&pet); err != nil {
		respondError(w, http.StatusBadRequest, "Неверный формат запроса: "+err.Error())
		return
	}
	defer r.Body.Close()

	if strings.TrimSpace(pet.Name) == "" {
		respondError(w, http.StatusBadRequest, "Имя питомца не может быть пустым.")
		return
	}

	pet.OwnerID = userID
	pet.VaccinationsJson = ""
	pet.MedicalNotesJson = ""
	petID, err := c.Store.CreatePet(&pet)
	if err != nil {
		log.Printf("Ошибка при создании питомца для пользователя %d: %v", userID, err)
		respondError(w, http.StatusInternalServerError, "Не удалось создать питомца.")
		return
	}
	pet.ID = petID

	resp, err := petToResponse(&pet)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "Питомец создан, но не удалось сформировать ответ.")
		return
	}
	respondJSON(w, http.StatusCreated, resp)
}

// Get возвращает питомца по ID.
// Пример URL: GET /api/pets/{id}
func (c *PetController) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	pet, err := c.Store.GetPetByID(id)
	if err != nil {
		log.Printf("Ошибка при получении питомца %d: %v", id, err)
		respondError(w, http.StatusInternalServerError, "Ошибка сервера при получении питомца.")
		return
	}
	if pet == nil {
		respondError(w, http.StatusNotFound, "Питомец не найден.")
		return
	}

	resp, err := petToResponse(pet)
	if err != nil {
		log.Printf("Ошибка при разборе медкарты питомца %d: %v", id, err)
		respondError(w, http.StatusInternalServerError, "Ошибка сервера при разборе данных питомца.")
		return
	}
	respondJSON(w, http.StatusOK, resp)
}

// Update изменяет данные питомца. Разрешено только владельцу.
// Пример URL: PUT /api/pets/{id}
func (c *PetController) Update(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	var pet models.Pet
	if err := json.NewDecoder(r.Body).Decode(&pet); err != nil {
		respondError(w, http.StatusBadRequest, "Неверный формат запроса: "+err.Error())
		return
	}
	defer r.Body.Close()

	if strings.TrimSpace(pet.Name) == "" {
		respondError(w, http.StatusBadRequest, "Имя питомца не может быть пустым.")
		return
	}

	pet.ID = id
	pet.OwnerID = userID
	if err := c.Store.UpdatePet(&pet); err != nil {
		if err == sql.ErrNoRows {
			respondError(w, http.StatusNotFound, "Питомец не найден или принадлежит другому пользователю.")
			return
		}
		log.Printf("Ошибка при обновлении питомца %d: %v", id, err)
		respondError(w, http.StatusInternalServerError, "Не удалось обновить питомца.")
		return
	}

	updated, err := c.Store.GetPetByID(id)
	if err != nil || updated == nil {
		respondError(w, http.StatusInternalServerError, "Питомец обновлен, но не удалось его перечитать.")
		return
	}
	resp, err := petToResponse(updated)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "Ошибка сервера при разборе данных питомца.")
		return
	}
	respondJSON(w, http.StatusOK, resp)
}

// Delete удаляет питомца. Разрешено только владельцу.
// Пример URL: DELETE /api/pets/{id}
func (c *PetController) Delete(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	if err := c.Store.DeletePet(id, userID); err != nil {
		if err == sql.ErrNoRows {
			respondError(w, http.StatusNotFound, "Питомец не найден или принадлежит другому пользователю.")
			return
		}
		log.Printf("Ошибка при удалении питомца %d: %v", id, err)
		respondError(w, http.StatusInternalServerError, "Не удалось удалить питомца.")
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}

// mutateMedicalRecord выполняет операцию над медкартой и возвращает обновленного питомца.
func (c *PetController) mutateMedicalRecord(w http.ResponseWriter, r *http.Request, op func(petID, ownerID int64) error) {
	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	if err := op(id, userID); err != nil {
		if err == sql.ErrNoRows {
			respondError(w, http.StatusNotFound, "Питомец не найден или принадлежит другому пользователю.")
			return
		}
		log.Printf("Ошибка при изменении медкарты питомца %d: %v", id, err)
		respondError(w, http.StatusInternalServerError, "Не удалось изменить медицинскую карту.")
		return
	}

	pet, err := c.Store.GetPetByID(id)
	if err != nil || pet == nil {
		respondError(w, http.StatusInternalServerError, "Медкарта изменена, но не удалось перечитать питомца.")
		return
	}
	resp, err := petToResponse(pet)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "Ошибка сервера при разборе данных питомца.")
		return
	}
	respondJSON(w, http.StatusOK, resp)
}

// AddVaccination добавляет прививку в медкарту питомца.
// Пример URL: POST /api/pets/{id}/vaccinations
func (c *PetController) AddVaccination(w http.ResponseWriter, r *http.Request) {
	var v models.Vaccination
	if err := json.NewDecoder(r.Body).Decode(&v); err != nil {
		respondError(w, http.StatusBadRequest, "Неверный формат запроса: "+err.Error())
		return
	}
	defer r.Body.Close()
	if strings.TrimSpace(v.Name) == "" || strings.TrimSpace(v.Date) == "" {
		respondError(w, http.StatusBadRequest, "Название и дата прививки не могут быть пустыми.")
		return
	}
	c.mutateMedicalRecord(w, r, func(petID, ownerID int64) error {
		return c.Store.AddVaccination(petID, ownerID, v)
	})
}

// RemoveVaccination удаляет прививку из медкарты питомца.
// Пример URL: DELETE /api/pets/{id}/vaccinations
func (c *PetController) RemoveVaccination(w http.ResponseWriter, r *http.Request) {
	var v models.Vaccination
	if err := json.NewDecoder(r.Body).Decode(&v); err != nil {
		respondError(w, http.StatusBadRequest, "Неверный формат запроса: "+err.Error())
		return
	}
	defer r.Body.Close()
	c.mutateMedicalRecord(w, r, func(petID, ownerID int64) error {
		return c.Store.RemoveVaccination(petID, ownerID, v)
	})
}

// AddMedicalNote добавляет заметку в медкарту питомца.
// Пример URL: POST /api/pets/{id}/medical-notes
func (c *PetController) AddMedicalNote(w http.ResponseWriter, r *http.Request) {
	var n models.MedicalNote
	if err := json.NewDecoder(r.Body).Decode(&n); err != nil {
		respondError(w, http.StatusBadRequest, "Неверный формат запроса: "+err.Error())
		return
	}
	defer r.Body.Close()
	if strings.TrimSpace(n.Note) == "" || strings.TrimSpace(n.Date) == "" {
		respondError(w, http.StatusBadRequest, "Текст и дата заметки не могут быть пустыми.")
		return
	}
	c.mutateMedicalRecord(w, r, func(petID, ownerID int64) error {
		return c.Store.AddMedicalNote(petID, ownerID, n)
	})
}

// RemoveMedicalNote удаляет заметку из медкарты питомца.
// Пример URL: DELETE /api/pets/{id}/medical-notes
func (c *PetController) RemoveMedicalNote(w http.ResponseWriter, r *http.Request) {
	var n models.MedicalNote
	if err := json.NewDecoder(r.Body).Decode(&n); err != nil {
		respondError(w, http.StatusBadRequest, "Неверный формат запроса: "+err.Error())
		return
	}
	defer r.Body.Close()
	c.mutateMedicalRecord(w, r, func(petID, ownerID int64) error {
		return c.Store.RemoveMedicalNote(petID, ownerID, n)
	})
}
