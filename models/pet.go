package models

import (
	"encoding/json"
	"fmt"
	"time"
)

// Pet представляет питомца пользователя.
type Pet struct {
	ID               int64     `json:"id" db:"Id"`
	OwnerID          int64     `json:"ownerId" db:"OwnerId"`
	Name             string    `json:"name" db:"Name"`
	Breed            string    `json:"breed" db:"Breed"`
	Age              string    `json:"age" db:"Age"`
	Bio              string    `json:"bio" db:"Bio"`
	ImageUrl         string    `json:"imageUrl" db:"ImageUrl"`
	VaccinationsJson string    `json:"-" db:"VaccinationsJson"`
	MedicalNotesJson string    `json:"-" db:"MedicalNotesJson"`
	CreatedAt        time.Time `json:"-" db:"CreatedAt"`
	UpdatedAt        time.Time `json:"-" db:"UpdatedAt"`
}

// Vaccination — запись о прививке в медицинской карте питомца.
type Vaccination struct {
	Name string `json:"name"`
	Date string `json:"date"` // "yyyy-MM-dd"
}

// MedicalNote — произвольная заметка в медицинской карте питомца.
type MedicalNote struct {
	Note string `json:"note"`
	Date string `json:"date"` // "yyyy-MM-dd"
}

// Vaccinations разбирает VaccinationsJson.
func (p *Pet) Vaccinations() ([]Vaccination, error) {
	if p.VaccinationsJson == "" {
		return nil, nil
	}
	var v []Vaccination
	if err := json.Unmarshal([]byte(p.VaccinationsJson), &v); err != nil {
		return nil, fmt.Errorf("failed to parse VaccinationsJson for pet %d: %w", p.ID, err)
	}
	return v, nil
}

// MedicalNotes разбирает MedicalNotesJson.
func (p *Pet) MedicalNotes() ([]MedicalNote, error) {
	if p.MedicalNotesJson == "" {
		return nil, nil
	}
	var n []MedicalNote
	if err := json.Unmarshal([]byte(p.MedicalNotesJson), &n); err != nil {
		return nil, fmt.Errorf("failed to parse MedicalNotesJson for pet %d: %w", p.ID, err)
	}
	return n, nil
}

// PetResponse представляет питомца в ответе API с развернутой медкартой.
type PetResponse struct {
	Pet
	Vaccinations []Vaccination `json:"vaccinations"`
	MedicalNotes []MedicalNote `json:"medicalNotes"`
}
