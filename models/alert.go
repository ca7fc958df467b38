package models

import "time"

// Статусы оповещения о пропавшем питомце.
const (
	AlertStatusActive   = "active"
	AlertStatusResolved = "resolved"
)

// LostPetAlert представляет оповещение о пропавшем питомце.
// Данные питомца денормализованы, чтобы баннер не требовал отдельных запросов.
type LostPetAlert struct {
	ID               int64     `json:"id" db:"Id"`
	PetID            int64     `json:"petId" db:"PetId"`
	OwnerID          int64     `json:"ownerId" db:"OwnerId"`
	PetName          string    `json:"petName" db:"PetName"`
	PetImageUrl      string    `json:"petImageUrl" db:"PetImageUrl"`
	LastSeenLocation string    `json:"lastSeenLocation" db:"LastSeenLocation"`
	Status           string    `json:"status" db:"Status"`
	CreatedAt        time.Time `json:"createdAt" db:"CreatedAt"`
}

// CreateAlertRequest представляет данные формы отправки оповещения.
type CreateAlertRequest struct {
	PetID            int64  `json:"petId"`
	LastSeenLocation string `json:"lastSeenLocation"`
}
