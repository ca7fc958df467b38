package models

import "time"

// Event представляет событие сообщества (прогулка, встреча и т.п.).
type Event struct {
	ID            int64     `json:"id" db:"Id"`
	AuthorID      int64     `json:"authorId" db:"AuthorId"`
	Title         string    `json:"title" db:"Title"`
	Description   string    `json:"description" db:"Description"`
	Location      string    `json:"location" db:"Location"`
	PetType       string    `json:"petType" db:"PetType"`
	Date          time.Time `json:"date" db:"Date"`
	AttendeesJson string    `json:"-" db:"AttendeesJson"` // JSON-массив ID пользователей
	CreatedAt     time.Time `json:"createdAt" db:"CreatedAt"`
}

// EventResponse представляет событие с развернутым списком участников.
type EventResponse struct {
	Event
	Attendees []int64 `json:"attendees"`
	Attending bool    `json:"attending"`
}

// CreateEventRequest представляет данные формы создания события.
type CreateEventRequest struct {
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Location    string    `json:"location"`
	PetType     string    `json:"petType"`
	Date        time.Time `json:"date"`
}
