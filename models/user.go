package models

// User представляет пользователя системы.
type User struct {
	ID           int64   `json:"id" db:"Id"`
	Username     string  `json:"username" db:"Username"`
	Email        string  `json:"email" db:"Email"`
	DisplayName  string  `json:"display_name" db:"DisplayName"`
	PhotoUrl     string  `json:"photo_url" db:"PhotoUrl"`
	PasswordHash string  `json:"password,omitempty" db:"PasswordHash"`
	Bio          string  `json:"bio" db:"Bio"`
	City         string  `json:"city" db:"City"`
	State        string  `json:"state" db:"State"`
	Country      string  `json:"country" db:"Country"`
	Discoverable bool    `json:"discoverable" db:"Discoverable"`
	CreatedAt    *string `json:"created_at,omitempty" db:"CreatedAt"`
	UpdatedAt    *string `json:"updated_at,omitempty" db:"UpdatedAt"`
}

// HasLocation сообщает, заполнены ли город и регион профиля.
// Требуется для отправки оповещений о пропавших питомцах.
func (u *User) HasLocation() bool {
	return u.City != "" && u.State != ""
}
