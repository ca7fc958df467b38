package models

// RegisterRequest представляет данные для регистрации нового пользователя.
type RegisterRequest struct {
	Email       string `json:"email"`
	Password    string `json:"password"`
	DisplayName string `json:"displayName"`
}

// LoginRequest представляет данные для входа пользователя.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// UserPublicInfo представляет публичные данные пользователя, возвращаемые API.
type UserPublicInfo struct {
	ID           int64  `json:"id"`
	Email        string `json:"email"`
	DisplayName  string `json:"displayName"`
	PhotoUrl     string `json:"photoUrl"`
	Bio          string `json:"bio,omitempty"`
	City         string `json:"city,omitempty"`
	State        string `json:"state,omitempty"`
	Country      string `json:"country,omitempty"`
	Discoverable bool   `json:"discoverable"`
}

// PublicInfo собирает публичную проекцию пользователя.
func (u *User) PublicInfo() UserPublicInfo {
	return UserPublicInfo{
		ID:           u.ID,
		Email:        u.Email,
		DisplayName:  u.DisplayName,
		PhotoUrl:     u.PhotoUrl,
		Bio:          u.Bio,
		City:         u.City,
		State:        u.State,
		Country:      u.Country,
		Discoverable: u.Discoverable,
	}
}

// AuthResponse представляет ответ сервера после успешной аутентификации.
type AuthResponse struct {
	Token string         `json:"token"`
	User  UserPublicInfo `json:"user"`
}

// UpdateProfileRequest представляет данные для обновления профиля пользователя.
type UpdateProfileRequest struct {
	DisplayName  *string `json:"displayName,omitempty"`
	PhotoUrl     *string `json:"photoUrl,omitempty"`
	Bio          *string `json:"bio,omitempty"`
	City         *string `json:"city,omitempty"`
	State        *string `json:"state,omitempty"`
	Country      *string `json:"country,omitempty"`
	Discoverable *bool   `json:"discoverable,omitempty"`
}
