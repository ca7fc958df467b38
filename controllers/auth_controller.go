package controllers

import (
	"encoding/json"
	"log"
	"net/http"
	"strings"

	"petconnect_server_go/auth"
	"petconnect_server_go/data"
	"petconnect_server_go/models"
)

// AuthController обрабатывает регистрацию, вход и работу с профилем.
type AuthController struct {
	Store  *data.Store
	Tokens *auth.Service
}

// Register обрабатывает запросы на регистрацию новых пользователей.
// Ожидает POST-запрос с JSON-телом, содержащим email, password и displayName.
// Пример URL: POST /api/auth/register
func (c *AuthController) Register(w http.ResponseWriter, r *http.Request) {
	var req models.RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Неверный формат запроса: "+err.Error())
		return
	}
	defer r.Body.Close()

	// Валидация входных данных
	if strings.TrimSpace(req.Email) == "" || strings.TrimSpace(req.Password) == "" || strings.TrimSpace(req.DisplayName) == "" {
		respondError(w, http.StatusBadRequest, "Email, пароль и отображаемое имя не могут быть пустыми.")
		return
	}

	existingUser, err := c.Store.GetUserByEmail(req.Email)
	if err != nil {
		log.Printf("Ошибка при проверке email %s: %v", req.Email, err)
		respondError(w, http.StatusInternalServerError, "Ошибка сервера при проверке email.")
		return
	}
	if existingUser != nil {
		respondError(w, http.StatusConflict, "Пользователь с таким email уже существует.")
		return
	}

	user := &models.User{
		Email:        req.Email,
		PasswordHash: req.Password, // В CreateUser пароль будет хеширован
		DisplayName:  req.DisplayName,
		Username:     req.Email,
	}

	userID, err := c.Store.CreateUser(user)
	if err != nil {
		log.Printf("Ошибка при создании пользователя %s: %v", req.Email, err)
		respondError(w, http.StatusInternalServerError, "Не удалось создать пользователя.")
		return
	}
	user.ID = userID

	tokenString, _, err := c.Tokens.GenerateToken(user.ID, user.Username)
	if err != nil {
		log.Printf("Ошибка при генерации токена для пользователя %s: %v", user.Email, err)
		respondError(w, http.StatusInternalServerError, "Пользователь создан, но не удалось сгенерировать токен доступа.")
		return
	}

	respondJSON(w, http.StatusCreated, models.AuthResponse{
		Token: tokenString,
		User:  user.PublicInfo(),
	})
}

// Login обрабатывает запросы на вход пользователей.
// Пример URL: POST /api/auth/login
func (c *AuthController) Login(w http.ResponseWriter, r *http.Request) {
	var req models.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Неверный формат запроса: "+err.Error())
		return
	}
	defer r.Body.Close()

	if strings.TrimSpace(req.Email) == "" || strings.TrimSpace(req.Password) == "" {
		respondError(w, http.StatusBadRequest, "Email и пароль не могут быть пустыми.")
		return
	}

	user, err := c.Store.GetUserByEmail(req.Email)
	if err != nil {
		log.Printf("Ошибка при поиске пользователя по email %s: %v", req.Email, err)
		respondError(w, http.StatusInternalServerError, "Ошибка сервера при поиске пользователя.")
		return
	}
	if user == nil || !data.CheckPasswordHash(req.Password, user.PasswordHash) {
		respondError(w, http.StatusUnauthorized, "Неверный email или пароль.")
		return
	}

	tokenString, _, err := c.Tokens.GenerateToken(user.ID, user.Username)
	if err != nil {
		log.Printf("Ошибка при генерации токена для пользователя %s: %v", user.Email, err)
		respondError(w, http.StatusInternalServerError, "Не удалось сгенерировать токен доступа.")
		return
	}

	respondJSON(w, http.StatusOK, models.AuthResponse{
		Token: tokenString,
		User:  user.PublicInfo(),
	})
}

// Me возвращает профиль текущего пользователя.
// Пример URL: GET /api/users/me
func (c *AuthController) Me(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}

	user, err := c.Store.GetUserByID(userID)
	if err != nil {
		log.Printf("Ошибка при получении пользователя %d: %v", userID, err)
		respondError(w, http.StatusInternalServerError, "Ошибка сервера при получении профиля.")
		return
	}
	if user == nil {
		respondError(w, http.StatusNotFound, "Пользователь не найден.")
		return
	}
	respondJSON(w, http.StatusOK, user.PublicInfo())
}

// UpdateProfile частично обновляет профиль текущего пользователя.
// Поля, отсутствующие в JSON, остаются без изменений.
// Пример URL: PUT /api/users/me
func (c *AuthController) UpdateProfile(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}

	var req models.UpdateProfileRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Неверный формат запроса: "+err.Error())
		return
	}
	defer r.Body.Close()

	if req.DisplayName != nil && strings.TrimSpace(*req.DisplayName) == "" {
		respondError(w, http.StatusBadRequest, "Отображаемое имя не может быть пустым.")
		return
	}

	if err := c.Store.UpdateUserProfile(userID, req); err != nil {
		log.Printf("Ошибка при обновлении профиля пользователя %d: %v", userID, err)
		respondError(w, http.StatusInternalServerError, "Не удалось обновить профиль.")
		return
	}

	user, err := c.Store.GetUserByID(userID)
	if err != nil || user == nil {
		respondError(w, http.StatusInternalServerError, "Профиль обновлен, но не удалось его перечитать.")
		return
	}
	respondJSON(w, http.StatusOK, user.PublicInfo())
}

// GetUser возвращает публичный профиль пользователя по ID.
// Пример URL: GET /api/users/{id}
func (c *AuthController) GetUser(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	user, err := c.Store.GetUserByID(id)
	if err != nil {
		log.Printf("Ошибка при получении пользователя %d: %v", id, err)
		respondError(w, http.StatusInternalServerError, "Ошибка сервера при получении пользователя.")
		return
	}
	if user == nil {
		respondError(w, http.StatusNotFound, "Пользователь не найден.")
		return
	}
	respondJSON(w, http.StatusOK, user.PublicInfo())
}

// Discover возвращает пользователей, открытых для знакомства,
// кроме самого запрашивающего.
// Пример URL: GET /api/users/discover
func (c *AuthController) Discover(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}

	users, err := c.Store.GetDiscoverableUsers(userID)
	if err != nil {
		log.Printf("Ошибка при получении списка пользователей: %v", err)
		respondError(w, http.StatusInternalServerError, "Ошибка сервера при получении пользователей.")
		return
	}

	result := make([]models.UserPublicInfo, 0, len(users))
	for i := range users {
		result = append(result, users[i].PublicInfo())
	}
	respondJSON(w, http.StatusOK, result)
}
