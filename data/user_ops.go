package data

import (
	"database/sql"
	"fmt"
	"time"

	"petconnect_server_go/models"

	"golang.org/x/crypto/bcrypt"
)

// HashPassword генерирует хеш bcrypt для пароля.
func HashPassword(password string) (string, error) {
	bytes, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	return string(bytes), err
}

// CheckPasswordHash сравнивает пароль с хешем.
func CheckPasswordHash(password, hash string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
	return err == nil
}

const userColumns = `Id, Username, Email, DisplayName, PhotoUrl, PasswordHash, Bio, City, State, Country, Discoverable, CreatedAt, UpdatedAt`

// CreateUser создает нового пользователя. В user.PasswordHash на входе
// лежит исходный пароль, хеширование происходит здесь.
func (s *Store) CreateUser(user *models.User) (int64, error) {
	hashedPassword, err := HashPassword(user.PasswordHash)
	if err != nil {
		return 0, fmt.Errorf("failed to hash password: %w", err)
	}

	now := time.Now()
	query := `INSERT INTO Users (Username, Email, DisplayName, PhotoUrl, PasswordHash, Bio, City, State, Country, Discoverable, CreatedAt, UpdatedAt)
	          VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
	result, err := s.Auth.Exec(query, user.Username, user.Email, user.DisplayName, user.PhotoUrl, hashedPassword,
		user.Bio, user.City, user.State, user.Country, user.Discoverable, now, now)
	if err != nil {
		return 0, fmt.Errorf("failed to insert user: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("failed to get last insert ID for user: %w", err)
	}
	return id, nil
}

// GetUserByEmail извлекает пользователя по email.
func (s *Store) GetUserByEmail(email string) (*models.User, error) {
	user := &models.User{}
	err := s.Auth.Get(user, `SELECT `+userColumns+` FROM Users WHERE Email = ?`, email)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil // Пользователь не найден
		}
		return nil, fmt.Errorf("failed to get user by email %s: %w", email, err)
	}
	return user, nil
}

// GetUserByID извлекает пользователя по ID.
func (s *Store) GetUserByID(id int64) (*models.User, error) {
	user := &models.User{}
	err := s.Auth.Get(user, `SELECT `+userColumns+` FROM Users WHERE Id = ?`, id)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get user by ID %d: %w", id, err)
	}
	return user, nil
}

// UpdateUserProfile обновляет только переданные (ненулевые) поля профиля.
func (s *Store) UpdateUserProfile(userID int64, req models.UpdateProfileRequest) error {
	user, err := s.GetUserByID(userID)
	if err != nil {
		return err
	}
	if user == nil {
		return fmt.Errorf("no user found with ID %d to update profile", userID)
	}

	if req.DisplayName != nil {
		user.DisplayName = *req.DisplayName
	}
	if req.PhotoUrl != nil {
		user.PhotoUrl = *req.PhotoUrl
	}
	if req.Bio != nil {
		user.Bio = *req.Bio
	}
	if req.City != nil {
		user.City = *req.City
	}
	if req.State != nil {
		user.State = *req.State
	}
	if req.Country != nil {
		user.Country = *req.Country
	}
	if req.Discoverable != nil {
		user.Discoverable = *req.Discoverable
	}

	query := `UPDATE Users SET DisplayName = ?, PhotoUrl = ?, Bio = ?, City = ?, State = ?, Country = ?, Discoverable = ?, UpdatedAt = ?
	          WHERE Id = ?`
	result, err := s.Auth.Exec(query, user.DisplayName, user.PhotoUrl, user.Bio, user.City, user.State, user.Country,
		user.Discoverable, time.Now(), userID)
	if err != nil {
		return fmt.Errorf("failed to update user profile for ID %d: %w", userID, err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected for user profile update ID %d: %w", userID, err)
	}
	if rowsAffected == 0 {
		return fmt.Errorf("no user found with ID %d to update profile", userID)
	}
	return nil
}

// GetDiscoverableUsers извлекает пользователей, разрешивших показывать себя
// в поиске, кроме самого запрашивающего.
func (s *Store) GetDiscoverableUsers(excludeUserID int64) ([]models.User, error) {
	var users []models.User
	query := `SELECT ` + userColumns + ` FROM Users WHERE Discoverable = 1 AND Id != ? ORDER BY DisplayName ASC`
	if err := s.Auth.Select(&users, query, excludeUserID); err != nil {
		return nil, fmt.Errorf("failed to get discoverable users: %w", err)
	}
	return users, nil
}
