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

// PostController обрабатывает ленту записей, лайки и комментарии.
type PostController struct {
	Store *data.Store
}

func postToResponse(post *models.Post, viewerID int64) models.PostResponse {
	likes := decodeIDs(post.LikesJson)
	return models.PostResponse{
		Post:    *post,
		Likes:   likes,
		LikedBy: containsID(likes, viewerID),
	}
}

// Feed возвращает ленту записей, новые сверху.
// Пример URL: GET /api/posts
func (c *PostController) Feed(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}

	posts, err := c.Store.GetFeed()
	if err != nil {
		log.Printf("Ошибка при получении ленты: %v", err)
		respondError(w, http.StatusInternalServerError, "Ошибка сервера при получении ленты.")
		return
	}

	result := make([]models.PostResponse, 0, len(posts))
	for i := range posts {
		result = append(result, postToResponse(&posts[i], userID))
	}
	respondJSON(w, http.StatusOK, result)
}

// Create добавляет запись в ленту.
// Пример URL: POST /api/posts
func (c *PostController) Create(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}

	var req models.CreatePostRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Неверный формат запроса: "+err.Error())
		return
	}
	defer r.Body.Close()

	if strings.TrimSpace(req.Content) == "" {
		respondError(w, http.StatusBadRequest, "Текст записи не может быть пустым.")
		return
	}

	post := &models.Post{
		AuthorID: userID,
		Content:  req.Content,
		ImageUrl: req.ImageUrl,
	}
	postID, err := c.Store.CreatePost(post)
	if err != nil {
		log.Printf("Ошибка при создании записи пользователя %d: %v", userID, err)
		respondError(w, http.StatusInternalServerError, "Не удалось создать запись.")
		return
	}
	post.ID = postID
	respondJSON(w, http.StatusCreated, postToResponse(post, userID))
}

// ToggleLike переключает лайк текущего пользователя на записи.
// Пример URL: POST /api/posts/{id}/like
func (c *PostController) ToggleLike(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	likes, err := c.Store.ToggleLike(id, userID)
	if err != nil {
		if err == sql.ErrNoRows {
			respondError(w, http.StatusNotFound, "Запись не найдена.")
			return
		}
		log.Printf("Ошибка при переключении лайка записи %d: %v", id, err)
		respondError(w, http.StatusInternalServerError, "Не удалось обновить лайк.")
		return
	}
	respondJSON(w, http.StatusOK, map[string]interface{}{
		"likes":     likes,
		"likedByMe": containsID(likes, userID),
	})
}

// Comments возвращает комментарии записи в хронологическом порядке.
// Пример URL: GET /api/posts/{id}/comments
func (c *PostController) Comments(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	comments, err := c.Store.GetPostComments(id)
	if err != nil {
		log.Printf("Ошибка при получении комментариев записи %d: %v", id, err)
		respondError(w, http.StatusInternalServerError, "Ошибка сервера при получении комментариев.")
		return
	}
	if comments == nil {
		comments = []models.PostComment{}
	}
	respondJSON(w, http.StatusOK, comments)
}

// CreateComment добавляет комментарий к записи и увеличивает счетчик.
// Пример URL: POST /api/posts/{id}/comments
func (c *PostController) CreateComment(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	var req struct {
		Content string `json:"content"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Неверный формат запроса: "+err.Error())
		return
	}
	defer r.Body.Close()

	if strings.TrimSpace(req.Content) == "" {
		respondError(w, http.StatusBadRequest, "Текст комментария не может быть пустым.")
		return
	}

	comment := &models.PostComment{
		PostID:   id,
		AuthorID: userID,
		Content:  req.Content,
	}
	commentID, err := c.Store.CreatePostComment(comment)
	if err != nil {
		if err == sql.ErrNoRows {
			respondError(w, http.StatusNotFound, "Запись не найдена.")
			return
		}
		log.Printf("Ошибка при создании комментария к записи %d: %v", id, err)
		respondError(w, http.StatusInternalServerError, "Не удалось создать комментарий.")
		return
	}
	comment.ID = commentID
	respondJSON(w, http.StatusCreated, comment)
}
