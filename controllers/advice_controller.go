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

// AdviceController обрабатывает раздел советов сообщества.
type AdviceController struct {
	Store *data.Store
}

func adviceToResponse(post *models.AdvicePost) models.AdvicePostResponse {
	return models.AdvicePostResponse{
		AdvicePost: *post,
		Upvotes:    decodeIDs(post.UpvotesJson),
		Downvotes:  decodeIDs(post.DownvotesJson),
	}
}

// List возвращает советы сообщества, новые сверху.
// Пример URL: GET /api/advice
func (c *AdviceController) List(w http.ResponseWriter, r *http.Request) {
	posts, err := c.Store.GetAdvicePosts()
	if err != nil {
		log.Printf("Ошибка при получении советов: %v", err)
		respondError(w, http.StatusInternalServerError, "Ошибка сервера при получении советов.")
		return
	}

	result := make([]models.AdvicePostResponse, 0, len(posts))
	for i := range posts {
		result = append(result, adviceToResponse(&posts[i]))
	}
	respondJSON(w, http.StatusOK, result)
}

// Create добавляет совет сообщества.
// Пример URL: POST /api/advice
func (c *AdviceController) Create(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}

	var req models.CreateAdviceRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Неверный формат запроса: "+err.Error())
		return
	}
	defer r.Body.Close()

	if strings.TrimSpace(req.Title) == "" || strings.TrimSpace(req.Content) == "" {
		respondError(w, http.StatusBadRequest, "Заголовок и текст совета не могут быть пустыми.")
		return
	}

	post := &models.AdvicePost{
		AuthorID: userID,
		Title:    req.Title,
		Content:  req.Content,
	}
	postID, err := c.Store.CreateAdvicePost(post)
	if err != nil {
		log.Printf("Ошибка при создании совета пользователя %d: %v", userID, err)
		respondError(w, http.StatusInternalServerError, "Не удалось создать совет.")
		return
	}
	post.ID = postID
	respondJSON(w, http.StatusCreated, adviceToResponse(post))
}

func (c *AdviceController) vote(w http.ResponseWriter, r *http.Request, up bool) {
	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	upvotes, downvotes, err := c.Store.VoteAdvicePost(id, userID, up)
	if err != nil {
		if err == sql.ErrNoRows {
			respondError(w, http.StatusNotFound, "Совет не найден.")
			return
		}
		log.Printf("Ошибка при голосовании за совет %d: %v", id, err)
		respondError(w, http.StatusInternalServerError, "Не удалось сохранить голос.")
		return
	}
	respondJSON(w, http.StatusOK, map[string]interface{}{
		"upvotes":   upvotes,
		"downvotes": downvotes,
	})
}

// Upvote переключает голос "за". Голос "против" при этом снимается.
// Пример URL: POST /api/advice/{id}/upvote
func (c *AdviceController) Upvote(w http.ResponseWriter, r *http.Request) {
	c.vote(w, r, true)
}

// Downvote переключает голос "против". Голос "за" при этом снимается.
// Пример URL: POST /api/advice/{id}/downvote
func (c *AdviceController) Downvote(w http.ResponseWriter, r *http.Request) {
	c.vote(w, r, false)
}

// Comments возвращает комментарии совета в хронологическом порядке.
// Пример URL: GET /api/advice/{id}/comments
func (c *AdviceController) Comments(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	comments, err := c.Store.GetAdviceComments(id)
	if err != nil {
		log.Printf("Ошибка при получении комментариев совета %d: %v", id, err)
		respondError(w, http.StatusInternalServerError, "Ошибка сервера при получении комментариев.")
		return
	}
	if comments == nil {
		comments = []models.AdviceComment{}
	}
	respondJSON(w, http.StatusOK, comments)
}

// CreateComment добавляет комментарий к совету.
// Пример URL: POST /api/advice/{id}/comments
func (c *AdviceController) CreateComment(w http.ResponseWriter, r *http.Request) {
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

	comment := &models.AdviceComment{
		AdvicePostID: id,
		AuthorID:     userID,
		Content:      req.Content,
	}
	commentID, err := c.Store.CreateAdviceComment(comment)
	if err != nil {
		if err == sql.ErrNoRows {
			respondError(w, http.StatusNotFound, "Совет не найден.")
			return
		}
		log.Printf("Ошибка при создании комментария к совету %d: %v", id, err)
		respondError(w, http.StatusInternalServerError, "Не удалось создать комментарий.")
		return
	}
	comment.ID = commentID
	respondJSON(w, http.StatusCreated, comment)
}
