package data

import (
	"database/sql"
	"fmt"
	"log"
	"time"

	"petconnect_server_go/models"
)

// CreatePost создает запись в ленте.
func (s *Store) CreatePost(post *models.Post) (int64, error) {
	post.CreatedAt = time.Now()
	if post.LikesJson == "" {
		post.LikesJson = "[]"
	}
	query := `INSERT INTO Posts (AuthorId, Content, ImageUrl, LikesJson, CommentCount, CreatedAt)
	          VALUES (:AuthorId, :Content, :ImageUrl, :LikesJson, :CommentCount, :CreatedAt)`
	result, err := s.Main.NamedExec(query, post)
	if err != nil {
		return 0, fmt.Errorf("CreatePost: ошибка при вставке: %w", err)
	}
	newID, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("CreatePost: ошибка при получении LastInsertId: %w", err)
	}
	log.Printf("Создана запись ленты с ID: %d от пользователя %d", newID, post.AuthorID)
	return newID, nil
}

// GetFeed извлекает записи ленты, новые сверху.
func (s *Store) GetFeed() ([]models.Post, error) {
	var posts []models.Post
	query := `SELECT Id, AuthorId, Content, ImageUrl, LikesJson, CommentCount, CreatedAt
	          FROM Posts ORDER BY CreatedAt DESC, Id DESC`
	if err := s.Main.Select(&posts, query); err != nil {
		return nil, fmt.Errorf("GetFeed: ошибка при получении ленты: %w", err)
	}
	return posts, nil
}

// GetPostByID извлекает запись ленты по ID.
func (s *Store) GetPostByID(id int64) (*models.Post, error) {
	post := &models.Post{}
	query := `SELECT Id, AuthorId, Content, ImageUrl, LikesJson, CommentCount, CreatedAt FROM Posts WHERE Id = ?`
	err := s.Main.Get(post, query, id)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("GetPostByID: ошибка при получении записи ID %d: %w", id, err)
	}
	return post, nil
}

// ToggleLike ставит или снимает лайк пользователя. Возвращает итоговый
// список лайкнувших.
func (s *Store) ToggleLike(postID, userID int64) ([]int64, error) {
	tx, err := s.Main.Beginx()
	if err != nil {
		return nil, fmt.Errorf("ToggleLike: ошибка при открытии транзакции: %w", err)
	}
	defer tx.Rollback()

	var likesJson string
	if err := tx.Get(&likesJson, `SELECT LikesJson FROM Posts WHERE Id = ?`, postID); err != nil {
		if err == sql.ErrNoRows {
			return nil, sql.ErrNoRows
		}
		return nil, fmt.Errorf("ToggleLike: ошибка при чтении записи ID %d: %w", postID, err)
	}

	likes, err := decodeIDSet(likesJson)
	if err != nil {
		return nil, err
	}
	likes = toggleID(likes, userID)

	encoded, err := encodeIDSet(likes)
	if err != nil {
		return nil, err
	}
	if _, err := tx.Exec(`UPDATE Posts SET LikesJson = ? WHERE Id = ?`, encoded, postID); err != nil {
		return nil, fmt.Errorf("ToggleLike: ошибка при обновлении записи ID %d: %w", postID, err)
	}
	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("ToggleLike: ошибка при коммите: %w", err)
	}
	return likes, nil
}

// CreatePostComment добавляет комментарий и инкрементирует счетчик на записи
// в одной транзакции.
func (s *Store) CreatePostComment(comment *models.PostComment) (int64, error) {
	comment.CreatedAt = time.Now()

	tx, err := s.Main.Beginx()
	if err != nil {
		return 0, fmt.Errorf("CreatePostComment: ошибка при открытии транзакции: %w", err)
	}
	defer tx.Rollback()

	result, err := tx.NamedExec(`INSERT INTO PostComments (PostId, AuthorId, Content, CreatedAt)
	          VALUES (:PostId, :AuthorId, :Content, :CreatedAt)`, comment)
	if err != nil {
		return 0, fmt.Errorf("CreatePostComment: ошибка при вставке: %w", err)
	}
	newID, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("CreatePostComment: ошибка при получении LastInsertId: %w", err)
	}

	if _, err := tx.Exec(`UPDATE Posts SET CommentCount = CommentCount + 1 WHERE Id = ?`, comment.PostID); err != nil {
		return 0, fmt.Errorf("CreatePostComment: ошибка при инкременте счетчика записи ID %d: %w", comment.PostID, err)
	}
	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("CreatePostComment: ошибка при коммите: %w", err)
	}
	return newID, nil
}

// GetPostComments извлекает комментарии записи в порядке создания.
func (s *Store) GetPostComments(postID int64) ([]models.PostComment, error) {
	var comments []models.PostComment
	query := `SELECT Id, PostId, AuthorId, Content, CreatedAt FROM PostComments WHERE PostId = ? ORDER BY CreatedAt ASC, Id ASC`
	if err := s.Main.Select(&comments, query, postID); err != nil {
		return nil, fmt.Errorf("GetPostComments: ошибка при получении комментариев записи %d: %w", postID, err)
	}
	return comments, nil
}
