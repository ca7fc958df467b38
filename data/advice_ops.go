package data

import (
	"database/sql"
	"fmt"
	"time"

	"petconnect_server_go/models"
)

// CreateAdvicePost создает совет сообщества.
func (s *Store) CreateAdvicePost(post *models.AdvicePost) (int64, error) {
	post.CreatedAt = time.Now()
	if post.UpvotesJson == "" {
		post.UpvotesJson = "[]"
	}
	if post.DownvotesJson == "" {
		post.DownvotesJson = "[]"
	}
	query := `INSERT INTO AdvicePosts (AuthorId, Title, Content, UpvotesJson, DownvotesJson, CommentCount, CreatedAt)
	          VALUES (:AuthorId, :Title, :Content, :UpvotesJson, :DownvotesJson, :CommentCount, :CreatedAt)`
	result, err := s.Main.NamedExec(query, post)
	if err != nil {
		return 0, fmt.Errorf("CreateAdvicePost: ошибка при вставке: %w", err)
	}
	newID, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("CreateAdvicePost: ошибка при получении LastInsertId: %w", err)
	}
	return newID, nil
}

// GetAdvicePosts извлекает советы, новые сверху.
func (s *Store) GetAdvicePosts() ([]models.AdvicePost, error) {
	var posts []models.AdvicePost
	query := `SELECT Id, AuthorId, Title, Content, UpvotesJson, DownvotesJson, CommentCount, CreatedAt
	          FROM AdvicePosts ORDER BY CreatedAt DESC, Id DESC`
	if err := s.Main.Select(&posts, query); err != nil {
		return nil, fmt.Errorf("GetAdvicePosts: ошибка при получении советов: %w", err)
	}
	return posts, nil
}

// GetAdvicePostByID извлекает совет по ID.
func (s *Store) GetAdvicePostByID(id int64) (*models.AdvicePost, error) {
	post := &models.AdvicePost{}
	query := `SELECT Id, AuthorId, Title, Content, UpvotesJson, DownvotesJson, CommentCount, CreatedAt FROM AdvicePosts WHERE Id = ?`
	err := s.Main.Get(post, query, id)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("GetAdvicePostByID: ошибка при получении совета ID %d: %w", id, err)
	}
	return post, nil
}

// VoteAdvicePost ставит голос пользователя за (up=true) или против совета.
// Голоса взаимоисключающие: голос в одну сторону убирает голос в другую,
// повторный голос в ту же сторону снимает его.
func (s *Store) VoteAdvicePost(postID, userID int64, up bool) (upvotes, downvotes []int64, err error) {
	tx, err := s.Main.Beginx()
	if err != nil {
		return nil, nil, fmt.Errorf("VoteAdvicePost: ошибка при открытии транзакции: %w", err)
	}
	defer tx.Rollback()

	var row struct {
		UpvotesJson   string `db:"UpvotesJson"`
		DownvotesJson string `db:"DownvotesJson"`
	}
	if err := tx.Get(&row, `SELECT UpvotesJson, DownvotesJson FROM AdvicePosts WHERE Id = ?`, postID); err != nil {
		if err == sql.ErrNoRows {
			return nil, nil, sql.ErrNoRows
		}
		return nil, nil, fmt.Errorf("VoteAdvicePost: ошибка при чтении совета ID %d: %w", postID, err)
	}

	upvotes, err = decodeIDSet(row.UpvotesJson)
	if err != nil {
		return nil, nil, err
	}
	downvotes, err = decodeIDSet(row.DownvotesJson)
	if err != nil {
		return nil, nil, err
	}

	if up {
		upvotes = toggleID(upvotes, userID)
		downvotes = removeID(downvotes, userID)
	} else {
		downvotes = toggleID(downvotes, userID)
		upvotes = removeID(upvotes, userID)
	}

	upEncoded, err := encodeIDSet(upvotes)
	if err != nil {
		return nil, nil, err
	}
	downEncoded, err := encodeIDSet(downvotes)
	if err != nil {
		return nil, nil, err
	}
	if _, err := tx.Exec(`UPDATE AdvicePosts SET UpvotesJson = ?, DownvotesJson = ? WHERE Id = ?`,
		upEncoded, downEncoded, postID); err != nil {
		return nil, nil, fmt.Errorf("VoteAdvicePost: ошибка при обновлении совета ID %d: %w", postID, err)
	}
	if err := tx.Commit(); err != nil {
		return nil, nil, fmt.Errorf("VoteAdvicePost: ошибка при коммите: %w", err)
	}
	return upvotes, downvotes, nil
}

// CreateAdviceComment добавляет комментарий к совету и инкрементирует счетчик.
func (s *Store) CreateAdviceComment(comment *models.AdviceComment) (int64, error) {
	comment.CreatedAt = time.Now()

	tx, err := s.Main.Beginx()
	if err != nil {
		return 0, fmt.Errorf("CreateAdviceComment: ошибка при открытии транзакции: %w", err)
	}
	defer tx.Rollback()

	result, err := tx.NamedExec(`INSERT INTO AdviceComments (AdvicePostId, AuthorId, Content, CreatedAt)
	          VALUES (:AdvicePostId, :AuthorId, :Content, :CreatedAt)`, comment)
	if err != nil {
		return 0, fmt.Errorf("CreateAdviceComment: ошибка при вставке: %w", err)
	}
	newID, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("CreateAdviceComment: ошибка при получении LastInsertId: %w", err)
	}
	if _, err := tx.Exec(`UPDATE AdvicePosts SET CommentCount = CommentCount + 1 WHERE Id = ?`, comment.AdvicePostID); err != nil {
		return 0, fmt.Errorf("CreateAdviceComment: ошибка при инкременте счетчика совета ID %d: %w", comment.AdvicePostID, err)
	}
	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("CreateAdviceComment: ошибка при коммите: %w", err)
	}
	return newID, nil
}

// GetAdviceComments извлекает комментарии совета в порядке создания.
func (s *Store) GetAdviceComments(postID int64) ([]models.AdviceComment, error) {
	var comments []models.AdviceComment
	query := `SELECT Id, AdvicePostId, AuthorId, Content, CreatedAt FROM AdviceComments WHERE AdvicePostId = ? ORDER BY CreatedAt ASC, Id ASC`
	if err := s.Main.Select(&comments, query, postID); err != nil {
		return nil, fmt.Errorf("GetAdviceComments: ошибка при получении комментариев совета %d: %w", postID, err)
	}
	return comments, nil
}
