package models

import "time"

// AdvicePost представляет совет сообщества (раздел Tips).
type AdvicePost struct {
	ID            int64     `json:"id" db:"Id"`
	AuthorID      int64     `json:"authorId" db:"AuthorId"`
	Title         string    `json:"title" db:"Title"`
	Content       string    `json:"content" db:"Content"`
	UpvotesJson   string    `json:"-" db:"UpvotesJson"`   // JSON-массив ID пользователей
	DownvotesJson string    `json:"-" db:"DownvotesJson"` // JSON-массив ID пользователей
	CommentCount  int       `json:"commentCount" db:"CommentCount"`
	CreatedAt     time.Time `json:"createdAt" db:"CreatedAt"`
}

// AdviceComment представляет комментарий к совету.
type AdviceComment struct {
	ID           int64     `json:"id" db:"Id"`
	AdvicePostID int64     `json:"advicePostId" db:"AdvicePostId"`
	AuthorID     int64     `json:"authorId" db:"AuthorId"`
	Content      string    `json:"content" db:"Content"`
	CreatedAt    time.Time `json:"createdAt" db:"CreatedAt"`
}

// AdvicePostResponse представляет совет с развернутыми голосами.
type AdvicePostResponse struct {
	AdvicePost
	Upvotes   []int64 `json:"upvotes"`
	Downvotes []int64 `json:"downvotes"`
}

// CreateAdviceRequest представляет данные формы создания совета.
type CreateAdviceRequest struct {
	Title   string `json:"title"`
	Content string `json:"content"`
}
