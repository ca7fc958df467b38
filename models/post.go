package models

import "time"

// Post представляет запись в ленте.
type Post struct {
	ID           int64     `json:"id" db:"Id"`
	AuthorID     int64     `json:"authorId" db:"AuthorId"`
	Content      string    `json:"content" db:"Content"`
	ImageUrl     string    `json:"imageUrl,omitempty" db:"ImageUrl"`
	LikesJson    string    `json:"-" db:"LikesJson"` // JSON-массив ID пользователей
	CommentCount int       `json:"commentCount" db:"CommentCount"`
	CreatedAt    time.Time `json:"createdAt" db:"CreatedAt"`
}

// PostComment представляет комментарий к записи ленты.
type PostComment struct {
	ID        int64     `json:"id" db:"Id"`
	PostID    int64     `json:"postId" db:"PostId"`
	AuthorID  int64     `json:"authorId" db:"AuthorId"`
	Content   string    `json:"content" db:"Content"`
	CreatedAt time.Time `json:"createdAt" db:"CreatedAt"`
}

// PostResponse представляет запись ленты с развернутым списком лайков.
type PostResponse struct {
	Post
	Likes   []int64 `json:"likes"`
	LikedBy bool    `json:"likedByMe"`
}

// CreatePostRequest представляет данные формы создания записи.
type CreatePostRequest struct {
	Content  string `json:"content"`
	ImageUrl string `json:"imageUrl,omitempty"`
}
