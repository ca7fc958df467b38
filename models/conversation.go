package models

import "time"

// Conversation представляет диалог двух пользователей.
// Пара участников хранится упорядоченно (UserAId < UserBId), чтобы
// уникальный индекс исключал дубликаты диалогов.
type Conversation struct {
	ID                   int64      `json:"id" db:"Id"`
	UserAID              int64      `json:"-" db:"UserAId"`
	UserBID              int64      `json:"-" db:"UserBId"`
	LastMessage          string     `json:"lastMessage" db:"LastMessage"`
	LastMessageTimestamp *time.Time `json:"lastMessageTimestamp,omitempty" db:"LastMessageTimestamp"`
	CreatedAt            time.Time  `json:"-" db:"CreatedAt"`
}

// Participants возвращает обоих участников диалога.
func (c *Conversation) Participants() []int64 {
	return []int64{c.UserAID, c.UserBID}
}

// OtherParticipant возвращает собеседника указанного пользователя.
func (c *Conversation) OtherParticipant(userID int64) int64 {
	if c.UserAID == userID {
		return c.UserBID
	}
	return c.UserAID
}

// Message представляет сообщение в диалоге.
type Message struct {
	ID             int64     `json:"id" db:"Id"`
	ConversationID int64     `json:"conversationId" db:"ConversationId"`
	SenderID       int64     `json:"senderId" db:"SenderId"`
	Content        string    `json:"content" db:"Content"`
	CreatedAt      time.Time `json:"createdAt" db:"CreatedAt"`
}

// ConversationResponse представляет диалог вместе с данными собеседника.
type ConversationResponse struct {
	Conversation
	Participants []int64        `json:"participants"`
	Other        UserPublicInfo `json:"otherParticipant"`
}

// StartConversationRequest представляет запрос на начало диалога.
type StartConversationRequest struct {
	UserID int64 `json:"userId"`
}

// SendMessageRequest представляет отправляемое сообщение.
type SendMessageRequest struct {
	Content string `json:"content"`
}
