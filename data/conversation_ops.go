package data

import (
	"database/sql"
	"fmt"
	"time"

	"petconnect_server_go/models"
)

// orderPair приводит пару участников к каноническому порядку для
// уникального индекса.
func orderPair(a, b int64) (int64, int64) {
	if a > b {
		return b, a
	}
	return a, b
}

// StartConversation возвращает существующий диалог пары пользователей или
// создает новый. Дедупликация выполняется внутри транзакции по той же
// паре, по которой висит уникальный индекс, поэтому гонка двух сессий не
// породит два диалога.
func (s *Store) StartConversation(userID, otherUserID int64, seedMessage string) (*models.Conversation, bool, error) {
	if userID == otherUserID {
		return nil, false, fmt.Errorf("cannot start a conversation with yourself")
	}
	a, b := orderPair(userID, otherUserID)

	tx, err := s.Main.Beginx()
	if err != nil {
		return nil, false, fmt.Errorf("StartConversation: ошибка при открытии транзакции: %w", err)
	}
	defer tx.Rollback()

	convo := &models.Conversation{}
	query := `SELECT Id, UserAId, UserBId, LastMessage, LastMessageTimestamp, CreatedAt
	          FROM Conversations WHERE UserAId = ? AND UserBId = ?`
	err = tx.Get(convo, query, a, b)
	if err == nil {
		return convo, false, nil
	}
	if err != sql.ErrNoRows {
		return nil, false, fmt.Errorf("StartConversation: ошибка при поиске диалога %d/%d: %w", a, b, err)
	}

	now := time.Now()
	convo = &models.Conversation{
		UserAID:     a,
		UserBID:     b,
		LastMessage: seedMessage,
		CreatedAt:   now,
	}
	if seedMessage != "" {
		convo.LastMessageTimestamp = &now
	}

	result, err := tx.NamedExec(`INSERT INTO Conversations (UserAId, UserBId, LastMessage, LastMessageTimestamp, CreatedAt)
	          VALUES (:UserAId, :UserBId, :LastMessage, :LastMessageTimestamp, :CreatedAt)`, convo)
	if err != nil {
		return nil, false, fmt.Errorf("StartConversation: ошибка при вставке диалога %d/%d: %w", a, b, err)
	}
	convo.ID, err = result.LastInsertId()
	if err != nil {
		return nil, false, fmt.Errorf("StartConversation: ошибка при получении LastInsertId: %w", err)
	}
	if err := tx.Commit(); err != nil {
		return nil, false, fmt.Errorf("StartConversation: ошибка при коммите: %w", err)
	}
	return convo, true, nil
}

// GetConversationsByUser извлекает диалоги пользователя, свежие сверху.
func (s *Store) GetConversationsByUser(userID int64) ([]models.Conversation, error) {
	var convos []models.Conversation
	query := `SELECT Id, UserAId, UserBId, LastMessage, LastMessageTimestamp, CreatedAt
	          FROM Conversations WHERE UserAId = ? OR UserBId = ?
	          ORDER BY LastMessageTimestamp DESC`
	if err := s.Main.Select(&convos, query, userID, userID); err != nil {
		return nil, fmt.Errorf("GetConversationsByUser: ошибка при получении диалогов пользователя %d: %w", userID, err)
	}
	return convos, nil
}

// GetConversationByID извлекает диалог, если пользователь — его участник.
func (s *Store) GetConversationByID(id, userID int64) (*models.Conversation, error) {
	convo := &models.Conversation{}
	query := `SELECT Id, UserAId, UserBId, LastMessage, LastMessageTimestamp, CreatedAt
	          FROM Conversations WHERE Id = ? AND (UserAId = ? OR UserBId = ?)`
	err := s.Main.Get(convo, query, id, userID, userID)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("GetConversationByID: ошибка при получении диалога ID %d: %w", id, err)
	}
	return convo, nil
}

// SendMessage добавляет сообщение и обновляет сводку диалога в одной
// транзакции.
func (s *Store) SendMessage(msg *models.Message) (int64, error) {
	now := time.Now()
	msg.CreatedAt = now

	tx, err := s.Main.Beginx()
	if err != nil {
		return 0, fmt.Errorf("SendMessage: ошибка при открытии транзакции: %w", err)
	}
	defer tx.Rollback()

	result, err := tx.NamedExec(`INSERT INTO Messages (ConversationId, SenderId, Content, CreatedAt)
	          VALUES (:ConversationId, :SenderId, :Content, :CreatedAt)`, msg)
	if err != nil {
		return 0, fmt.Errorf("SendMessage: ошибка при вставке сообщения: %w", err)
	}
	newID, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("SendMessage: ошибка при получении LastInsertId: %w", err)
	}

	if _, err := tx.Exec(`UPDATE Conversations SET LastMessage = ?, LastMessageTimestamp = ? WHERE Id = ?`,
		msg.Content, now, msg.ConversationID); err != nil {
		return 0, fmt.Errorf("SendMessage: ошибка при обновлении сводки диалога %d: %w", msg.ConversationID, err)
	}
	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("SendMessage: ошибка при коммите: %w", err)
	}
	return newID, nil
}

// GetMessages извлекает сообщения диалога в порядке создания.
func (s *Store) GetMessages(conversationID int64) ([]models.Message, error) {
	var msgs []models.Message
	query := `SELECT Id, ConversationId, SenderId, Content, CreatedAt FROM Messages WHERE ConversationId = ? ORDER BY CreatedAt ASC, Id ASC`
	if err := s.Main.Select(&msgs, query, conversationID); err != nil {
		return nil, fmt.Errorf("GetMessages: ошибка при получении сообщений диалога %d: %w", conversationID, err)
	}
	return msgs, nil
}
