package data

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"petconnect_server_go/models"
)

func TestStartConversationDeduplicates(t *testing.T) {
	store := newTestStore(t)

	convo, created, err := store.StartConversation(1, 2, "")
	require.NoError(t, err)
	assert.True(t, created)

	// Повторный запуск с любой стороны возвращает тот же диалог.
	again, created, err := store.StartConversation(2, 1, "")
	require.NoError(t, err)
	assert.False(t, created)
	assert.Equal(t, convo.ID, again.ID)

	convos, err := store.GetConversationsByUser(1)
	require.NoError(t, err)
	assert.Len(t, convos, 1)
}

func TestStartConversationSeedsLastMessage(t *testing.T) {
	store := newTestStore(t)

	convo, created, err := store.StartConversation(3, 4, "Regarding the lost pet alert.")
	require.NoError(t, err)
	assert.True(t, created)
	assert.Equal(t, "Regarding the lost pet alert.", convo.LastMessage)
	require.NotNil(t, convo.LastMessageTimestamp)
}

func TestStartConversationWithSelfFails(t *testing.T) {
	store := newTestStore(t)
	_, _, err := store.StartConversation(1, 1, "")
	assert.Error(t, err)
}

func TestSendMessageUpdatesSummary(t *testing.T) {
	store := newTestStore(t)

	convo, _, err := store.StartConversation(1, 2, "")
	require.NoError(t, err)

	_, err = store.SendMessage(&models.Message{ConversationID: convo.ID, SenderID: 1, Content: "Hi there"})
	require.NoError(t, err)
	_, err = store.SendMessage(&models.Message{ConversationID: convo.ID, SenderID: 2, Content: "Hello!"})
	require.NoError(t, err)

	msgs, err := store.GetMessages(convo.ID)
	require.NoError(t, err)
	require.Len(t, msgs, 2)
	assert.Equal(t, "Hi there", msgs[0].Content)
	assert.Equal(t, "Hello!", msgs[1].Content)

	reloaded, err := store.GetConversationByID(convo.ID, 1)
	require.NoError(t, err)
	assert.Equal(t, "Hello!", reloaded.LastMessage)
	require.NotNil(t, reloaded.LastMessageTimestamp)
}

func TestGetConversationRequiresParticipant(t *testing.T) {
	store := newTestStore(t)

	convo, _, err := store.StartConversation(1, 2, "")
	require.NoError(t, err)

	other, err := store.GetConversationByID(convo.ID, 99)
	require.NoError(t, err)
	assert.Nil(t, other)
}

func TestOtherParticipant(t *testing.T) {
	convo := models.Conversation{UserAID: 1, UserBID: 5}
	assert.Equal(t, int64(5), convo.OtherParticipant(1))
	assert.Equal(t, int64(1), convo.OtherParticipant(5))
}
