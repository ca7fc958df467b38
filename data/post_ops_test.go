package data

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"petconnect_server_go/models"
)

func TestToggleLike(t *testing.T) {
	store := newTestStore(t)

	id, err := store.CreatePost(&models.Post{AuthorID: 1, Content: "Look at this good boy"})
	require.NoError(t, err)

	likes, err := store.ToggleLike(id, 2)
	require.NoError(t, err)
	assert.Equal(t, []int64{2}, likes)

	likes, err = store.ToggleLike(id, 3)
	require.NoError(t, err)
	assert.Equal(t, []int64{2, 3}, likes)

	// Повторный лайк снимает отметку.
	likes, err = store.ToggleLike(id, 2)
	require.NoError(t, err)
	assert.Equal(t, []int64{3}, likes)
}

func TestPostCommentsMaintainCount(t *testing.T) {
	store := newTestStore(t)

	id, err := store.CreatePost(&models.Post{AuthorID: 1, Content: "First post"})
	require.NoError(t, err)

	_, err = store.CreatePostComment(&models.PostComment{PostID: id, AuthorID: 2, Content: "So cute!"})
	require.NoError(t, err)
	_, err = store.CreatePostComment(&models.PostComment{PostID: id, AuthorID: 3, Content: "Adorable"})
	require.NoError(t, err)

	post, err := store.GetPostByID(id)
	require.NoError(t, err)
	assert.Equal(t, 2, post.CommentCount)

	comments, err := store.GetPostComments(id)
	require.NoError(t, err)
	assert.Len(t, comments, 2)
}

func TestVoteAdvicePostMutuallyExclusive(t *testing.T) {
	store := newTestStore(t)

	id, err := store.CreateAdvicePost(&models.AdvicePost{AuthorID: 1, Title: "Crate training", Content: "Start slow."})
	require.NoError(t, err)

	up, down, err := store.VoteAdvicePost(id, 2, true)
	require.NoError(t, err)
	assert.Equal(t, []int64{2}, up)
	assert.Empty(t, down)

	// Голос против убирает голос за.
	up, down, err = store.VoteAdvicePost(id, 2, false)
	require.NoError(t, err)
	assert.Empty(t, up)
	assert.Equal(t, []int64{2}, down)

	// Повторный голос в ту же сторону снимает его.
	up, down, err = store.VoteAdvicePost(id, 2, false)
	require.NoError(t, err)
	assert.Empty(t, up)
	assert.Empty(t, down)
}

func TestUserCreateAndLogin(t *testing.T) {
	store := newTestStore(t)

	id, err := store.CreateUser(&models.User{
		Username:     "sara@example.com",
		Email:        "sara@example.com",
		DisplayName:  "Sara",
		PasswordHash: "password",
	})
	require.NoError(t, err)

	user, err := store.GetUserByEmail("sara@example.com")
	require.NoError(t, err)
	require.NotNil(t, user)
	assert.Equal(t, id, user.ID)
	assert.True(t, CheckPasswordHash("password", user.PasswordHash))
	assert.False(t, CheckPasswordHash("wrong", user.PasswordHash))

	missing, err := store.GetUserByEmail("nobody@example.com")
	require.NoError(t, err)
	assert.Nil(t, missing)
}

func TestUpdateUserProfilePartial(t *testing.T) {
	store := newTestStore(t)

	id, err := store.CreateUser(&models.User{
		Username:     "arjun@example.com",
		Email:        "arjun@example.com",
		DisplayName:  "Arjun",
		PasswordHash: "password",
	})
	require.NoError(t, err)

	bio := "Cat dad"
	city := "Bengaluru"
	discoverable := true
	err = store.UpdateUserProfile(id, models.UpdateProfileRequest{Bio: &bio, City: &city, Discoverable: &discoverable})
	require.NoError(t, err)

	user, err := store.GetUserByID(id)
	require.NoError(t, err)
	assert.Equal(t, "Cat dad", user.Bio)
	assert.Equal(t, "Bengaluru", user.City)
	assert.True(t, user.Discoverable)
	// Нетронутые поля сохраняются.
	assert.Equal(t, "Arjun", user.DisplayName)
}
