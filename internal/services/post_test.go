package services

import (
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/devconnect/devconnect-backend/internal/domain"
	"github.com/devconnect/devconnect-backend/internal/platform/apierr"
	"github.com/devconnect/devconnect-backend/internal/platform/logger"
	"github.com/devconnect/devconnect-backend/internal/store/memory"
)

func testLogger(t *testing.T) *logger.Logger {
	t.Helper()
	log, err := logger.New("test")
	if err != nil {
		t.Fatalf("init logger: %v", err)
	}
	return log
}

func seedUser(t *testing.T, st *memory.Store, id, name string) {
	t.Helper()
	err := st.Users().Save(context.Background(), &domain.User{
		ID:     id,
		Name:   name,
		Email:  id + "@example.com",
		Avatar: "https://www.gravatar.com/avatar/" + id,
	})
	require.NoError(t, err)
}

func newPostFixture(t *testing.T) (PostService, *memory.Store) {
	t.Helper()
	st := memory.New()
	seedUser(t, st, "u1", "Alice")
	seedUser(t, st, "u2", "Bob")
	return NewPostService(testLogger(t), st.Posts(), st.Users()), st
}

func requireStatus(t *testing.T, err error, status int) {
	t.Helper()
	require.Error(t, err)
	require.Equal(t, status, apierr.From(err).Status)
}

func TestCreatePost(t *testing.T) {
	svc, _ := newPostFixture(t)
	ctx := context.Background()

	post, err := svc.Create(ctx, "u1", "Hello")
	require.NoError(t, err)
	require.NotEmpty(t, post.ID)
	require.Equal(t, "Hello", post.Text)
	require.Equal(t, "u1", post.AuthorID)
	require.Equal(t, "Alice", post.AuthorName)
	require.Empty(t, post.Likes)
	require.Empty(t, post.Comments)

	_, err = svc.Create(ctx, "u1", "   ")
	requireStatus(t, err, http.StatusBadRequest)

	_, err = svc.Create(ctx, "nobody", "Hi")
	requireStatus(t, err, http.StatusNotFound)
}

func TestListAllNewestFirst(t *testing.T) {
	svc, _ := newPostFixture(t)
	ctx := context.Background()

	p1, err := svc.Create(ctx, "u1", "first")
	require.NoError(t, err)
	p2, err := svc.Create(ctx, "u1", "second")
	require.NoError(t, err)
	p3, err := svc.Create(ctx, "u2", "third")
	require.NoError(t, err)

	posts, err := svc.ListAll(ctx)
	require.NoError(t, err)
	require.Len(t, posts, 3)
	require.Equal(t, []string{p3.ID, p2.ID, p1.ID}, []string{posts[0].ID, posts[1].ID, posts[2].ID})
}

func TestGetByID(t *testing.T) {
	svc, _ := newPostFixture(t)
	ctx := context.Background()

	post, err := svc.Create(ctx, "u1", "Hello")
	require.NoError(t, err)

	got, err := svc.GetByID(ctx, post.ID)
	require.NoError(t, err)
	require.Equal(t, post.ID, got.ID)

	_, err = svc.GetByID(ctx, "missing")
	requireStatus(t, err, http.StatusNotFound)
}

func TestDeleteRequiresOwnership(t *testing.T) {
	svc, _ := newPostFixture(t)
	ctx := context.Background()

	post, err := svc.Create(ctx, "u1", "Hello")
	require.NoError(t, err)

	err = svc.DeleteByID(ctx, post.ID, "u2")
	requireStatus(t, err, http.StatusUnauthorized)

	// The post must survive the rejected delete.
	_, err = svc.GetByID(ctx, post.ID)
	require.NoError(t, err)

	require.NoError(t, svc.DeleteByID(ctx, post.ID, "u1"))
	_, err = svc.GetByID(ctx, post.ID)
	requireStatus(t, err, http.StatusNotFound)
}

func TestLikeIsIdempotentGuarded(t *testing.T) {
	svc, _ := newPostFixture(t)
	ctx := context.Background()

	post, err := svc.Create(ctx, "u1", "Hello")
	require.NoError(t, err)

	likes, err := svc.Like(ctx, post.ID, "u2")
	require.NoError(t, err)
	require.Len(t, likes, 1)
	require.Equal(t, "u2", likes[0].UserID)

	// Repeating the same transition is rejected, not silently accepted.
	_, err = svc.Like(ctx, post.ID, "u2")
	requireStatus(t, err, http.StatusBadRequest)

	got, err := svc.GetByID(ctx, post.ID)
	require.NoError(t, err)
	require.Len(t, got.Likes, 1)
}

func TestUnlikeWithoutLike(t *testing.T) {
	svc, _ := newPostFixture(t)
	ctx := context.Background()

	post, err := svc.Create(ctx, "u1", "Hello")
	require.NoError(t, err)

	_, err = svc.Unlike(ctx, post.ID, "u2")
	requireStatus(t, err, http.StatusBadRequest)

	got, err := svc.GetByID(ctx, post.ID)
	require.NoError(t, err)
	require.Empty(t, got.Likes)
}

func TestLikeUnlikeRoundTrip(t *testing.T) {
	svc, _ := newPostFixture(t)
	ctx := context.Background()

	post, err := svc.Create(ctx, "u1", "Hello")
	require.NoError(t, err)

	_, err = svc.Like(ctx, post.ID, "u1")
	require.NoError(t, err)
	likes, err := svc.Like(ctx, post.ID, "u2")
	require.NoError(t, err)
	// Newest like first.
	require.Equal(t, "u2", likes[0].UserID)
	require.Equal(t, "u1", likes[1].UserID)

	likes, err = svc.Unlike(ctx, post.ID, "u1")
	require.NoError(t, err)
	require.Len(t, likes, 1)
	require.Equal(t, "u2", likes[0].UserID)
}

func TestAddComment(t *testing.T) {
	svc, _ := newPostFixture(t)
	ctx := context.Background()

	post, err := svc.Create(ctx, "u1", "Hello")
	require.NoError(t, err)

	comments, err := svc.AddComment(ctx, post.ID, "u2", "Hi")
	require.NoError(t, err)
	require.Len(t, comments, 1)
	require.Equal(t, "Hi", comments[0].Text)
	require.Equal(t, "u2", comments[0].AuthorID)
	require.Equal(t, "Bob", comments[0].AuthorName)
	require.NotEmpty(t, comments[0].ID)

	comments, err = svc.AddComment(ctx, post.ID, "u1", "Welcome")
	require.NoError(t, err)
	require.Len(t, comments, 2)
	require.Equal(t, "Welcome", comments[0].Text)

	_, err = svc.AddComment(ctx, post.ID, "u1", "")
	requireStatus(t, err, http.StatusBadRequest)

	_, err = svc.AddComment(ctx, "missing", "u1", "Hi")
	requireStatus(t, err, http.StatusNotFound)
}

func TestDeleteCommentOwnershipIsPerComment(t *testing.T) {
	svc, _ := newPostFixture(t)
	ctx := context.Background()

	post, err := svc.Create(ctx, "u1", "Hello")
	require.NoError(t, err)
	comments, err := svc.AddComment(ctx, post.ID, "u2", "Hi")
	require.NoError(t, err)
	commentID := comments[0].ID

	// Owning the post does not grant comment-delete rights.
	_, err = svc.DeleteComment(ctx, post.ID, commentID, "u1")
	requireStatus(t, err, http.StatusUnauthorized)

	got, err := svc.GetByID(ctx, post.ID)
	require.NoError(t, err)
	require.Len(t, got.Comments, 1)

	remaining, err := svc.DeleteComment(ctx, post.ID, commentID, "u2")
	require.NoError(t, err)
	require.Empty(t, remaining)

	_, err = svc.DeleteComment(ctx, post.ID, "missing", "u2")
	requireStatus(t, err, http.StatusNotFound)
}
