package service

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Skotchmaster/bookly/internal/domain"
	"github.com/Skotchmaster/bookly/internal/transport"
)

func TestReviewService_AddListGet(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	owner := env.signup(t, "bob@example.com")
	book, err := env.books.Create(ctx, owner.UID, bookReq("Go in Practice"))
	require.NoError(t, err)

	review, err := env.reviews.Add(ctx, "bob@example.com", book.UID, transport.CreateReviewRequest{Rating: 4, ReviewText: "solid"})
	require.NoError(t, err)
	require.NotNil(t, review.UserUID)
	assert.Equal(t, owner.UID, *review.UserUID)
	require.NotNil(t, review.BookUID)
	assert.Equal(t, book.UID, *review.BookUID)

	got, err := env.reviews.Get(ctx, review.UID)
	require.NoError(t, err)
	assert.Equal(t, "solid", got.ReviewText)

	page, err := env.reviews.List(ctx, 1, 10)
	require.NoError(t, err)
	assert.Len(t, page.Data, 1)

	withReviews, err := env.books.Get(ctx, book.UID)
	require.NoError(t, err)
	assert.Len(t, withReviews.Reviews, 1)
}

func TestReviewService_Add_MissingBook(t *testing.T) {
	env := newTestEnv(t)
	env.signup(t, "bob@example.com")

	_, err := env.reviews.Add(context.Background(), "bob@example.com", uuid.New(), transport.CreateReviewRequest{Rating: 3, ReviewText: "?"})
	assert.ErrorIs(t, err, domain.ErrBookNotFound)
}

func TestReviewService_Delete_Permissions(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	author := env.signup(t, "author@example.com")
	other := env.signup(t, "other@example.com")
	admin := env.signup(t, "admin@example.com")
	env.makeAdmin(t, admin)
	admin, err := env.users.FindByEmail(ctx, "admin@example.com")
	require.NoError(t, err)

	book, err := env.books.Create(ctx, author.UID, bookReq("Learning Go"))
	require.NoError(t, err)
	add := func() uuid.UUID {
		r, err := env.reviews.Add(ctx, "author@example.com", book.UID, transport.CreateReviewRequest{Rating: 5, ReviewText: "great"})
		require.NoError(t, err)
		return r.UID
	}

	first := add()
	assert.ErrorIs(t, env.reviews.Delete(ctx, first, other), domain.ErrInsufficientRole)
	require.NoError(t, env.reviews.Delete(ctx, first, author))
	_, err = env.reviews.Get(ctx, first)
	assert.ErrorIs(t, err, domain.ErrReviewNotFound)

	second := add()
	require.NoError(t, env.reviews.Delete(ctx, second, admin))

	assert.ErrorIs(t, env.reviews.Delete(ctx, uuid.New(), admin), domain.ErrReviewNotFound)
}
