package repo

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Skotchmaster/bookly/internal/db/dbtest"
	"github.com/Skotchmaster/bookly/internal/domain"
	"github.com/Skotchmaster/bookly/internal/models"
	"github.com/Skotchmaster/bookly/internal/transport"
)

func newTestRepo(t *testing.T) *GormRepo {
	t.Helper()
	return New(dbtest.Open(t))
}

func seedUser(t *testing.T, r *GormRepo, email string) *models.User {
	t.Helper()

	u := &models.User{
		Username:     "bob",
		Email:        email,
		FirstName:    "Bob",
		LastName:     "Builder",
		Role:         models.RoleUser,
		PasswordHash: "digest",
	}
	require.NoError(t, r.CreateUser(context.Background(), u))
	return u
}

func seedBook(t *testing.T, r *GormRepo, title, author string, owner *models.User) *models.Book {
	t.Helper()

	b := &models.Book{
		Title:         title,
		Author:        author,
		Publisher:     "Penguin",
		PublishedDate: time.Date(2001, 5, 1, 0, 0, 0, 0, time.UTC),
		PageCount:     300,
		Language:      "en",
	}
	if owner != nil {
		b.UserUID = &owner.UID
	}
	require.NoError(t, r.CreateBook(context.Background(), b))
	return b
}

func TestUserByEmail(t *testing.T) {
	r := newTestRepo(t)
	ctx := context.Background()

	u := seedUser(t, r, "bob@example.com")
	assert.NotEqual(t, uuid.Nil, u.UID)

	got, err := r.UserByEmail(ctx, "bob@example.com")
	require.NoError(t, err)
	assert.Equal(t, u.UID, got.UID)

	_, err = r.UserByEmail(ctx, "nobody@example.com")
	assert.ErrorIs(t, err, domain.ErrUserNotFound)
}

func TestUserExists(t *testing.T) {
	r := newTestRepo(t)
	ctx := context.Background()

	ok, err := r.UserExists(ctx, "bob@example.com")
	require.NoError(t, err)
	assert.False(t, ok)

	seedUser(t, r, "bob@example.com")

	ok, err = r.UserExists(ctx, "bob@example.com")
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestCreateUser_DuplicateEmail(t *testing.T) {
	r := newTestRepo(t)
	seedUser(t, r, "bob@example.com")

	dup := &models.User{Username: "bob2", Email: "bob@example.com", PasswordHash: "x"}
	err := r.CreateUser(context.Background(), dup)
	assert.ErrorIs(t, err, domain.ErrUserAlreadyExists)
}

func TestUpdateUser(t *testing.T) {
	r := newTestRepo(t)
	ctx := context.Background()
	u := seedUser(t, r, "bob@example.com")

	require.NoError(t, r.UpdateUser(ctx, u, map[string]any{"is_verified": true}))
	assert.True(t, u.IsVerified)

	got, err := r.UserByEmail(ctx, "bob@example.com")
	require.NoError(t, err)
	assert.True(t, got.IsVerified)

	ghost := &models.User{UID: uuid.New()}
	assert.ErrorIs(t, r.UpdateUser(ctx, ghost, map[string]any{"is_verified": true}), domain.ErrUserNotFound)
}

func TestUserProfile_LoadsBooksAndReviews(t *testing.T) {
	r := newTestRepo(t)
	ctx := context.Background()
	u := seedUser(t, r, "bob@example.com")
	b := seedBook(t, r, "Dune", "Herbert", u)
	require.NoError(t, r.CreateReview(ctx, &models.Review{Rating: 4, ReviewText: "good", UserUID: &u.UID, BookUID: &b.UID}))

	got, err := r.UserProfile(ctx, "bob@example.com")
	require.NoError(t, err)
	require.Len(t, got.Books, 1)
	require.Len(t, got.Reviews, 1)
	assert.Equal(t, "Dune", got.Books[0].Title)
}

func TestBooks_CRUD(t *testing.T) {
	r := newTestRepo(t)
	ctx := context.Background()
	u := seedUser(t, r, "bob@example.com")
	b := seedBook(t, r, "Dune", "Herbert", u)
	seedBook(t, r, "Emma", "Austen", nil)

	total, items, err := r.ListBooks(ctx, 0, 10)
	require.NoError(t, err)
	assert.EqualValues(t, 2, total)
	assert.Len(t, items, 2)

	mine, err := r.BooksByUser(ctx, u.UID)
	require.NoError(t, err)
	require.Len(t, mine, 1)
	assert.Equal(t, b.UID, mine[0].UID)

	title := "Dune Messiah"
	patched, err := r.PatchBook(ctx, b.UID, transport.PatchBookRequest{Title: &title})
	require.NoError(t, err)
	assert.Equal(t, "Dune Messiah", patched.Title)
	assert.Equal(t, "Herbert", patched.Author)

	_, err = r.PatchBook(ctx, uuid.New(), transport.PatchBookRequest{Title: &title})
	assert.ErrorIs(t, err, domain.ErrBookNotFound)

	require.NoError(t, r.DeleteBook(ctx, b.UID))
	_, err = r.BookByUID(ctx, b.UID)
	assert.ErrorIs(t, err, domain.ErrBookNotFound)
	assert.ErrorIs(t, r.DeleteBook(ctx, b.UID), domain.ErrBookNotFound)
}

func TestBooksByUIDs_KeepsOrder(t *testing.T) {
	r := newTestRepo(t)
	ctx := context.Background()
	a := seedBook(t, r, "A", "X", nil)
	b := seedBook(t, r, "B", "Y", nil)

	items, err := r.BooksByUIDs(ctx, []uuid.UUID{b.UID, uuid.New(), a.UID})
	require.NoError(t, err)
	require.Len(t, items, 2)
	assert.Equal(t, b.UID, items[0].UID)
	assert.Equal(t, a.UID, items[1].UID)
}

func TestSearchBooks(t *testing.T) {
	r := newTestRepo(t)
	ctx := context.Background()
	seedBook(t, r, "Dune", "Frank Herbert", nil)
	seedBook(t, r, "Emma", "Jane Austen", nil)

	total, items, err := r.SearchBooks(ctx, "HERB", 0, 10)
	require.NoError(t, err)
	assert.EqualValues(t, 1, total)
	require.Len(t, items, 1)
	assert.Equal(t, "Dune", items[0].Title)
}

func TestReviews(t *testing.T) {
	r := newTestRepo(t)
	ctx := context.Background()
	u := seedUser(t, r, "bob@example.com")
	b := seedBook(t, r, "Dune", "Herbert", u)

	rv := &models.Review{Rating: 5, ReviewText: "classic", UserUID: &u.UID, BookUID: &b.UID}
	require.NoError(t, r.CreateReview(ctx, rv))

	got, err := r.ReviewByUID(ctx, rv.UID)
	require.NoError(t, err)
	assert.Equal(t, "classic", got.ReviewText)

	book, err := r.BookByUID(ctx, b.UID)
	require.NoError(t, err)
	assert.Len(t, book.Reviews, 1)

	require.NoError(t, r.DeleteReview(ctx, rv.UID))
	_, err = r.ReviewByUID(ctx, rv.UID)
	assert.ErrorIs(t, err, domain.ErrReviewNotFound)
	assert.ErrorIs(t, r.DeleteReview(ctx, rv.UID), domain.ErrReviewNotFound)
}

func TestTags(t *testing.T) {
	r := newTestRepo(t)
	ctx := context.Background()
	b := seedBook(t, r, "Dune", "Herbert", nil)

	scifi := &models.Tag{Name: "scifi"}
	require.NoError(t, r.CreateTag(ctx, scifi))

	taken, err := r.TagNameTaken(ctx, "scifi")
	require.NoError(t, err)
	assert.True(t, taken)

	book, err := r.AddTagsToBook(ctx, b.UID, []string{"scifi", "classic"})
	require.NoError(t, err)
	assert.Len(t, book.Tags, 2)

	tags, err := r.ListTags(ctx)
	require.NoError(t, err)
	assert.Len(t, tags, 2)

	renamed, err := r.RenameTag(ctx, scifi.UID, "sf")
	require.NoError(t, err)
	assert.Equal(t, "sf", renamed.Name)

	require.NoError(t, r.DeleteTag(ctx, scifi.UID))
	book, err = r.BookByUID(ctx, b.UID)
	require.NoError(t, err)
	require.Len(t, book.Tags, 1)
	assert.Equal(t, "classic", book.Tags[0].Name)

	assert.ErrorIs(t, r.DeleteTag(ctx, scifi.UID), domain.ErrTagNotFound)

	_, err = r.AddTagsToBook(ctx, uuid.New(), []string{"x"})
	assert.ErrorIs(t, err, domain.ErrBookNotFound)
}
