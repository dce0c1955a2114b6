package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/Skotchmaster/bookly/internal/domain"
	"github.com/Skotchmaster/bookly/internal/logging"
	"github.com/Skotchmaster/bookly/internal/models"
	"github.com/Skotchmaster/bookly/internal/mykafka"
	"github.com/Skotchmaster/bookly/internal/repo"
	"github.com/Skotchmaster/bookly/internal/transport"
	"github.com/Skotchmaster/bookly/internal/util"
)

const publishedDateLayout = "2006-01-02"

// BookIndex is a full-text index kept in sync with the books table.
type BookIndex interface {
	IndexBook(ctx context.Context, book *models.Book) error
	DeleteBook(ctx context.Context, uid uuid.UUID) error
	SearchBooks(ctx context.Context, q string, offset, limit int) (int64, []uuid.UUID, error)
}

// BookService mirrors mutations into Index when one is set. Index failures
// are logged only; the database stays the source of truth.
type BookService struct {
	Repo   *repo.GormRepo
	Index  BookIndex
	Events mykafka.Publisher
}

func (s *BookService) List(ctx context.Context, page, size int) (*transport.Page[models.Book], error) {
	offset, limit := util.Calculate(page, size)
	total, items, err := s.Repo.ListBooks(ctx, offset, limit)
	if err != nil {
		return nil, err
	}
	return &transport.Page[models.Book]{Data: items, Meta: util.Meta(page, limit, total)}, nil
}

func (s *BookService) ListByUser(ctx context.Context, userUID uuid.UUID) ([]models.Book, error) {
	return s.Repo.BooksByUser(ctx, userUID)
}

func (s *BookService) Get(ctx context.Context, uid uuid.UUID) (*models.Book, error) {
	return s.Repo.BookByUID(ctx, uid)
}

func (s *BookService) Create(ctx context.Context, userUID uuid.UUID, req transport.CreateBookRequest) (*models.Book, error) {
	published, err := time.Parse(publishedDateLayout, req.PublishedDate)
	if err != nil {
		return nil, fmt.Errorf("%w: published_date: %v", domain.ErrValidation, err)
	}

	book := &models.Book{
		Title:         req.Title,
		Author:        req.Author,
		Publisher:     req.Publisher,
		PublishedDate: published,
		PageCount:     req.PageCount,
		Language:      req.Language,
		UserUID:       &userUID,
	}
	if err := s.Repo.CreateBook(ctx, book); err != nil {
		return nil, err
	}

	s.index(ctx, book)
	s.publishBook(ctx, mykafka.EventBookCreated, book.UID, book.Title)
	return book, nil
}

func (s *BookService) Update(ctx context.Context, uid uuid.UUID, req transport.PatchBookRequest) (*models.Book, error) {
	book, err := s.Repo.PatchBook(ctx, uid, req)
	if err != nil {
		return nil, err
	}

	s.index(ctx, book)
	s.publishBook(ctx, mykafka.EventBookUpdated, book.UID, book.Title)
	return book, nil
}

func (s *BookService) Delete(ctx context.Context, uid uuid.UUID) error {
	if err := s.Repo.DeleteBook(ctx, uid); err != nil {
		return err
	}

	if s.Index != nil {
		if err := s.Index.DeleteBook(ctx, uid); err != nil {
			logging.FromContext(ctx).Error("book_unindex_failed", "book_uid", uid, "error", err)
		}
	}
	s.publishBook(ctx, mykafka.EventBookDeleted, uid, "")
	return nil
}

// Search uses the index when configured and falls back to SQL when it is
// absent or failing.
func (s *BookService) Search(ctx context.Context, q string, page, size int) (*transport.Page[models.Book], error) {
	q = strings.TrimSpace(q)
	if q == "" {
		return nil, fmt.Errorf("%w: empty query", domain.ErrValidation)
	}
	offset, limit := util.Calculate(page, size)

	if s.Index != nil {
		total, uids, err := s.Index.SearchBooks(ctx, q, offset, limit)
		if err == nil {
			items, err := s.Repo.BooksByUIDs(ctx, uids)
			if err != nil {
				return nil, err
			}
			return &transport.Page[models.Book]{Data: items, Meta: util.Meta(page, limit, total)}, nil
		}
		logging.FromContext(ctx).Warn("book_search_index_failed", "reason", "falling back to sql", "error", err)
	}

	total, items, err := s.Repo.SearchBooks(ctx, q, offset, limit)
	if err != nil {
		return nil, err
	}
	return &transport.Page[models.Book]{Data: items, Meta: util.Meta(page, limit, total)}, nil
}

func (s *BookService) index(ctx context.Context, book *models.Book) {
	if s.Index == nil {
		return
	}
	if err := s.Index.IndexBook(ctx, book); err != nil {
		logging.FromContext(ctx).Error("book_index_failed", "book_uid", book.UID, "error", err)
	}
}

func (s *BookService) publishBook(ctx context.Context, eventType string, uid uuid.UUID, title string) {
	if s.Events == nil {
		return
	}
	ctx, cancel := context.WithTimeout(ctx, publishTimeout)
	defer cancel()

	event := mykafka.BookEvent{Type: eventType, BookUID: uid.String(), Title: title, At: time.Now().UTC()}
	if err := s.Events.PublishEvent(ctx, mykafka.BookEventsTopic, event.BookUID, event); err != nil {
		logging.FromContext(ctx).Error("kafka_publish_failed", "topic", mykafka.BookEventsTopic, "type", eventType, "error", err)
	}
}
