package es

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/elastic/go-elasticsearch/v9"
	"github.com/elastic/go-elasticsearch/v9/esapi"
	"github.com/google/uuid"

	"github.com/Skotchmaster/bookly/internal/models"
)

type bookDoc struct {
	UID       string `json:"uid"`
	Title     string `json:"title"`
	Author    string `json:"author"`
	Publisher string `json:"publisher"`
	Language  string `json:"language"`
}

// BookIndex mirrors books into an Elasticsearch index and answers
// full-text queries with book uids.
type BookIndex struct {
	client *elasticsearch.Client
	index  string
}

func NewBookIndex(client *elasticsearch.Client, index string) *BookIndex {
	return &BookIndex{client: client, index: index}
}

func (b *BookIndex) IndexBook(ctx context.Context, book *models.Book) error {
	var buf bytes.Buffer
	doc := bookDoc{
		UID:       book.UID.String(),
		Title:     book.Title,
		Author:    book.Author,
		Publisher: book.Publisher,
		Language:  book.Language,
	}
	if err := json.NewEncoder(&buf).Encode(doc); err != nil {
		return fmt.Errorf("es: encode book: %w", err)
	}

	res, err := b.client.Index(b.index, &buf,
		b.client.Index.WithContext(ctx),
		b.client.Index.WithDocumentID(doc.UID),
	)
	if err != nil {
		return fmt.Errorf("es: index book: %w", err)
	}
	return checkResponse(res, "index book")
}

// DeleteBook treats a missing document as already deleted.
func (b *BookIndex) DeleteBook(ctx context.Context, uid uuid.UUID) error {
	res, err := b.client.Delete(b.index, uid.String(), b.client.Delete.WithContext(ctx))
	if err != nil {
		return fmt.Errorf("es: delete book: %w", err)
	}
	if res.StatusCode == http.StatusNotFound {
		res.Body.Close()
		return nil
	}
	return checkResponse(res, "delete book")
}

func (b *BookIndex) SearchBooks(ctx context.Context, q string, offset, limit int) (int64, []uuid.UUID, error) {
	body := map[string]any{
		"query": map[string]any{
			"multi_match": map[string]any{
				"query":     q,
				"fields":    []string{"title^2", "author", "publisher"},
				"fuzziness": "AUTO",
			},
		},
		"from":    offset,
		"size":    limit,
		"_source": []string{"uid"},
	}

	var buf bytes.Buffer
	if err := json.NewEncoder(&buf).Encode(body); err != nil {
		return 0, nil, fmt.Errorf("es: encode query: %w", err)
	}

	res, err := b.client.Search(
		b.client.Search.WithContext(ctx),
		b.client.Search.WithIndex(b.index),
		b.client.Search.WithBody(&buf),
	)
	if err != nil {
		return 0, nil, fmt.Errorf("es: search: %w", err)
	}
	defer res.Body.Close()
	if res.IsError() {
		msg, _ := io.ReadAll(res.Body)
		return 0, nil, fmt.Errorf("es: search: %s: %s", res.Status(), msg)
	}

	var r struct {
		Hits struct {
			Total struct {
				Value int64 `json:"value"`
			} `json:"total"`
			Hits []struct {
				Source bookDoc `json:"_source"`
			} `json:"hits"`
		} `json:"hits"`
	}
	if err := json.NewDecoder(res.Body).Decode(&r); err != nil {
		return 0, nil, fmt.Errorf("es: decode search: %w", err)
	}

	uids := make([]uuid.UUID, 0, len(r.Hits.Hits))
	for _, hit := range r.Hits.Hits {
		uid, err := uuid.Parse(hit.Source.UID)
		if err != nil {
			continue
		}
		uids = append(uids, uid)
	}
	return r.Hits.Total.Value, uids, nil
}

func checkResponse(res *esapi.Response, op string) error {
	defer res.Body.Close()
	if res.IsError() {
		msg, _ := io.ReadAll(res.Body)
		return fmt.Errorf("es: %s: %s: %s", op, res.Status(), msg)
	}
	return nil
}
