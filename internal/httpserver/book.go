package httpserver

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/Skotchmaster/bookly/internal/domain"
	"github.com/Skotchmaster/bookly/internal/logging"
	"github.com/Skotchmaster/bookly/internal/middleware/auth"
	"github.com/Skotchmaster/bookly/internal/service"
	"github.com/Skotchmaster/bookly/internal/transport"
)

type BookHTTP struct {
	Svc *service.BookService
}

func (h *BookHTTP) List(c echo.Context) error {
	page, size := pageParams(c)
	res, err := h.Svc.List(c.Request().Context(), page, size)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, res)
}

func (h *BookHTTP) Search(c echo.Context) error {
	page, size := pageParams(c)
	res, err := h.Svc.Search(c.Request().Context(), c.QueryParam("q"), page, size)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, res)
}

func (h *BookHTTP) ByUser(c echo.Context) error {
	uid, err := pathUID(c, "uid")
	if err != nil {
		return err
	}
	books, err := h.Svc.ListByUser(c.Request().Context(), uid)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, books)
}

func (h *BookHTTP) Get(c echo.Context) error {
	uid, err := pathUID(c, "uid")
	if err != nil {
		return err
	}
	book, err := h.Svc.Get(c.Request().Context(), uid)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, book)
}

func (h *BookHTTP) Create(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "book.create")

	user, ok := auth.UserFrom(c)
	if !ok {
		return domain.ErrNotAuthenticated
	}

	var req transport.CreateBookRequest
	if err := bind(c, &req); err != nil {
		l.Warn("book_create_error", "status", 400, "reason", "invalid body", "error", err)
		return err
	}

	book, err := h.Svc.Create(ctx, user.UID, req)
	if err != nil {
		return err
	}

	l.Info("book_create_success", "book_uid", book.UID)
	return c.JSON(http.StatusCreated, book)
}

func (h *BookHTTP) Patch(c echo.Context) error {
	ctx := c.Request().Context()
	uid, err := pathUID(c, "uid")
	if err != nil {
		return err
	}

	var req transport.PatchBookRequest
	if err := bind(c, &req); err != nil {
		return err
	}

	book, err := h.Svc.Update(ctx, uid, req)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, book)
}

func (h *BookHTTP) Delete(c echo.Context) error {
	uid, err := pathUID(c, "uid")
	if err != nil {
		return err
	}
	if err := h.Svc.Delete(c.Request().Context(), uid); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}
