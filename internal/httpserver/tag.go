package httpserver

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/Skotchmaster/bookly/internal/service"
	"github.com/Skotchmaster/bookly/internal/transport"
)

type TagHTTP struct {
	Svc *service.TagService
}

func (h *TagHTTP) List(c echo.Context) error {
	tags, err := h.Svc.List(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, tags)
}

func (h *TagHTTP) Create(c echo.Context) error {
	var req transport.TagRequest
	if err := bind(c, &req); err != nil {
		return err
	}
	tag, err := h.Svc.Create(c.Request().Context(), req)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, tag)
}

func (h *TagHTTP) AddToBook(c echo.Context) error {
	bookUID, err := pathUID(c, "uid")
	if err != nil {
		return err
	}
	var req transport.TagsRequest
	if err := bind(c, &req); err != nil {
		return err
	}
	book, err := h.Svc.AddToBook(c.Request().Context(), bookUID, req)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, book)
}

func (h *TagHTTP) Update(c echo.Context) error {
	uid, err := pathUID(c, "uid")
	if err != nil {
		return err
	}
	var req transport.TagRequest
	if err := bind(c, &req); err != nil {
		return err
	}
	tag, err := h.Svc.Update(c.Request().Context(), uid, req)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, tag)
}

func (h *TagHTTP) Delete(c echo.Context) error {
	uid, err := pathUID(c, "uid")
	if err != nil {
		return err
	}
	if err := h.Svc.Delete(c.Request().Context(), uid); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}
