package httpserver

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/Skotchmaster/bookly/internal/domain"
	"github.com/Skotchmaster/bookly/internal/middleware/auth"
	"github.com/Skotchmaster/bookly/internal/service"
	"github.com/Skotchmaster/bookly/internal/transport"
)

type ReviewHTTP struct {
	Svc *service.ReviewService
}

func (h *ReviewHTTP) Add(c echo.Context) error {
	user, ok := auth.UserFrom(c)
	if !ok {
		return domain.ErrNotAuthenticated
	}
	bookUID, err := pathUID(c, "uid")
	if err != nil {
		return err
	}

	var req transport.CreateReviewRequest
	if err := bind(c, &req); err != nil {
		return err
	}

	review, err := h.Svc.Add(c.Request().Context(), user.Email, bookUID, req)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, review)
}

func (h *ReviewHTTP) List(c echo.Context) error {
	page, size := pageParams(c)
	res, err := h.Svc.List(c.Request().Context(), page, size)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, res)
}

func (h *ReviewHTTP) Get(c echo.Context) error {
	uid, err := pathUID(c, "uid")
	if err != nil {
		return err
	}
	review, err := h.Svc.Get(c.Request().Context(), uid)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, review)
}

func (h *ReviewHTTP) Delete(c echo.Context) error {
	user, ok := auth.UserFrom(c)
	if !ok {
		return domain.ErrNotAuthenticated
	}
	uid, err := pathUID(c, "uid")
	if err != nil {
		return err
	}
	if err := h.Svc.Delete(c.Request().Context(), uid, user); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}
