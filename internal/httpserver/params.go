package httpserver

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/Skotchmaster/bookly/internal/logging"
	"github.com/Skotchmaster/bookly/internal/util"
)

func pathUID(c echo.Context, name string) (uuid.UUID, error) {
	uid, err := uuid.Parse(c.Param(name))
	if err != nil {
		logging.FromContext(c.Request().Context()).Warn("bad_path_param", "status", 400, "param", name, "error", err)
		return uuid.Nil, echo.NewHTTPError(http.StatusBadRequest, name+" is not a uuid")
	}
	return uid, nil
}

func pageParams(c echo.Context) (page, size int) {
	page = util.ParseIntDefault(c.QueryParam("page"), 1)
	size = util.ParseIntDefault(c.QueryParam("size"), util.DefaultPageSize)
	return page, size
}
