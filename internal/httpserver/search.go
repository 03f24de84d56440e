package httpserver

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/dmoshkin/clothes_shop/internal/search"
	"github.com/dmoshkin/clothes_shop/internal/util"
)

type SearchHandler struct {
	Indexer *search.Indexer
}

func (h *SearchHandler) Search(c echo.Context) error {
	q := c.QueryParam("q")
	if q == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "query required")
	}

	page := util.ParseIntDefault(c.QueryParam("page"), 1)
	size := util.ParseIntDefault(c.QueryParam("size"), util.DefaultPageSize)
	from, limit := util.Calculate(page, size)

	total, hits, err := h.Indexer.Search(c.Request().Context(), q, from, limit)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadGateway, "search unavailable")
	}

	return c.JSON(http.StatusOK, map[string]any{
		"data": hits,
		"meta": map[string]any{"page": page, "size": limit, "total": total},
	})
}
