package httpserver

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/dmoshkin/clothes_shop/internal/models"
	"github.com/dmoshkin/clothes_shop/internal/service"
	"github.com/dmoshkin/clothes_shop/internal/transport"
)

type AdminHandler struct {
	Status  *service.StatusService
	Reports *service.ReportService
}

func (h *AdminHandler) UpdateOrderStatus(c echo.Context) error {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil || id <= 0 {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}

	var req transport.UpdateOrderStatusRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}

	target, err := models.ParseOrderStatus(req.Status)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	order, err := h.Status.UpdateStatus(c.Request().Context(), uint(id), target, req.Note)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, order)
}

func (h *AdminHandler) Dashboard(c echo.Context) error {
	dashboard, err := h.Reports.Dashboard(c.Request().Context())
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, dashboard)
}
