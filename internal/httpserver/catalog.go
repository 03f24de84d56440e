package httpserver

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/dmoshkin/clothes_shop/internal/events"
	"github.com/dmoshkin/clothes_shop/internal/middleware/auth"
	"github.com/dmoshkin/clothes_shop/internal/search"
	"github.com/dmoshkin/clothes_shop/internal/service"
	"github.com/dmoshkin/clothes_shop/internal/transport"
	"github.com/dmoshkin/clothes_shop/internal/util"
)

type ProductHandler struct {
	Svc      *service.CatalogService
	Producer *events.Producer
	Indexer  *search.Indexer
}

func (h *ProductHandler) publish(c echo.Context, event map[string]any) {
	if h.Producer == nil {
		return
	}
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()
	if err := h.Producer.PublishEvent(ctx, events.TopicProducts, fmt.Sprint(event["productID"]), event); err != nil {
		c.Logger().Errorf("kafka publish error: %v", err)
	}
}

func (h *ProductHandler) GetProduct(c echo.Context) error {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil || id <= 0 {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}

	prod, err := h.Svc.GetProduct(c.Request().Context(), uint(id))
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, prod)
}

func (h *ProductHandler) GetProducts(c echo.Context) error {
	page := util.ParseIntDefault(c.QueryParam("page"), 1)
	size := util.ParseIntDefault(c.QueryParam("size"), util.DefaultPageSize)
	offset, limit := util.Calculate(page, size)

	total, items, err := h.Svc.GetProducts(c.Request().Context(), offset, limit)
	if err != nil {
		return httpError(err)
	}

	return c.JSON(http.StatusOK, map[string]any{
		"data": items,
		"meta": map[string]any{
			"page":        page,
			"size":        limit,
			"total":       total,
			"total_pages": (total + int64(limit) - 1) / int64(limit),
			"has_prev":    page > 1,
			"has_next":    int64(offset+limit) < total,
		},
	})
}

func (h *ProductHandler) CreateProduct(c echo.Context) error {
	var req transport.CreateProductRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}

	prod, err := h.Svc.CreateProduct(c.Request().Context(), req)
	if err != nil {
		return httpError(err)
	}

	h.index(c, prod.ID)
	h.publish(c, map[string]any{
		"type":      "product_created",
		"productID": prod.ID,
		"name":      prod.Name,
	})
	return c.JSON(http.StatusCreated, prod)
}

func (h *ProductHandler) PatchProduct(c echo.Context) error {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil || id <= 0 {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}

	var req transport.PatchProductRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}

	prod, err := h.Svc.PatchProduct(c.Request().Context(), req, uint(id))
	if err != nil {
		return httpError(err)
	}

	h.index(c, prod.ID)
	h.publish(c, map[string]any{
		"type":      "product_updated",
		"productID": prod.ID,
		"name":      prod.Name,
	})
	return c.JSON(http.StatusOK, prod)
}

func (h *ProductHandler) DeleteProduct(c echo.Context) error {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil || id <= 0 {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}

	if err := h.Svc.DeleteProduct(c.Request().Context(), uint(id)); err != nil {
		return httpError(err)
	}

	if h.Indexer != nil {
		if err := h.Indexer.DeleteProduct(c.Request().Context(), uint(id)); err != nil {
			c.Logger().Errorf("index delete error: %v", err)
		}
	}
	h.publish(c, map[string]any{
		"type":      "product_deleted",
		"productID": id,
	})
	return c.NoContent(http.StatusNoContent)
}

func (h *ProductHandler) AddSize(c echo.Context) error {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil || id <= 0 {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}

	var req transport.CreateSizeRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}

	size, err := h.Svc.AddSize(c.Request().Context(), uint(id), req)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusCreated, size)
}

func (h *ProductHandler) SetStock(c echo.Context) error {
	sizeID, err := strconv.Atoi(c.Param("sizeID"))
	if err != nil || sizeID <= 0 {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid size id")
	}

	var req transport.SetStockRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}

	if err := h.Svc.SetStock(c.Request().Context(), uint(sizeID), req.Stock); err != nil {
		return httpError(err)
	}
	return c.NoContent(http.StatusNoContent)
}

func (h *ProductHandler) CreateBrand(c echo.Context) error {
	var req struct {
		Name string `json:"name"`
	}
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}

	brand, err := h.Svc.CreateBrand(c.Request().Context(), req.Name)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusCreated, brand)
}

func (h *ProductHandler) ListBrands(c echo.Context) error {
	brands, err := h.Svc.ListBrands(c.Request().Context())
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, brands)
}

func (h *ProductHandler) CreateAudience(c echo.Context) error {
	var req struct {
		Name string `json:"name"`
	}
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}

	audience, err := h.Svc.CreateAudience(c.Request().Context(), req.Name)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusCreated, audience)
}

func (h *ProductHandler) ListAudiences(c echo.Context) error {
	audiences, err := h.Svc.ListAudiences(c.Request().Context())
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, audiences)
}

func (h *ProductHandler) CreateReview(c echo.Context) error {
	userID, err := auth.UserID(c)
	if err != nil {
		return err
	}

	productID, err := strconv.Atoi(c.Param("id"))
	if err != nil || productID <= 0 {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}

	var req transport.CreateReviewRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}

	review, err := h.Svc.CreateReview(c.Request().Context(), userID, uint(productID), req)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusCreated, review)
}

func (h *ProductHandler) ListReviews(c echo.Context) error {
	productID, err := strconv.Atoi(c.Param("id"))
	if err != nil || productID <= 0 {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}

	page := util.ParseIntDefault(c.QueryParam("page"), 1)
	size := util.ParseIntDefault(c.QueryParam("size"), util.DefaultPageSize)
	offset, limit := util.Calculate(page, size)

	total, reviews, err := h.Svc.ListReviews(c.Request().Context(), uint(productID), offset, limit)
	if err != nil {
		return httpError(err)
	}

	return c.JSON(http.StatusOK, map[string]any{
		"data": reviews,
		"meta": map[string]any{"page": page, "size": limit, "total": total},
	})
}

func (h *ProductHandler) index(c echo.Context, productID uint) {
	if h.Indexer == nil {
		return
	}
	prod, err := h.Svc.GetProduct(c.Request().Context(), productID)
	if err != nil {
		c.Logger().Errorf("index read error: %v", err)
		return
	}
	if err := h.Indexer.IndexProduct(c.Request().Context(), prod); err != nil {
		c.Logger().Errorf("index error: %v", err)
	}
}
