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
	"github.com/dmoshkin/clothes_shop/internal/service"
	"github.com/dmoshkin/clothes_shop/internal/transport"
	"github.com/dmoshkin/clothes_shop/internal/util"
)

type CheckoutHandler struct {
	Checkout *service.CheckoutService
	Cart     *service.CartService
	Payments *service.PaymentService
	Producer *events.Producer
}

func (h *CheckoutHandler) publish(c echo.Context, userID uint, event map[string]any) {
	if h.Producer == nil {
		return
	}
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()
	if err := h.Producer.PublishEvent(ctx, events.TopicOrders, fmt.Sprint(userID), event); err != nil {
		c.Logger().Errorf("kafka publish error: %v", err)
	}
}

// PlaceOrder creates an order from explicit order lines.
func (h *CheckoutHandler) PlaceOrder(c echo.Context) error {
	userID, err := auth.UserID(c)
	if err != nil {
		return err
	}

	var req transport.PlaceOrderRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}

	resp, err := h.Checkout.PlaceOrder(c.Request().Context(), userID, req)
	if err != nil {
		return httpError(err)
	}

	h.publish(c, userID, map[string]any{
		"type":    "order_created",
		"userID":  userID,
		"orderID": resp.OrderID,
		"total":   resp.Total,
	})
	return c.JSON(http.StatusCreated, resp)
}

// PlaceOrderFromCart drains the cart into an order.
func (h *CheckoutHandler) PlaceOrderFromCart(c echo.Context) error {
	userID, err := auth.UserID(c)
	if err != nil {
		return err
	}

	var req transport.PlaceOrderRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}

	lines, err := h.Cart.Lines(c.Request().Context(), userID)
	if err != nil {
		return httpError(err)
	}
	req.Items = lines

	resp, err := h.Checkout.PlaceOrder(c.Request().Context(), userID, req)
	if err != nil {
		return httpError(err)
	}

	if err := h.Cart.ClearCart(c.Request().Context(), userID); err != nil {
		c.Logger().Errorf("cart clear error: %v", err)
	}

	h.publish(c, userID, map[string]any{
		"type":    "order_created",
		"userID":  userID,
		"orderID": resp.OrderID,
		"total":   resp.Total,
	})
	return c.JSON(http.StatusCreated, resp)
}

func (h *CheckoutHandler) GetOrder(c echo.Context) error {
	userID, err := auth.UserID(c)
	if err != nil {
		return err
	}

	id, err := strconv.Atoi(c.Param("id"))
	if err != nil || id <= 0 {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}

	resp, err := h.Checkout.GetOrder(c.Request().Context(), uint(id), userID)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, resp)
}

func (h *CheckoutHandler) ListOrders(c echo.Context) error {
	userID, err := auth.UserID(c)
	if err != nil {
		return err
	}

	page := util.ParseIntDefault(c.QueryParam("page"), 1)
	size := util.ParseIntDefault(c.QueryParam("size"), util.DefaultPageSize)
	offset, limit := util.Calculate(page, size)

	total, orders, err := h.Checkout.ListOrders(c.Request().Context(), userID, offset, limit)
	if err != nil {
		return httpError(err)
	}

	return c.JSON(http.StatusOK, map[string]any{
		"data": orders,
		"meta": map[string]any{"page": page, "size": limit, "total": total},
	})
}

func (h *CheckoutHandler) CreateIntent(c echo.Context) error {
	userID, err := auth.UserID(c)
	if err != nil {
		return err
	}

	var req transport.CreateIntentRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}

	resp, err := h.Payments.CreateIntent(c.Request().Context(), userID, req.OrderID)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusCreated, resp)
}

func (h *CheckoutHandler) ConfirmPayment(c echo.Context) error {
	userID, err := auth.UserID(c)
	if err != nil {
		return err
	}

	var req transport.ConfirmPaymentRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}

	pay, err := h.Payments.ConfirmAndStore(c.Request().Context(), userID, req.OrderID, req.IntentID)
	if err != nil {
		return httpError(err)
	}

	h.publish(c, userID, map[string]any{
		"type":     "payment_recorded",
		"userID":   userID,
		"orderID":  pay.OrderID,
		"intentID": pay.IntentID,
		"status":   pay.Status,
	})
	return c.JSON(http.StatusOK, pay)
}
