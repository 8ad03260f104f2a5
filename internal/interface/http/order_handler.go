package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/pastaria/backend/internal/application"
	"github.com/pastaria/backend/internal/domain/entity"
	"github.com/pastaria/backend/internal/interface/middleware"
	"github.com/pastaria/backend/pkg/response"
	"github.com/pastaria/backend/pkg/validation"
)

type OrderHandler struct {
	Orders *application.OrderService
	Logger *logrus.Logger
}

func NewOrderHandler(orders *application.OrderService, logger *logrus.Logger) *OrderHandler {
	return &OrderHandler{Orders: orders, Logger: logger}
}

type checkoutRequest struct {
	Name    string `json:"name" binding:"required,max=20"`
	Phone   string `json:"phone" binding:"required,max=20"`
	Address string `json:"address" binding:"required,max=100"`
}

// Checkout snapshots the cart into an order and clears the cart. An
// empty cart is rejected before anything is written.
func (h *OrderHandler) Checkout(c *gin.Context) {
	var req checkoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Fail(c, http.StatusBadRequest, validation.FirstMessage(err))
		return
	}

	u := middleware.UserFrom(c)
	o, err := h.Orders.Checkout(c.Request.Context(), u.ID.Hex(), application.CheckoutInput{
		Name:    req.Name,
		Phone:   req.Phone,
		Address: req.Address,
	})

	var fieldErr *entity.FieldError
	switch {
	case err == nil:
		response.OK(c, gin.H{"order": o.ID.Hex()})
	case errors.As(err, &fieldErr):
		response.Fail(c, http.StatusBadRequest, fieldErr.Message)
	default:
		h.fail(c, "checkout", err)
	}
}

// List returns the acting user's orders, newest first.
func (h *OrderHandler) List(c *gin.Context) {
	u := middleware.UserFrom(c)
	orders, err := h.Orders.ListByUser(c.Request.Context(), u.ID.Hex())
	if err != nil {
		h.fail(c, "list orders", err)
		return
	}
	response.OK(c, orders)
}

func (h *OrderHandler) fail(c *gin.Context, op string, err error) {
	if h.Logger != nil {
		h.Logger.WithError(err).WithField("op", op).Error("order handler error")
	}
	response.Fail(c, http.StatusInternalServerError, response.MsgUnknown)
}
