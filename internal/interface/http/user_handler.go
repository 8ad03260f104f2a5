package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/pastaria/backend/internal/application"
	"github.com/pastaria/backend/internal/domain/entity"
	repo "github.com/pastaria/backend/internal/domain/repository"
	"github.com/pastaria/backend/internal/interface/middleware"
	"github.com/pastaria/backend/pkg/response"
	"github.com/pastaria/backend/pkg/validation"
)

type UserHandler struct {
	Users  *application.Service
	Logger *logrus.Logger
}

func NewUserHandler(users *application.Service, logger *logrus.Logger) *UserHandler {
	return &UserHandler{Users: users, Logger: logger}
}

type registerRequest struct {
	Account  string `json:"account" binding:"required,account"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=8,max=64"`
}

// Register creates a new account. A taken account or email answers
// with 409 so the client can tell the cases apart from a malformed
// payload.
func (h *UserHandler) Register(c *gin.Context) {
	var req registerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Fail(c, http.StatusBadRequest, validation.FirstMessage(err))
		return
	}

	err := h.Users.Register(c.Request.Context(), application.RegisterInput{
		Account:  req.Account,
		Email:    req.Email,
		Password: req.Password,
	})
	switch {
	case err == nil:
		response.OKMessage(c, "註冊成功")
	case errors.Is(err, repo.ErrDuplicate):
		response.Fail(c, http.StatusConflict, response.MsgDuplicateAccount)
	default:
		h.fail(c, "register", err)
	}
}

type loginRequest struct {
	Account  string `json:"account" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// Login authenticates and answers with a freshly issued token plus
// the profile the client needs to render its header.
func (h *UserHandler) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Fail(c, http.StatusBadRequest, validation.FirstMessage(err))
		return
	}

	res, err := h.Users.Login(c.Request.Context(), req.Account, req.Password)
	switch {
	case err == nil:
		response.OK(c, res)
	case errors.Is(err, application.ErrInvalidCredentials):
		response.Fail(c, http.StatusUnauthorized, "帳號或密碼錯誤")
	default:
		h.fail(c, "login", err)
	}
}

// Logout removes the presented token from the token list. The route
// accepts expired tokens, so a stale tab can still sign out cleanly.
func (h *UserHandler) Logout(c *gin.Context) {
	u := middleware.UserFrom(c)
	token := middleware.TokenFrom(c)

	if err := h.Users.Logout(c.Request.Context(), u.ID.Hex(), token); err != nil {
		h.fail(c, "logout", err)
		return
	}
	response.OKMessage(c, "登出成功")
}

// Extend trades the presented token for a long-lived one, replacing
// it in place so other sessions keep their slots.
func (h *UserHandler) Extend(c *gin.Context) {
	u := middleware.UserFrom(c)
	token := middleware.TokenFrom(c)

	fresh, err := h.Users.Extend(c.Request.Context(), u.ID.Hex(), token)
	if err != nil {
		h.fail(c, "extend", err)
		return
	}
	response.OK(c, fresh)
}

// Profile returns the acting user's public fields.
func (h *UserHandler) Profile(c *gin.Context) {
	u := middleware.UserFrom(c)
	response.OK(c, h.Users.GetProfile(u))
}

type editCartRequest struct {
	Product string `json:"product" binding:"required"`
	// Pointer so presence is checked without rejecting a zero delta: a
	// delta of 0 on an existing line is a valid no-op update.
	Quantity *int          `json:"quantity" binding:"required"`
	Noodle   entity.Noodle `json:"noodle" binding:"required,noodle"`
}

// EditCart adds, adjusts or removes one cart line and answers with
// the new total quantity across the cart.
func (h *UserHandler) EditCart(c *gin.Context) {
	var req editCartRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Fail(c, http.StatusBadRequest, validation.FirstMessage(err))
		return
	}

	u := middleware.UserFrom(c)
	total, err := h.Users.EditCart(c.Request.Context(), u.ID.Hex(), req.Product, *req.Quantity, req.Noodle)

	var fieldErr *entity.FieldError
	switch {
	case err == nil:
		response.OK(c, total)
	case errors.Is(err, application.ErrInvalidProductID):
		response.Fail(c, http.StatusBadRequest, response.MsgBadID)
	case errors.Is(err, repo.ErrNotFound):
		response.Fail(c, http.StatusNotFound, response.MsgProductNotFound)
	case errors.As(err, &fieldErr):
		response.Fail(c, http.StatusBadRequest, fieldErr.Message)
	default:
		h.fail(c, "edit cart", err)
	}
}

// Cart returns the cart lines with product details filled in.
func (h *UserHandler) Cart(c *gin.Context) {
	u := middleware.UserFrom(c)
	cart, err := h.Users.GetCart(c.Request.Context(), u.ID.Hex())
	if err != nil {
		h.fail(c, "get cart", err)
		return
	}
	response.OK(c, cart)
}

// fail logs the unexpected error and hides it behind the generic
// message.
func (h *UserHandler) fail(c *gin.Context, op string, err error) {
	if h.Logger != nil {
		h.Logger.WithError(err).WithField("op", op).Error("user handler error")
	}
	response.Fail(c, http.StatusInternalServerError, response.MsgUnknown)
}
