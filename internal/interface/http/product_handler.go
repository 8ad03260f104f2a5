package http

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/pastaria/backend/internal/application"
	repo "github.com/pastaria/backend/internal/domain/repository"
	"github.com/pastaria/backend/pkg/response"
	"github.com/pastaria/backend/pkg/validation"
)

type ProductHandler struct {
	Products *application.ProductService
	Logger   *logrus.Logger
}

func NewProductHandler(products *application.ProductService, logger *logrus.Logger) *ProductHandler {
	return &ProductHandler{Products: products, Logger: logger}
}

// List returns the sellable catalogue. Admins may pass ?all=true to
// include delisted products.
func (h *ProductHandler) List(c *gin.Context) {
	all, _ := strconv.ParseBool(c.Query("all"))
	products, err := h.Products.List(c.Request.Context(), all && isAdmin(c))
	if err != nil {
		h.fail(c, "list products", err)
		return
	}
	response.OK(c, products)
}

// Get returns one sellable product by id.
func (h *ProductHandler) Get(c *gin.Context) {
	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		response.Fail(c, http.StatusBadRequest, response.MsgBadID)
		return
	}

	p, err := h.Products.Get(c.Request.Context(), id)
	switch {
	case err == nil:
		response.OK(c, p)
	case errors.Is(err, repo.ErrNotFound):
		response.Fail(c, http.StatusNotFound, response.MsgProductNotFound)
	default:
		h.fail(c, "get product", err)
	}
}

// Search runs a full-text catalogue search.
func (h *ProductHandler) Search(c *gin.Context) {
	q := c.Query("q")
	if q == "" {
		response.Fail(c, http.StatusBadRequest, "缺少搜尋關鍵字")
		return
	}
	size, _ := strconv.Atoi(c.Query("size"))

	hits, err := h.Products.Search(c.Request.Context(), q, size)
	if err != nil {
		h.fail(c, "search products", err)
		return
	}
	response.OK(c, hits)
}

type productForm struct {
	Name        string `form:"name" binding:"required,max=40"`
	Price       int    `form:"price" binding:"required,min=1"`
	Description string `form:"description" binding:"max=500"`
	Category    string `form:"category" binding:"required"`
	Sell        bool   `form:"sell"`
}

// Create stores a new product. The request is multipart so an image
// can ride along; the image lands in object storage and only its
// public URL is persisted.
func (h *ProductHandler) Create(c *gin.Context) {
	var form productForm
	if err := c.ShouldBind(&form); err != nil {
		response.Fail(c, http.StatusBadRequest, validation.FirstMessage(err))
		return
	}

	image, err := h.saveImage(c)
	if err != nil {
		h.fail(c, "upload image", err)
		return
	}

	p, err := h.Products.Create(c.Request.Context(), application.ProductInput{
		Name:        form.Name,
		Price:       form.Price,
		Description: form.Description,
		Category:    form.Category,
		Sell:        form.Sell,
	}, image)
	if err != nil {
		h.fail(c, "create product", err)
		return
	}
	response.OK(c, p)
}

// Update replaces a product's fields; the image is kept unless a new
// one is uploaded.
func (h *ProductHandler) Update(c *gin.Context) {
	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		response.Fail(c, http.StatusBadRequest, response.MsgBadID)
		return
	}

	var form productForm
	if err := c.ShouldBind(&form); err != nil {
		response.Fail(c, http.StatusBadRequest, validation.FirstMessage(err))
		return
	}

	image, err := h.saveImage(c)
	if err != nil {
		h.fail(c, "upload image", err)
		return
	}

	p, err := h.Products.Update(c.Request.Context(), id, application.ProductInput{
		Name:        form.Name,
		Price:       form.Price,
		Description: form.Description,
		Category:    form.Category,
		Sell:        form.Sell,
	}, image)
	switch {
	case err == nil:
		response.OK(c, p)
	case errors.Is(err, repo.ErrNotFound):
		response.Fail(c, http.StatusNotFound, response.MsgProductNotFound)
	default:
		h.fail(c, "update product", err)
	}
}

// saveImage uploads the optional multipart image and returns its
// public URL, or "" when no file was attached.
func (h *ProductHandler) saveImage(c *gin.Context) (string, error) {
	file, err := c.FormFile("image")
	if err != nil {
		return "", nil
	}
	src, err := file.Open()
	if err != nil {
		return "", err
	}
	defer src.Close()
	return h.Products.UploadImage(c.Request.Context(), src, file.Filename, file.Header.Get("Content-Type"))
}

func (h *ProductHandler) fail(c *gin.Context, op string, err error) {
	if h.Logger != nil {
		h.Logger.WithError(err).WithField("op", op).Error("product handler error")
	}
	response.Fail(c, http.StatusInternalServerError, response.MsgUnknown)
}
