package httpapi

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sooldama/sooldama/internal/common"
	"github.com/sooldama/sooldama/internal/server/services"
	"github.com/sooldama/sooldama/internal/server/session"
)

type UserService interface {
	InsertUser(ctx context.Context, u services.JoinUser) (*services.UserResponse, error)
	FindUserByID(ctx context.Context, id int64) (*services.UserResponse, error)
	LoginUser(ctx context.Context, email, password string, s session.Session) error
	LogoutUser(ctx context.Context, s session.Session) error
}

type ProductService interface {
	GetProducts(ctx context.Context, q services.ProductQuery) ([]services.ProductResponse, error)
	GetProductByID(ctx context.Context, id int64) (*services.ProductResponse, error)
}

type joinRequest struct {
	Email       string `json:"email" binding:"required,email"`
	Password    string `json:"password" binding:"required,max=72"`
	Name        string `json:"name"`
	PhoneNumber string `json:"phoneNumber"`
	Nickname    string `json:"nickname" binding:"required"`
	IsAdult     bool   `json:"isAdult"`
}

type loginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type productsQuery struct {
	Offset     int    `form:"offset,default=0" binding:"min=0"`
	Limit      int    `form:"limit,default=20" binding:"min=1,max=100"`
	CategoryID *int64 `form:"categoryId" binding:"omitempty,min=1"`
}

type idURI struct {
	ID int64 `uri:"id" binding:"required,min=1"`
}

type UserHandler struct {
	users UserService
}

func NewUserHandler(users UserService) *UserHandler {
	return &UserHandler{users: users}
}

// Join registers a new account. POST /users
func (h *UserHandler) Join(c *gin.Context) {
	var req joinRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithValidation(c, err)
		return
	}

	u, err := h.users.InsertUser(c.Request.Context(), services.JoinUser{
		Email:       req.Email,
		Password:    req.Password,
		Name:        req.Name,
		PhoneNumber: req.PhoneNumber,
		Nickname:    req.Nickname,
		IsAdult:     req.IsAdult,
	})
	if err != nil {
		abortWithError(c, err)
		return
	}

	c.JSON(http.StatusCreated, u)
}

// GetUser returns a public profile. GET /users/:id
func (h *UserHandler) GetUser(c *gin.Context) {
	var uri idURI
	if err := c.ShouldBindUri(&uri); err != nil {
		abortWithValidation(c, err)
		return
	}

	u, err := h.users.FindUserByID(c.Request.Context(), uri.ID)
	if err != nil {
		abortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, u)
}

// Login signs the session in. POST /users/login
func (h *UserHandler) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithValidation(c, err)
		return
	}

	err := h.users.LoginUser(c.Request.Context(), req.Email, req.Password, sessionFrom(c))
	if err != nil {
		// an unknown email is a bad credential here, not a missing resource
		if errors.Is(err, common.ErrNoSuchUser) {
			writeError(c, http.StatusBadRequest, "NO_SUCH_USER", err.Error())
			return
		}
		abortWithError(c, err)
		return
	}

	c.Status(http.StatusOK)
}

// Logout ends the session. POST /users/logout
func (h *UserHandler) Logout(c *gin.Context) {
	if err := h.users.LogoutUser(c.Request.Context(), sessionFrom(c)); err != nil {
		abortWithError(c, err)
		return
	}

	c.Status(http.StatusOK)
}

type ProductHandler struct {
	products ProductService
}

func NewProductHandler(products ProductService) *ProductHandler {
	return &ProductHandler{products: products}
}

// GetProducts lists one catalog page. GET /products
func (h *ProductHandler) GetProducts(c *gin.Context) {
	var q productsQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		abortWithValidation(c, err)
		return
	}

	list, err := h.products.GetProducts(c.Request.Context(), services.ProductQuery{
		Offset:     q.Offset,
		Limit:      q.Limit,
		CategoryID: q.CategoryID,
	})
	if err != nil {
		abortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, list)
}

// GetProduct returns one product. GET /products/:id
func (h *ProductHandler) GetProduct(c *gin.Context) {
	var uri idURI
	if err := c.ShouldBindUri(&uri); err != nil {
		abortWithValidation(c, err)
		return
	}

	p, err := h.products.GetProductByID(c.Request.Context(), uri.ID)
	if err != nil {
		abortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, p)
}
