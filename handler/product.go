package handler

import (
	"strconv"

	"base97/config"
	"base97/middleware"
	"base97/pkg/context"
	"base97/pkg/response"
	"base97/service"
	"base97/types"

	"github.com/gin-gonic/gin"
)

type Product struct {
	Config         *config.Config
	ProductService service.IProductService
}

func (h *Product) RegisterRouter(r gin.IRouter) {
	authorize := middleware.Auth([]byte(h.Config.Jwt.Secret))
	admin := middleware.AdminOnly()

	g := r.Group("/products")
	g.GET("", context.Wrap(h.List))
	g.GET("/:id", context.Wrap(h.Get))
	g.POST("", authorize, admin, context.Wrap(h.Create))
	g.PUT("/:id", authorize, admin, context.Wrap(h.Update))
	g.DELETE("/:id", authorize, admin, context.Wrap(h.Delete))
}

func parseID(c *gin.Context) (uint, error) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return 0, response.BadRequest("Invalid id")
	}
	return uint(id), nil
}

func (h *Product) List(c *gin.Context) error {
	products, err := h.ProductService.List(c.Request.Context())
	if err != nil {
		return err
	}
	response.Success(c, products)
	return nil
}

func (h *Product) Get(c *gin.Context) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}

	product, err := h.ProductService.Get(c.Request.Context(), id)
	if err != nil {
		return err
	}
	response.Success(c, product)
	return nil
}

func (h *Product) Create(c *gin.Context) error {
	var req types.CreateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		return response.BadRequest("Invalid request body")
	}

	product, err := h.ProductService.Create(c.Request.Context(), &req)
	if err != nil {
		return err
	}
	response.Created(c, product)
	return nil
}

func (h *Product) Update(c *gin.Context) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}

	var req types.UpdateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		return response.BadRequest("Invalid request body")
	}

	product, err := h.ProductService.Update(c.Request.Context(), id, &req)
	if err != nil {
		return err
	}
	response.Success(c, product)
	return nil
}

func (h *Product) Delete(c *gin.Context) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}

	if err := h.ProductService.Delete(c.Request.Context(), id); err != nil {
		return err
	}
	response.Success(c, gin.H{"message": "Product removed"})
	return nil
}
