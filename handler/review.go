package handler

import (
	"net/http"
	"strconv"

	"base97/config"
	"base97/middleware"
	"base97/pkg/context"
	"base97/pkg/response"
	"base97/service"
	"base97/types"

	"github.com/gin-gonic/gin"
)

type Review struct {
	Config        *config.Config
	ReviewService service.IReviewService
}

func (h *Review) RegisterRouter(r gin.IRouter) {
	authorize := middleware.Auth([]byte(h.Config.Jwt.Secret))
	admin := middleware.AdminOnly()

	g := r.Group("/reviews")
	g.GET("/:productId", context.Wrap(h.ListByProduct))
	g.POST("", authorize, context.Wrap(h.Create))
	g.DELETE("/:id", authorize, admin, context.Wrap(h.Delete))

	r.GET("/admin/reviews", authorize, admin, context.Wrap(h.ListAll))
}

func (h *Review) Create(c *gin.Context) error {
	userID, err := context.GetUserID(c)
	if err != nil {
		return response.NewError(http.StatusUnauthorized, "Not authorized")
	}

	var req types.CreateReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		return response.BadRequest("Invalid request body")
	}

	review, err := h.ReviewService.Create(c.Request.Context(), userID, &req)
	if err != nil {
		return err
	}
	response.Created(c, review)
	return nil
}

func (h *Review) ListByProduct(c *gin.Context) error {
	productID, err := strconv.ParseUint(c.Param("productId"), 10, 64)
	if err != nil {
		return response.BadRequest("Invalid product id")
	}

	reviews, err := h.ReviewService.ListByProduct(c.Request.Context(), uint(productID))
	if err != nil {
		return err
	}
	response.Success(c, reviews)
	return nil
}

func (h *Review) ListAll(c *gin.Context) error {
	reviews, err := h.ReviewService.ListAll(c.Request.Context())
	if err != nil {
		return err
	}
	response.Success(c, reviews)
	return nil
}

func (h *Review) Delete(c *gin.Context) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}

	if err := h.ReviewService.Delete(c.Request.Context(), id); err != nil {
		return err
	}
	response.Success(c, gin.H{"message": "Review removed"})
	return nil
}
