package handler

import (
	"net/http"

	"base97/config"
	"base97/middleware"
	"base97/pkg/context"
	"base97/pkg/response"
	"base97/service"

	"github.com/gin-gonic/gin"
)

type Affiliate struct {
	Config           *config.Config
	AffiliateService service.IAffiliateService
}

func (h *Affiliate) RegisterRouter(r gin.IRouter) {
	authorize := middleware.Auth([]byte(h.Config.Jwt.Secret))
	admin := middleware.AdminOnly()

	g := r.Group("/affiliate")
	g.Use(authorize)
	g.POST("", context.Wrap(h.CreateRequest))
	g.GET("", admin, context.Wrap(h.ListRequests))
	g.PUT("/:id/approve", admin, context.Wrap(h.Approve))
	g.PUT("/:id/reject", admin, context.Wrap(h.Reject))
}

func (h *Affiliate) CreateRequest(c *gin.Context) error {
	userID, err := context.GetUserID(c)
	if err != nil {
		return response.NewError(http.StatusUnauthorized, "Not authorized")
	}

	req, err := h.AffiliateService.CreateRequest(c.Request.Context(), userID)
	if err != nil {
		return err
	}
	response.Created(c, req)
	return nil
}

func (h *Affiliate) ListRequests(c *gin.Context) error {
	requests, err := h.AffiliateService.ListRequests(c.Request.Context())
	if err != nil {
		return err
	}
	response.Success(c, requests)
	return nil
}

func (h *Affiliate) Approve(c *gin.Context) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}

	req, err := h.AffiliateService.Approve(c.Request.Context(), id)
	if err != nil {
		return err
	}
	response.Success(c, req)
	return nil
}

func (h *Affiliate) Reject(c *gin.Context) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}

	req, err := h.AffiliateService.Reject(c.Request.Context(), id)
	if err != nil {
		return err
	}
	response.Success(c, req)
	return nil
}
