package handler

import (
	"base97/config"
	"base97/middleware"
	"base97/pkg/context"
	"base97/pkg/response"
	"base97/service"
	"base97/types"

	"github.com/gin-gonic/gin"
)

type Admin struct {
	Config       *config.Config
	AdminService service.IAdminService
	OrderService service.IOrderService
}

func (h *Admin) RegisterRouter(r gin.IRouter) {
	authorize := middleware.Auth([]byte(h.Config.Jwt.Secret))
	admin := middleware.AdminOnly()

	g := r.Group("/admin")
	g.Use(authorize, admin)
	g.GET("/metrics", context.Wrap(h.Metrics))
	g.GET("/users", context.Wrap(h.ListUsers))
	g.PUT("/orders/:id/status", context.Wrap(h.UpdateOrderStatus))
}

func (h *Admin) Metrics(c *gin.Context) error {
	metrics, err := h.AdminService.DashboardMetrics(c.Request.Context())
	if err != nil {
		return err
	}
	response.Success(c, metrics)
	return nil
}

func (h *Admin) ListUsers(c *gin.Context) error {
	users, err := h.AdminService.ListUsers(c.Request.Context())
	if err != nil {
		return err
	}
	response.Success(c, users)
	return nil
}

func (h *Admin) UpdateOrderStatus(c *gin.Context) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}

	var req types.UpdateOrderStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		return response.BadRequest("Invalid request body")
	}

	order, err := h.OrderService.UpdateStatus(c.Request.Context(), id, req.Status)
	if err != nil {
		return err
	}
	response.Success(c, types.NewOrderView(order))
	return nil
}
