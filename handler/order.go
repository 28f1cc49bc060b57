package handler

import (
	"net/http"

	"base97/config"
	"base97/middleware"
	"base97/models"
	"base97/pkg/context"
	"base97/pkg/response"
	"base97/service"
	"base97/types"

	"github.com/gin-gonic/gin"
)

type Order struct {
	Config       *config.Config
	OrderService service.IOrderService
}

func (h *Order) RegisterRouter(r gin.IRouter) {
	authorize := middleware.Auth([]byte(h.Config.Jwt.Secret))
	admin := middleware.AdminOnly()

	g := r.Group("/orders")
	g.Use(authorize)
	g.POST("", context.Wrap(h.Create))
	g.GET("/myorders", context.Wrap(h.ListMine))
	g.GET("/:id", context.Wrap(h.Get))
	g.POST("/:id/pay", context.Wrap(h.Pay))
	g.PUT("/:id/deliver", admin, context.Wrap(h.Deliver))
	g.GET("", admin, context.Wrap(h.ListAll))
}

func orderViews(orders []*models.Order) []*types.OrderView {
	views := make([]*types.OrderView, 0, len(orders))
	for _, o := range orders {
		views = append(views, types.NewOrderView(o))
	}
	return views
}

func (h *Order) Create(c *gin.Context) error {
	userID, err := context.GetUserID(c)
	if err != nil {
		return response.NewError(http.StatusUnauthorized, "Not authorized")
	}

	var req types.CreateOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		return response.BadRequest("Invalid request body")
	}
	if len(req.Items) == 0 {
		return response.BadRequest("No order items")
	}

	order, err := h.OrderService.Create(c.Request.Context(), userID, &req)
	if err != nil {
		return err
	}
	response.Created(c, types.NewOrderView(order))
	return nil
}

func (h *Order) Get(c *gin.Context) error {
	userID, err := context.GetUserID(c)
	if err != nil {
		return response.NewError(http.StatusUnauthorized, "Not authorized")
	}
	id, err := parseID(c)
	if err != nil {
		return err
	}

	order, err := h.OrderService.Get(c.Request.Context(), id, userID, context.IsAdmin(c))
	if err != nil {
		return err
	}
	response.Success(c, types.NewOrderView(order))
	return nil
}

func (h *Order) ListMine(c *gin.Context) error {
	userID, err := context.GetUserID(c)
	if err != nil {
		return response.NewError(http.StatusUnauthorized, "Not authorized")
	}

	orders, err := h.OrderService.ListMine(c.Request.Context(), userID)
	if err != nil {
		return err
	}
	response.Success(c, orderViews(orders))
	return nil
}

func (h *Order) ListAll(c *gin.Context) error {
	orders, err := h.OrderService.ListAll(c.Request.Context())
	if err != nil {
		return err
	}
	response.Success(c, orderViews(orders))
	return nil
}

// Pay 模拟支付回调, 直接推进到 Paid。
func (h *Order) Pay(c *gin.Context) error {
	userID, err := context.GetUserID(c)
	if err != nil {
		return response.NewError(http.StatusUnauthorized, "Not authorized")
	}
	id, err := parseID(c)
	if err != nil {
		return err
	}

	// 只能支付自己的订单
	if _, err := h.OrderService.Get(c.Request.Context(), id, userID, context.IsAdmin(c)); err != nil {
		return err
	}

	order, err := h.OrderService.UpdateStatus(c.Request.Context(), id, models.OrderStatusPaid)
	if err != nil {
		return err
	}
	response.Success(c, types.NewOrderView(order))
	return nil
}

func (h *Order) Deliver(c *gin.Context) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}

	order, err := h.OrderService.UpdateStatus(c.Request.Context(), id, models.OrderStatusDelivered)
	if err != nil {
		return err
	}
	response.Success(c, types.NewOrderView(order))
	return nil
}
