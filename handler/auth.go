package handler

import (
	"net/http"

	"base97/config"
	"base97/middleware"
	"base97/pkg/context"
	"base97/pkg/response"
	"base97/service"
	"base97/types"

	"github.com/gin-gonic/gin"
)

type Auth struct {
	Config      *config.Config
	AuthService service.IAuthService
	RateLimit   gin.HandlerFunc
}

func (h *Auth) RegisterRouter(r gin.IRouter) {
	authorize := middleware.Auth([]byte(h.Config.Jwt.Secret))

	g := r.Group("/auth")
	if h.RateLimit != nil {
		g.Use(h.RateLimit)
	}
	g.POST("/register", context.Wrap(h.Register))
	g.POST("/login", context.Wrap(h.Login))

	u := r.Group("/users")
	u.Use(authorize)
	u.GET("/profile", context.Wrap(h.GetProfile))
	u.PUT("/profile", context.Wrap(h.UpdateProfile))
}

func (h *Auth) Register(c *gin.Context) error {
	var req types.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		return response.BadRequest("Invalid request body")
	}

	resp, err := h.AuthService.Register(c.Request.Context(), &req)
	if err != nil {
		return err
	}
	response.Created(c, resp)
	return nil
}

func (h *Auth) Login(c *gin.Context) error {
	var req types.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		return response.BadRequest("Invalid request body")
	}

	resp, err := h.AuthService.Login(c.Request.Context(), &req)
	if err != nil {
		return err
	}
	response.Success(c, resp)
	return nil
}

func (h *Auth) GetProfile(c *gin.Context) error {
	userID, err := context.GetUserID(c)
	if err != nil {
		return response.NewError(http.StatusUnauthorized, "Not authorized")
	}

	user, err := h.AuthService.GetProfile(c.Request.Context(), userID)
	if err != nil {
		return err
	}
	response.Success(c, user)
	return nil
}

func (h *Auth) UpdateProfile(c *gin.Context) error {
	userID, err := context.GetUserID(c)
	if err != nil {
		return response.NewError(http.StatusUnauthorized, "Not authorized")
	}

	var req types.UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		return response.BadRequest("Invalid request body")
	}

	resp, err := h.AuthService.UpdateProfile(c.Request.Context(), userID, &req)
	if err != nil {
		return err
	}
	response.Success(c, resp)
	return nil
}
