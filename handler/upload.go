package handler

import (
	"fmt"
	"io"
	"os"
	"path"
	"path/filepath"
	"strings"

	"base97/config"
	"base97/middleware"
	"base97/pkg/context"
	"base97/pkg/response"
	"base97/types"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type Upload struct {
	Config *config.Config
}

func (h *Upload) RegisterRouter(r gin.IRouter) {
	authorize := middleware.Auth([]byte(h.Config.Jwt.Secret))

	r.POST("/upload", authorize, context.Wrap(h.UploadImage))
}

func (h *Upload) UploadImage(c *gin.Context) error {
	header, err := c.FormFile("image")
	if err != nil {
		return response.BadRequest("No image file provided")
	}

	// 大小校验（10MB）
	if header.Size > 10<<20 {
		return response.BadRequest("Image too large")
	}

	ext := strings.ToLower(path.Ext(header.Filename))
	switch ext {
	case ".jpg", ".jpeg", ".png", ".webp", ".gif":
	default:
		return response.BadRequest("Unsupported image type")
	}

	src, err := header.Open()
	if err != nil {
		return response.BadRequest("Cannot read image")
	}
	defer src.Close()

	dir := h.Config.Store.UploadDir
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create upload dir: %w", err)
	}

	name := uuid.NewString() + ext
	dst, err := os.Create(filepath.Join(dir, name))
	if err != nil {
		return fmt.Errorf("create upload file: %w", err)
	}
	defer dst.Close()

	if _, err := io.Copy(dst, src); err != nil {
		return fmt.Errorf("write upload file: %w", err)
	}

	response.Created(c, types.UploadResponse{URL: "/uploads/" + name})
	return nil
}
