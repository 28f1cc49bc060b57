package types

type CreateProductRequest struct {
	Name         string   `json:"name" binding:"required"`
	Description  string   `json:"description"`
	Price        float64  `json:"price" binding:"min=0"`
	Image        string   `json:"image"`
	Category     string   `json:"category"`
	Sizes        []string `json:"sizes"`
	CountInStock int      `json:"count_in_stock" binding:"min=0"`
}

// UpdateProductRequest 全部可选, 只更新出现的字段
type UpdateProductRequest struct {
	Name         *string  `json:"name"`
	Description  *string  `json:"description"`
	Price        *float64 `json:"price"`
	Image        *string  `json:"image"`
	Category     *string  `json:"category"`
	Sizes        []string `json:"sizes"`
	CountInStock *int     `json:"count_in_stock"`
}
