package server

import (
	"base97/handler"
)

type Handlers struct {
	Auth      *handler.Auth
	Product   *handler.Product
	Review    *handler.Review
	Affiliate *handler.Affiliate
	Order     *handler.Order
	Admin     *handler.Admin
	Upload    *handler.Upload
}
