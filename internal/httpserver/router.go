package httpserver

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/dmoshkin/clothes_shop/internal/middleware/auth"
)

type Deps struct {
	JWTSecret []byte

	AuthHandler     *AuthHandler
	ProductHandler  *ProductHandler
	CartHandler     *CartHandler
	CheckoutHandler *CheckoutHandler
	AddressHandler  *AddressHandler
	AdminHandler    *AdminHandler
	SearchHandler   *SearchHandler
}

func Register(e *echo.Echo, d *Deps) {
	e.GET("/health/live", func(c echo.Context) error { return c.NoContent(http.StatusOK) })
	e.GET("/health/ready", func(c echo.Context) error { return c.NoContent(http.StatusOK) })

	v1 := e.Group("/api/v1")

	v1.POST("/register", d.AuthHandler.Register)
	v1.POST("/login", d.AuthHandler.Login)
	v1.POST("/refresh", d.AuthHandler.Refresh)
	v1.POST("/logout", d.AuthHandler.Logout)

	v1.GET("/search", d.SearchHandler.Search)

	products := v1.Group("/products")
	products.GET("", d.ProductHandler.GetProducts)
	products.GET("/:id", d.ProductHandler.GetProduct)
	products.GET("/:id/reviews", d.ProductHandler.ListReviews)
	products.POST("/:id/reviews", d.ProductHandler.CreateReview, auth.RequireLogin(d.JWTSecret))

	v1.GET("/brands", d.ProductHandler.ListBrands)
	v1.GET("/audiences", d.ProductHandler.ListAudiences)

	cart := v1.Group("/cart", auth.RequireLogin(d.JWTSecret))
	cart.GET("", d.CartHandler.GetCart)
	cart.POST("", d.CartHandler.AddToCart)
	cart.DELETE("/:id", d.CartHandler.RemoveFromCart)
	cart.DELETE("", d.CartHandler.ClearCart)

	addresses := v1.Group("/addresses", auth.RequireLogin(d.JWTSecret))
	addresses.GET("", d.AddressHandler.List)
	addresses.POST("", d.AddressHandler.Create)
	addresses.DELETE("/:id", d.AddressHandler.Delete)

	orders := v1.Group("/orders", auth.RequireLogin(d.JWTSecret))
	orders.GET("", d.CheckoutHandler.ListOrders)
	orders.GET("/:id", d.CheckoutHandler.GetOrder)
	orders.POST("", d.CheckoutHandler.PlaceOrder)
	orders.POST("/from-cart", d.CheckoutHandler.PlaceOrderFromCart)
	orders.POST("/intent", d.CheckoutHandler.CreateIntent)
	orders.POST("/confirm", d.CheckoutHandler.ConfirmPayment)

	admin := v1.Group("/admin", auth.RequireAdmin(d.JWTSecret))
	admin.POST("/products", d.ProductHandler.CreateProduct)
	admin.PATCH("/products/:id", d.ProductHandler.PatchProduct)
	admin.DELETE("/products/:id", d.ProductHandler.DeleteProduct)
	admin.POST("/products/:id/sizes", d.ProductHandler.AddSize)
	admin.PATCH("/sizes/:sizeID/stock", d.ProductHandler.SetStock)
	admin.POST("/brands", d.ProductHandler.CreateBrand)
	admin.POST("/audiences", d.ProductHandler.CreateAudience)
	admin.PATCH("/orders/:id/status", d.AdminHandler.UpdateOrderStatus)
	admin.GET("/dashboard", d.AdminHandler.Dashboard)
}
