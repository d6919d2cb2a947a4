package api

import (
	"net/http"

	"storefront-gateway/internal/api/middleware"
	"storefront-gateway/internal/modules/address"
	"storefront-gateway/internal/modules/cart"
	"storefront-gateway/internal/modules/checkout"
	"storefront-gateway/internal/modules/orders"
	"storefront-gateway/internal/modules/session"

	"github.com/labstack/echo/v4"
)

// SetupRoutes sets up all the API endpoints for the gateway.
func SetupRoutes(
	e *echo.Echo,
	jwtSecret string,
	sessionHandler *session.Handler,
	cartHandler *cart.Handler,
	addressHandler *address.Handler,
	checkoutHandler *checkout.Handler,
	orderHandler *orders.Handler,
) {
	sessionGate := middleware.SessionGate(jwtSecret)

	// --- Public Routes ---
	e.GET("/", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{"message": "Storefront checkout gateway"})
	})

	authGroup := e.Group("/auth")
	{
		authGroup.POST("/login", sessionHandler.Login)
		authGroup.POST("/signup", sessionHandler.Signup)
		authGroup.POST("/logout", sessionHandler.Logout)
	}

	// --- Cart Routes ---
	cartGroup := e.Group("/cart", sessionGate)
	{
		cartGroup.GET("", cartHandler.GetCart)
		cartGroup.PUT("/items/:itemId", cartHandler.UpdateQuantity)
		cartGroup.DELETE("/items/:itemId", cartHandler.RemoveItem)
	}

	// --- Address Routes ---
	addressGroup := e.Group("/addresses", sessionGate)
	{
		addressGroup.GET("", addressHandler.ListAddresses)
		addressGroup.POST("", addressHandler.AddAddress)
	}

	// --- Checkout Routes ---
	checkoutGroup := e.Group("/checkout", sessionGate)
	{
		checkoutGroup.GET("", checkoutHandler.GetCheckout)
		checkoutGroup.POST("/advance", checkoutHandler.Advance)
		checkoutGroup.POST("/back", checkoutHandler.Back)
		checkoutGroup.PUT("/address", checkoutHandler.SelectAddress)
		checkoutGroup.PUT("/payment", checkoutHandler.SelectPayment)
		checkoutGroup.PUT("/coupon", checkoutHandler.ApplyCoupon)
		checkoutGroup.POST("/submit", checkoutHandler.Submit)
	}

	// --- Order History Routes ---
	orderGroup := e.Group("/orders", sessionGate)
	{
		orderGroup.GET("", orderHandler.ListOrders)
		orderGroup.DELETE("/:orderId", orderHandler.CancelOrder)
	}
}
