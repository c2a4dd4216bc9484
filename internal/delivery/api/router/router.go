// Package router mounts the API handlers and their per-route middleware.
package router

import (
	"shopfront/internal/delivery/api/middleware"
	"shopfront/internal/delivery/api/router/handler"

	"github.com/labstack/echo/v4"
	"go.uber.org/fx"
)

type RouterParams struct {
	fx.In

	UserHandler           *handler.UserHandler
	ProductHandler        *handler.ProductHandler
	OrderHandler          *handler.OrderHandler
	PaymentHandler        *handler.PaymentHandler
	AuthMiddleware        *middleware.AuthMiddleware
	IdempotencyMiddleware *middleware.IdempotencyMiddleware
}

// router holds all the handlers that need to be registered.
type router struct {
	userHandler    *handler.UserHandler
	productHandler *handler.ProductHandler
	orderHandler   *handler.OrderHandler
	paymentHandler *handler.PaymentHandler
	auth           *middleware.AuthMiddleware
	idempotency    *middleware.IdempotencyMiddleware
}

// NewRouter is the constructor for the Router.
func NewRouter(params RouterParams) *router {
	return &router{
		userHandler:    params.UserHandler,
		productHandler: params.ProductHandler,
		orderHandler:   params.OrderHandler,
		paymentHandler: params.PaymentHandler,
		auth:           params.AuthMiddleware,
		idempotency:    params.IdempotencyMiddleware,
	}
}

// RegisterRoutes sets up all the API routes for the application.
func (r *router) RegisterRoutes(e *echo.Echo) {
	e.GET("/health", handler.HealthCheck)

	authed := r.auth.Authenticate
	admin := []echo.MiddlewareFunc{r.auth.Authenticate, r.auth.RequireAdmin}
	idempotent := []echo.MiddlewareFunc{r.auth.Authenticate, r.idempotency.Handle}

	apiV1 := e.Group("/api/v1")

	users := apiV1.Group("/users")
	{
		users.POST("/register", r.userHandler.Register)
		users.POST("/login", r.userHandler.Login)
		users.POST("/refresh-token", r.userHandler.RefreshToken)
		users.POST("/logout", r.userHandler.Logout, authed)
		users.POST("/change-password", r.userHandler.ChangePassword, authed)
		users.GET("/current-user", r.userHandler.GetCurrentUser, authed)
		users.PATCH("/update-account", r.userHandler.UpdateAccount, authed)
		users.PATCH("/avatar", r.userHandler.UpdateAvatar, authed)
		users.PATCH("/:id/toggle-admin", r.userHandler.ToggleAdmin, admin...)
	}

	// Catalog reads are public.
	products := apiV1.Group("/products")
	{
		products.GET("", r.productHandler.ListProducts)
		products.GET("/:id", r.productHandler.GetProduct)
		products.POST("", r.productHandler.CreateProduct, admin...)
		products.PUT("/:id", r.productHandler.UpdateProduct, admin...)
		products.DELETE("/:id", r.productHandler.DeleteProduct, admin...)
	}

	orders := apiV1.Group("/orders")
	{
		orders.POST("", r.orderHandler.CreateOrder, idempotent...)
		orders.GET("", r.orderHandler.ListOrders, admin...)
		orders.GET("/user/:userId", r.orderHandler.ListUserOrders, authed)
		orders.GET("/:id", r.orderHandler.GetOrder, authed)
		orders.PATCH("/:id/status", r.orderHandler.UpdateOrderStatus, admin...)
		orders.DELETE("/:id", r.orderHandler.DeleteOrder, admin...)
		orders.POST("/:id/retry-shipment", r.orderHandler.RetryShipment, admin...)
	}

	payments := apiV1.Group("/payments")
	{
		payments.POST("", r.paymentHandler.CreatePayment, idempotent...)
		payments.GET("/outstanding", r.paymentHandler.GetOutstanding, authed)
		payments.GET("", r.paymentHandler.ListPayments, admin...)
		payments.GET("/:id", r.paymentHandler.GetPayment, authed)
		payments.PATCH("/:id/status", r.paymentHandler.UpdatePaymentStatus, admin...)
		payments.DELETE("/:id", r.paymentHandler.DeletePayment, admin...)
	}
}
