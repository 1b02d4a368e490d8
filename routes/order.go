package routes

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	orderControllers "github.com/SUSHIbit/online-food-ordering-api/controllers/order"
	"github.com/SUSHIbit/online-food-ordering-api/middleware"
)

func SetupOrderRoutes(r *gin.Engine, db *gorm.DB) {
	orders := r.Group("/orders")
	orders.Use(middleware.ValidateToken)
	{
		// Checkout the current cart into a new order
		orders.POST("/checkout", orderControllers.CheckoutHandler(db))

		// Fetch the caller's orders
		orders.GET("/", orderControllers.GetUserOrdersHandler(db))

		// Fetch one order by id or order_ref (owner or admin)
		orders.GET("/:orderID", orderControllers.GetOrderByIDHandler(db))

		// Audit trail, newest first
		orders.GET("/:orderID/history", orderControllers.OrderHistoryHandler(db))

		// Cancel own order while still pending/confirmed
		orders.POST("/:orderID/cancel", orderControllers.CancelOrderHandler(db))
	}

	// websocket endpoint for real-time order updates (admin dashboard)
	r.GET("/ws/orders", orderControllers.OrderWebSocketHandler)
}
