package routes

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	adminControllers "github.com/SUSHIbit/online-food-ordering-api/controllers/admin"
	menuControllers "github.com/SUSHIbit/online-food-ordering-api/controllers/menu"
	orderControllers "github.com/SUSHIbit/online-food-ordering-api/controllers/order"
	userControllers "github.com/SUSHIbit/online-food-ordering-api/controllers/user"
	"github.com/SUSHIbit/online-food-ordering-api/middleware"
)

// SetupAdminRoutes registers all "/admin/*" endpoints. Requires a JWT with
// the admin role.
func SetupAdminRoutes(r *gin.Engine, db *gorm.DB) {
	admin := r.Group("/admin")
	admin.Use(middleware.ValidateToken, middleware.RequireAdmin)
	{
		// Menu management
		admin.POST("/menu", menuControllers.CreateMenuItemHandler(db))
		admin.PUT("/menu/:id", menuControllers.UpdateMenuItemHandler(db))
		admin.DELETE("/menu/:id", menuControllers.DeleteMenuItemHandler(db))
		admin.GET("/menu/export", menuControllers.ExportMenuToExcel(db))

		// Category management
		admin.POST("/categories", menuControllers.CreateCategory(db))
		admin.PUT("/categories/:id", menuControllers.UpdateCategory(db))
		admin.DELETE("/categories/:id", menuControllers.DeleteCategoryHandler(db))

		// Order management
		admin.GET("/orders", orderControllers.GetAllOrdersHandler(db))
		admin.GET("/orders/export", adminControllers.ExportOrdersToExcel(db))
		admin.PUT("/orders/:orderID/status", orderControllers.UpdateOrderStatusHandler(db))
		admin.PUT("/orders/:orderID/payment-status", orderControllers.UpdatePaymentStatusHandler(db))
		admin.POST("/orders/:orderID/cancel", orderControllers.CancelOrderHandler(db))
		admin.GET("/orders/:orderID/history", orderControllers.OrderHistoryHandler(db))

		// Users & reporting
		admin.GET("/users", userControllers.GetAllUsers(db))
		admin.GET("/reports/summary", adminControllers.DashboardSummaryHandler(db))
	}
}
