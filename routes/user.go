package routes

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	cartControllers "github.com/SUSHIbit/online-food-ordering-api/controllers/cart"
	userControllers "github.com/SUSHIbit/online-food-ordering-api/controllers/user"
	"github.com/SUSHIbit/online-food-ordering-api/middleware"
)

// SetupUserRoutes registers all "/user/*" endpoints. Requires JWT middleware.
func SetupUserRoutes(r *gin.Engine, db *gorm.DB) {
	userGroup := r.Group("/user")
	userGroup.Use(middleware.ValidateToken)
	{
		// Profile
		userGroup.GET("/", userControllers.GetUser(db))
		userGroup.PUT("/", userControllers.UpdateUser(db))
		userGroup.PUT("/password", userControllers.ChangePassword(db))
		userGroup.DELETE("/", userControllers.DeactivateUser(db))

		// Shopping cart
		cartGroup := userGroup.Group("/cart")
		{
			cartGroup.GET("/", cartControllers.GetUserCart(db))
			cartGroup.POST("/", cartControllers.UpdateCartItem(db))
			cartGroup.PUT("/", cartControllers.UpdateCartItemQuantity(db))
			cartGroup.DELETE("/:menu_item_id", cartControllers.DeleteCartItem(db))
			cartGroup.DELETE("/", cartControllers.ClearUserCart(db))
		}
	}
}
