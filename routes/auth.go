package routes

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	authControllers "github.com/SUSHIbit/online-food-ordering-api/controllers/auth"
	menuControllers "github.com/SUSHIbit/online-food-ordering-api/controllers/menu"
)

// SetupAuthRoutes registers public endpoints: registration, login, and
// anonymous menu browsing.
func SetupAuthRoutes(r *gin.Engine, db *gorm.DB) {
	auth := r.Group("/auth")
	{
		auth.POST("/register", authControllers.RegisterHandler(db))
		auth.POST("/login", authControllers.LoginHandler(db))
	}

	// Menu is browsable without an account
	r.GET("/menu", menuControllers.GetMenuItems(db))
	r.GET("/menu/:id", menuControllers.GetMenuItemByID(db))
	r.GET("/categories", menuControllers.GetAllCategoriesWithItems(db))
}
