package menuControllers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/SUSHIbit/online-food-ordering-api/models"
)

var (
	ErrInvalidPrice    = errors.New("price must be positive")
	ErrUnknownCategory = errors.New("category does not exist")
)

type MenuItemInput struct {
	CategoryID      uint            `json:"category_id" binding:"required"`
	Name            string          `json:"name" binding:"required"`
	Description     string          `json:"description"`
	Price           decimal.Decimal `json:"price"`
	Availability    string          `json:"availability"`
	IsFeatured      bool            `json:"is_featured"`
	PrepTimeMinutes int             `json:"prep_time_minutes"`
	Nutrition       string          `json:"nutrition"`
	Allergens       string          `json:"allergens"`
	ImageURL        string          `json:"image_url"`
}

type MenuItemUpdate struct {
	CategoryID      *uint            `json:"category_id"`
	Name            *string          `json:"name"`
	Description     *string          `json:"description"`
	Price           *decimal.Decimal `json:"price"`
	Availability    *string          `json:"availability"`
	IsFeatured      *bool            `json:"is_featured"`
	PrepTimeMinutes *int             `json:"prep_time_minutes"`
	Nutrition       *string          `json:"nutrition"`
	Allergens       *string          `json:"allergens"`
	ImageURL        *string          `json:"image_url"`
}

func mapAvailability(s string) (models.Availability, error) {
	switch s {
	case "", string(models.Available):
		return models.Available, nil
	case string(models.Unavailable):
		return models.Unavailable, nil
	default:
		return "", errors.New("invalid availability")
	}
}

// -------- Core Logic --------

func CreateMenuItem(db *gorm.DB, input MenuItemInput) (*models.MenuItem, error) {
	if !input.Price.IsPositive() {
		return nil, ErrInvalidPrice
	}
	availability, err := mapAvailability(input.Availability)
	if err != nil {
		return nil, err
	}

	var category models.Category
	if err := db.First(&category, input.CategoryID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUnknownCategory
		}
		return nil, err
	}

	item := models.MenuItem{
		CategoryID:      input.CategoryID,
		Name:            input.Name,
		Description:     input.Description,
		Price:           input.Price.Round(2),
		Availability:    availability,
		IsFeatured:      input.IsFeatured,
		PrepTimeMinutes: input.PrepTimeMinutes,
		Nutrition:       input.Nutrition,
		Allergens:       input.Allergens,
		ImageURL:        input.ImageURL,
	}
	if err := db.Create(&item).Error; err != nil {
		return nil, err
	}
	return &item, nil
}

func UpdateMenuItem(db *gorm.DB, id uint, input MenuItemUpdate) (*models.MenuItem, error) {
	var item models.MenuItem
	if err := db.First(&item, id).Error; err != nil {
		return nil, err
	}

	updates := make(map[string]interface{})
	if input.CategoryID != nil {
		var category models.Category
		if err := db.First(&category, *input.CategoryID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, ErrUnknownCategory
			}
			return nil, err
		}
		updates["category_id"] = *input.CategoryID
	}
	if input.Name != nil {
		updates["name"] = *input.Name
	}
	if input.Description != nil {
		updates["description"] = *input.Description
	}
	if input.Price != nil {
		if !input.Price.IsPositive() {
			return nil, ErrInvalidPrice
		}
		updates["price"] = input.Price.Round(2)
	}
	if input.Availability != nil {
		availability, err := mapAvailability(*input.Availability)
		if err != nil {
			return nil, err
		}
		updates["availability"] = availability
	}
	if input.IsFeatured != nil {
		updates["is_featured"] = *input.IsFeatured
	}
	if input.PrepTimeMinutes != nil {
		updates["prep_time_minutes"] = *input.PrepTimeMinutes
	}
	if input.Nutrition != nil {
		updates["nutrition"] = *input.Nutrition
	}
	if input.Allergens != nil {
		updates["allergens"] = *input.Allergens
	}
	if input.ImageURL != nil {
		updates["image_url"] = *input.ImageURL
	}

	if len(updates) > 0 {
		if err := db.Model(&item).Updates(updates).Error; err != nil {
			return nil, err
		}
	}
	return &item, nil
}

// -------- Handlers --------

// GET /menu  (public; filters: category_id, availability, featured)
func GetMenuItems(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		q := db.Preload("Category").Order("name ASC")

		if categoryID := c.Query("category_id"); categoryID != "" {
			q = q.Where("category_id = ?", categoryID)
		}
		if availability := c.Query("availability"); availability != "" {
			mapped, err := mapAvailability(availability)
			if err != nil {
				c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			q = q.Where("availability = ?", mapped)
		}
		if featured := c.Query("featured"); featured == "true" {
			q = q.Where("is_featured = ?", true)
		}

		var items []models.MenuItem
		if err := q.Find(&items).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch menu"})
			return
		}
		c.JSON(http.StatusOK, items)
	}
}

// GET /menu/:id
func GetMenuItemByID(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var item models.MenuItem
		if err := db.Preload("Category").First(&item, "id = ?", c.Param("id")).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"error": "Menu item not found"})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch menu item"})
			return
		}
		c.JSON(http.StatusOK, item)
	}
}

// POST /admin/menu
func CreateMenuItemHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var input MenuItemInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		item, err := CreateMenuItem(db, input)
		if err != nil {
			switch {
			case errors.Is(err, ErrInvalidPrice), errors.Is(err, ErrUnknownCategory):
				c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			default:
				c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create menu item"})
			}
			return
		}
		c.JSON(http.StatusCreated, item)
	}
}

// PUT /admin/menu/:id
func UpdateMenuItemHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := strconv.ParseUint(c.Param("id"), 10, 64)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "id is required"})
			return
		}
		var input MenuItemUpdate
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		item, err := UpdateMenuItem(db, uint(id), input)
		if err != nil {
			switch {
			case errors.Is(err, gorm.ErrRecordNotFound):
				c.JSON(http.StatusNotFound, gin.H{"error": "Menu item not found"})
			case errors.Is(err, ErrInvalidPrice), errors.Is(err, ErrUnknownCategory):
				c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			default:
				c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update menu item"})
			}
			return
		}
		c.JSON(http.StatusOK, item)
	}
}

// DELETE /admin/menu/:id
func DeleteMenuItemHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		result := db.Delete(&models.MenuItem{}, "id = ?", c.Param("id"))
		if result.Error != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete menu item"})
			return
		}
		if result.RowsAffected == 0 {
			c.JSON(http.StatusNotFound, gin.H{"error": "Menu item not found"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "Menu item deleted"})
	}
}
