package cartControllers

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/SUSHIbit/online-food-ordering-api/models"
)

const (
	minQuantity = 1
	maxQuantity = 10
)

var (
	ErrItemNotFound    = errors.New("menu item does not exist")
	ErrItemUnavailable = errors.New("menu item is unavailable")
)

type CartItemInput struct {
	MenuItemID uint `json:"menu_item_id" binding:"required"`
	Quantity   int  `json:"quantity" binding:"required"`
}

// Quantity has no required tag: zero is meaningful here and removes the line.
type CartQuantityInput struct {
	MenuItemID uint `json:"menu_item_id" binding:"required"`
	Quantity   int  `json:"quantity"`
}

func clampQuantity(qty int) int {
	if qty < minQuantity {
		return minQuantity
	}
	if qty > maxQuantity {
		return maxQuantity
	}
	return qty
}

func getOrCreateCart(db *gorm.DB, userID uint) (*models.Cart, error) {
	var cart models.Cart
	err := db.Where("user_id = ?", userID).First(&cart).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		cart = models.Cart{UserID: userID}
		err = db.Create(&cart).Error
	}
	if err != nil {
		return nil, err
	}
	return &cart, nil
}

// -------- Core Logic --------

// AddItem puts a menu item in the cart. The item must exist and be
// available; quantity is clamped to [1,10]. Re-adding an item REPLACES its
// quantity rather than summing.
func AddItem(db *gorm.DB, userID, menuItemID uint, qty int) (*models.CartItem, error) {
	var item models.MenuItem
	if err := db.First(&item, "id = ?", menuItemID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrItemNotFound
		}
		return nil, err
	}
	if item.Availability != models.Available {
		return nil, ErrItemUnavailable
	}

	cart, err := getOrCreateCart(db, userID)
	if err != nil {
		return nil, err
	}

	qty = clampQuantity(qty)

	var line models.CartItem
	err = db.Where("cart_id = ? AND menu_item_id = ?", cart.CartID, menuItemID).First(&line).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		line = models.CartItem{
			CartID:     cart.CartID,
			MenuItemID: item.ID,
			ItemName:   item.Name,
			ItemImage:  item.ImageURL,
			Quantity:   qty,
			AddedAt:    time.Now(),
		}
		if err := db.Create(&line).Error; err != nil {
			return nil, err
		}
		return &line, nil
	}
	if err != nil {
		return nil, err
	}

	line.Quantity = qty
	line.AddedAt = time.Now()
	if err := db.Save(&line).Error; err != nil {
		return nil, err
	}
	return &line, nil
}

// UpdateItem sets the quantity of an existing line; qty <= 0 removes it.
func UpdateItem(db *gorm.DB, userID, menuItemID uint, qty int) error {
	if qty <= 0 {
		return RemoveItem(db, userID, menuItemID)
	}

	cart, err := getOrCreateCart(db, userID)
	if err != nil {
		return err
	}

	var line models.CartItem
	if err := db.Where("cart_id = ? AND menu_item_id = ?", cart.CartID, menuItemID).First(&line).Error; err != nil {
		return err
	}
	line.Quantity = clampQuantity(qty)
	return db.Save(&line).Error
}

// RemoveItem deletes a line if present; removing an absent line is a no-op.
func RemoveItem(db *gorm.DB, userID, menuItemID uint) error {
	cart, err := getOrCreateCart(db, userID)
	if err != nil {
		return err
	}
	return db.Where("cart_id = ? AND menu_item_id = ?", cart.CartID, menuItemID).
		Delete(&models.CartItem{}).Error
}

// Clear empties the cart.
func Clear(db *gorm.DB, userID uint) error {
	cart, err := getOrCreateCart(db, userID)
	if err != nil {
		return err
	}
	return db.Where("cart_id = ?", cart.CartID).Delete(&models.CartItem{}).Error
}

// Total sums quantity × LIVE menu price over all lines. Prices are only
// snapshotted at order creation; until then the cart follows catalog edits.
func Total(db *gorm.DB, userID uint) (decimal.Decimal, error) {
	cart, err := getOrCreateCart(db, userID)
	if err != nil {
		return decimal.Zero, err
	}

	var lines []models.CartItem
	if err := db.Where("cart_id = ?", cart.CartID).Find(&lines).Error; err != nil {
		return decimal.Zero, err
	}

	total := decimal.Zero
	for _, line := range lines {
		var item models.MenuItem
		if err := db.First(&item, "id = ?", line.MenuItemID).Error; err != nil {
			return decimal.Zero, err
		}
		total = total.Add(item.Price.Mul(decimal.NewFromInt(int64(line.Quantity))))
	}
	return total.Round(2), nil
}

// Count sums quantities across all lines (navigation badge).
func Count(db *gorm.DB, userID uint) (int, error) {
	cart, err := getOrCreateCart(db, userID)
	if err != nil {
		return 0, err
	}
	var lines []models.CartItem
	if err := db.Where("cart_id = ?", cart.CartID).Find(&lines).Error; err != nil {
		return 0, err
	}
	count := 0
	for _, line := range lines {
		count += line.Quantity
	}
	return count, nil
}

// -------- Handlers --------

func currentUserID(c *gin.Context) (uint, bool) {
	v, exists := c.Get("user_id")
	if !exists {
		return 0, false
	}
	id, ok := v.(uint)
	return id, ok
}

// POST /user/cart
func UpdateCartItem(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := currentUserID(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}

		var input CartItemInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
			return
		}

		line, err := AddItem(db, userID, input.MenuItemID, input.Quantity)
		if err != nil {
			switch {
			case errors.Is(err, ErrItemNotFound), errors.Is(err, ErrItemUnavailable):
				c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			default:
				c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to add item to cart"})
			}
			return
		}
		c.JSON(http.StatusOK, line)
	}
}

// PUT /user/cart
func UpdateCartItemQuantity(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := currentUserID(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}

		var input CartQuantityInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
			return
		}

		if err := UpdateItem(db, userID, input.MenuItemID, input.Quantity); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"error": "Cart item not found"})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update cart item"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "Cart updated"})
	}
}

// DELETE /user/cart/:menu_item_id
func DeleteCartItem(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := currentUserID(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}

		menuItemID, err := strconv.ParseUint(c.Param("menu_item_id"), 10, 64)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "menu_item_id is required"})
			return
		}

		if err := RemoveItem(db, userID, uint(menuItemID)); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete item"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "Cart item deleted"})
	}
}

// DELETE /user/cart
func ClearUserCart(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := currentUserID(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}
		if err := Clear(db, userID); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to clear cart"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "Cart cleared"})
	}
}

// GET /user/cart
func GetUserCart(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := currentUserID(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}

		cart, err := getOrCreateCart(db, userID)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch cart"})
			return
		}

		var lines []models.CartItem
		if err := db.Where("cart_id = ?", cart.CartID).Find(&lines).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch cart"})
			return
		}

		total, err := Total(db, userID)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch cart"})
			return
		}
		count, err := Count(db, userID)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch cart"})
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"items": lines,
			"total": total,
			"count": count,
		})
	}
}
