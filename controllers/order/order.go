package orderControllers

import (
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/SUSHIbit/online-food-ordering-api/models"
)

// -------- Pricing Constants --------

var (
	deliveryFee = decimal.RequireFromString("5.00")
	taxRate     = decimal.RequireFromString("0.06") // 6% service tax on subtotal only
)

// -------- Errors --------

var (
	ErrEmptyCart            = errors.New("cart is empty")
	ErrItemUnavailable      = errors.New("menu item is unavailable")
	ErrInvalidOrderStatus   = errors.New("invalid order status")
	ErrInvalidPaymentStatus = errors.New("invalid payment status")
	ErrInvalidPaymentMethod = errors.New("invalid payment method")
	ErrNotCancellable       = errors.New("order can no longer be cancelled")
	ErrNotOrderOwner        = errors.New("order does not belong to user")
)

// -------- Request Structs --------

type CheckoutRequest struct {
	DeliveryAddress string `json:"delivery_address" binding:"required"`
	Phone           string `json:"phone" binding:"required"`
	Notes           string `json:"notes"`
	PaymentMethod   string `json:"payment_method" binding:"required"` // "cash" or "online"
}

type UpdateOrderStatusRequest struct {
	Status string `json:"status" binding:"required"`
	Note   string `json:"note"`
}

type UpdatePaymentStatusRequest struct {
	PaymentStatus string `json:"payment_status" binding:"required"`
	Note          string `json:"note"`
}

// -------- Helpers --------

// Map string to OrderStatus
func mapOrderStatus(status string) (models.OrderStatus, error) {
	switch strings.ToLower(status) {
	case string(models.OrderStatusPending):
		return models.OrderStatusPending, nil
	case string(models.OrderStatusConfirmed):
		return models.OrderStatusConfirmed, nil
	case string(models.OrderStatusPreparing):
		return models.OrderStatusPreparing, nil
	case string(models.OrderStatusReady):
		return models.OrderStatusReady, nil
	case string(models.OrderStatusDelivered):
		return models.OrderStatusDelivered, nil
	case string(models.OrderStatusCancelled):
		return models.OrderStatusCancelled, nil
	default:
		return "", ErrInvalidOrderStatus
	}
}

// Map string to PaymentStatus
func mapPaymentStatus(status string) (models.PaymentStatus, error) {
	switch strings.ToLower(status) {
	case string(models.PaymentStatusPending):
		return models.PaymentStatusPending, nil
	case string(models.PaymentStatusPaid):
		return models.PaymentStatusPaid, nil
	case string(models.PaymentStatusFailed):
		return models.PaymentStatusFailed, nil
	case string(models.PaymentStatusRefunded):
		return models.PaymentStatusRefunded, nil
	default:
		return "", ErrInvalidPaymentStatus
	}
}

func mapPaymentMethod(method string) (string, error) {
	switch strings.ToLower(method) {
	case models.PaymentMethodCash:
		return models.PaymentMethodCash, nil
	case models.PaymentMethodOnline:
		return models.PaymentMethodOnline, nil
	default:
		return "", ErrInvalidPaymentMethod
	}
}

// Generate unique order reference, e.g. 20250908130500-1f3b9c2a
func generateOrderRef() string {
	return time.Now().Format("20060102150405") + "-" + uuid.NewString()[:8]
}

// recordHistory appends one audit row. A nil status marks a payment-only
// event. Rows are never updated or deleted.
func recordHistory(tx *gorm.DB, orderID uint, status *models.OrderStatus, note string, actor *uint) error {
	return tx.Create(&models.OrderStatusHistory{
		OrderID:   orderID,
		Status:    status,
		Note:      note,
		ChangedBy: actor,
	}).Error
}

// -------- Core Logic --------

// PlaceOrder converts the user's cart into a persisted order. The whole
// write (order header, order items, cart clear) happens in one transaction:
// a half-written order would corrupt billing and kitchen fulfilment.
// Prices are snapshotted from the live menu inside the transaction.
func PlaceOrder(db *gorm.DB, userID uint, req CheckoutRequest) (*models.Order, error) {
	method, err := mapPaymentMethod(req.PaymentMethod)
	if err != nil {
		return nil, err
	}

	var cart models.Cart
	if err := db.Preload("Items").Where("user_id = ?", userID).First(&cart).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrEmptyCart
		}
		return nil, err
	}
	if len(cart.Items) == 0 {
		return nil, ErrEmptyCart
	}

	var order models.Order
	err = db.Transaction(func(tx *gorm.DB) error {
		subtotal := decimal.Zero
		var orderItems []models.OrderItem

		for _, line := range cart.Items {
			var item models.MenuItem
			if err := tx.First(&item, "id = ?", line.MenuItemID).Error; err != nil {
				return err
			}
			// Availability is checked again here: an item pulled off the
			// menu after cart-add must not be sold.
			if item.Availability != models.Available {
				return ErrItemUnavailable
			}

			subtotal = subtotal.Add(item.Price.Mul(decimal.NewFromInt(int64(line.Quantity))))

			orderItems = append(orderItems, models.OrderItem{
				MenuItemID: item.ID,
				ItemName:   item.Name,
				ItemPrice:  item.Price,
				Quantity:   line.Quantity,
			})
		}

		subtotal = subtotal.Round(2)
		tax := subtotal.Mul(taxRate).Round(2)

		order = models.Order{
			OrderRef:        generateOrderRef(),
			UserID:          userID,
			Items:           orderItems,
			Subtotal:        subtotal,
			DeliveryFee:     deliveryFee,
			Tax:             tax,
			TotalAmount:     subtotal.Add(deliveryFee).Add(tax),
			DeliveryAddress: req.DeliveryAddress,
			Phone:           req.Phone,
			Notes:           req.Notes,
			PaymentMethod:   method,
			Status:          models.OrderStatusPending,
			PaymentStatus:   models.PaymentStatusPending,
		}

		if err := tx.Create(&order).Error; err != nil {
			return err
		}

		// Clear cart items
		return tx.Where("cart_id = ?", cart.CartID).Delete(&models.CartItem{}).Error
	})
	if err != nil {
		return nil, err
	}
	return &order, nil
}

// Checkout places the order and immediately moves it out of pending: every
// order leaves this flow confirmed. Online payment settles here as well;
// cash stays payment-pending until delivery.
func Checkout(db *gorm.DB, userID uint, req CheckoutRequest) (*models.Order, error) {
	order, err := PlaceOrder(db, userID, req)
	if err != nil {
		return nil, err
	}

	// Intermediate transitions do not broadcast; dashboard clients see one
	// placed event for one checkout.
	if err := applyStatusTransition(db, order.ID, models.OrderStatusConfirmed, "order confirmed at checkout", nil); err != nil {
		return nil, err
	}
	if order.PaymentMethod == models.PaymentMethodOnline {
		if err := applyPaymentTransition(db, order.ID, models.PaymentStatusPaid, "online payment received", nil); err != nil {
			return nil, err
		}
	}

	var placed models.Order
	if err := db.Preload("Items").First(&placed, order.ID).Error; err != nil {
		return nil, err
	}
	broadcastOrderEvent(OrderEvent{Type: EventOrderPlaced, Order: placed})
	return &placed, nil
}

// TransitionStatus validates membership in the fixed status set, then writes
// the new status and its audit row in one transaction so no caller can
// produce a silent history gap. Forward sequencing is deliberately NOT
// enforced; ordering of the fulfilment stages is a UI affordance.
//
// Side-effect rule: reaching delivered while payment is still pending
// settles the payment as cash-on-delivery, exactly once.
func TransitionStatus(db *gorm.DB, orderID uint, newStatus, note string, actor *uint) error {
	status, err := mapOrderStatus(newStatus)
	if err != nil {
		return err
	}
	if err := applyStatusTransition(db, orderID, status, note, actor); err != nil {
		return err
	}
	broadcastOrderUpdate(db, orderID)
	return nil
}

func applyStatusTransition(db *gorm.DB, orderID uint, status models.OrderStatus, note string, actor *uint) error {
	return db.Transaction(func(tx *gorm.DB) error {
		var order models.Order
		if err := tx.First(&order, orderID).Error; err != nil {
			return err
		}

		if err := tx.Model(&order).Update("status", status).Error; err != nil {
			return err
		}
		if err := recordHistory(tx, order.ID, &status, note, actor); err != nil {
			return err
		}

		if status == models.OrderStatusDelivered && order.PaymentStatus == models.PaymentStatusPending {
			if err := tx.Model(&order).Update("payment_status", models.PaymentStatusPaid).Error; err != nil {
				return err
			}
			if err := recordHistory(tx, order.ID, nil, "cash payment auto-confirmed", actor); err != nil {
				return err
			}
		}
		return nil
	})
}

// TransitionPayment validates membership in the flat payment set and writes
// the new value plus a payment-only (nil status) audit row in one
// transaction. Any payment status is reachable from any other.
func TransitionPayment(db *gorm.DB, orderID uint, newStatus, note string, actor *uint) error {
	status, err := mapPaymentStatus(newStatus)
	if err != nil {
		return err
	}
	if err := applyPaymentTransition(db, orderID, status, note, actor); err != nil {
		return err
	}
	broadcastOrderUpdate(db, orderID)
	return nil
}

func applyPaymentTransition(db *gorm.DB, orderID uint, status models.PaymentStatus, note string, actor *uint) error {
	return db.Transaction(func(tx *gorm.DB) error {
		var order models.Order
		if err := tx.First(&order, orderID).Error; err != nil {
			return err
		}
		if err := tx.Model(&order).Update("payment_status", status).Error; err != nil {
			return err
		}
		return recordHistory(tx, order.ID, nil, note, actor)
	})
}

// CancelOrder refuses once preparation has started: only pending and
// confirmed orders can be cancelled. A non-nil actor must own the order;
// admin callers pass nil and bypass the ownership check.
func CancelOrder(db *gorm.DB, orderID uint, actor *uint) error {
	err := db.Transaction(func(tx *gorm.DB) error {
		var order models.Order
		if err := tx.First(&order, orderID).Error; err != nil {
			return err
		}

		if order.Status != models.OrderStatusPending && order.Status != models.OrderStatusConfirmed {
			return ErrNotCancellable
		}
		if actor != nil && order.UserID != *actor {
			return ErrNotOrderOwner
		}

		cancelled := models.OrderStatusCancelled
		if err := tx.Model(&order).Update("status", cancelled).Error; err != nil {
			return err
		}
		return recordHistory(tx, order.ID, &cancelled, "order cancelled", actor)
	})
	if err != nil {
		return err
	}

	broadcastOrderUpdate(db, orderID)
	return nil
}

// FindOrder resolves a lookup key that is either a numeric id or an
// order_ref. The id column is numeric, so a reference string must never be
// bound against it: postgres refuses to encode text into a bigint
// parameter and the whole query errors.
func FindOrder(db *gorm.DB, key string) (*models.Order, error) {
	q := db.Preload("Items").Preload("History", func(tx *gorm.DB) *gorm.DB {
		return tx.Order("created_at DESC, id DESC")
	})

	var order models.Order
	if id, parseErr := strconv.ParseUint(key, 10, 64); parseErr == nil {
		if err := q.First(&order, id).Error; err != nil {
			return nil, err
		}
	} else {
		if err := q.Where("order_ref = ?", key).First(&order).Error; err != nil {
			return nil, err
		}
	}
	return &order, nil
}

// OrderHistory returns the audit trail newest-first.
func OrderHistory(db *gorm.DB, orderID uint) ([]models.OrderStatusHistory, error) {
	var history []models.OrderStatusHistory
	err := db.Where("order_id = ?", orderID).
		Order("created_at DESC, id DESC").
		Find(&history).Error
	return history, err
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

func isAdmin(c *gin.Context) bool {
	role, _ := c.Get("role")
	return role == string(models.RoleAdmin)
}

func parseOrderID(c *gin.Context) (uint, bool) {
	raw := c.Param("orderID")
	id, err := strconv.ParseUint(raw, 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "orderID is required"})
		return 0, false
	}
	return uint(id), true
}

// Checkout (user)
func CheckoutHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := currentUserID(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}

		var req CheckoutRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		order, err := Checkout(db, userID, req)
		if err != nil {
			switch {
			case errors.Is(err, ErrEmptyCart), errors.Is(err, ErrInvalidPaymentMethod):
				c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			default:
				c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to place order"})
			}
			return
		}
		c.JSON(http.StatusCreated, order)
	}
}

func GetAllOrdersHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var orders []models.Order
		q := db.Preload("User").Preload("Items").Order("created_at DESC")
		if status := c.Query("status"); status != "" {
			mapped, err := mapOrderStatus(status)
			if err != nil {
				c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			q = q.Where("status = ?", mapped)
		}
		if err := q.Find(&orders).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, orders)
	}
}

func GetUserOrdersHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := currentUserID(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}
		var orders []models.Order
		if err := db.
			Where("user_id = ?", userID).
			Preload("Items").
			Order("created_at DESC").
			Find(&orders).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, orders)
	}
}

// Get single order by ID or order_ref; customers may only read their own.
func GetOrderByIDHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.Param("orderID")
		if id == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "orderID is required"})
			return
		}

		order, err := FindOrder(db, id)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"error": "order not found"})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}

		if !isAdmin(c) {
			userID, ok := currentUserID(c)
			if !ok || order.UserID != userID {
				c.JSON(http.StatusNotFound, gin.H{"error": "order not found"})
				return
			}
		}

		c.JSON(http.StatusOK, order)
	}
}

// Update order status (admin)
func UpdateOrderStatusHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		orderID, ok := parseOrderID(c)
		if !ok {
			return
		}
		var req UpdateOrderStatusRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		note := req.Note
		if note == "" {
			note = "status updated to " + strings.ToLower(req.Status)
		}
		var actor *uint
		if id, ok := currentUserID(c); ok {
			actor = &id
		}

		if err := TransitionStatus(db, orderID, req.Status, note, actor); err != nil {
			switch {
			case errors.Is(err, ErrInvalidOrderStatus):
				c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			case errors.Is(err, gorm.ErrRecordNotFound):
				c.JSON(http.StatusNotFound, gin.H{"error": "order not found"})
			default:
				c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to update order status"})
			}
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "Order status updated successfully"})
	}
}

// Update payment status (admin)
func UpdatePaymentStatusHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		orderID, ok := parseOrderID(c)
		if !ok {
			return
		}
		var req UpdatePaymentStatusRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		note := req.Note
		if note == "" {
			note = "payment marked " + strings.ToLower(req.PaymentStatus)
		}
		var actor *uint
		if id, ok := currentUserID(c); ok {
			actor = &id
		}

		if err := TransitionPayment(db, orderID, req.PaymentStatus, note, actor); err != nil {
			switch {
			case errors.Is(err, ErrInvalidPaymentStatus):
				c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			case errors.Is(err, gorm.ErrRecordNotFound):
				c.JSON(http.StatusNotFound, gin.H{"error": "order not found"})
			default:
				c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to update payment status"})
			}
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "Payment status updated successfully"})
	}
}

// Cancel own order (user). Admin route reaches CancelOrder with a nil actor.
func CancelOrderHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		orderID, ok := parseOrderID(c)
		if !ok {
			return
		}

		var actor *uint
		if !isAdmin(c) {
			userID, ok := currentUserID(c)
			if !ok {
				c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
				return
			}
			actor = &userID
		}

		if err := CancelOrder(db, orderID, actor); err != nil {
			switch {
			case errors.Is(err, ErrNotCancellable), errors.Is(err, ErrNotOrderOwner):
				c.JSON(http.StatusConflict, gin.H{"error": "failed"})
			case errors.Is(err, gorm.ErrRecordNotFound):
				c.JSON(http.StatusNotFound, gin.H{"error": "order not found"})
			default:
				c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to cancel order"})
			}
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "Order cancelled"})
	}
}

func OrderHistoryHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		orderID, ok := parseOrderID(c)
		if !ok {
			return
		}

		if !isAdmin(c) {
			userID, uok := currentUserID(c)
			var order models.Order
			if err := db.First(&order, orderID).Error; err != nil || !uok || order.UserID != userID {
				c.JSON(http.StatusNotFound, gin.H{"error": "order not found"})
				return
			}
		}

		history, err := OrderHistory(db, orderID)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch order history"})
			return
		}
		c.JSON(http.StatusOK, history)
	}
}
