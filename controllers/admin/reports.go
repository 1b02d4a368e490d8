package adminControllers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/SUSHIbit/online-food-ordering-api/models"
)

type DashboardSummary struct {
	OrdersByStatus map[models.OrderStatus]int64 `json:"orders_by_status"`
	TotalOrders    int64                        `json:"total_orders"`
	PendingPayment int64                        `json:"pending_payment"`
	Revenue        decimal.Decimal              `json:"revenue"`
	TodayOrders    int64                        `json:"today_orders"`
	TodayRevenue   decimal.Decimal              `json:"today_revenue"`
	TopItems       []TopItem                    `json:"top_items"`
}

type TopItem struct {
	ItemName      string `json:"item_name"`
	TotalQuantity int64  `json:"total_quantity"`
}

// BuildDashboardSummary aggregates over orders. Revenue counts only paid
// orders; cancelled-but-paid orders are deliberately included (refunds move
// the payment status to refunded, which drops them out).
func BuildDashboardSummary(db *gorm.DB) (*DashboardSummary, error) {
	summary := &DashboardSummary{
		OrdersByStatus: make(map[models.OrderStatus]int64),
		Revenue:        decimal.Zero,
		TodayRevenue:   decimal.Zero,
	}

	type statusCount struct {
		Status models.OrderStatus
		Count  int64
	}
	var counts []statusCount
	if err := db.Model(&models.Order{}).
		Select("status, COUNT(*) as count").
		Group("status").
		Scan(&counts).Error; err != nil {
		return nil, err
	}
	for _, sc := range counts {
		summary.OrdersByStatus[sc.Status] = sc.Count
		summary.TotalOrders += sc.Count
	}

	if err := db.Model(&models.Order{}).
		Where("payment_status = ?", models.PaymentStatusPending).
		Count(&summary.PendingPayment).Error; err != nil {
		return nil, err
	}

	row := db.Model(&models.Order{}).
		Where("payment_status = ?", models.PaymentStatusPaid).
		Select("COALESCE(SUM(total_amount), 0)").
		Row()
	if err := row.Scan(&summary.Revenue); err != nil {
		return nil, err
	}

	now := time.Now()
	startOfDay := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	if err := db.Model(&models.Order{}).
		Where("created_at >= ?", startOfDay).
		Count(&summary.TodayOrders).Error; err != nil {
		return nil, err
	}
	todayRow := db.Model(&models.Order{}).
		Where("created_at >= ? AND payment_status = ?", startOfDay, models.PaymentStatusPaid).
		Select("COALESCE(SUM(total_amount), 0)").
		Row()
	if err := todayRow.Scan(&summary.TodayRevenue); err != nil {
		return nil, err
	}

	if err := db.Model(&models.OrderItem{}).
		Select("item_name, SUM(quantity) as total_quantity").
		Group("item_name").
		Order("total_quantity DESC").
		Limit(5).
		Scan(&summary.TopItems).Error; err != nil {
		return nil, err
	}

	return summary, nil
}

// GET /admin/reports/summary
func DashboardSummaryHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		summary, err := BuildDashboardSummary(db)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to build summary"})
			return
		}
		c.JSON(http.StatusOK, summary)
	}
}
