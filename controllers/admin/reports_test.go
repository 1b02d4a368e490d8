package adminControllers

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/SUSHIbit/online-food-ordering-api/models"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := "file:" + t.Name() + "?mode=memory&cache=shared"
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{TranslateError: true})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&models.User{},
		&models.Order{},
		&models.OrderItem{},
	))
	require.NoError(t, db.Create(&models.User{
		Username:     "seed",
		Email:        "seed@example.com",
		PasswordHash: "x",
	}).Error)
	return db
}

func seedOrder(t *testing.T, db *gorm.DB, ref string, status models.OrderStatus, payment models.PaymentStatus, total string) *models.Order {
	t.Helper()
	order := &models.Order{
		OrderRef:        ref,
		UserID:          1,
		TotalAmount:     decimal.RequireFromString(total),
		DeliveryAddress: "somewhere",
		Phone:           "012",
		Status:          status,
		PaymentStatus:   payment,
	}
	require.NoError(t, db.Create(order).Error)
	return order
}

func TestDashboardSummaryCountsAndRevenue(t *testing.T) {
	db := setupTestDB(t)

	seedOrder(t, db, "r1", models.OrderStatusConfirmed, models.PaymentStatusPaid, "31.50")
	seedOrder(t, db, "r2", models.OrderStatusConfirmed, models.PaymentStatusPending, "20.00")
	seedOrder(t, db, "r3", models.OrderStatusDelivered, models.PaymentStatusPaid, "10.00")
	seedOrder(t, db, "r4", models.OrderStatusCancelled, models.PaymentStatusRefunded, "99.00")

	summary, err := BuildDashboardSummary(db)
	require.NoError(t, err)

	require.Equal(t, int64(4), summary.TotalOrders)
	require.Equal(t, int64(2), summary.OrdersByStatus[models.OrderStatusConfirmed])
	require.Equal(t, int64(1), summary.OrdersByStatus[models.OrderStatusDelivered])
	require.Equal(t, int64(1), summary.OrdersByStatus[models.OrderStatusCancelled])
	require.Equal(t, int64(1), summary.PendingPayment)

	// Only paid orders count toward revenue; refunded ones drop out
	require.True(t, summary.Revenue.Equal(decimal.RequireFromString("41.50")), "revenue = %s", summary.Revenue)

	// All seeded now, so today's figures match
	require.Equal(t, int64(4), summary.TodayOrders)
	require.True(t, summary.TodayRevenue.Equal(decimal.RequireFromString("41.50")))
}

func TestTodayFiguresExcludeEarlierDays(t *testing.T) {
	db := setupTestDB(t)

	old := seedOrder(t, db, "r20", models.OrderStatusDelivered, models.PaymentStatusPaid, "10.00")
	require.NoError(t, db.Model(old).Update("created_at", time.Now().AddDate(0, 0, -1)).Error)
	seedOrder(t, db, "r21", models.OrderStatusConfirmed, models.PaymentStatusPaid, "20.00")

	summary, err := BuildDashboardSummary(db)
	require.NoError(t, err)

	// Yesterday's order counts toward the overall figures only; the day
	// boundary is local midnight, not a rolling 24 hours.
	require.Equal(t, int64(2), summary.TotalOrders)
	require.True(t, summary.Revenue.Equal(decimal.RequireFromString("30.00")), "revenue = %s", summary.Revenue)
	require.Equal(t, int64(1), summary.TodayOrders)
	require.True(t, summary.TodayRevenue.Equal(decimal.RequireFromString("20.00")), "today = %s", summary.TodayRevenue)
}

func TestDashboardTopItems(t *testing.T) {
	db := setupTestDB(t)
	order := seedOrder(t, db, "r10", models.OrderStatusDelivered, models.PaymentStatusPaid, "50.00")

	require.NoError(t, db.Create(&models.OrderItem{OrderID: order.ID, ItemName: "Nasi Lemak", Quantity: 3}).Error)
	require.NoError(t, db.Create(&models.OrderItem{OrderID: order.ID, ItemName: "Teh Tarik", Quantity: 5}).Error)
	require.NoError(t, db.Create(&models.OrderItem{OrderID: order.ID, ItemName: "Nasi Lemak", Quantity: 4}).Error)

	summary, err := BuildDashboardSummary(db)
	require.NoError(t, err)

	require.Len(t, summary.TopItems, 2)
	require.Equal(t, "Nasi Lemak", summary.TopItems[0].ItemName)
	require.Equal(t, int64(7), summary.TopItems[0].TotalQuantity)
	require.Equal(t, "Teh Tarik", summary.TopItems[1].ItemName)
	require.Equal(t, int64(5), summary.TopItems[1].TotalQuantity)
}

func TestDashboardSummaryEmptyDatabase(t *testing.T) {
	db := setupTestDB(t)

	summary, err := BuildDashboardSummary(db)
	require.NoError(t, err)
	require.Equal(t, int64(0), summary.TotalOrders)
	require.True(t, summary.Revenue.IsZero())
	require.Empty(t, summary.TopItems)
}
