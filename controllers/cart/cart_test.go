package cartControllers

import (
	"bytes"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"

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
		&models.Category{},
		&models.MenuItem{},
		&models.Cart{},
		&models.CartItem{},
	))
	return db
}

func createTestUser(t *testing.T, db *gorm.DB, username string) *models.User {
	t.Helper()
	user := &models.User{
		Username:     username,
		Email:        username + "@example.com",
		PasswordHash: "x",
	}
	require.NoError(t, db.Create(user).Error)
	return user
}

func createMenuItem(t *testing.T, db *gorm.DB, name, price string, availability models.Availability) *models.MenuItem {
	t.Helper()
	category := models.Category{Name: "Drinks-" + name}
	require.NoError(t, db.Create(&category).Error)
	item := &models.MenuItem{
		CategoryID:   category.ID,
		Name:         name,
		Price:        decimal.RequireFromString(price),
		Availability: availability,
	}
	require.NoError(t, db.Create(item).Error)
	return item
}

func TestAddItemClampsQuantity(t *testing.T) {
	db := setupTestDB(t)
	user := createTestUser(t, db, "aina")
	item := createMenuItem(t, db, "Sirap Bandung", "2.00", models.Available)

	line, err := AddItem(db, user.ID, item.ID, 99)
	require.NoError(t, err)
	require.Equal(t, 10, line.Quantity)

	line, err = AddItem(db, user.ID, item.ID, -3)
	require.NoError(t, err)
	require.Equal(t, 1, line.Quantity)
}

func TestAddItemRejectsUnknownAndUnavailable(t *testing.T) {
	db := setupTestDB(t)
	user := createTestUser(t, db, "bari")
	offMenu := createMenuItem(t, db, "Durian Shake", "6.00", models.Unavailable)

	_, err := AddItem(db, user.ID, 4242, 1)
	require.ErrorIs(t, err, ErrItemNotFound)

	_, err = AddItem(db, user.ID, offMenu.ID, 1)
	require.ErrorIs(t, err, ErrItemUnavailable)

	count, err := Count(db, user.ID)
	require.NoError(t, err)
	require.Equal(t, 0, count)
}

func TestReAddReplacesQuantity(t *testing.T) {
	db := setupTestDB(t)
	user := createTestUser(t, db, "chandra")
	item := createMenuItem(t, db, "Kopi O", "1.80", models.Available)

	_, err := AddItem(db, user.ID, item.ID, 4)
	require.NoError(t, err)

	// Re-adding sets the quantity, it does not sum
	line, err := AddItem(db, user.ID, item.ID, 2)
	require.NoError(t, err)
	require.Equal(t, 2, line.Quantity)

	count, err := Count(db, user.ID)
	require.NoError(t, err)
	require.Equal(t, 2, count)
}

func TestUpdateItemZeroRemovesLine(t *testing.T) {
	db := setupTestDB(t)
	user := createTestUser(t, db, "devi")
	item := createMenuItem(t, db, "Limau Ais", "2.50", models.Available)

	_, err := AddItem(db, user.ID, item.ID, 3)
	require.NoError(t, err)

	require.NoError(t, UpdateItem(db, user.ID, item.ID, 0))

	count, err := Count(db, user.ID)
	require.NoError(t, err)
	require.Equal(t, 0, count)
}

func TestRemoveMissingLineIsNoOp(t *testing.T) {
	db := setupTestDB(t)
	user := createTestUser(t, db, "eddy")

	require.NoError(t, RemoveItem(db, user.ID, 777))
}

func TestTotalFollowsLivePrices(t *testing.T) {
	db := setupTestDB(t)
	user := createTestUser(t, db, "farid")
	a := createMenuItem(t, db, "Nasi Ayam", "10.00", models.Available)
	b := createMenuItem(t, db, "Air Kosong", "0.50", models.Available)

	_, err := AddItem(db, user.ID, a.ID, 2)
	require.NoError(t, err)
	_, err = AddItem(db, user.ID, b.ID, 4)
	require.NoError(t, err)

	total, err := Total(db, user.ID)
	require.NoError(t, err)
	require.True(t, total.Equal(decimal.RequireFromString("22.00")), "total = %s", total)

	// Cart totals are NOT snapshotted; a price edit shows up immediately
	require.NoError(t, db.Model(&models.MenuItem{}).Where("id = ?", a.ID).
		Update("price", decimal.RequireFromString("12.00")).Error)

	total, err = Total(db, user.ID)
	require.NoError(t, err)
	require.True(t, total.Equal(decimal.RequireFromString("26.00")), "total = %s", total)

	count, err := Count(db, user.ID)
	require.NoError(t, err)
	require.Equal(t, 6, count)
}

func TestUpdateCartQuantityHandler(t *testing.T) {
	db := setupTestDB(t)
	user := createTestUser(t, db, "hidayah")
	item := createMenuItem(t, db, "Teh O", "1.50", models.Available)

	_, err := AddItem(db, user.ID, item.ID, 3)
	require.NoError(t, err)

	gin.SetMode(gin.TestMode)
	putQuantity := func(qty int) *httptest.ResponseRecorder {
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		body := bytes.NewBufferString(fmt.Sprintf(`{"menu_item_id": %d, "quantity": %d}`, item.ID, qty))
		c.Request = httptest.NewRequest(http.MethodPut, "/user/cart", body)
		c.Request.Header.Set("Content-Type", "application/json")
		c.Set("user_id", user.ID)
		UpdateCartItemQuantity(db)(c)
		return w
	}

	require.Equal(t, http.StatusOK, putQuantity(5).Code)
	count, err := Count(db, user.ID)
	require.NoError(t, err)
	require.Equal(t, 5, count)

	// Zero quantity is accepted over HTTP and removes the line
	require.Equal(t, http.StatusOK, putQuantity(0).Code)
	count, err = Count(db, user.ID)
	require.NoError(t, err)
	require.Equal(t, 0, count)
}

func TestClearEmptiesCart(t *testing.T) {
	db := setupTestDB(t)
	user := createTestUser(t, db, "gina")
	item := createMenuItem(t, db, "Cham", "2.20", models.Available)

	_, err := AddItem(db, user.ID, item.ID, 5)
	require.NoError(t, err)

	require.NoError(t, Clear(db, user.ID))

	total, err := Total(db, user.ID)
	require.NoError(t, err)
	require.True(t, total.IsZero())
}
