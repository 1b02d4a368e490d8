package menuControllers

import (
	"testing"

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
	require.NoError(t, db.AutoMigrate(&models.Category{}, &models.MenuItem{}))
	return db
}

func TestCreateMenuItemValidatesPrice(t *testing.T) {
	db := setupTestDB(t)
	category := models.Category{Name: "Mains"}
	require.NoError(t, db.Create(&category).Error)

	_, err := CreateMenuItem(db, MenuItemInput{
		CategoryID: category.ID,
		Name:       "Free Lunch",
		Price:      decimal.Zero,
	})
	require.ErrorIs(t, err, ErrInvalidPrice)

	_, err = CreateMenuItem(db, MenuItemInput{
		CategoryID: category.ID,
		Name:       "Anti Lunch",
		Price:      decimal.RequireFromString("-3.00"),
	})
	require.ErrorIs(t, err, ErrInvalidPrice)

	item, err := CreateMenuItem(db, MenuItemInput{
		CategoryID: category.ID,
		Name:       "Nasi Kerabu",
		Price:      decimal.RequireFromString("9.90"),
	})
	require.NoError(t, err)
	require.Equal(t, models.Available, item.Availability)
}

func TestCreateMenuItemRequiresCategory(t *testing.T) {
	db := setupTestDB(t)

	_, err := CreateMenuItem(db, MenuItemInput{
		CategoryID: 123,
		Name:       "Orphan Dish",
		Price:      decimal.RequireFromString("5.00"),
	})
	require.ErrorIs(t, err, ErrUnknownCategory)
}

func TestUpdateMenuItemPartial(t *testing.T) {
	db := setupTestDB(t)
	category := models.Category{Name: "Desserts"}
	require.NoError(t, db.Create(&category).Error)
	item, err := CreateMenuItem(db, MenuItemInput{
		CategoryID: category.ID,
		Name:       "ABC",
		Price:      decimal.RequireFromString("4.00"),
	})
	require.NoError(t, err)

	unavailable := string(models.Unavailable)
	featured := true
	_, err = UpdateMenuItem(db, item.ID, MenuItemUpdate{
		Availability: &unavailable,
		IsFeatured:   &featured,
	})
	require.NoError(t, err)

	var got models.MenuItem
	require.NoError(t, db.First(&got, item.ID).Error)
	require.Equal(t, models.Unavailable, got.Availability)
	require.True(t, got.IsFeatured)
	// Untouched fields stay put
	require.True(t, got.Price.Equal(decimal.RequireFromString("4.00")))
}

func TestDeleteCategoryRefusedWhileItemsRemain(t *testing.T) {
	db := setupTestDB(t)
	category := models.Category{Name: "Grill"}
	require.NoError(t, db.Create(&category).Error)
	item, err := CreateMenuItem(db, MenuItemInput{
		CategoryID: category.ID,
		Name:       "Ikan Bakar",
		Price:      decimal.RequireFromString("18.00"),
	})
	require.NoError(t, err)

	err = DeleteCategory(db, category.ID)
	require.ErrorIs(t, err, ErrCategoryNotEmpty)

	require.NoError(t, db.Delete(&models.MenuItem{}, item.ID).Error)
	require.NoError(t, DeleteCategory(db, category.ID))
}
