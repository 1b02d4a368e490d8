package adminControllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/tealeg/xlsx"
	"gorm.io/gorm"

	"github.com/SUSHIbit/online-food-ordering-api/models"
)

func ExportOrdersToExcel(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var orders []models.Order
		if err := db.Preload("User").Preload("Items").Order("created_at DESC").Find(&orders).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch orders"})
			return
		}

		file := xlsx.NewFile()
		sheet, err := file.AddSheet("Orders")
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create Excel sheet"})
			return
		}

		headers := []string{
			"ID", "OrderRef", "Username", "Subtotal", "DeliveryFee", "Tax",
			"TotalAmount", "PaymentMethod", "Status", "PaymentStatus",
			"ItemCount", "CreatedAt",
		}
		headerRow := sheet.AddRow()
		for _, h := range headers {
			headerRow.AddCell().SetValue(h)
		}

		for _, order := range orders {
			itemCount := 0
			for _, item := range order.Items {
				itemCount += item.Quantity
			}

			row := sheet.AddRow()
			row.AddCell().SetValue(order.ID)
			row.AddCell().SetValue(order.OrderRef)
			row.AddCell().SetValue(order.User.Username)
			row.AddCell().SetValue(order.Subtotal.StringFixed(2))
			row.AddCell().SetValue(order.DeliveryFee.StringFixed(2))
			row.AddCell().SetValue(order.Tax.StringFixed(2))
			row.AddCell().SetValue(order.TotalAmount.StringFixed(2))
			row.AddCell().SetValue(order.PaymentMethod)
			row.AddCell().SetValue(string(order.Status))
			row.AddCell().SetValue(string(order.PaymentStatus))
			row.AddCell().SetValue(itemCount)
			row.AddCell().SetValue(order.CreatedAt.Format("2006-01-02 15:04:05"))
		}

		c.Header("Content-Disposition", "attachment; filename=orders.xlsx")
		c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
		c.Header("Content-Transfer-Encoding", "binary")

		if err := file.Write(c.Writer); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to write Excel file"})
			return
		}
	}
}
