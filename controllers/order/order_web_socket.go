package orderControllers

import (
	"encoding/json"
	"net/http"
	"sync"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"gorm.io/gorm"

	"github.com/SUSHIbit/online-food-ordering-api/models"
)

const (
	EventOrderPlaced  = "order_placed"
	EventOrderUpdated = "order_updated"
)

// OrderEvent is pushed to connected dashboard clients whenever an order is
// placed or its status/payment changes.
type OrderEvent struct {
	Type  string       `json:"type"`
	Order models.Order `json:"order"`
}

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

var (
	wsMu      sync.Mutex
	wsClients = make(map[*websocket.Conn]bool)
)

func OrderWebSocketHandler(c *gin.Context) {
	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		return
	}
	defer conn.Close()

	wsMu.Lock()
	wsClients[conn] = true
	wsMu.Unlock()

	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			wsMu.Lock()
			delete(wsClients, conn)
			wsMu.Unlock()
			break
		}
	}
}

func broadcastOrderEvent(event OrderEvent) {
	data, err := json.Marshal(event)
	if err != nil {
		return
	}
	wsMu.Lock()
	defer wsMu.Unlock()
	for client := range wsClients {
		client.WriteMessage(websocket.TextMessage, data)
	}
}

func broadcastOrderUpdate(db *gorm.DB, orderID uint) {
	var order models.Order
	if err := db.Preload("Items").First(&order, orderID).Error; err != nil {
		return
	}
	broadcastOrderEvent(OrderEvent{Type: EventOrderUpdated, Order: order})
}
