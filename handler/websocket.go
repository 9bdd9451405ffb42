package handler

import (
	"context"
	"encoding/json"
	"log"

	"driftsip_admin/config"
	"driftsip_admin/model"

	"github.com/gofiber/contrib/websocket"
	"github.com/redis/go-redis/v9"
)

const orderEventsChannel = "orders:events"

var redisClient *redis.Client

func ordersRedis() *redis.Client {
	if redisClient == nil {
		redisClient = redis.NewClient(&redis.Options{
			Addr: config.ConfigDefault("REDIS_ADDR", "localhost:6379"),
		})
	}
	return redisClient
}

type orderEvent struct {
	Event string      `json:"event"`
	Order model.Order `json:"order"`
}

// PublishOrderEvent bắn event qua Redis cho các client đang mở live feed.
// Fail thì chỉ log, không chặn response.
func PublishOrderEvent(event string, order model.Order) {
	payload, err := json.Marshal(orderEvent{Event: event, Order: order})
	if err != nil {
		return
	}
	if err := ordersRedis().Publish(context.Background(), orderEventsChannel, payload).Err(); err != nil {
		log.Printf("[WS] publish failed: %v", err)
	}
}

// OrdersFeed đẩy order event xuống websocket client cho tới khi disconnect
func OrdersFeed(c *websocket.Conn) {
	defer c.Close()

	pubsub := ordersRedis().Subscribe(context.Background(), orderEventsChannel)
	defer pubsub.Close()

	for msg := range pubsub.Channel() {
		if err := c.WriteMessage(websocket.TextMessage, []byte(msg.Payload)); err != nil {
			return
		}
	}
}
