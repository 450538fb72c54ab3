package broadcast

import (
	"context"
	"encoding/json"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	maxMessageSize = 1024
	sendBufferSize = 64
)

// Hub - слой присутствия: хранит членство подключенных клиентов в комнатах
// и раздает им события. Членство принадлежит хабу; движок только публикует.
type Hub struct {
	mu       sync.RWMutex
	rooms    map[string]map[*Client]struct{}
	logger   *logrus.Logger
	upgrader websocket.Upgrader
}

// Client - одно WebSocket-подключение (путешественник, исполнитель или оператор)
type Client struct {
	hub   *Hub
	conn  *websocket.Conn
	send  chan []byte
	rooms map[string]struct{}
}

// inboundMessage - входящее сообщение клиента (подписка на комнату)
type inboundMessage struct {
	Action string `json:"action"`
	Room   string `json:"room"`
}

// NewHub создает новый Hub
func NewHub(logger *logrus.Logger) *Hub {
	return &Hub{
		rooms:  make(map[string]map[*Client]struct{}),
		logger: logger,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin:     func(r *http.Request) bool { return true },
		},
	}
}

// ListenEvents подписывается на канал событий в Redis и пересылает каждое
// событие членам соответствующей локальной комнаты
func (h *Hub) ListenEvents(ctx context.Context, redisClient *redis.Client) {
	sub := redisClient.Subscribe(ctx, eventsChannel)
	ch := sub.Channel()

	go func() {
		defer sub.Close()
		h.logger.Info("Broadcast hub subscribed to dispatch events")
		for {
			select {
			case <-ctx.Done():
				h.logger.Info("Stopping broadcast hub listener")
				return
			case msg, ok := <-ch:
				if !ok {
					return
				}
				var env struct {
					Room string `json:"room"`
				}
				if err := json.Unmarshal([]byte(msg.Payload), &env); err != nil {
					h.logger.WithError(err).Error("Failed to unmarshal broadcast envelope")
					continue
				}
				h.Broadcast(env.Room, []byte(msg.Payload))
			}
		}
	}()
}

// Broadcast доставляет сообщение всем членам комнаты.
// Медленный клиент с переполненным буфером пропускает кадр.
func (h *Hub) Broadcast(room string, message []byte) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	for client := range h.rooms[room] {
		select {
		case client.send <- message:
		default:
		}
	}
}

// RoomSize возвращает число подключенных членов комнаты
func (h *Hub) RoomSize(room string) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.rooms[room])
}

func (h *Hub) join(c *Client, room string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if _, ok := h.rooms[room]; !ok {
		h.rooms[room] = make(map[*Client]struct{})
	}
	h.rooms[room][c] = struct{}{}
	c.rooms[room] = struct{}{}
}

func (h *Hub) leave(c *Client, room string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if members, ok := h.rooms[room]; ok {
		delete(members, c)
		if len(members) == 0 {
			delete(h.rooms, room)
		}
	}
	delete(c.rooms, room)
}

func (h *Hub) unregister(c *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	for room := range c.rooms {
		if members, ok := h.rooms[room]; ok {
			delete(members, c)
			if len(members) == 0 {
				delete(h.rooms, room)
			}
		}
	}
	close(c.send)
}

// ServeWS апгрейдит HTTP-запрос до WebSocket и запускает насосы чтения/записи
func (h *Hub) ServeWS(w http.ResponseWriter, r *http.Request) {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.logger.WithError(err).Warn("Failed to upgrade websocket connection")
		return
	}

	client := &Client{
		hub:   h,
		conn:  conn,
		send:  make(chan []byte, sendBufferSize),
		rooms: make(map[string]struct{}),
	}

	go client.writePump()
	client.readPump()
}

// readPump читает входящие сообщения: join_room / leave_room
func (c *Client) readPump() {
	defer func() {
		c.hub.unregister(c)
		c.conn.Close()
	}()
	c.conn.SetReadLimit(maxMessageSize)
	c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		c.conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		_, data, err := c.conn.ReadMessage()
		if err != nil {
			return
		}
		var msg inboundMessage
		if err := json.Unmarshal(data, &msg); err != nil || msg.Room == "" {
			continue
		}
		switch msg.Action {
		case "join_room":
			c.hub.join(c, msg.Room)
		case "leave_room":
			c.hub.leave(c, msg.Room)
		}
	}
}

// writePump пишет исходящие события и поддерживает соединение пингами
func (c *Client) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()

	for {
		select {
		case message, ok := <-c.send:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.conn.WriteMessage(websocket.TextMessage, message); err != nil {
				return
			}
		case <-ticker.C:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
