package broadcast

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestHub(t *testing.T) (*Hub, *httptest.Server) {
	logger := logrus.New()
	logger.SetOutput(&bytes.Buffer{}) // Отключаем вывод логов в тестах

	hub := NewHub(logger)
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hub.ServeWS(w, r)
	}))
	t.Cleanup(server.Close)
	return hub, server
}

func dialWS(t *testing.T, server *httptest.Server) *websocket.Conn {
	url := "ws" + strings.TrimPrefix(server.URL, "http")
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })
	return conn
}

// waitRoomSize ждет, пока членство комнаты достигнет ожидаемого размера
func waitRoomSize(t *testing.T, hub *Hub, room string, size int) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if hub.RoomSize(room) == size {
			return
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatalf("room %s did not reach size %d, current %d", room, size, hub.RoomSize(room))
}

func TestHub_JoinAndBroadcast(t *testing.T) {
	// Подготовка
	hub, server := newTestHub(t)
	room := IncidentRoom(uuid.New())
	conn := dialWS(t, server)

	require.NoError(t, conn.WriteJSON(inboundMessage{Action: "join_room", Room: room}))
	waitRoomSize(t, hub, room, 1)

	// Действие
	message, _ := json.Marshal(Event{Room: room, Name: EventIncidentStatus})
	hub.Broadcast(room, message)

	// Проверки
	conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	_, data, err := conn.ReadMessage()
	require.NoError(t, err)

	var received Event
	require.NoError(t, json.Unmarshal(data, &received))
	assert.Equal(t, room, received.Room)
	assert.Equal(t, EventIncidentStatus, received.Name)
}

func TestHub_BroadcastIsRoomScoped(t *testing.T) {
	// Подготовка: два клиента в разных комнатах
	hub, server := newTestHub(t)
	roomA := IncidentRoom(uuid.New())
	roomB := IncidentRoom(uuid.New())

	connA := dialWS(t, server)
	connB := dialWS(t, server)
	require.NoError(t, connA.WriteJSON(inboundMessage{Action: "join_room", Room: roomA}))
	require.NoError(t, connB.WriteJSON(inboundMessage{Action: "join_room", Room: roomB}))
	waitRoomSize(t, hub, roomA, 1)
	waitRoomSize(t, hub, roomB, 1)

	// Действие
	hub.Broadcast(roomA, []byte(`{"event":"incident_status"}`))

	// Проверки: клиент комнаты A получает событие, клиент комнаты B — нет
	connA.SetReadDeadline(time.Now().Add(2 * time.Second))
	_, _, err := connA.ReadMessage()
	require.NoError(t, err)

	connB.SetReadDeadline(time.Now().Add(200 * time.Millisecond))
	_, _, err = connB.ReadMessage()
	require.Error(t, err)
	assert.True(t, websocket.IsUnexpectedCloseError(err) || strings.Contains(err.Error(), "timeout"))
}

func TestHub_LeaveRoom(t *testing.T) {
	hub, server := newTestHub(t)
	room := ResponderRoom(uuid.New())
	conn := dialWS(t, server)

	require.NoError(t, conn.WriteJSON(inboundMessage{Action: "join_room", Room: room}))
	waitRoomSize(t, hub, room, 1)

	require.NoError(t, conn.WriteJSON(inboundMessage{Action: "leave_room", Room: room}))
	waitRoomSize(t, hub, room, 0)
}

func TestHub_DisconnectCleansMembership(t *testing.T) {
	hub, server := newTestHub(t)
	room := OperatorsRoom
	conn := dialWS(t, server)

	require.NoError(t, conn.WriteJSON(inboundMessage{Action: "join_room", Room: room}))
	waitRoomSize(t, hub, room, 1)

	conn.Close()
	waitRoomSize(t, hub, room, 0)
}

func TestHub_IgnoresMalformedMessages(t *testing.T) {
	hub, server := newTestHub(t)
	room := OperatorsRoom
	conn := dialWS(t, server)

	require.NoError(t, conn.WriteMessage(websocket.TextMessage, []byte("not json")))
	require.NoError(t, conn.WriteJSON(inboundMessage{Action: "join_room", Room: ""}))
	require.NoError(t, conn.WriteJSON(inboundMessage{Action: "join_room", Room: room}))
	waitRoomSize(t, hub, room, 1)

	assert.Equal(t, 0, hub.RoomSize(""))
}
