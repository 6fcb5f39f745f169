package web

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/gorilla/websocket"
)

func TestSafeWriterConcurrentWrites(t *testing.T) {
	const writers = 10

	received := make(chan map[int]bool, 1)
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		upgrader := websocket.Upgrader{}
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			t.Errorf("Failed to upgrade connection: %v", err)
			return
		}
		defer conn.Close()

		ids := make(map[int]bool)
		for i := 0; i < writers; i++ {
			var msg struct {
				ID int `json:"id"`
			}
			if err := conn.ReadJSON(&msg); err != nil {
				t.Errorf("Error reading message: %v", err)
				break
			}
			ids[msg.ID] = true
		}
		received <- ids
	}))
	defer server.Close()

	wsURL := "ws" + strings.TrimPrefix(server.URL, "http")
	conn, _, err := websocket.DefaultDialer.Dial(wsURL, nil)
	if err != nil {
		t.Fatalf("Failed to connect to WebSocket server: %v", err)
	}
	writer := NewSafeWriter(conn, time.Second)
	defer writer.Close()

	var wg sync.WaitGroup
	for i := 0; i < writers; i++ {
		wg.Add(1)
		go func(id int) {
			defer wg.Done()
			if err := writer.WriteJSON(map[string]int{"id": id}); err != nil {
				t.Errorf("WriteJSON() error = %v", err)
			}
		}(i)
	}
	wg.Wait()

	select {
	case ids := <-received:
		if len(ids) != writers {
			t.Errorf("received %d distinct messages, expected %d", len(ids), writers)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("server did not receive all messages")
	}
}
