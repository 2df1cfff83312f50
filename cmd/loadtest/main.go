// loadtest opens a swarm of websocket connections against a running hub,
// joins them all to one conversation, and fires messages while hammering
// the monitoring trigger endpoint. Useful to eyeball debounce behavior
// and broadcast fan-out under load.
package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	HubAddr        string        `envconfig:"HUB_ADDR" default:"localhost:8080"`
	Connections    int           `envconfig:"CONNECTIONS" default:"50"`
	Conversation   string        `envconfig:"CONVERSATION" default:"loadtest-room"`
	Messages       int           `envconfig:"MESSAGES" default:"10"`
	TriggerBursts  int           `envconfig:"TRIGGER_BURSTS" default:"5"`
	BurstSize      int           `envconfig:"BURST_SIZE" default:"20"`
	MessagePause   time.Duration `envconfig:"MESSAGE_PAUSE" default:"100ms"`
	ReceiveTimeout time.Duration `envconfig:"RECEIVE_TIMEOUT" default:"5s"`
}

func main() {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		log.Fatalf("config: %v", err)
	}

	wsURL := fmt.Sprintf("ws://%s/ws/chat", cfg.HubAddr)
	notifyURL := fmt.Sprintf("http://%s/api/monitoring/notify", cfg.HubAddr)

	var received sync.Map
	var wg sync.WaitGroup

	// 1. Open the swarm and join everyone to the same conversation.
	conns := make([]*websocket.Conn, 0, cfg.Connections)
	for i := 0; i < cfg.Connections; i++ {
		conn, _, err := websocket.DefaultDialer.Dial(wsURL, nil)
		if err != nil {
			log.Fatalf("dial %d: %v", i, err)
		}
		conns = append(conns, conn)

		join := map[string]string{"action": "joinChat", "conversationId": cfg.Conversation}
		if err := conn.WriteJSON(join); err != nil {
			log.Fatalf("join %d: %v", i, err)
		}

		wg.Add(1)
		go func(idx int, c *websocket.Conn) {
			defer wg.Done()
			count := 0
			_ = c.SetReadDeadline(time.Now().Add(cfg.ReceiveTimeout))
			for {
				if _, _, err := c.ReadMessage(); err != nil {
					break
				}
				count++
				_ = c.SetReadDeadline(time.Now().Add(cfg.ReceiveTimeout))
			}
			received.Store(idx, count)
		}(i, conn)
	}
	log.Printf("%d connections joined %q", cfg.Connections, cfg.Conversation)

	// 2. Fire chat messages from the first connection.
	for i := 0; i < cfg.Messages; i++ {
		msg := map[string]string{
			"action":         "sendMessage",
			"conversationId": cfg.Conversation,
			"body":           fmt.Sprintf("loadtest message %d", i),
		}
		if err := conns[0].WriteJSON(msg); err != nil {
			log.Fatalf("send %d: %v", i, err)
		}
		time.Sleep(cfg.MessagePause)
	}

	// 3. Hammer the monitoring trigger in bursts; the hub should collapse
	// each burst into at most one MonitoringUpdated per window.
	for burst := 0; burst < cfg.TriggerBursts; burst++ {
		var burstWg sync.WaitGroup
		for i := 0; i < cfg.BurstSize; i++ {
			burstWg.Add(1)
			go func() {
				defer burstWg.Done()
				body, _ := json.Marshal(map[string]any{
					"source":        "loadtest",
					"affectedCount": 1,
				})
				resp, err := http.Post(notifyURL, "application/json", bytes.NewReader(body))
				if err == nil {
					_ = resp.Body.Close()
				}
			}()
		}
		burstWg.Wait()
		time.Sleep(cfg.MessagePause)
	}

	for _, c := range conns {
		_ = c.Close()
	}
	wg.Wait()

	total := 0
	received.Range(func(_, v any) bool {
		total += v.(int)
		return true
	})
	log.Printf("done: %d frames received across %d connections", total, cfg.Connections)
}
