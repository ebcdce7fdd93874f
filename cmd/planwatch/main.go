// Command main is a CLI client for the follow-activity feed. It logs
// in, connects to the WebSocket feed, and prints follow events as they
// arrive. Useful for watching a demo environment or debugging fanout.
package main

import (
	"bytes"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"net/http"
	"net/url"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gorilla/websocket"
)

type followEvent struct {
	Type       string    `json:"type"`
	PlanID     string    `json:"plan_id"`
	UserID     string    `json:"user_id"`
	Followers  int       `json:"followers"`
	OccurredAt time.Time `json:"occurred_at"`
}

func main() {
	host := flag.String("host", "localhost:8081", "API server host")
	email := flag.String("email", "", "Account email")
	password := flag.String("password", "", "Account password")
	token := flag.String("token", "", "JWT to use instead of logging in")
	planIDs := flag.String("plans", "", "Comma-separated plan IDs to watch (empty for the whole feed)")
	flag.Parse()

	jwt := *token
	if jwt == "" {
		if *email == "" || *password == "" {
			log.Fatal("Provide either -token or -email and -password")
		}
		var err error
		jwt, err = login(*host, *email, *password)
		if err != nil {
			log.Fatalf("Login failed: %v", err)
		}
		log.Println("Logged in")
	}

	u := url.URL{Scheme: "ws", Host: *host, Path: "/api/ws/follows"}
	if *planIDs != "" {
		u.RawQuery = "plan_ids=" + url.QueryEscape(*planIDs)
	}

	header := http.Header{}
	header.Set("Authorization", "Bearer "+jwt)

	conn, resp, err := websocket.DefaultDialer.Dial(u.String(), header)
	if err != nil {
		if resp != nil {
			log.Fatalf("Dial failed: %v (status %d)", err, resp.StatusCode)
		}
		log.Fatalf("Dial failed: %v", err)
	}
	defer func() { _ = conn.Close() }()
	if resp != nil && resp.Body != nil {
		defer func() { _ = resp.Body.Close() }()
	}
	log.Printf("Watching %s", u.String())

	interrupt := make(chan os.Signal, 1)
	signal.Notify(interrupt, os.Interrupt, syscall.SIGTERM)

	done := make(chan struct{})
	go func() {
		defer close(done)
		for {
			_, msg, err := conn.ReadMessage()
			if err != nil {
				log.Printf("Read error: %v", err)
				return
			}
			var ev followEvent
			if err := json.Unmarshal(msg, &ev); err != nil {
				log.Printf("Unparseable message: %s", msg)
				continue
			}
			fmt.Printf("%s  %-16s plan=%s user=%s followers=%d\n",
				ev.OccurredAt.Format(time.RFC3339), ev.Type, ev.PlanID, ev.UserID, ev.Followers)
		}
	}()

	select {
	case <-done:
	case <-interrupt:
		log.Println("Closing connection...")
		_ = conn.WriteMessage(websocket.CloseMessage,
			websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
		select {
		case <-done:
		case <-time.After(2 * time.Second):
		}
	}
}

func login(host, email, password string) (string, error) {
	loginURL := fmt.Sprintf("http://%s/api/auth/login", host)
	payload, _ := json.Marshal(map[string]string{
		"email":    email,
		"password": password,
	})

	resp, err := http.Post(loginURL, "application/json", bytes.NewBuffer(payload))
	if err != nil {
		return "", err
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("login failed with status %d", resp.StatusCode)
	}

	var result struct {
		Token string `json:"token"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return "", err
	}
	return result.Token, nil
}
