package server

import (
	"log"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/websocket/v2"
)

// FollowFeedHandler handles GET /api/ws/follows. Clients receive a
// follow event for every plan they watch; with no plan_ids query
// parameter they receive the whole feed.
func (s *Server) FollowFeedHandler() fiber.Handler {
	return websocket.New(func(conn *websocket.Conn) {
		userIDVal := conn.Locals("userID")
		userID, ok := userIDVal.(string)
		if !ok || userID == "" {
			log.Printf("follow feed: unauthenticated connection attempt")
			_ = conn.WriteMessage(websocket.TextMessage, []byte(`{"error":"unauthorized"}`))
			_ = conn.Close()
			return
		}

		// follow_feed ships enabled; the flag exists to turn the feed
		// off for a cohort during incidents.
		if !s.flags.EnabledDefault("follow_feed", userID, true) {
			_ = conn.WriteMessage(websocket.TextMessage, []byte(`{"error":"feature not available"}`))
			_ = conn.Close()
			return
		}

		var planIDs []string
		if raw := conn.Query("plan_ids"); raw != "" {
			for _, id := range strings.Split(raw, ",") {
				if id = strings.TrimSpace(id); id != "" {
					planIDs = append(planIDs, id)
				}
			}
		}

		client, err := s.hub.Register(userID, conn, planIDs)
		if err != nil {
			log.Printf("follow feed: failed to register user %s: %v", userID, err)
			_ = conn.WriteMessage(websocket.TextMessage, []byte(`{"error":"`+err.Error()+`"}`))
			_ = conn.Close()
			return
		}

		go client.WritePump()
		client.ReadPump()
	})
}
