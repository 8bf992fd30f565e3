package handlers

import (
	"context"
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/sirupsen/logrus"

	"github.com/netslayer67/mws-backend/internal/api/middleware"
	"github.com/netslayer67/mws-backend/internal/domain/events"
	"github.com/netslayer67/mws-backend/internal/infrastructure/cache"
)

var log = logrus.New()

const (
	wsReadLimit     = 10 * 1024
	wsReadDeadline  = 60 * time.Second
	wsPingInterval  = 30 * time.Second
	wsSendQueueSize = 16
)

// socketMessage is the envelope pushed to connected clients.
type socketMessage struct {
	Event     string      `json:"event"`
	Payload   interface{} `json:"payload,omitempty"`
	Timestamp time.Time   `json:"timestamp"`
}

type client struct {
	conn *websocket.Conn
	send chan socketMessage
}

// RealtimeHandler bridges redis pub/sub events onto websockets so
// dashboards re-fetch without polling.
type RealtimeHandler struct {
	redisClient *cache.RedisClient
	upgrader    websocket.Upgrader

	mu        sync.RWMutex
	dashboard map[*client]struct{}
	personal  map[uuid.UUID]map[*client]struct{}
}

// NewRealtimeHandler creates a new realtime handler
func NewRealtimeHandler(redisClient *cache.RedisClient) *RealtimeHandler {
	return &RealtimeHandler{
		redisClient: redisClient,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin: func(r *http.Request) bool {
				return true // Allow all origins in development
			},
		},
		dashboard: make(map[*client]struct{}),
		personal:  make(map[uuid.UUID]map[*client]struct{}),
	}
}

// StartEventBridges subscribes to the redis channels and fans events
// out to connected sockets. It returns immediately; the bridges run
// until the context is cancelled.
func (h *RealtimeHandler) StartEventBridges(ctx context.Context) {
	go func() {
		err := h.redisClient.SubscribeToDashboardEvents(ctx, func(event *events.DashboardEvent) error {
			name := socketEventName(event.EventType)
			h.broadcastDashboard(socketMessage{
				Event:     name,
				Payload:   event,
				Timestamp: time.Now().UTC(),
			})
			return nil
		})
		if err != nil {
			log.WithError(err).Error("dashboard event bridge stopped")
		}
	}()

	go func() {
		err := h.redisClient.SubscribeToPersonalEvents(ctx, func(userID uuid.UUID, event *events.PersonalEvent) error {
			h.sendPersonal(userID, socketMessage{
				Event:     event.EventType,
				Payload:   event,
				Timestamp: time.Now().UTC(),
			})
			return nil
		})
		if err != nil {
			log.WithError(err).Error("personal event bridge stopped")
		}
	}()
}

// socketEventName maps internal pub/sub subtypes to the event names
// clients listen on.
func socketEventName(eventType string) string {
	switch eventType {
	case events.DashboardEventStatsUpdate, events.DashboardEventCacheInvalidate:
		return events.EventDashboardUpdate
	default:
		return eventType
	}
}

// HandleDashboardSocket upgrades the request and streams dashboard
// refresh events. Restricted to staff by the route middleware.
func (h *RealtimeHandler) HandleDashboardSocket(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not authenticated"})
		return
	}

	ws, err := h.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		log.WithError(err).WithField("user_id", userID).Error("websocket upgrade failed")
		return
	}

	cl := &client{conn: ws, send: make(chan socketMessage, wsSendQueueSize)}
	h.mu.Lock()
	h.dashboard[cl] = struct{}{}
	h.mu.Unlock()

	log.WithFields(logrus.Fields{
		"user_id":     userID,
		"remote_addr": c.Request.RemoteAddr,
	}).Info("dashboard socket connected")

	h.serve(cl, func() {
		h.mu.Lock()
		delete(h.dashboard, cl)
		h.mu.Unlock()
	})
}

// HandlePersonalSocket streams the authenticated user's own events.
func (h *RealtimeHandler) HandlePersonalSocket(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not authenticated"})
		return
	}

	ws, err := h.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		log.WithError(err).WithField("user_id", userID).Error("websocket upgrade failed")
		return
	}

	cl := &client{conn: ws, send: make(chan socketMessage, wsSendQueueSize)}
	h.mu.Lock()
	if h.personal[userID] == nil {
		h.personal[userID] = make(map[*client]struct{})
	}
	h.personal[userID][cl] = struct{}{}
	h.mu.Unlock()

	log.WithField("user_id", userID).Info("personal socket connected")

	h.serve(cl, func() {
		h.mu.Lock()
		delete(h.personal[userID], cl)
		if len(h.personal[userID]) == 0 {
			delete(h.personal, userID)
		}
		h.mu.Unlock()
	})
}

// serve pumps queued messages to the socket and keeps it alive with
// pings until either side closes.
func (h *RealtimeHandler) serve(cl *client, unregister func()) {
	defer func() {
		unregister()
		cl.conn.Close()
	}()

	cl.conn.SetReadLimit(wsReadLimit)
	cl.conn.SetReadDeadline(time.Now().Add(wsReadDeadline))
	cl.conn.SetPongHandler(func(string) error {
		cl.conn.SetReadDeadline(time.Now().Add(wsReadDeadline))
		return nil
	})

	done := make(chan struct{})
	go func() {
		defer close(done)
		for {
			if _, _, err := cl.conn.ReadMessage(); err != nil {
				if websocket.IsUnexpectedCloseError(err,
					websocket.CloseGoingAway,
					websocket.CloseAbnormalClosure) {
					log.WithError(err).Error("websocket read error")
				}
				return
			}
		}
	}()

	pingTicker := time.NewTicker(wsPingInterval)
	defer pingTicker.Stop()

	for {
		select {
		case msg, ok := <-cl.send:
			if !ok {
				return
			}
			if err := cl.conn.WriteJSON(msg); err != nil {
				log.WithError(err).Error("websocket write error")
				return
			}
		case <-pingTicker.C:
			if err := cl.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		case <-done:
			return
		}
	}
}

func (h *RealtimeHandler) broadcastDashboard(msg socketMessage) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	for cl := range h.dashboard {
		select {
		case cl.send <- msg:
		default:
			// Slow consumer; drop the message rather than block the bridge.
		}
	}
}

func (h *RealtimeHandler) sendPersonal(userID uuid.UUID, msg socketMessage) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	for cl := range h.personal[userID] {
		select {
		case cl.send <- msg:
		default:
		}
	}
}
