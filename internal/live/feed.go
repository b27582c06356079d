// Package live pushes day plans to websocket clients. Each request on a
// connection supersedes the ones before it: a plan that finishes loading
// after a newer request arrived is dropped.
package live

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"

	"banquetprep/internal/models"
	"banquetprep/internal/planning"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = 30 * time.Second
	maxMessageSize = 4 * 1024
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

// DayPlanner loads the plan for a calendar day.
type DayPlanner interface {
	PlanDay(ctx context.Context, day time.Time) (*planning.DayPlan, error)
}

// Request asks for the plan of one day.
type Request struct {
	Date string `json:"date"`
}

// Message is what the feed sends back.
type Message struct {
	Type  string            `json:"type"`
	Date  string            `json:"date,omitempty"`
	Plan  *planning.DayPlan `json:"plan,omitempty"`
	Error string            `json:"error,omitempty"`
}

// Feed serves the live day-plan websocket.
type Feed struct {
	planner DayPlanner
	log     *slog.Logger
}

// NewFeed creates a feed backed by planner.
func NewFeed(planner DayPlanner, log *slog.Logger) *Feed {
	if log == nil {
		log = slog.Default()
	}
	return &Feed{planner: planner, log: log}
}

// connection is one websocket client.
type connection struct {
	conn *websocket.Conn
	send chan []byte
	done chan struct{}
	feed *Feed

	mu         sync.Mutex
	generation uint64
}

// Handle upgrades the request and starts the pumps.
func (f *Feed) Handle(c *gin.Context) {
	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		f.log.Warn("Failed to upgrade connection", "error", err)
		return
	}

	wc := &connection{
		conn: conn,
		send: make(chan []byte, 16),
		done: make(chan struct{}),
		feed: f,
	}
	go wc.writePump()
	go wc.readPump()
}

func (c *connection) readPump() {
	defer func() {
		close(c.done)
		c.conn.Close()
	}()

	c.conn.SetReadLimit(maxMessageSize)
	c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		c.conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		_, message, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				c.feed.log.Warn("WebSocket error", "error", err)
			}
			return
		}
		c.handleMessage(message)
	}
}

func (c *connection) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()

	for {
		select {
		case message := <-c.send:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.TextMessage, message); err != nil {
				return
			}
		case <-ticker.C:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		case <-c.done:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			c.conn.WriteMessage(websocket.CloseMessage, []byte{})
			return
		}
	}
}

// begin registers a new request and returns its generation.
func (c *connection) begin() uint64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.generation++
	return c.generation
}

func (c *connection) handleMessage(message []byte) {
	gen := c.begin()

	var req Request
	if err := json.Unmarshal(message, &req); err != nil {
		c.deliver(gen, Message{Type: "error", Error: "invalid request: " + err.Error()})
		return
	}
	day, err := time.Parse(models.DateLayout, req.Date)
	if err != nil {
		c.deliver(gen, Message{Type: "error", Date: req.Date, Error: "invalid date, want YYYY-MM-DD"})
		return
	}

	go func() {
		plan, err := c.feed.planner.PlanDay(context.Background(), day)
		if err != nil {
			c.deliver(gen, Message{Type: "error", Date: req.Date, Error: err.Error()})
			return
		}
		c.deliver(gen, Message{Type: "plan", Date: req.Date, Plan: plan})
	}()
}

// deliver queues msg unless a newer request has been made since gen.
func (c *connection) deliver(gen uint64, msg Message) {
	data, err := json.Marshal(msg)
	if err != nil {
		c.feed.log.Error("Failed to encode live message", "error", err)
		return
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if gen != c.generation {
		c.feed.log.Debug("Dropping superseded plan", "date", msg.Date, "generation", gen, "latest", c.generation)
		return
	}
	select {
	case c.send <- data:
	case <-c.done:
	default:
		c.feed.log.Warn("Live feed buffer full, dropping message", "date", msg.Date)
	}
}
