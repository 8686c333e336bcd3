// Package webhook exposes the HTTP surface that receives Telegram updates.
package webhook

import (
	"context"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

const secretTokenHeader = "X-Telegram-Bot-Api-Secret-Token"

// UpdateHandler processes one parsed Telegram update.
type UpdateHandler interface {
	HandleUpdate(ctx context.Context, update tgbotapi.Update)
}

// Server owns the gin router for the webhook endpoint and a liveness probe.
type Server struct {
	handler     UpdateHandler
	path        string
	secret      string
	turnTimeout time.Duration
	baseCtx     context.Context
}

// NewServer wires the webhook route. baseCtx bounds the lifetime of in-flight
// turns: when it is canceled at shutdown, running turns are canceled too.
func NewServer(baseCtx context.Context, handler UpdateHandler, path, secret string, turnTimeout time.Duration) *Server {
	if path == "" {
		path = "/webhook"
	}
	if turnTimeout <= 0 {
		turnTimeout = 30 * time.Second
	}
	return &Server{
		handler:     handler,
		path:        path,
		secret:      secret,
		turnTimeout: turnTimeout,
		baseCtx:     baseCtx,
	}
}

// Router builds the gin engine. Domain failures never surface as an error
// status: only an unparseable body earns a 400, so Telegram retries exactly
// the deliveries that never reached the dispatcher.
func (s *Server) Router() *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())

	router.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	router.POST(s.path, s.handleWebhook)
	return router
}

func (s *Server) handleWebhook(c *gin.Context) {
	if s.secret != "" && c.GetHeader(secretTokenHeader) != s.secret {
		log.Printf("[handleWebhook] Rejected update with bad secret token from %s", c.ClientIP())
		c.Status(http.StatusForbidden)
		return
	}

	var update tgbotapi.Update
	if err := c.ShouldBindJSON(&update); err != nil {
		log.Printf("[handleWebhook] Malformed update body: %v", err)
		c.Status(http.StatusBadRequest)
		return
	}

	// Acknowledge immediately; the turn runs with its own bounded deadline
	// so one slow notification cannot stall the webhook worker pool.
	go func() {
		ctx, cancel := context.WithTimeout(s.baseCtx, s.turnTimeout)
		defer cancel()
		s.handler.HandleUpdate(ctx, update)
	}()

	c.Status(http.StatusOK)
}
