package server

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"pdf-rag/internal/session"
)

const (
	sessionCookie = "pdfrag_session"
	sessionKey    = "session"
)

func requestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		status := c.Writer.Status()
		var evt *zerolog.Event
		switch {
		case status >= http.StatusInternalServerError:
			evt = log.Error()
		case status >= http.StatusBadRequest:
			evt = log.Warn()
		default:
			evt = log.Info()
		}
		if len(c.Errors) > 0 {
			evt = evt.Str("errors", c.Errors.String())
		}
		evt.Str("method", c.Request.Method).
			Str("path", c.Request.URL.Path).
			Int("status", status).
			Dur("latency", time.Since(start)).
			Msg("HTTP request")
	}
}

// sessionMiddleware attaches the caller's session, creating one and setting
// the cookie when the request carries none or an expired one.
func (s *Server) sessionMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		id, _ := c.Cookie(sessionCookie)
		sess, created, err := s.store.GetOrCreate(id)
		if err != nil {
			log.Error().Err(err).Msg("Error creating session")
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "failed to create session"})
			return
		}
		if created {
			c.SetSameSite(http.SameSiteLaxMode)
			c.SetCookie(sessionCookie, sess.ID(), int(s.cfg.SessionTTL.Seconds()), "/", "", false, true)
		}
		c.Set(sessionKey, sess)
		c.Next()
	}
}

func currentSession(c *gin.Context) *session.Session {
	return c.MustGet(sessionKey).(*session.Session)
}
