package middlewares

import (
	"net/http"

	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"
)

// Flash categories.
const (
	FlashSuccess = "success_msg"
	FlashError   = "error_msg"
)

type SessionConfig struct {
	Name   string
	Secret string
	Secure bool
}

// Sessions installs a cookie backed session on every request.
func Sessions(conf SessionConfig) gin.HandlerFunc {
	store := cookie.NewStore([]byte(conf.Secret))
	store.Options(sessions.Options{
		Path:     "/",
		MaxAge:   86400,
		HttpOnly: true,
		Secure:   conf.Secure,
		SameSite: http.SameSiteLaxMode,
	})
	return sessions.Sessions(conf.Name, store)
}

// AddFlash queues a message for the next rendered page and saves the session.
func AddFlash(c *gin.Context, category, msg string) error {
	s := sessions.Default(c)
	s.AddFlash(msg, category)
	return s.Save()
}

// Flashes returns and clears the queued messages of a category.
func Flashes(c *gin.Context, category string) ([]string, error) {
	s := sessions.Default(c)
	raw := s.Flashes(category)
	if len(raw) == 0 {
		return nil, nil
	}
	out := make([]string, 0, len(raw))
	for _, v := range raw {
		if msg, ok := v.(string); ok {
			out = append(out, msg)
		}
	}
	return out, s.Save()
}
