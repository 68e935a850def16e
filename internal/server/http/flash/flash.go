// Package flash stores one-shot messages between a redirect and the next
// rendered page, in a cookie-backed gin-contrib session.
package flash

import (
	"encoding/gob"
	"net/http"

	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"
)

const (
	KindSuccess = "success"
	KindError   = "error"

	cookieName = "quiz_flash"
)

type Message struct {
	Kind string
	Text string
}

func init() {
	gob.Register(Message{})
}

// Middleware installs the flash session store. key authenticates the cookie.
func Middleware(key []byte, secure bool) gin.HandlerFunc {
	store := cookie.NewStore(key)
	store.Options(sessions.Options{
		Path:     "/",
		HttpOnly: true,
		Secure:   secure,
		SameSite: http.SameSiteLaxMode,
	})
	return sessions.Sessions(cookieName, store)
}

// Add queues a message for the next page. Queued messages reach the client
// only after Save.
func Add(c *gin.Context, kind, text string) {
	sessions.Default(c).AddFlash(Message{Kind: kind, Text: text})
}

func Success(c *gin.Context, text string) { Add(c, KindSuccess, text) }

func Error(c *gin.Context, text string) { Add(c, KindError, text) }

// Save writes the flash cookie once for the whole response. It is a no-op
// when nothing changed, and must run before the response body is written.
func Save(c *gin.Context) error {
	return sessions.Default(c).Save()
}

// Pop returns and clears the queued messages. It must run before the
// response body is written.
func Pop(c *gin.Context) []Message {
	s := sessions.Default(c)
	raw := s.Flashes()
	if len(raw) == 0 {
		return nil
	}
	_ = s.Save()

	out := make([]Message, 0, len(raw))
	for _, r := range raw {
		if m, ok := r.(Message); ok {
			out = append(out, m)
		}
	}
	return out
}
