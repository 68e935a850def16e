package middleware

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/dmitrijs2005/quizweb/internal/common"
	"github.com/dmitrijs2005/quizweb/internal/logging"
	"github.com/dmitrijs2005/quizweb/internal/server/session"
)

const (
	SessionCookie = "quiz_session"
	stateKey      = "quiz_state"
)

// SessionStore moves session.State between the signed cookie and the gin
// context.
type SessionStore struct {
	codec  *session.Codec
	secure bool
	logger logging.Logger
}

func NewSessionStore(codec *session.Codec, secure bool, l logging.Logger) *SessionStore {
	return &SessionStore{codec: codec, secure: secure, logger: l}
}

// Load decodes the session cookie into the request. A missing, tampered or
// expired cookie yields an empty State.
func (s *SessionStore) Load() gin.HandlerFunc {
	return func(c *gin.Context) {
		st := &session.State{}

		if raw, err := c.Cookie(SessionCookie); err == nil && raw != "" {
			decoded, err := s.codec.Decode(raw)
			switch {
			case err == nil:
				st = decoded
			case errors.Is(err, common.ErrTokenExpired):
				s.logger.Debug(c.Request.Context(), "session expired")
			default:
				s.logger.Warn(c.Request.Context(), "rejected session cookie", "error", err)
			}
		}

		c.Set(stateKey, st)
		c.Next()
	}
}

// Save writes the current State back as a cookie, or clears the cookie when
// nobody is logged in. Call it before writing the response body.
func (s *SessionStore) Save(c *gin.Context) error {
	st := StateFrom(c)
	c.SetSameSite(http.SameSiteLaxMode)

	if !st.Authenticated() {
		c.SetCookie(SessionCookie, "", -1, "/", "", s.secure, true)
		return nil
	}

	token, err := s.codec.Encode(st)
	if err != nil {
		return err
	}
	c.SetCookie(SessionCookie, token, int(s.codec.TTL().Seconds()), "/", "", s.secure, true)
	return nil
}

// StateFrom returns the request's State. It is never nil.
func StateFrom(c *gin.Context) *session.State {
	if v, ok := c.Get(stateKey); ok {
		if st, ok := v.(*session.State); ok {
			return st
		}
	}
	st := &session.State{}
	c.Set(stateKey, st)
	return st
}
