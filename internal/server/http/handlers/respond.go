package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/dmitrijs2005/quizweb/internal/common"
	"github.com/dmitrijs2005/quizweb/internal/logging"
	"github.com/dmitrijs2005/quizweb/internal/server/http/flash"
	"github.com/dmitrijs2005/quizweb/internal/server/http/middleware"
)

// responder finishes a request: it persists the session cookie, then
// redirects or renders.
type responder struct {
	sessions *middleware.SessionStore
	logger   logging.Logger
}

func (r responder) redirect(c *gin.Context, location string) {
	if err := r.sessions.Save(c); err != nil {
		r.fail(c, err)
		return
	}
	if err := flash.Save(c); err != nil {
		r.logger.Warn(c.Request.Context(), "flash not saved", "error", err)
	}
	c.Redirect(http.StatusFound, location)
}

func (r responder) page(c *gin.Context, status int, name string, data gin.H) {
	if err := r.sessions.Save(c); err != nil {
		r.fail(c, err)
		return
	}
	r.render(c, status, name, data)
}

func (r responder) render(c *gin.Context, status int, name string, data gin.H) {
	if data == nil {
		data = gin.H{}
	}
	data["Flashes"] = flash.Pop(c)
	data["User"] = middleware.StateFrom(c).Username
	c.HTML(status, name, data)
}

// fail renders the generic error page. A missing question is 404; anything
// else is treated as a storage failure.
func (r responder) fail(c *gin.Context, err error) {
	_ = c.Error(err)

	status, msg := http.StatusInternalServerError, "Something went wrong. Please try again later."
	if errors.Is(err, common.ErrQuestionNotFound) {
		status, msg = http.StatusNotFound, "That question does not exist."
	} else {
		r.logger.Error(c.Request.Context(), "request failed", "path", c.Request.URL.Path, "error", err)
	}

	r.render(c, status, "error.html", gin.H{"Title": "Error", "Status": status, "Message": msg})
}
