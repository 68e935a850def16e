package handlers

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/dmitrijs2005/quizweb/internal/common"
	"github.com/dmitrijs2005/quizweb/internal/cryptox"
	"github.com/dmitrijs2005/quizweb/internal/logging"
	"github.com/dmitrijs2005/quizweb/internal/server/http/flash"
	"github.com/dmitrijs2005/quizweb/internal/server/http/middleware"
	"github.com/dmitrijs2005/quizweb/internal/server/metrics"
	"github.com/dmitrijs2005/quizweb/internal/server/models"
)

type AccountService interface {
	Register(ctx context.Context, username, password string) (*models.Account, error)
	Login(ctx context.Context, username, password string) (*models.Account, error)
}

type AuthHandler struct {
	responder
	accounts  AccountService
	metrics   *metrics.Metrics
	episodeID func() string
}

func NewAuthHandler(accounts AccountService, sessions *middleware.SessionStore, m *metrics.Metrics, l logging.Logger) *AuthHandler {
	return &AuthHandler{
		responder: responder{sessions: sessions, logger: l.With("handler", "auth")},
		accounts:  accounts,
		metrics:   m,
		episodeID: uuid.NewString,
	}
}

type credentialsForm struct {
	Username string `form:"username"`
	Password string `form:"password"`
}

func (h *AuthHandler) RegisterForm(c *gin.Context) {
	h.page(c, http.StatusOK, "register.html", gin.H{"Title": "Register"})
}

func (h *AuthHandler) Register(c *gin.Context) {
	var form credentialsForm
	_ = c.ShouldBind(&form)

	_, err := h.accounts.Register(c.Request.Context(), form.Username, form.Password)
	switch {
	case err == nil:
		h.metrics.Registration("ok")
		flash.Success(c, "Registration complete. Please log in.")
		h.redirect(c, "/")
	case errors.Is(err, common.ErrDuplicateUsername):
		h.metrics.Registration("duplicate")
		flash.Error(c, "That username is already taken.")
		h.redirect(c, "/")
	case errors.Is(err, common.ErrInvalidCredentials):
		h.metrics.Registration("invalid")
		h.page(c, http.StatusBadRequest, "register.html", gin.H{
			"Title":    "Register",
			"Error":    "Username and password are required.",
			"Username": form.Username,
		})
	case errors.Is(err, common.ErrPasswordTooLong):
		h.metrics.Registration("invalid")
		h.page(c, http.StatusBadRequest, "register.html", gin.H{
			"Title":    "Register",
			"Error":    fmt.Sprintf("Password must be at most %d bytes.", cryptox.MaxPasswordBytes),
			"Username": form.Username,
		})
	default:
		h.metrics.Registration("error")
		h.fail(c, err)
	}
}

func (h *AuthHandler) LoginForm(c *gin.Context) {
	h.page(c, http.StatusOK, "login.html", gin.H{"Title": "Log in"})
}

func (h *AuthHandler) Login(c *gin.Context) {
	var form credentialsForm
	_ = c.ShouldBind(&form)

	acc, err := h.accounts.Login(c.Request.Context(), form.Username, form.Password)
	switch {
	case err == nil:
		h.metrics.Login("ok")
		st := middleware.StateFrom(c)
		st.BeginEpisode(acc.UserName, h.episodeID())
		h.logger.Info(c.Request.Context(), "user logged in", "user", acc.UserName, "episode_id", st.EpisodeID)
		flash.Success(c, "You are logged in.")
		h.redirect(c, "/quiz")
	case errors.Is(err, common.ErrUnknownUser):
		h.metrics.Login("unknown_user")
		flash.Error(c, "No such user. Please register first.")
		h.redirect(c, "/index")
	case errors.Is(err, common.ErrBadPassword):
		h.metrics.Login("bad_password")
		flash.Error(c, "Incorrect password.")
		h.redirect(c, "/")
	case errors.Is(err, common.ErrInvalidCredentials):
		h.metrics.Login("invalid")
		h.page(c, http.StatusBadRequest, "login.html", gin.H{
			"Title":    "Log in",
			"Error":    "Username and password are required.",
			"Username": form.Username,
		})
	default:
		h.metrics.Login("error")
		h.fail(c, err)
	}
}

func (h *AuthHandler) Logout(c *gin.Context) {
	middleware.StateFrom(c).Logout()
	flash.Success(c, "You have been logged out.")
	h.redirect(c, "/")
}

func (h *AuthHandler) Dashboard(c *gin.Context) {
	h.page(c, http.StatusOK, "dashboard.html", gin.H{"Title": "Dashboard"})
}
