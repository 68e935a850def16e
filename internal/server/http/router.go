// Package http wires the quiz web UI: routes, middleware and the embedded
// HTML templates.
package http

import (
	"html/template"

	"github.com/gin-gonic/gin"

	"github.com/dmitrijs2005/quizweb/internal/logging"
	"github.com/dmitrijs2005/quizweb/internal/server/http/flash"
	httpH "github.com/dmitrijs2005/quizweb/internal/server/http/handlers"
	httpMW "github.com/dmitrijs2005/quizweb/internal/server/http/middleware"
	"github.com/dmitrijs2005/quizweb/internal/server/metrics"
)

type RouterConfig struct {
	AuthHandler   *httpH.AuthHandler
	QuizHandler   *httpH.QuizHandler
	HealthHandler *httpH.HealthHandler

	Sessions       *httpMW.SessionStore
	FlashKey       []byte
	SecureCookies  bool
	AllowedOrigins []string
	Templates      *template.Template
	Metrics        *metrics.Metrics
	Logger         logging.Logger
}

func NewRouter(cfg RouterConfig) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(httpMW.RequestID())
	r.Use(httpMW.CORS(cfg.AllowedOrigins))
	r.Use(httpMW.Metrics(cfg.Metrics))
	r.Use(flash.Middleware(cfg.FlashKey, cfg.SecureCookies))
	r.Use(cfg.Sessions.Load())
	r.Use(httpMW.RequestLogger(cfg.Logger))

	if cfg.Templates != nil {
		r.SetHTMLTemplate(cfg.Templates)
	}

	// Health
	if cfg.HealthHandler != nil {
		r.GET("/healthz", cfg.HealthHandler.HealthCheck)
	}
	if cfg.Metrics != nil {
		r.GET("/metrics", gin.WrapH(cfg.Metrics.Handler()))
	}

	// Auth (public)
	if cfg.AuthHandler != nil {
		r.GET("/index", cfg.AuthHandler.RegisterForm)
		r.POST("/index", cfg.AuthHandler.Register)
		r.GET("/", cfg.AuthHandler.LoginForm)
		r.POST("/", cfg.AuthHandler.Login)
		r.GET("/logout", cfg.AuthHandler.Logout)
	}

	protected := r.Group("/")
	protected.Use(httpMW.RequireLogin())
	{
		if cfg.AuthHandler != nil {
			protected.GET("/dashboard", cfg.AuthHandler.Dashboard)
		}

		if cfg.QuizHandler != nil {
			protected.GET("/quiz", cfg.QuizHandler.Quiz)
			protected.POST("/submit_answer", cfg.QuizHandler.Submit)
			protected.GET("/next_question", cfg.QuizHandler.Next)
		}
	}

	return r
}
