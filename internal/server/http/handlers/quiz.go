package handlers

import (
	"context"
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/dmitrijs2005/quizweb/internal/common"
	"github.com/dmitrijs2005/quizweb/internal/logging"
	"github.com/dmitrijs2005/quizweb/internal/server/http/flash"
	"github.com/dmitrijs2005/quizweb/internal/server/http/middleware"
	"github.com/dmitrijs2005/quizweb/internal/server/quiz"
	"github.com/dmitrijs2005/quizweb/internal/server/session"
)

type QuizController interface {
	Present(ctx context.Context, st *session.State) (*quiz.View, error)
	Submit(ctx context.Context, st *session.State, questionID int64, selected int) (*session.Result, error)
	Skip(st *session.State)
}

type QuizHandler struct {
	responder
	quiz QuizController
}

func NewQuizHandler(q QuizController, sessions *middleware.SessionStore, l logging.Logger) *QuizHandler {
	return &QuizHandler{
		responder: responder{sessions: sessions, logger: l.With("handler", "quiz")},
		quiz:      q,
	}
}

type answerForm struct {
	QuestionID string `form:"question_id"`
	Answer     string `form:"answer"`
}

// Quiz shows the next question, the pending feedback, or the finished view.
func (h *QuizHandler) Quiz(c *gin.Context) {
	st := middleware.StateFrom(c)

	view, err := h.quiz.Present(c.Request.Context(), st)
	if err != nil {
		// Present may already have consumed the pending result
		_ = h.sessions.Save(c)
		h.fail(c, err)
		return
	}

	if view.Finished {
		h.page(c, http.StatusOK, "finished.html", gin.H{"Title": "Finished", "View": view})
		return
	}
	h.page(c, http.StatusOK, "quiz.html", gin.H{"Title": "Quiz", "View": view})
}

// Submit grades a posted answer and sends the visitor back to the quiz.
// A missing or empty answer counts as no choice.
func (h *QuizHandler) Submit(c *gin.Context) {
	var form answerForm
	_ = c.ShouldBind(&form)

	id, err := strconv.ParseInt(form.QuestionID, 10, 64)
	if err != nil {
		h.fail(c, common.ErrQuestionNotFound)
		return
	}

	selected := -1
	if n, err := strconv.Atoi(form.Answer); err == nil {
		selected = n
	}

	_, err = h.quiz.Submit(c.Request.Context(), middleware.StateFrom(c), id, selected)
	switch {
	case err == nil:
		h.redirect(c, "/quiz")
	case errors.Is(err, common.ErrQuizFinished):
		flash.Error(c, "This quiz is already finished. Log in again to start over.")
		h.redirect(c, "/quiz")
	default:
		h.fail(c, err)
	}
}

// Next drops the pending feedback so the quiz draws a fresh question.
func (h *QuizHandler) Next(c *gin.Context) {
	h.quiz.Skip(middleware.StateFrom(c))
	h.redirect(c, "/quiz")
}
