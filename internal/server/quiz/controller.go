// Package quiz drives one visitor through the question bank: it picks the
// next unanswered question, grades submissions and decides when the episode
// is finished. All progress lives in the caller's session.State.
package quiz

import (
	"context"
	"math/rand/v2"

	"github.com/dmitrijs2005/quizweb/internal/common"
	"github.com/dmitrijs2005/quizweb/internal/logging"
	"github.com/dmitrijs2005/quizweb/internal/server/metrics"
	"github.com/dmitrijs2005/quizweb/internal/server/models"
	"github.com/dmitrijs2005/quizweb/internal/server/session"
)

// QuestionSource is the read side of the question bank.
type QuestionSource interface {
	ListIDs(ctx context.Context) ([]int64, error)
	Get(ctx context.Context, id int64) (*models.Question, error)
}

// View is what the quiz page renders. Exactly one of Finished or Question
// is set.
type View struct {
	Finished bool
	Question *models.Question
	Feedback *session.Result
	Answered int
	Total    int
}

type Controller struct {
	questions QuestionSource
	pick      func(n int) int
	logger    logging.Logger
	metrics   *metrics.Metrics
}

func NewController(questions QuestionSource, logger logging.Logger, m *metrics.Metrics) *Controller {
	return &Controller{
		questions: questions,
		pick:      rand.IntN,
		logger:    logger,
		metrics:   m,
	}
}

// Present decides what the quiz page shows and updates st accordingly.
//
// A pending result re-presents its question once, with feedback. Otherwise a
// question is drawn uniformly from the unanswered ones; when none are left
// the episode finishes and its progress is cleared.
func (c *Controller) Present(ctx context.Context, st *session.State) (*View, error) {
	if p := st.Pending; p != nil {
		st.Pending = nil

		q, err := c.questions.Get(ctx, p.QuestionID)
		if err != nil {
			return nil, err
		}
		total, err := c.total(ctx)
		if err != nil {
			return nil, err
		}
		return &View{Question: q, Feedback: p, Answered: len(st.AnsweredIDs), Total: total}, nil
	}

	if st.Completed {
		return &View{Finished: true}, nil
	}

	ids, err := c.questions.ListIDs(ctx)
	if err != nil {
		return nil, err
	}

	remaining := make([]int64, 0, len(ids))
	for _, id := range ids {
		if !st.HasAnswered(id) {
			remaining = append(remaining, id)
		}
	}

	if len(remaining) == 0 {
		st.Finish()
		c.metrics.EpisodeFinished()
		c.logger.Info(ctx, "quiz episode finished", "user", st.Username, "episode_id", st.EpisodeID, "questions", len(ids))
		return &View{Finished: true, Total: len(ids)}, nil
	}

	q, err := c.questions.Get(ctx, remaining[c.pick(len(remaining))])
	if err != nil {
		return nil, err
	}
	return &View{Question: q, Answered: len(ids) - len(remaining), Total: len(ids)}, nil
}

// Submit grades selected (0-based, -1 for no choice) against questionID and
// leaves the result pending for the next Present. Answering the same
// question again is graded but recorded only once.
func (c *Controller) Submit(ctx context.Context, st *session.State, questionID int64, selected int) (*session.Result, error) {
	if st.Completed {
		return nil, common.ErrQuizFinished
	}

	q, err := c.questions.Get(ctx, questionID)
	if err != nil {
		return nil, err
	}

	res := &session.Result{
		QuestionID:    q.ID,
		IsCorrect:     q.IsCorrect(selected),
		SelectedIndex: selected,
	}
	if !res.IsCorrect {
		res.CorrectOptionText = q.CorrectOption()
	}

	first := st.MarkAnswered(q.ID)
	st.Pending = res

	c.metrics.Answer(res.IsCorrect)
	c.logger.Info(ctx, "answer graded",
		"user", st.Username,
		"episode_id", st.EpisodeID,
		"question_id", q.ID,
		"correct", res.IsCorrect,
		"first_attempt", first,
	)
	return res, nil
}

// Skip drops any pending re-presentation so the next Present draws fresh.
func (c *Controller) Skip(st *session.State) {
	st.Pending = nil
}

func (c *Controller) total(ctx context.Context) (int, error) {
	ids, err := c.questions.ListIDs(ctx)
	if err != nil {
		return 0, err
	}
	return len(ids), nil
}
