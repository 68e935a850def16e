package handlers

import (
	"context"
	"errors"
	"html/template"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrijs2005/quizweb/internal/common"
	"github.com/dmitrijs2005/quizweb/internal/logging"
	"github.com/dmitrijs2005/quizweb/internal/server/http/flash"
	"github.com/dmitrijs2005/quizweb/internal/server/http/middleware"
	"github.com/dmitrijs2005/quizweb/internal/server/models"
	"github.com/dmitrijs2005/quizweb/internal/server/quiz"
	"github.com/dmitrijs2005/quizweb/internal/server/session"
)

const testTemplates = `
{{define "error.html"}}{{.Status}}: {{.Message}}{{end}}
{{define "login.html"}}{{range .Flashes}}[{{.Text}}]{{end}}login {{.Error}}{{end}}
{{define "register.html"}}register {{.Error}}{{end}}
{{define "dashboard.html"}}hello {{.User}}{{end}}
{{define "quiz.html"}}question {{.View.Question.ID}}{{end}}
{{define "finished.html"}}finished{{end}}
`

var key = []byte("0123456789abcdef0123456789abcdef")

type fakeAccounts struct {
	register func(username, password string) (*models.Account, error)
	login    func(username, password string) (*models.Account, error)
}

func (f *fakeAccounts) Register(_ context.Context, u, p string) (*models.Account, error) {
	return f.register(u, p)
}

func (f *fakeAccounts) Login(_ context.Context, u, p string) (*models.Account, error) {
	return f.login(u, p)
}

type fakeQuiz struct {
	present func(st *session.State) (*quiz.View, error)
	submit  func(st *session.State, id int64, selected int) (*session.Result, error)
	skipped bool
}

func (f *fakeQuiz) Present(_ context.Context, st *session.State) (*quiz.View, error) {
	return f.present(st)
}

func (f *fakeQuiz) Submit(_ context.Context, st *session.State, id int64, selected int) (*session.Result, error) {
	return f.submit(st, id, selected)
}

func (f *fakeQuiz) Skip(*session.State) { f.skipped = true }

type fixture struct {
	engine *gin.Engine
	codec  *session.Codec
}

func newFixture(t *testing.T, accounts AccountService, q QuizController) *fixture {
	t.Helper()
	gin.SetMode(gin.TestMode)

	codec := session.NewCodec(key, time.Hour)
	store := middleware.NewSessionStore(codec, false, logging.Nop())

	r := gin.New()
	r.SetHTMLTemplate(template.Must(template.New("").Parse(testTemplates)))
	r.Use(flash.Middleware(key, false), store.Load())

	if accounts != nil {
		h := NewAuthHandler(accounts, store, nil, logging.Nop())
		h.episodeID = func() string { return "ep-1" }
		r.POST("/", h.Login)
		r.POST("/index", h.Register)
		r.GET("/dashboard", h.Dashboard)
	}
	if q != nil {
		h := NewQuizHandler(q, store, logging.Nop())
		r.GET("/quiz", h.Quiz)
		r.POST("/submit_answer", h.Submit)
		r.GET("/next_question", h.Next)
	}
	return &fixture{engine: r, codec: codec}
}

func (f *fixture) do(t *testing.T, method, path string, form url.Values, st *session.State) *httptest.ResponseRecorder {
	t.Helper()
	var req *http.Request
	if form != nil {
		req = httptest.NewRequest(method, path, strings.NewReader(form.Encode()))
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}
	if st != nil {
		token, err := f.codec.Encode(st)
		require.NoError(t, err)
		req.AddCookie(&http.Cookie{Name: middleware.SessionCookie, Value: token})
	}
	w := httptest.NewRecorder()
	f.engine.ServeHTTP(w, req)
	return w
}

func (f *fixture) state(t *testing.T, w *httptest.ResponseRecorder) *session.State {
	t.Helper()
	for _, c := range w.Result().Cookies() {
		if c.Name == middleware.SessionCookie && c.Value != "" {
			st, err := f.codec.Decode(c.Value)
			require.NoError(t, err)
			return st
		}
	}
	return nil
}

func flashCookies(w *httptest.ResponseRecorder) int {
	var n int
	for _, c := range w.Result().Cookies() {
		if c.Name == "quiz_flash" {
			n++
		}
	}
	return n
}

func TestLogin_StartsEpisode(t *testing.T) {
	accounts := &fakeAccounts{login: func(u, _ string) (*models.Account, error) {
		return &models.Account{ID: 1, UserName: u}, nil
	}}
	f := newFixture(t, accounts, nil)

	w := f.do(t, http.MethodPost, "/", url.Values{"username": {"alice"}, "password": {"pw"}}, nil)
	assert.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "/quiz", w.Header().Get("Location"))

	st := f.state(t, w)
	require.NotNil(t, st)
	assert.Equal(t, "alice", st.Username)
	assert.Equal(t, "ep-1", st.EpisodeID)
	assert.Empty(t, st.AnsweredIDs)
}

func TestLogin_ResetsPreviousEpisode(t *testing.T) {
	accounts := &fakeAccounts{login: func(u, _ string) (*models.Account, error) {
		return &models.Account{ID: 1, UserName: u}, nil
	}}
	f := newFixture(t, accounts, nil)

	prev := &session.State{Username: "alice", EpisodeID: "old", AnsweredIDs: []int64{1, 2}, Completed: true}
	w := f.do(t, http.MethodPost, "/", url.Values{"username": {"alice"}, "password": {"pw"}}, prev)

	st := f.state(t, w)
	require.NotNil(t, st)
	assert.Equal(t, "ep-1", st.EpisodeID)
	assert.Empty(t, st.AnsweredIDs)
	assert.False(t, st.Completed)
}

func TestLogin_Outcomes(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		code     int
		location string
		body     string
	}{
		{name: "unknown user", err: common.ErrUnknownUser, code: http.StatusFound, location: "/index"},
		{name: "bad password", err: common.ErrBadPassword, code: http.StatusFound, location: "/"},
		{name: "invalid", err: common.ErrInvalidCredentials, code: http.StatusBadRequest, body: "Username and password are required."},
		{name: "storage failure", err: errors.New("db down"), code: http.StatusInternalServerError, body: "500: Something went wrong."},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			accounts := &fakeAccounts{login: func(string, string) (*models.Account, error) { return nil, tt.err }}
			f := newFixture(t, accounts, nil)

			w := f.do(t, http.MethodPost, "/", url.Values{"username": {"bob"}, "password": {"pw"}}, nil)
			assert.Equal(t, tt.code, w.Code)
			if tt.location != "" {
				assert.Equal(t, tt.location, w.Header().Get("Location"))
				assert.Equal(t, 1, flashCookies(w), "flash cookie must be written before the redirect")
			}
			if tt.body != "" {
				assert.Contains(t, w.Body.String(), tt.body)
			}
			assert.Nil(t, f.state(t, w))
		})
	}
}

func TestRegister_Outcomes(t *testing.T) {
	tests := []struct {
		name string
		err  error
		code int
		body string
	}{
		{name: "created", code: http.StatusFound},
		{name: "duplicate", err: common.ErrDuplicateUsername, code: http.StatusFound},
		{name: "invalid", err: common.ErrInvalidCredentials, code: http.StatusBadRequest, body: "Username and password are required."},
		{name: "password too long", err: common.ErrPasswordTooLong, code: http.StatusBadRequest, body: "Password must be at most 72 bytes."},
		{name: "storage failure", err: errors.New("db down"), code: http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var gotUser string
			accounts := &fakeAccounts{register: func(u, _ string) (*models.Account, error) {
				gotUser = u
				if tt.err != nil {
					return nil, tt.err
				}
				return &models.Account{ID: 7, UserName: u}, nil
			}}
			f := newFixture(t, accounts, nil)

			w := f.do(t, http.MethodPost, "/index", url.Values{"username": {"alice"}, "password": {"pw"}}, nil)
			assert.Equal(t, tt.code, w.Code)
			assert.Equal(t, "alice", gotUser)
			if tt.code == http.StatusFound {
				assert.Equal(t, "/", w.Header().Get("Location"))
			}
			if tt.body != "" {
				assert.Contains(t, w.Body.String(), tt.body)
			}
		})
	}
}

func TestDashboard_ShowsUser(t *testing.T) {
	f := newFixture(t, &fakeAccounts{}, nil)

	w := f.do(t, http.MethodGet, "/dashboard", nil, &session.State{Username: "alice"})
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "hello alice", w.Body.String())
}

func TestQuiz_RendersQuestionOrFinished(t *testing.T) {
	q := &fakeQuiz{present: func(*session.State) (*quiz.View, error) {
		return &quiz.View{Question: &models.Question{ID: 42}}, nil
	}}
	f := newFixture(t, nil, q)

	w := f.do(t, http.MethodGet, "/quiz", nil, &session.State{Username: "alice"})
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "question 42", w.Body.String())

	q.present = func(st *session.State) (*quiz.View, error) {
		st.Finish()
		return &quiz.View{Finished: true}, nil
	}
	w = f.do(t, http.MethodGet, "/quiz", nil, &session.State{Username: "alice", AnsweredIDs: []int64{1}})
	assert.Equal(t, "finished", w.Body.String())

	st := f.state(t, w)
	require.NotNil(t, st)
	assert.True(t, st.Completed)
	assert.Empty(t, st.AnsweredIDs)
}

func TestQuiz_ErrorStillSavesConsumedPending(t *testing.T) {
	q := &fakeQuiz{present: func(st *session.State) (*quiz.View, error) {
		st.Pending = nil
		return nil, common.ErrQuestionNotFound
	}}
	f := newFixture(t, nil, q)

	w := f.do(t, http.MethodGet, "/quiz", nil, &session.State{
		Username: "alice",
		Pending:  &session.Result{QuestionID: 9},
	})
	assert.Equal(t, http.StatusNotFound, w.Code)

	st := f.state(t, w)
	require.NotNil(t, st)
	assert.Nil(t, st.Pending)
}

func TestSubmit_ParsesForm(t *testing.T) {
	tests := []struct {
		name   string
		answer []string
		want   int
	}{
		{name: "chosen", answer: []string{"2"}, want: 2},
		{name: "missing", want: -1},
		{name: "empty", answer: []string{""}, want: -1},
		{name: "garbage", answer: []string{"x"}, want: -1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var gotID int64
			var gotSel int
			q := &fakeQuiz{submit: func(_ *session.State, id int64, sel int) (*session.Result, error) {
				gotID, gotSel = id, sel
				return &session.Result{QuestionID: id}, nil
			}}
			f := newFixture(t, nil, q)

			form := url.Values{"question_id": {"5"}}
			if tt.answer != nil {
				form["answer"] = tt.answer
			}
			w := f.do(t, http.MethodPost, "/submit_answer", form, &session.State{Username: "alice"})
			assert.Equal(t, http.StatusFound, w.Code)
			assert.Equal(t, "/quiz", w.Header().Get("Location"))
			assert.Equal(t, int64(5), gotID)
			assert.Equal(t, tt.want, gotSel)
		})
	}
}

func TestSubmit_Errors(t *testing.T) {
	q := &fakeQuiz{submit: func(*session.State, int64, int) (*session.Result, error) {
		return nil, common.ErrQuizFinished
	}}
	f := newFixture(t, nil, q)
	st := &session.State{Username: "alice"}

	w := f.do(t, http.MethodPost, "/submit_answer", url.Values{"question_id": {"1"}, "answer": {"0"}}, st)
	assert.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "/quiz", w.Header().Get("Location"))

	w = f.do(t, http.MethodPost, "/submit_answer", url.Values{"question_id": {"nope"}}, st)
	assert.Equal(t, http.StatusNotFound, w.Code)

	q.submit = func(*session.State, int64, int) (*session.Result, error) { return nil, errors.New("db down") }
	w = f.do(t, http.MethodPost, "/submit_answer", url.Values{"question_id": {"1"}}, st)
	assert.Equal(t, http.StatusInternalServerError, w.Code)
}

func TestNext_SkipsAndRedirects(t *testing.T) {
	q := &fakeQuiz{}
	f := newFixture(t, nil, q)

	w := f.do(t, http.MethodGet, "/next_question", nil, &session.State{Username: "alice"})
	assert.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "/quiz", w.Header().Get("Location"))
	assert.True(t, q.skipped)
}

type fakePinger struct{ err error }

func (p fakePinger) PingContext(context.Context) error { return p.err }

func TestHealthCheck(t *testing.T) {
	gin.SetMode(gin.TestMode)

	for _, tc := range []struct {
		err  error
		code int
		body string
	}{
		{code: http.StatusOK, body: `{"status":"ok"}`},
		{err: errors.New("down"), code: http.StatusServiceUnavailable, body: `{"status":"unavailable"}`},
	} {
		r := gin.New()
		r.GET("/healthz", NewHealthHandler(fakePinger{err: tc.err}).HealthCheck)

		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/healthz", nil))
		assert.Equal(t, tc.code, w.Code)
		assert.JSONEq(t, tc.body, w.Body.String())
	}
}
