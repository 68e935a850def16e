// Package session defines the per-visitor quiz state and its signed cookie
// encoding. There is no server-side session table: the whole State travels
// in the token.
package session

import "slices"

// Result is the outcome of the last submission, shown once on the next
// quiz page.
type Result struct {
	QuestionID        int64  `json:"qid"`
	IsCorrect         bool   `json:"ok"`
	CorrectOptionText string `json:"correct,omitempty"`
	SelectedIndex     int    `json:"sel"`
}

// State is everything the server remembers about one visitor between
// requests.
type State struct {
	Username    string  `json:"usr,omitempty"`
	EpisodeID   string  `json:"eid,omitempty"`
	AnsweredIDs []int64 `json:"ans,omitempty"`
	Pending     *Result `json:"pend,omitempty"`
	Completed   bool    `json:"done,omitempty"`
}

// Authenticated reports whether a user is logged in.
func (s *State) Authenticated() bool {
	return s != nil && s.Username != ""
}

// BeginEpisode logs username in and starts a fresh quiz episode.
func (s *State) BeginEpisode(username, episodeID string) {
	*s = State{Username: username, EpisodeID: episodeID}
}

// Logout ends the episode and forgets the user.
func (s *State) Logout() {
	*s = State{}
}

func (s *State) HasAnswered(id int64) bool {
	return slices.Contains(s.AnsweredIDs, id)
}

// MarkAnswered records id once. It reports whether id was new.
func (s *State) MarkAnswered(id int64) bool {
	if s.HasAnswered(id) {
		return false
	}
	s.AnsweredIDs = append(s.AnsweredIDs, id)
	return true
}

// Finish clears the quiz progress and marks the episode completed.
func (s *State) Finish() {
	s.AnsweredIDs = nil
	s.Pending = nil
	s.Completed = true
}
