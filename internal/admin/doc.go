// Package admin implements quizctl, the operator tool for the quiz server.
// It shares the server's configuration layers and repositories and talks to
// the database directly; no server needs to be running.
//
// Commands:
//
//	seed                  run migrations and upsert the built-in question bank
//	questions             list the stored questions
//	register -u <name>    create an account, prompting for the password
package admin
