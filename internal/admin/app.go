package admin

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/dmitrijs2005/quizweb/internal/cryptox"
	"github.com/dmitrijs2005/quizweb/internal/server/bank"
	"github.com/dmitrijs2005/quizweb/internal/server/config"
	"github.com/dmitrijs2005/quizweb/internal/server/repositories/repomanager"
	"github.com/dmitrijs2005/quizweb/internal/server/services"
)

var ErrUnknownCommand = errors.New("unknown command")

const usage = `usage: quizctl <command> [flags]

commands:
  seed                  run migrations and seed the built-in question bank
  questions             list the stored questions
  register -u <name>    create an account (password is read from the terminal)

flags shared with the server: -c <config.json> -d <dsn> -b <bcrypt cost>
`

type App struct {
	config    *config.Config
	db        *sql.DB
	accounts  *services.AccountService
	questions *services.QuestionService
	out       io.Writer
}

// NewApp opens and migrates the configured database.
func NewApp(ctx context.Context, cfg *config.Config, out io.Writer) (*App, error) {
	db, m, err := repomanager.Open(ctx, cfg.DatabaseDSN)
	if err != nil {
		return nil, fmt.Errorf("db init error: %w", err)
	}

	return &App{
		config:    cfg,
		db:        db,
		accounts:  services.NewAccountService(db, m, cryptox.NewHasher(cfg.BcryptCost)),
		questions: services.NewQuestionService(db, m),
		out:       out,
	}, nil
}

func (a *App) Close() error {
	return a.db.Close()
}

// Usage prints the command summary.
func Usage(w io.Writer) {
	fmt.Fprint(w, usage)
}

// Run executes the command named by args[0]; the remaining args are the
// command's own flags.
func (a *App) Run(ctx context.Context, args []string) error {
	if len(args) == 0 {
		return ErrUnknownCommand
	}

	switch args[0] {
	case "seed":
		return a.Seed(ctx)
	case "questions":
		return a.Questions(ctx)
	case "register":
		return a.Register(ctx, args[1:])
	default:
		return fmt.Errorf("%w: %q", ErrUnknownCommand, args[0])
	}
}

func (a *App) Seed(ctx context.Context) error {
	report, err := a.questions.Seed(ctx, bank.Builtin())
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "seeded %d questions: %d inserted, %d updated, %d unchanged\n",
		report.Total(), report.Inserted, report.Updated, report.Unchanged)
	return nil
}

func (a *App) Questions(ctx context.Context) error {
	qs, err := a.questions.List(ctx)
	if err != nil {
		return err
	}

	tw := tabwriter.NewWriter(a.out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tKEY\tPROMPT\tANSWER")
	for _, q := range qs {
		fmt.Fprintf(tw, "%d\t%s\t%s\t%s\n", q.ID, q.SeedKey, q.Prompt, q.CorrectOption())
	}
	return tw.Flush()
}
