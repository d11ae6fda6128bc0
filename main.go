// main.go
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/shopspring/decimal"

	"financewise/engine/appcontext"
	"financewise/engine/config"
	"financewise/engine/finance"
	"financewise/engine/finance/model"
	"financewise/engine/identity"
	"financewise/engine/importer"
	"financewise/engine/scheduler"
	"financewise/engine/session"
	"financewise/engine/storage"
	"financewise/engine/synthetic"
)

const (
	defaultStatementRows = 50
	defaultTokenTTL      = 24 * time.Hour
)

// identityFlags holds the principal selection common to most commands.
type identityFlags struct {
	token *string
	user  *string
	email *string
}

func addIdentityFlags(fs *flag.FlagSet) identityFlags {
	return identityFlags{
		token: fs.String("token", "", "Signed identity token"),
		user:  fs.String("user", "", "Principal id (alternative to -token)"),
		email: fs.String("email", "", "Principal email (with -user)"),
	}
}

func main() {
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))

	if len(os.Args) < 2 {
		logger.Error("Usage: financewise <command> [options]")
		logger.Error("Commands: summary, add-transaction, import, review-loans, generate-statement, reset, issue-token")
		os.Exit(1)
	}

	command := os.Args[1]
	args := os.Args[2:]

	if err := run(logger, command, args); err != nil {
		logger.Error("Application terminated with an error", "error", fmt.Sprintf("%+v", err))
		os.Exit(1)
	}
}

func run(logger *slog.Logger, command string, args []string) error {
	ctx := appcontext.WithLogger(context.Background(), logger)
	cfg := config.LoadConfig(ctx, logger)

	// review-loans runs until interrupted, so it opts out of the
	// per-command timeout the one-shot commands get.
	if command == "review-loans" {
		return runReviewLoans(ctx, cfg, args)
	}

	ctx, cancel := context.WithTimeout(ctx, cfg.Timeout)
	defer cancel()

	switch command {
	case "generate-statement":
		return runGenerateStatement(ctx, cfg, args)
	case "issue-token":
		return runIssueToken(cfg, args)
	case "summary":
		return runSummary(ctx, cfg, args)
	case "add-transaction":
		return runAddTransaction(ctx, cfg, args)
	case "import":
		return runImport(ctx, cfg, args)
	case "reset":
		return runReset(ctx, cfg, args)
	default:
		return fmt.Errorf("unknown command: %s", command)
	}
}

func runGenerateStatement(ctx context.Context, cfg *config.Config, args []string) error {
	logger := appcontext.LoggerFromContext(ctx)

	fs := flag.NewFlagSet("generate-statement", flag.ExitOnError)
	rows := fs.Int("rows", defaultStatementRows, "Number of transactions to generate")
	dir := fs.String("dir", cfg.StatementDir, "Directory to write the statement to")
	if err := fs.Parse(args); err != nil {
		return fmt.Errorf("failed to parse flags: %w", err)
	}

	path, err := synthetic.GenerateStatement(*rows, *dir)
	if err != nil {
		return fmt.Errorf("failed to generate statement: %w", err)
	}
	logger.InfoContext(ctx, "Statement generated", "path", path, "rows", *rows)
	return nil
}

func runIssueToken(cfg *config.Config, args []string) error {
	fs := flag.NewFlagSet("issue-token", flag.ExitOnError)
	user := fs.String("user", "", "Principal id")
	email := fs.String("email", "", "Principal email")
	ttl := fs.Duration("ttl", defaultTokenTTL, "Token lifetime")
	if err := fs.Parse(args); err != nil {
		return fmt.Errorf("failed to parse flags: %w", err)
	}
	if *user == "" {
		return fmt.Errorf("issue-token requires -user")
	}

	token, err := identity.IssueToken(identity.Principal{ID: *user, Email: *email}, cfg.JWTSecret, *ttl)
	if err != nil {
		return err
	}
	fmt.Println(token)
	return nil
}

func runSummary(ctx context.Context, cfg *config.Config, args []string) error {
	logger := appcontext.LoggerFromContext(ctx)

	fs := flag.NewFlagSet("summary", flag.ExitOnError)
	idFlags := addIdentityFlags(fs)
	if err := fs.Parse(args); err != nil {
		return fmt.Errorf("failed to parse flags: %w", err)
	}

	sess, cleanup, err := openSession(ctx, cfg, idFlags)
	if err != nil {
		return err
	}
	defer cleanup()

	state := sess.State()
	report := finance.Summarize(state)

	logger.Info("--- Summary ---")
	logger.Info(fmt.Sprintf("User: %s", state.User.Name))
	logger.Info(fmt.Sprintf("Transactions: %d", len(state.Transactions)))
	logger.Info(fmt.Sprintf("Total income: %s", report.TotalIncome.StringFixed(2)))
	logger.Info(fmt.Sprintf("Total expenses: %s", report.TotalExpenses.StringFixed(2)))
	logger.Info(fmt.Sprintf("Net: %s", report.Net.StringFixed(2)))
	logger.Info(fmt.Sprintf("Outstanding loan debt: %s", report.LoanDebt.StringFixed(2)))
	for _, row := range finance.UtilizationByCategory(state) {
		util := "n/a"
		if row.Utilization != nil {
			util = row.Utilization.Mul(decimal.NewFromInt(100)).StringFixed(1) + "%"
		}
		logger.Info(fmt.Sprintf("Budget %s: spent %s of %s (%s)",
			row.Name, row.Spent.StringFixed(2), row.Allocated.StringFixed(2), util))
	}
	logger.Info("---------------")
	return nil
}

func runAddTransaction(ctx context.Context, cfg *config.Config, args []string) error {
	logger := appcontext.LoggerFromContext(ctx)

	fs := flag.NewFlagSet("add-transaction", flag.ExitOnError)
	idFlags := addIdentityFlags(fs)
	kind := fs.String("kind", model.Expense, "Transaction kind: income or expense")
	amount := fs.Float64("amount", 0, "Transaction amount")
	description := fs.String("description", "", "Free-text description")
	category := fs.String("category", "", "Category label")
	if err := fs.Parse(args); err != nil {
		return fmt.Errorf("failed to parse flags: %w", err)
	}
	if *kind != model.Income && *kind != model.Expense {
		return fmt.Errorf("-kind must be income or expense")
	}
	if *amount <= 0 {
		return fmt.Errorf("add-transaction requires a positive -amount")
	}

	sess, cleanup, err := openSession(ctx, cfg, idFlags)
	if err != nil {
		return err
	}
	defer cleanup()

	tx := model.NewTransaction(*kind, *amount, *description, *category)
	sess.Dispatch(ctx, finance.AddTransaction{Transaction: tx})
	sess.Flush()

	logger.InfoContext(ctx, "Transaction recorded", "id", tx.ID, "amount", tx.Amount)
	return nil
}

func runImport(ctx context.Context, cfg *config.Config, args []string) error {
	logger := appcontext.LoggerFromContext(ctx)

	fs := flag.NewFlagSet("import", flag.ExitOnError)
	idFlags := addIdentityFlags(fs)
	dir := fs.String("dir", cfg.StatementDir, "Directory of statement CSVs")
	if err := fs.Parse(args); err != nil {
		return fmt.Errorf("failed to parse flags: %w", err)
	}

	sess, cleanup, err := openSession(ctx, cfg, idFlags)
	if err != nil {
		return err
	}
	defer cleanup()

	stats, err := importer.ImportCSVFiles(ctx, sess, *dir)
	if err != nil {
		return fmt.Errorf("import of statement files failed: %w", err)
	}
	sess.Flush()
	stats.Log(logger)
	return nil
}

func runReviewLoans(ctx context.Context, cfg *config.Config, args []string) error {
	logger := appcontext.LoggerFromContext(ctx)

	fs := flag.NewFlagSet("review-loans", flag.ExitOnError)
	idFlags := addIdentityFlags(fs)
	schedule := fs.String("schedule", cfg.CronSchedule, "Cron spec for the review cadence")
	if err := fs.Parse(args); err != nil {
		return fmt.Errorf("failed to parse flags: %w", err)
	}

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	sess, cleanup, err := openSession(ctx, cfg, idFlags)
	if err != nil {
		return err
	}
	defer cleanup()

	reviewer := scheduler.NewLoanReviewer(sess)
	if err := reviewer.Start(ctx, *schedule); err != nil {
		return fmt.Errorf("failed to schedule loan review: %w", err)
	}
	logger.InfoContext(ctx, "Loan review scheduled", "schedule", *schedule)

	<-ctx.Done()
	reviewer.Stop()
	sess.Flush()
	logger.Info("Loan review stopped")
	return nil
}

func runReset(ctx context.Context, cfg *config.Config, args []string) error {
	logger := appcontext.LoggerFromContext(ctx)

	fs := flag.NewFlagSet("reset", flag.ExitOnError)
	idFlags := addIdentityFlags(fs)
	if err := fs.Parse(args); err != nil {
		return fmt.Errorf("failed to parse flags: %w", err)
	}

	sess, cleanup, err := openSession(ctx, cfg, idFlags)
	if err != nil {
		return err
	}
	defer cleanup()

	sess.Reset(ctx)
	sess.Flush()
	logger.InfoContext(ctx, "Stored data cleared and state reinitialized")
	return nil
}

// openSession connects to the store, signs the principal in, and returns
// a hydrated session plus a cleanup function.
func openSession(
	ctx context.Context,
	cfg *config.Config,
	idFlags identityFlags,
) (*session.Session, func(), error) {
	logger := appcontext.LoggerFromContext(ctx)

	principal, err := resolvePrincipal(*idFlags.token, *idFlags.user, *idFlags.email, cfg.JWTSecret)
	if err != nil {
		return nil, nil, err
	}

	client, err := storage.ConnectToMongoDB(ctx, cfg.MongoURI)
	if err != nil {
		return nil, nil, fmt.Errorf("connection to MongoDB failed: %w", err)
	}

	kv := storage.NewKV(storage.NewMongoStore(storage.NewMongoClient(client), cfg.Database, cfg.Collection))

	provider := identity.NewManualProvider()
	provider.SignIn(*principal)

	sess := session.New(kv, provider)
	sess.Hydrate(ctx)

	cleanup := func() {
		sess.Close()
		if deferErr := client.Disconnect(ctx); deferErr != nil {
			logger.ErrorContext(ctx, "Error disconnecting from MongoDB", "error", deferErr)
		}
	}

	return sess, cleanup, nil
}

func resolvePrincipal(token, user, email, secret string) (*identity.Principal, error) {
	if token != "" {
		principal, err := identity.VerifyToken(token, secret)
		if err != nil {
			return nil, err
		}
		return principal, nil
	}
	if user != "" {
		return &identity.Principal{ID: user, Email: email}, nil
	}
	return nil, fmt.Errorf("a principal is required: pass -token or -user")
}
