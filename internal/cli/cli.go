// Package cli implements the dashctl command set: an operator console for
// the club backend, one subcommand per dashboard surface.
package cli

import (
	"context"
	"flag"
	"fmt"
	"io"
	"strconv"

	"github.com/bytedance/sonic"

	"github.com/Wass76/robotic-card-dashboard/internal/api"
	"github.com/Wass76/robotic-card-dashboard/internal/client"
	"github.com/Wass76/robotic-card-dashboard/internal/platform/config"
	"github.com/Wass76/robotic-card-dashboard/internal/platform/logging"
	"github.com/Wass76/robotic-card-dashboard/internal/session"
)

const usage = `Usage: dashctl [-config path] [-base-url url] <command> [args]

Commands:
  login -email <email> -password <password>
  logout
  profile
  users list | get <id> | delete <id>
  users create -first <name> -last <name> -email <email> -phone <phone> [-role <role>]
  cards list | get <id> | delete <id>
  cards assign <userId> <cardCode>
  attendance [-user <id>]
  monthly
  scan <cardCode>
  unknown
  stats
`

// App wires the full stack for one invocation.
type App struct {
	cfg     *config.Config
	logger  *logging.Logger
	session *session.Manager
	service *api.Service
	out     io.Writer
}

// Run parses args, builds the stack and dispatches the subcommand.
func Run(ctx context.Context, args []string, out io.Writer) error {
	flags := flag.NewFlagSet("dashctl", flag.ContinueOnError)
	flags.SetOutput(out)
	configPath := flags.String("config", "", "config file path")
	baseURL := flags.String("base-url", "", "override the backend base URL")
	if err := flags.Parse(args); err != nil {
		return err
	}
	rest := flags.Args()
	if len(rest) == 0 {
		fmt.Fprint(out, usage)
		return fmt.Errorf("missing command")
	}

	app, err := newApp(*configPath, *baseURL, out)
	if err != nil {
		return err
	}
	defer app.close(ctx)

	return app.dispatch(ctx, rest[0], rest[1:])
}

func newApp(configPath, baseURL string, out io.Writer) (*App, error) {
	cfg, err := config.NewLoader().WithPath(configPath).Load()
	if err != nil {
		return nil, err
	}
	if baseURL != "" {
		cfg.API.BaseURL = baseURL
	}

	logger, err := logging.New(logging.Config{
		Level:    cfg.Log.Level,
		Dir:      cfg.Log.Dir,
		Filename: cfg.Log.Filename,
	})
	if err != nil {
		return nil, err
	}

	store, err := session.NewStore(sessionConfig(cfg.Session))
	if err != nil {
		return nil, err
	}
	sess := session.NewManager(store, logger.Slog())

	c := client.New(cfg.API.BaseURL, sess,
		client.WithTimeout(cfg.API.Timeout()),
		client.WithRetryPolicy(client.RetryPolicy{
			MaxRetries:    cfg.API.Retry.MaxRetries,
			BaseDelay:     cfg.API.Retry.BaseDelay(),
			NonIdempotent: cfg.API.Retry.NonIdempotent,
		}),
		client.WithLogger(logger.Slog()),
	)

	return &App{
		cfg:     cfg,
		logger:  logger,
		session: sess,
		service: api.New(c),
		out:     out,
	}, nil
}

func (a *App) close(ctx context.Context) {
	if err := a.session.Close(ctx); err != nil {
		a.logger.Slog().Warn("session store close failed", "error", err)
	}
	a.logger.Close()
}

func (a *App) dispatch(ctx context.Context, command string, args []string) error {
	switch command {
	case "login":
		return a.cmdLogin(ctx, args)
	case "logout":
		return a.cmdLogout(ctx)
	case "profile":
		return a.cmdProfile(ctx)
	case "users":
		return a.cmdUsers(ctx, args)
	case "cards":
		return a.cmdCards(ctx, args)
	case "attendance":
		return a.cmdAttendance(ctx, args)
	case "monthly":
		return a.cmdMonthly(ctx)
	case "scan":
		return a.cmdScan(ctx, args)
	case "unknown":
		return a.cmdUnknown(ctx)
	case "stats":
		return a.cmdStats(ctx)
	default:
		fmt.Fprint(a.out, usage)
		return fmt.Errorf("unknown command %q", command)
	}
}

func (a *App) cmdLogin(ctx context.Context, args []string) error {
	flags := flag.NewFlagSet("login", flag.ContinueOnError)
	flags.SetOutput(a.out)
	email := flags.String("email", "", "account email")
	password := flags.String("password", "", "account password")
	if err := flags.Parse(args); err != nil {
		return err
	}
	if *email == "" || *password == "" {
		return fmt.Errorf("login requires -email and -password")
	}

	result, err := a.service.Auth.Login(ctx, api.Credentials{Email: *email, Password: *password})
	if err != nil {
		return err
	}
	if expiry, ok := a.session.TokenExpiry(ctx); ok {
		fmt.Fprintf(a.out, "Logged in, session valid until %s\n", expiry.Format("2006-01-02 15:04:05"))
	} else {
		fmt.Fprintln(a.out, "Logged in")
	}
	if result.User != nil {
		return a.printJSON(result.User)
	}
	return nil
}

func (a *App) cmdLogout(ctx context.Context) error {
	if err := a.service.Auth.Logout(ctx); err != nil {
		a.logger.Slog().Warn("backend logout failed, local session cleared", "error", err)
	}
	fmt.Fprintln(a.out, "Logged out")
	return nil
}

func (a *App) cmdProfile(ctx context.Context) error {
	profile, err := a.service.Auth.Profile(ctx)
	if err != nil {
		return err
	}
	return a.printJSON(profile)
}

func (a *App) cmdUsers(ctx context.Context, args []string) error {
	if len(args) == 0 {
		args = []string{"list"}
	}
	switch args[0] {
	case "list":
		users, err := a.service.Users.List(ctx)
		if err != nil {
			return err
		}
		return a.printJSON(users)
	case "get":
		id, err := intArg(args, 1, "users get <id>")
		if err != nil {
			return err
		}
		user, err := a.service.Users.Get(ctx, id)
		if err != nil {
			return err
		}
		return a.printJSON(user)
	case "create":
		return a.cmdUserCreate(ctx, args[1:])
	case "delete":
		id, err := intArg(args, 1, "users delete <id>")
		if err != nil {
			return err
		}
		if err := a.service.Users.Delete(ctx, id); err != nil {
			return err
		}
		fmt.Fprintln(a.out, "User deleted")
		return nil
	default:
		return fmt.Errorf("unknown users subcommand %q", args[0])
	}
}

func (a *App) cmdUserCreate(ctx context.Context, args []string) error {
	flags := flag.NewFlagSet("users create", flag.ContinueOnError)
	flags.SetOutput(a.out)
	first := flags.String("first", "", "first name")
	last := flags.String("last", "", "last name")
	email := flags.String("email", "", "email")
	phone := flags.String("phone", "", "phone number")
	role := flags.String("role", "User", "role")
	if err := flags.Parse(args); err != nil {
		return err
	}
	if *first == "" || *email == "" {
		return fmt.Errorf("users create requires -first and -email")
	}

	created, err := a.service.Users.Create(ctx, api.User{
		FirstName: *first,
		LastName:  *last,
		Email:     *email,
		Phone:     *phone,
		Role:      *role,
	})
	if err != nil {
		return err
	}
	return a.printJSON(created)
}

func (a *App) cmdCards(ctx context.Context, args []string) error {
	if len(args) == 0 {
		args = []string{"list"}
	}
	switch args[0] {
	case "list":
		cards, err := a.service.Cards.List(ctx)
		if err != nil {
			return err
		}
		return a.printJSON(cards)
	case "get":
		id, err := intArg(args, 1, "cards get <id>")
		if err != nil {
			return err
		}
		card, err := a.service.Cards.Get(ctx, id)
		if err != nil {
			return err
		}
		return a.printJSON(card)
	case "assign":
		if len(args) < 3 {
			return fmt.Errorf("usage: cards assign <userId> <cardCode>")
		}
		userID, err := strconv.Atoi(args[1])
		if err != nil {
			return fmt.Errorf("invalid user id %q", args[1])
		}
		card, err := a.service.Cards.CreateForUser(ctx, userID, api.Card{CardID: args[2]})
		if err != nil {
			return err
		}
		return a.printJSON(card)
	case "delete":
		id, err := intArg(args, 1, "cards delete <id>")
		if err != nil {
			return err
		}
		if err := a.service.Cards.Delete(ctx, id); err != nil {
			return err
		}
		fmt.Fprintln(a.out, "Card deleted")
		return nil
	default:
		return fmt.Errorf("unknown cards subcommand %q", args[0])
	}
}

func (a *App) cmdAttendance(ctx context.Context, args []string) error {
	flags := flag.NewFlagSet("attendance", flag.ContinueOnError)
	flags.SetOutput(a.out)
	userID := flags.Int("user", 0, "filter by user id")
	if err := flags.Parse(args); err != nil {
		return err
	}

	var (
		records []api.AttendanceRecord
		err     error
	)
	if *userID > 0 {
		records, err = a.service.Attendance.ByUser(ctx, *userID)
	} else {
		records, err = a.service.Attendance.List(ctx)
	}
	if err != nil {
		return err
	}
	return a.printJSON(records)
}

func (a *App) cmdMonthly(ctx context.Context) error {
	total, err := a.service.Attendance.Monthly(ctx)
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "Monthly attendance: %d\n", total)
	return nil
}

func (a *App) cmdScan(ctx context.Context, args []string) error {
	if len(args) < 1 {
		return fmt.Errorf("usage: scan <cardCode>")
	}
	record, err := a.service.Scans.RecordScan(ctx, args[0])
	if err != nil {
		return err
	}
	return a.printJSON(record)
}

func (a *App) cmdUnknown(ctx context.Context) error {
	codes, err := a.service.Scans.UnknownCards(ctx)
	if err != nil {
		return err
	}
	return a.printJSON(codes)
}

func (a *App) cmdStats(ctx context.Context) error {
	stats, err := a.service.Stats.Collect(ctx)
	if err != nil {
		return err
	}
	return a.printJSON(stats)
}

func (a *App) printJSON(v any) error {
	data, err := sonic.ConfigDefault.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	fmt.Fprintln(a.out, string(data))
	return nil
}

func sessionConfig(cfg config.SessionConfig) session.Config {
	out := session.Config{Driver: cfg.Driver, TTL: cfg.TTL()}
	if cfg.File != nil {
		out.File = &session.FileConfig{Path: cfg.File.Path}
	}
	if cfg.Redis != nil {
		out.Redis = &session.RedisConfig{
			Addr:     cfg.Redis.Addr,
			Username: cfg.Redis.Username,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
			Prefix:   cfg.Redis.Prefix,
		}
	}
	if cfg.SQLite != nil {
		out.SQLite = &session.SQLiteConfig{DSN: cfg.SQLite.DSN}
	}
	return out
}

func intArg(args []string, index int, usage string) (int, error) {
	if len(args) <= index {
		return 0, fmt.Errorf("usage: %s", usage)
	}
	id, err := strconv.Atoi(args[index])
	if err != nil {
		return 0, fmt.Errorf("invalid id %q", args[index])
	}
	return id, nil
}
