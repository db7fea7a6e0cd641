// Command ems is a small terminal client for the event management API. It
// keeps the session in the user config directory, so a login survives across
// invocations and expired access tokens are refreshed transparently.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log/slog"
	"os"

	"github.com/ross2p/ems-app/internal/apiclient"
	"github.com/ross2p/ems-app/internal/config"
	"github.com/ross2p/ems-app/internal/dto"
	"github.com/ross2p/ems-app/internal/models"
	"github.com/ross2p/ems-app/internal/services"
	"github.com/ross2p/ems-app/internal/session"
	"github.com/ross2p/ems-app/internal/storage"
)

const usage = `Usage: ems <command> [flags]

Commands:
  register    create an account and sign in
  login       sign in with email and password
  logout      sign out and clear stored credentials
  whoami      show the signed-in user
  events      list events (supports filter and sort flags)
  event       show one event by ID
  similar     list events similar to the given event ID
  categories  list categories
  attend      mark attendance for an event ID
`

type app struct {
	session    session.Reader
	manager    *session.Manager
	auth       services.AuthServiceInterface
	events     services.EventServiceInterface
	categories services.CategoryServiceInterface
	attendance services.AttendanceServiceInterface
}

func main() {
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.LevelWarn,
	}))
	slog.SetDefault(logger)

	if len(os.Args) < 2 {
		fmt.Fprint(os.Stderr, usage)
		os.Exit(2)
	}

	cfg := config.Load()
	ctx := context.Background()

	a, err := buildApp(ctx, cfg, logger)
	if err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}

	if err := a.run(ctx, os.Args[1], os.Args[2:]); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

func buildApp(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*app, error) {
	backend := storage.NewFileBackend(cfg.Client.CredentialsFile)
	tokens := storage.NewTokenStore(backend, logger)
	client := apiclient.New(cfg.Client.BaseURL, tokens,
		apiclient.WithTimeout(cfg.Client.Timeout),
		apiclient.WithLogger(logger),
	)

	auth := services.NewAuthService(client, logger)
	manager := session.NewManager(tokens, auth, logger)
	manager.Initialize(ctx)

	return &app{
		session:    manager,
		manager:    manager,
		auth:       auth,
		events:     services.NewEventService(client),
		categories: services.NewCategoryService(client),
		attendance: services.NewAttendanceService(client),
	}, nil
}

func (a *app) run(ctx context.Context, command string, args []string) error {
	switch command {
	case "register":
		return a.register(ctx, args)
	case "login":
		return a.login(ctx, args)
	case "logout":
		a.manager.Logout(ctx)
		fmt.Println("signed out")
		return nil
	case "whoami":
		return a.whoami()
	case "events":
		return a.listEvents(ctx, args)
	case "event":
		return a.showEvent(ctx, args)
	case "similar":
		return a.similarEvents(ctx, args)
	case "categories":
		return a.listCategories(ctx, args)
	case "attend":
		return a.attend(ctx, args)
	default:
		fmt.Fprint(os.Stderr, usage)
		return fmt.Errorf("unknown command %q", command)
	}
}

func (a *app) register(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("register", flag.ExitOnError)
	email := fs.String("email", "", "email address")
	password := fs.String("password", "", "password")
	firstName := fs.String("first-name", "", "first name")
	lastName := fs.String("last-name", "", "last name")
	if err := fs.Parse(args); err != nil {
		return err
	}

	user, err := a.manager.Register(ctx, dto.RegisterRequest{
		Email:     *email,
		Password:  *password,
		FirstName: *firstName,
		LastName:  *lastName,
	})
	if err != nil {
		return err
	}

	fmt.Printf("registered and signed in as %s\n", user.Email)
	return nil
}

func (a *app) login(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("login", flag.ExitOnError)
	email := fs.String("email", "", "email address")
	password := fs.String("password", "", "password")
	if err := fs.Parse(args); err != nil {
		return err
	}

	user, err := a.manager.Login(ctx, *email, *password)
	if err != nil {
		return err
	}

	fmt.Printf("signed in as %s\n", user.Email)
	return nil
}

func (a *app) whoami() error {
	user := a.session.CurrentUser()
	if user == nil {
		fmt.Println("not signed in")
		return nil
	}
	fmt.Printf("%s <%s>\n", user.FullName(), user.Email)
	return nil
}

func (a *app) listEvents(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("events", flag.ExitOnError)
	var params models.EventListParams
	fs.StringVar(&params.Search, "search", "", "full-text search")
	fs.StringVar(&params.CategoryID, "category", "", "category ID")
	fs.StringVar(&params.StartDate, "start", "", "earliest start date (RFC 3339)")
	fs.StringVar(&params.EndDate, "end", "", "latest start date (RFC 3339)")
	fs.StringVar(&params.SortBy, "sort-by", "", "sort field: date, title or createdAt")
	fs.StringVar(&params.SortOrder, "sort-order", "", "sort direction: asc or desc")
	fs.IntVar(&params.PageNumber, "page", 0, "page number")
	fs.IntVar(&params.PageSize, "page-size", 0, "page size")
	if err := fs.Parse(args); err != nil {
		return err
	}

	page, err := a.events.List(ctx, params)
	if err != nil {
		return err
	}

	for _, event := range page.Items {
		fmt.Printf("%s  %s  %s\n", event.ID, event.StartDate.Format("2006-01-02 15:04"), event.Title)
	}
	fmt.Printf("page %d/%d, %d events total\n", page.Page, page.TotalPages, page.Total)
	return nil
}

func (a *app) showEvent(ctx context.Context, args []string) error {
	if len(args) < 1 {
		return fmt.Errorf("usage: ems event <id>")
	}

	event, err := a.events.Get(ctx, args[0])
	if err != nil {
		return err
	}
	return printJSON(event)
}

func (a *app) similarEvents(ctx context.Context, args []string) error {
	if len(args) < 1 {
		return fmt.Errorf("usage: ems similar <event-id>")
	}

	events, err := a.events.Similar(ctx, args[0])
	if err != nil {
		return err
	}

	for _, event := range events {
		fmt.Printf("%s  %s  %s\n", event.ID, event.StartDate.Format("2006-01-02 15:04"), event.Title)
	}
	return nil
}

func (a *app) listCategories(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("categories", flag.ExitOnError)
	var params models.CategoryListParams
	fs.StringVar(&params.Search, "search", "", "name search")
	if err := fs.Parse(args); err != nil {
		return err
	}

	page, err := a.categories.List(ctx, params)
	if err != nil {
		return err
	}

	for _, category := range page.Items {
		fmt.Printf("%s  %s\n", category.ID, category.Name)
	}
	return nil
}

func (a *app) attend(ctx context.Context, args []string) error {
	if len(args) < 1 {
		return fmt.Errorf("usage: ems attend <event-id>")
	}

	user := a.session.CurrentUser()
	if user == nil {
		return fmt.Errorf("sign in first")
	}

	attendance, err := a.attendance.Create(ctx, dto.CreateAttendanceRequest{
		UserID:  user.ID.String(),
		EventID: args[0],
	})
	if err != nil {
		return err
	}

	fmt.Printf("attending event %s\n", attendance.EventID)
	return nil
}

func printJSON(v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	fmt.Println(string(data))
	return nil
}
