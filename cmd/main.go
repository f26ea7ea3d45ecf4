package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"sort"
	"strings"

	"github.com/wbonfim/DeliveryApp/configs"
	"github.com/wbonfim/DeliveryApp/internal/client"
	"github.com/wbonfim/DeliveryApp/internal/forms"
	"github.com/wbonfim/DeliveryApp/internal/store"
	"github.com/wbonfim/DeliveryApp/pkg/logger"
	"github.com/wbonfim/DeliveryApp/pkg/storage"
)

// app is one CLI session: a store over a client whose credential lives in
// the configured storage.
type app struct {
	store  *store.Store
	client *client.Client
	out    io.Writer
}

type command struct {
	usage string
	run   func(ctx context.Context, a *app, args []string) error
}

var commands = map[string]command{
	"restaurants": {"restaurants [-search term] [-category name]", cmdRestaurants},
	"menu":        {"menu <restaurant id>", cmdMenu},
	"categories":  {"categories", cmdCategories},
	"login":       {"login -email e -password p", cmdLogin},
	"register":    {"register -name n -email e -phone p -password p -confirm p [-username u]", cmdRegister},
	"logout":      {"logout", cmdLogout},
	"whoami":      {"whoami", cmdWhoami},
	"cart":        {"cart", cmdCart},
	"add":         {"add -product id [-qty n] [-notes text]", cmdAdd},
	"remove":      {"remove <item id>", cmdRemove},
	"clear":       {"clear", cmdClear},
	"order":       {"order -payment pix|credit_card|debit_card|cash -street s -number n -neighborhood b -city c -state uf -zip z", cmdOrder},
	"orders":      {"orders", cmdOrders},
	"cancel":      {"cancel <order id>", cmdCancel},
	"review":      {"review -order id -rating 1..5 [-comment text]", cmdReview},
	"health":      {"health", cmdHealth},
}

func usage(w io.Writer) {
	fmt.Fprintln(w, "usage: delivery <command> [flags]")
	fmt.Fprintln(w)
	names := make([]string, 0, len(commands))
	for name := range commands {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		fmt.Fprintf(w, "  %s\n", commands[name].usage)
	}
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := run(ctx, os.Args[1:], os.Stdout); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, args []string, out io.Writer) error {
	if len(args) == 0 {
		usage(out)
		return nil
	}
	cmd, ok := commands[args[0]]
	if !ok {
		usage(out)
		return fmt.Errorf("unknown command %q", args[0])
	}

	config, err := configs.LoadConfig()
	if err != nil {
		return err
	}
	a, err := newApp(ctx, config, out)
	if err != nil {
		return err
	}
	return cmd.run(ctx, a, args[1:])
}

func newApp(ctx context.Context, config *configs.Config, out io.Writer) (*app, error) {
	log := logger.New(logger.Options{
		Level:     config.Log.Level,
		Pretty:    config.Log.Pretty,
		Component: "cli",
	})

	tokens, err := storage.Open(ctx, storage.Config{
		Driver:        config.Storage.Driver,
		FilePath:      config.Storage.FilePath,
		RedisURL:      config.Redis.URL,
		RedisPassword: config.Redis.Password,
		RedisDB:       config.Redis.DB,
		RedisPrefix:   config.Redis.Prefix,
	})
	if err != nil {
		return nil, err
	}

	c, err := client.New(ctx, client.Config{
		BaseURL:           config.API.BaseURL,
		Timeout:           config.API.Timeout,
		TokenKey:          config.Storage.TokenKey,
		RequestsPerSecond: config.API.RequestsPerSecond,
		Burst:             config.API.Burst,
	}, tokens, log)
	if err != nil {
		return nil, err
	}

	s := store.New(c, log)
	s.Bootstrap(ctx)
	return &app{store: s, client: c, out: out}, nil
}

func (a *app) printf(format string, args ...any) {
	fmt.Fprintf(a.out, format, args...)
}

// requireLogin mirrors the protected pages of the web front end.
func (a *app) requireLogin() error {
	if !a.store.Snapshot().IsAuthenticated {
		return store.ErrAuthRequired
	}
	return nil
}

func newFlagSet(name string) *flag.FlagSet {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	return fs
}

func parseFlags(fs *flag.FlagSet, args []string) error {
	if err := fs.Parse(args); err != nil {
		return fmt.Errorf("%s: %w", fs.Name(), err)
	}
	return nil
}

func validationError(fe forms.FieldErrors) error {
	if len(fe) == 0 {
		return nil
	}
	return errors.New(strings.TrimSpace(fe.Error()))
}
