package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"go-pos-console/internal/access"
	"go-pos-console/internal/apiclient"
	"go-pos-console/internal/model"
	"go-pos-console/internal/session"
	"go-pos-console/internal/storage"
	"go-pos-console/pkg/config"
	"go-pos-console/pkg/logger"
)

const usage = `usage: console <command> [flags]

commands:
  login -user NAME -password PASS   sign in and keep the session
  logout                            end the stored session
  whoami                            print the stored principal and its menu
  refresh                           re-fetch the permissions of the stored session
  products                          list the catalog
  rate                              print the latest exchange rate`

// console is a terminal front end for the POS API. The session survives between
// invocations in the store chosen by SESSION_BACKEND.
func main() {
	if len(os.Args) < 2 {
		fmt.Fprintln(os.Stderr, usage)
		os.Exit(2)
	}

	log := logger.New("pos-console", os.Stderr)

	cfg, err := config.Load()
	if err != nil {
		log.WithError(err).Error("invalid configuration")
		os.Exit(1)
	}
	log.SetLevel(cfg.LogLevel)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	kv, closeKV, err := storage.Open(ctx, cfg)
	if err != nil {
		log.WithError(err).Error("failed to open session storage")
		os.Exit(1)
	}
	defer closeKV()

	client := apiclient.New(cfg.APIBaseURL, cfg.APITimeout)
	store := session.NewStore(client, kv, log)

	if err := run(ctx, os.Args[1], os.Args[2:], client, store); err != nil {
		log.WithError(err).WithField("command", os.Args[1]).Error("command failed")
		stop()
		closeKV()
		os.Exit(1)
	}
}

func run(ctx context.Context, cmd string, args []string, client *apiclient.Client, store *session.Store) error {
	switch cmd {
	case "login":
		fs := flag.NewFlagSet("login", flag.ExitOnError)
		username := fs.String("user", "", "username")
		password := fs.String("password", "", "password")
		fs.Parse(args)

		p, err := store.Login(ctx, model.Credentials{Username: *username, Password: *password})
		if err != nil {
			return err
		}
		return printJSON(p)

	case "logout":
		if _, err := store.Restore(ctx); err != nil {
			return err
		}
		err := store.Logout(ctx)
		store.Wait()
		return err

	case "whoami":
		p, err := store.Restore(ctx)
		if err != nil {
			return err
		}
		if p == nil {
			return fmt.Errorf("not signed in")
		}
		return printJSON(struct {
			Principal  *model.Principal    `json:"principal"`
			Privileges map[string][]string `json:"privileges_by_resource"`
			Menu       []access.NavItem    `json:"menu"`
		}{p, p.Permissions.Categories(), access.Visible(access.DefaultNav(), p)})

	case "refresh":
		p, err := store.Restore(ctx)
		if err != nil {
			return err
		}
		if p == nil {
			return fmt.Errorf("not signed in")
		}
		store.RefreshPermissions(ctx)
		return printJSON(store.Current())

	case "products":
		if err := requireSession(ctx, store, "products:read"); err != nil {
			return err
		}
		products, err := client.WithToken(store.Token()).ListProducts(ctx)
		if err != nil {
			return err
		}
		return printJSON(products)

	case "rate":
		if err := requireSession(ctx, store, "rates:read"); err != nil {
			return err
		}
		rate, err := client.WithToken(store.Token()).LatestExchangeRate(ctx)
		if err != nil {
			return err
		}
		return printJSON(rate)

	default:
		return fmt.Errorf("unknown command %q\n%s", cmd, usage)
	}
}

// requireSession restores the stored session and checks it holds privilege locally
// before any request is sent.
func requireSession(ctx context.Context, store *session.Store, privilege string) error {
	p, err := store.Restore(ctx)
	if err != nil {
		return err
	}
	if p == nil {
		return fmt.Errorf("not signed in")
	}
	if !store.HasPermission(privilege) {
		return fmt.Errorf("requires '%s' privilege", privilege)
	}
	return nil
}

func printJSON(v interface{}) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
