// srsctl is a terminal client for the registrar API.
//
// It caches the login token on disk and checks it with the server before
// every command that needs a session.
package main

import (
	"bufio"
	"context"
	"errors"
	"flag"
	"fmt"
	"net/http"
	"os"
	"strings"
	"syscall"
	"text/tabwriter"
	"time"

	"github.com/fatih/color"
	"github.com/srsedu/registrar-backend/internal/client"
	"github.com/srsedu/registrar-backend/internal/model"
	"golang.org/x/term"
)

var (
	green = color.New(color.FgGreen)
	red   = color.New(color.FgRed)
	cyan  = color.New(color.FgCyan)
)

func main() {
	apiURL := flag.String("api", getEnv("SRS_API_URL", "http://localhost:3000"), "Registrar API base URL")
	sessionPath := flag.String("session", "", "Session file (default: user config dir)")
	flag.Usage = usage
	flag.Parse()

	if flag.NArg() < 1 {
		usage()
		os.Exit(2)
	}

	path := *sessionPath
	if path == "" {
		p, err := client.DefaultSessionPath()
		if err != nil {
			fatal(err)
		}
		path = p
	}

	c := client.New(*apiURL, client.NewFileStore(path))
	guard := client.NewGuard(c)
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	var err error
	switch cmd, args := flag.Arg(0), flag.Args()[1:]; cmd {
	case "login":
		err = login(ctx, c, guard, args)
	case "logout":
		err = c.Logout(ctx)
		if err == nil {
			green.Println("Logged out")
		}
	case "whoami":
		err = whoami(ctx, guard)
	case "admins":
		err = list(ctx, c, guard, model.RoleAdmin)
	case "teachers":
		err = list(ctx, c, guard, model.RoleTeacher)
	case "health":
		err = health(ctx, *apiURL)
	default:
		usage()
		os.Exit(2)
	}
	if err != nil {
		fatal(err)
	}
}

func login(ctx context.Context, c *client.Client, guard *client.Guard, args []string) error {
	fs := flag.NewFlagSet("login", flag.ExitOnError)
	email := fs.String("email", "", "Account email")
	role := fs.String("role", "admin", "admin or teacher")
	_ = fs.Parse(args)

	if err := guard.RequireGuest(); err != nil {
		if _, verr := guard.RequireAuth(ctx); verr == nil {
			return errors.New("already logged in, run 'srsctl logout' first")
		}
	}

	r, ok := model.ParseRole(*role)
	if !ok {
		return fmt.Errorf("invalid role %q", *role)
	}

	if *email == "" {
		fmt.Print("Email: ")
		line, _ := bufio.NewReader(os.Stdin).ReadString('\n')
		*email = strings.TrimSpace(line)
	}

	fmt.Print("Password: ")
	pw, err := term.ReadPassword(int(syscall.Stdin))
	fmt.Println()
	if err != nil {
		return fmt.Errorf("read password: %w", err)
	}

	s, err := c.Login(ctx, *email, string(pw), r)
	if err != nil {
		return err
	}

	green.Print("✓ ")
	fmt.Printf("Logged in as %s (%s)\n", s.User.FullName, s.User.Role.Label())
	return nil
}

func whoami(ctx context.Context, guard *client.Guard) error {
	user, err := guard.RequireAuth(ctx)
	if err != nil {
		return err
	}
	fmt.Printf("%s\n", user.FullName)
	fmt.Printf("  id:   %s\n", user.ID)
	fmt.Printf("  role: %s\n", user.Role.Label())
	return nil
}

func list(ctx context.Context, c *client.Client, guard *client.Guard, role model.Role) error {
	if _, err := guard.RequireAuth(ctx); err != nil {
		return err
	}
	if role == model.RoleAdmin && !c.HasRole(model.RoleAdmin) {
		return errors.New("admin role required")
	}

	var (
		rows []model.Principal
		err  error
	)
	if role == model.RoleAdmin {
		rows, err = c.Admins(ctx)
	} else {
		rows, err = c.Teachers(ctx)
	}
	if err != nil {
		return err
	}

	cyan.Printf("%ss (%d)\n", role.Label(), len(rows))
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tNAME\tEMAIL\tCREATED")
	for _, p := range rows {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", p.ID, p.FullName, p.Email, p.CreatedAt.Format("2006-01-02"))
	}
	return w.Flush()
}

func health(ctx context.Context, apiURL string) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, strings.TrimSuffix(apiURL, "/")+"/health/ready", nil)
	if err != nil {
		return err
	}
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return fmt.Errorf("server unreachable: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		red.Printf("✗ not ready (status %d)\n", resp.StatusCode)
		os.Exit(1)
	}
	green.Println("✓ ready")
	return nil
}

func fatal(err error) {
	if errors.Is(err, client.ErrLoginRequired) {
		red.Fprintln(os.Stderr, "Session expired or missing. Run 'srsctl login'.")
		os.Exit(1)
	}
	red.Fprintf(os.Stderr, "Error: %v\n", err)
	os.Exit(1)
}

func usage() {
	fmt.Fprintln(os.Stderr, "Usage: srsctl [flags] <command>")
	fmt.Fprintln(os.Stderr, "Commands: login [-email E] [-role admin|teacher], logout, whoami, admins, teachers, health")
	fmt.Fprintln(os.Stderr, "Flags:")
	flag.PrintDefaults()
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
