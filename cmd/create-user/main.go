package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"os"
	"strings"
	"syscall"

	"github.com/srsedu/registrar-backend/internal/config"
	"github.com/srsedu/registrar-backend/internal/logger"
	"github.com/srsedu/registrar-backend/internal/model"
	"github.com/srsedu/registrar-backend/internal/repository"
	"github.com/srsedu/registrar-backend/internal/service"
	"golang.org/x/term"
)

func main() {
	// ─── Load Configuration ────────────────────────────────────────────
	cfg := config.Load()

	// ─── Initialize Logger ─────────────────────────────────────────────
	log := logger.Setup(cfg.LogLevel, cfg.LogFormat)

	ctx := context.Background()

	// ─── Connect to the principal store ────────────────────────────────
	repo, closeRepo, err := repository.OpenPrincipalRepository(ctx, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to open database")
	}
	defer closeRepo()

	principalService := service.NewPrincipalService(repo, service.NewPasswordHasher(cfg.BcryptCost), log)

	// ─── CLI Input ─────────────────────────────────────────────────────
	reader := bufio.NewReader(os.Stdin)

	fmt.Println("=== Create New User ===")

	fmt.Print("Enter Role (admin/teacher, default admin): ")
	rawRole, _ := reader.ReadString('\n')
	rawRole = strings.TrimSpace(rawRole)
	role := model.RoleAdmin
	if rawRole != "" {
		r, ok := model.ParseRole(rawRole)
		if !ok {
			fmt.Println("Error: Role must be admin or teacher")
			return
		}
		role = r
	}

	fmt.Print("Enter Full Name: ")
	name, _ := reader.ReadString('\n')
	name = strings.TrimSpace(name)
	if name == "" {
		fmt.Println("Error: Full name is required")
		return
	}

	fmt.Print("Enter Email: ")
	email, _ := reader.ReadString('\n')
	email = strings.TrimSpace(email)
	if email == "" {
		fmt.Println("Error: Email is required")
		return
	}

	fmt.Print("Enter Password: ")
	bytePassword, err := term.ReadPassword(int(syscall.Stdin))
	fmt.Println()
	if err != nil {
		fmt.Println("Error reading password")
		return
	}

	// ─── Logic ─────────────────────────────────────────────────────────
	p, err := principalService.Create(ctx, role, model.CreatePrincipalRequest{
		Email:    email,
		Password: string(bytePassword),
		FullName: name,
	})
	if err != nil {
		var verr *service.ValidationError
		switch {
		case errors.As(err, &verr):
			fmt.Printf("Error: %s\n", verr.Error())
		case errors.Is(err, service.ErrDuplicateEmail), errors.Is(err, service.ErrDuplicateName):
			fmt.Printf("Error: %s with this name or email already exists\n", role.Label())
		default:
			log.Fatal().Err(err).Msg("Failed to create user")
		}
		os.Exit(1)
	}

	fmt.Printf("\nSuccess! %s '%s' (%s) created with ID: %s\n", role.Label(), p.FullName, p.Email, p.ID)
}
