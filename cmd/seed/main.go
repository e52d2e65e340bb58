package main

import (
	"context"
	"flag"
	"fmt"
	"time"

	"github.com/srsedu/registrar-backend/internal/config"
	"github.com/srsedu/registrar-backend/internal/logger"
	"github.com/srsedu/registrar-backend/internal/model"
	"github.com/srsedu/registrar-backend/internal/repository"
	"github.com/srsedu/registrar-backend/internal/seed"
	"github.com/srsedu/registrar-backend/internal/service"
)

func main() {
	cfg := config.Load()
	production := flag.Bool("production", cfg.IsProduction(), "Seed only the production admin")
	flag.Parse()

	log := logger.Setup(cfg.LogLevel, cfg.LogFormat)
	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	repo, closeRepo, err := repository.OpenPrincipalRepository(ctx, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to open database")
	}
	defer closeRepo()

	svc := service.NewPrincipalService(repo, service.NewPasswordHasher(cfg.BcryptCost), log)

	if *production {
		fmt.Println("=== Seeding production accounts ===")
	} else {
		fmt.Println("=== Seeding development accounts ===")
	}

	res, err := seed.Run(ctx, svc, *production, log)
	if err != nil {
		log.Fatal().Err(err).Msg("Seed failed")
	}

	for _, role := range model.Roles {
		if res.Skipped[role] > 0 {
			fmt.Printf("%s table already has data, skipped.\n", role.Label())
			continue
		}
		fmt.Printf("Created %d %s account(s)\n", res.Created[role], role)
	}

	if !*production {
		fmt.Println("\nTest credentials:")
		for _, acc := range seed.DevelopmentAccounts {
			fmt.Printf("  %-8s %s / %s\n", acc.Role.Label(), acc.Email, acc.Password)
		}
	}
	fmt.Println("\nSeed completed!")
}
