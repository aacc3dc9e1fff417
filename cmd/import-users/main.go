package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/dnc-edu/conduct-backend/internal/config"
	"github.com/dnc-edu/conduct-backend/internal/database"
	"github.com/dnc-edu/conduct-backend/internal/logger"
	"github.com/dnc-edu/conduct-backend/internal/repository"
	"github.com/dnc-edu/conduct-backend/internal/service"
)

func main() {
	var (
		filePath     string
		classID      int
		departmentID int
	)
	flag.StringVar(&filePath, "file", "", "Path to the xlsx sheet")
	flag.IntVar(&classID, "class", 0, "Target class id for student rows")
	flag.IntVar(&departmentID, "department", 0, "Target department id for lecturer rows")
	flag.Parse()

	if filePath == "" {
		fmt.Println("Usage: import-users -file users.xlsx [-class N] [-department N]")
		os.Exit(1)
	}

	cfg := config.Load()
	log := logger.Setup(cfg.LogLevel, cfg.LogFormat)

	ctx := context.Background()

	pool, err := database.NewPostgresPool(ctx, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to PostgreSQL")
	}
	defer pool.Close()

	studentRepo := repository.NewStudentRepository(pool)
	lecturerRepo := repository.NewLecturerRepository(pool)
	adminRepo := repository.NewAdminRepository(pool)
	accountRepo := repository.NewAccountRepository(pool)
	roleRepo := repository.NewRoleRepository(pool)
	profiles := repository.NewProfileRegistry(studentRepo, lecturerRepo, adminRepo)

	authService := service.NewAuthService(cfg, nil, roleRepo)
	accountService := service.NewAccountService(pool, profiles, accountRepo, authService, log)
	importService := service.NewImportService(accountService, log)

	f, err := os.Open(filePath)
	if err != nil {
		log.Fatal().Err(err).Str("file", filePath).Msg("Failed to open sheet")
	}
	defer f.Close()

	result, err := importService.ImportUsers(ctx, f, service.ImportOptions{
		ClassID:      classID,
		DepartmentID: departmentID,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("Import failed")
	}

	fmt.Printf("Created %d users\n", result.Created)
	for _, rowErr := range result.Errors {
		fmt.Printf("  row %d: %s\n", rowErr.Row, rowErr.Message)
	}
	if len(result.Errors) > 0 {
		os.Exit(1)
	}
}
