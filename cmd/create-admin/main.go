package main

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"
	"syscall"

	"github.com/dnc-edu/conduct-backend/internal/config"
	"github.com/dnc-edu/conduct-backend/internal/database"
	"github.com/dnc-edu/conduct-backend/internal/logger"
	"github.com/dnc-edu/conduct-backend/internal/model"
	"github.com/dnc-edu/conduct-backend/internal/repository"
	"github.com/dnc-edu/conduct-backend/internal/service"
	"golang.org/x/term"
)

func main() {
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

	reader := bufio.NewReader(os.Stdin)

	fmt.Println("=== Create New Admin User ===")

	fmt.Print("Enter Name: ")
	name, _ := reader.ReadString('\n')
	name = strings.TrimSpace(name)
	if name == "" {
		fmt.Println("Error: Name is required")
		return
	}

	fmt.Print("Enter Username: ")
	username, _ := reader.ReadString('\n')
	username = strings.TrimSpace(username)
	if username == "" {
		fmt.Println("Error: Username is required")
		return
	}

	fmt.Print("Enter Email (optional): ")
	email, _ := reader.ReadString('\n')
	email = strings.TrimSpace(email)

	fmt.Print("Enter Password: ")
	bytePassword, err := term.ReadPassword(int(syscall.Stdin))
	if err != nil {
		fmt.Println("\nError reading password")
		return
	}
	password := string(bytePassword)
	fmt.Println()
	if len(password) < 6 {
		fmt.Println("Error: Password must be at least 6 characters")
		return
	}

	admin, err := accountService.CreateUser(ctx, &model.CreateUserRequest{
		Role:     model.RoleAdmin,
		Name:     name,
		Username: username,
		Email:    email,
		Password: password,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to create admin")
	}

	fmt.Printf("\nSuccess! Admin '%s' (%s) created with ID: %d\n", admin.Name, username, admin.ID)
}
