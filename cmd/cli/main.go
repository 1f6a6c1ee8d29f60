package main

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/nimasrn/outlet-ledger/internal/config"
	"github.com/nimasrn/outlet-ledger/internal/model"
	"github.com/nimasrn/outlet-ledger/internal/repository"
	"github.com/nimasrn/outlet-ledger/pkg/logger"
	"github.com/nimasrn/outlet-ledger/pkg/pg"
	"golang.org/x/crypto/bcrypt"
)

const usage = `usage:
  cli migrate [--env=.env] [--dir=./migrations]
  cli create-business --name=<name> [--env=.env]
  cli create-user --username=<u> --password=<p> --full-name=<name> --role=admin|staff [--businesses=1,2] [--env=.env]`

func main() {
	if len(os.Args) < 2 {
		fmt.Println(usage)
		os.Exit(2)
	}

	err := config.Load(getEnvPath())
	if err != nil {
		logger.Error("failed to load config", "error", err)
		os.Exit(1)
	}
	pgConf := pg.Config{
		User:     config.Get().PostgresWriteUser,
		Host:     config.Get().PostgresWriteHost,
		Port:     config.Get().PostgresWritePort,
		Password: config.Get().PostgresWritePassword,
		Database: config.Get().PostgresWriteDatabase,
	}

	switch os.Args[1] {
	case "migrate":
		// main.go migrate --dir=./migrations
		err = pg.Migrate(pgConf, getMigrationPath())
	case "create-business":
		err = createBusiness(pgConf)
	case "create-user":
		err = createUser(pgConf)
	default:
		fmt.Println(usage)
		os.Exit(2)
	}
	if err != nil {
		logger.Error("cli: "+os.Args[1]+" failed", "error", err)
		os.Exit(1)
	}
}

func connect(cfg pg.Config) (*pg.DB, error) {
	conn, err := pg.Create(cfg, false)
	if err != nil {
		return nil, err
	}
	return pg.New(conn, conn), nil
}

func createBusiness(cfg pg.Config) error {
	name := strings.TrimSpace(flagValue("name"))
	if name == "" {
		return fmt.Errorf("--name is required")
	}
	db, err := connect(cfg)
	if err != nil {
		return err
	}
	b, err := repository.NewBusinessRepository(db).Create(context.Background(), name)
	if err != nil {
		return err
	}
	logger.Info("business created", "id", b.ID, "name", b.Name)
	return nil
}

func createUser(cfg pg.Config) error {
	req := model.UserCreateRequest{
		Username: strings.TrimSpace(flagValue("username")),
		Password: flagValue("password"),
		FullName: strings.TrimSpace(flagValue("full-name")),
		Role:     model.Role(flagValue("role")),
	}
	if raw := flagValue("businesses"); raw != "" {
		for _, part := range strings.Split(raw, ",") {
			id, err := strconv.ParseInt(strings.TrimSpace(part), 10, 64)
			if err != nil {
				return fmt.Errorf("--businesses: %q is not an id", part)
			}
			req.Businesses = append(req.Businesses, id)
		}
	}
	if err := req.Validate(); err != nil {
		return err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}
	db, err := connect(cfg)
	if err != nil {
		return err
	}
	u, err := repository.NewUserRepository(db).Create(context.Background(), &model.User{
		Username:          req.Username,
		PasswordHash:      string(hash),
		FullName:          req.FullName,
		Role:              req.Role,
		AllowedBusinesses: req.Businesses,
	})
	if err != nil {
		return err
	}
	logger.Info("user created", "id", u.ID, "username", u.Username, "role", u.Role)
	return nil
}

// flagValue reads a --key=value argument. Values may contain "=".
func flagValue(key string) string {
	prefix := "--" + key + "="
	for _, v := range os.Args[2:] {
		if strings.HasPrefix(v, prefix) {
			return strings.TrimPrefix(v, prefix)
		}
	}
	return ""
}

func getEnvPath() string {
	for _, v := range os.Args {
		if strings.Contains(v, "--env=") {
			s := strings.Split(v, "=")
			if _, err := os.Open(s[1]); err != nil {
				logger.Error("failed to open the passed env file, got error" + err.Error())
				return ""
			}
			return s[1]
		}
	}
	if _, err := os.Open(".env"); err != nil {
		logger.Error("failed to open the passed env file, got error" + err.Error())
		return ""
	}
	return ".env"
}

func getMigrationPath() string {
	for _, v := range os.Args {
		if strings.Contains(v, "--dir=") {
			s := strings.Split(v, "=")
			if _, err := os.Open(s[1]); err != nil {
				logger.Error("failed to open the passed migration dir, got error" + err.Error())
				return ""
			}
			return s[1]
		}
	}
	if _, err := os.Open("./migrations"); err != nil {
		logger.Error("failed to open the migration dir, got error" + err.Error())
		return ""
	}
	return "./migrations"
}
