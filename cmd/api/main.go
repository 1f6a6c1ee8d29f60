package main

import (
	"os"
	"strings"

	"github.com/nimasrn/outlet-ledger/internal/clock"
	"github.com/nimasrn/outlet-ledger/internal/config"
	"github.com/nimasrn/outlet-ledger/internal/handlers"
	"github.com/nimasrn/outlet-ledger/internal/policy"
	"github.com/nimasrn/outlet-ledger/internal/repository"
	"github.com/nimasrn/outlet-ledger/internal/services"
	"github.com/nimasrn/outlet-ledger/internal/session"
	xhttp "github.com/nimasrn/outlet-ledger/pkg/http"
	"github.com/nimasrn/outlet-ledger/pkg/logger"
	"github.com/nimasrn/outlet-ledger/pkg/pg"
	"github.com/nimasrn/outlet-ledger/pkg/prom"
	"github.com/nimasrn/outlet-ledger/pkg/redis"
)

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {

	err := config.Load(argContainsEnvPath())
	if err != nil {
		logger.Error("failed to load config", "error", err)
		return
	}
	logger.Info("starting outlet-ledger api", "version", version, "commit", commit, "date", date)

	// transport (tcp for now)
	s := xhttp.NewServer(xhttp.DefaultServerOption)
	s.Server.ReadBufferSize = 1024 * 16
	s.Server.WriteBufferSize = 1024 * 16
	s.Use(xhttp.RecoverMiddleware)
	s.Use(xhttp.RequestIDMiddleware)
	s.Use(xhttp.RequestLoggerMiddleware)
	s.Use(xhttp.CORSMiddleware(config.Get().HttpAllowedOrigin))
	s.Use(xhttp.CompressMiddleware(6))
	s.Use(xhttp.TimeoutMiddleware(config.Get().HttpRequestTimeout))
	s.Router = xhttp.CreateDefaultRouter()

	readConf := pg.Config{
		User:     config.Get().PostgresReadUser,
		Host:     config.Get().PostgresReadHost,
		Port:     config.Get().PostgresReadPort,
		Password: config.Get().PostgresReadPassword,
		Database: config.Get().PostgresReadDatabase,
	}
	writeConf := pg.Config{
		User:     config.Get().PostgresWriteUser,
		Host:     config.Get().PostgresWriteHost,
		Port:     config.Get().PostgresWritePort,
		Password: config.Get().PostgresWritePassword,
		Database: config.Get().PostgresWriteDatabase,
	}

	pgDebug := false
	if config.Get().AppEnv == "dev" {
		pgDebug = true
	}
	db, err := pg.CreateReadWrite(readConf, writeConf, pgDebug)
	if err != nil {
		logger.Error("failed connecting to pg", "error", err)
		return
	}

	redisAdap, err := redis.NewRedisAdapter("default", config.Get().RedisUniversalKeyPrefix, &redis.Options{
		Addrs:      []string{config.Get().RedisAddr},
		ClientName: "default",
		DB:         config.Get().RedisDatabase,
		Username:   config.Get().RedisUsername,
		Password:   config.Get().RedisPassword,
	})
	if err != nil {
		logger.Error("failed connecting to redis", "error", err)
		return
	}

	if addr := config.Get().AppDebugMetricsAddr; addr != "" {
		hostname, err := os.Hostname()
		if err != nil {
			hostname = "unknown"
		}
		if err = prom.Create(hostname, config.Get().AppEnv, config.Get().PromNamespace); err != nil {
			logger.Error("failed to create prometheus metrics", "error", err)
			return
		}
		go func() {
			prom.ListenAndServer(addr, config.Get().AppDebugMetricsURI)
		}()
	}

	businessClock, err := clock.NewZoned(config.Get().BusinessTimezone)
	if err != nil {
		logger.Error("failed to load business timezone", "error", err)
		return
	}
	editPolicy := policy.New(businessClock)

	userRepo := repository.NewUserRepository(db)
	businessRepo := repository.NewBusinessRepository(db)
	supplierRepo := repository.NewSupplierRepository(db)
	transactionRepo := repository.NewTransactionRepository(db)
	reportRepo := repository.NewDailyReportRepository(db)
	cashRepo := repository.NewCashMovementRepository(db)
	invoiceRepo := repository.NewInvoiceRepository(db)
	sessions := session.NewStore(redisAdap, config.Get().SessionTTL, config.Get().SessionRememberTTL)

	// services
	workspaceService := services.NewWorkspaceService(businessRepo, supplierRepo, transactionRepo, reportRepo, cashRepo)
	authService := services.NewAuthService(userRepo, sessions, workspaceService)
	invoiceService := services.NewInvoiceService(invoiceRepo, config.Get().AppBaseUrl, config.Get().InvoiceMaxBytes)
	supplierService := services.NewSupplierService(supplierRepo)
	transactionService := services.NewTransactionService(transactionRepo, invoiceService, editPolicy, businessClock)
	reportService := services.NewReportService(reportRepo, editPolicy, businessClock)
	cashService := services.NewCashService(cashRepo, editPolicy, businessClock)
	deletionService := services.NewDeletionService(supplierRepo, transactionRepo, reportRepo, cashRepo, editPolicy)
	summaryService := services.NewSummaryService(editPolicy)
	healthService := services.NewHealthService(db, redisAdap)

	// v1 handlers
	auth := handlers.AuthMiddleware(authService)
	g := s.Router.Group("/api/v1")
	handlers.RegisterAuthRoutes(g, handlers.NewAuthHandler(authService), auth)
	handlers.RegisterWorkspaceRoutes(g, handlers.NewWorkspaceHandler(workspaceService), auth)
	handlers.RegisterSupplierRoutes(g, handlers.NewSupplierHandler(supplierService), auth)
	handlers.RegisterTransactionRoutes(g, handlers.NewTransactionHandler(transactionService), auth)
	handlers.RegisterReportRoutes(g, handlers.NewReportHandler(reportService), auth)
	handlers.RegisterCashRoutes(g, handlers.NewCashHandler(cashService), auth)
	handlers.RegisterSummaryRoutes(g, handlers.NewSummaryHandler(summaryService), auth)
	handlers.RegisterDeletionRoutes(g, handlers.NewDeletionHandler(deletionService), auth)
	handlers.RegisterHealthRoutes(g, handlers.NewHealthHandler(healthService))
	handlers.RegisterInvoiceRoutes(s.Router, handlers.NewInvoiceHandler(invoiceService))

	done := s.CloseOnSignal()

	go func() {
		var err = s.ListenAndServe(config.Get().HttpListenAddr)
		if err != nil {
			logger.Error("error in running http-server", "error", err)
		}
	}()

	<-done
}

func argContainsEnvPath() string {
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
	return ""
}
