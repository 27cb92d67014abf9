// Package httpserver manages server creation and api routing.
package httpserver

import (
	"database/sql"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/vm-it-consulting/moneyapp/internal/accountdelivery"
	"github.com/vm-it-consulting/moneyapp/internal/accountrepo"
	"github.com/vm-it-consulting/moneyapp/internal/accountservice"
	"github.com/vm-it-consulting/moneyapp/internal/middleware"
	"github.com/vm-it-consulting/moneyapp/internal/statementdelivery"
	"github.com/vm-it-consulting/moneyapp/internal/statementrepo"
	"github.com/vm-it-consulting/moneyapp/internal/statementservice"
	"github.com/vm-it-consulting/moneyapp/internal/transactiondelivery"
	"github.com/vm-it-consulting/moneyapp/internal/transactionrepo"
	"github.com/vm-it-consulting/moneyapp/internal/transactionservice"
	"github.com/vm-it-consulting/moneyapp/internal/userdelivery"
	"github.com/vm-it-consulting/moneyapp/internal/userrepo"
	"github.com/vm-it-consulting/moneyapp/internal/userservice"
	"github.com/vm-it-consulting/moneyapp/pkg/configpkg"
)

// Server holds db connection, handlers router and configuration.
type Server struct {
	DB     *sql.DB
	Engine *gin.Engine
	Config configpkg.Config
}

// ServeHTTP implements the http.Handler interface for the Server type.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.Engine.ServeHTTP(w, r)
}

// New creates Server type with instantiated domains and routes.
func New(conn *sql.DB, logger zerolog.Logger, config configpkg.Config) (*Server, error) {
	userRepo := userrepo.NewRepoPGS(conn)
	accountRepo := accountrepo.NewRepoPGS(conn)
	transactionRepo := transactionrepo.NewRepoPGS(conn)
	statementRepo := statementrepo.NewRepoFS(config.ExportDir)

	userService := userservice.New(userRepo)
	accountService := accountservice.New(accountRepo)
	transactionService := transactionservice.New(transactionRepo)
	statementService := statementservice.New(accountService, transactionService, statementRepo)

	userHandler := userdelivery.NewHandler(userService, accountService)
	accountHandler := accountdelivery.NewHandler(accountService)
	transactionHandler := transactiondelivery.NewHandler(transactionService)
	statementHandler := statementdelivery.NewHandler(statementService)

	gin.SetMode(gin.ReleaseMode)
	engine := gin.New()

	engine.Use(middleware.RequestLogger(logger))
	engine.Use(gin.Recovery())

	engine.POST("/users", userHandler.Create)
	engine.GET("/users", userHandler.List)
	engine.GET("/users/:id", userHandler.Get)
	engine.GET("/users/:id/accounts", userHandler.ListAccounts)

	engine.POST("/accounts", accountHandler.Create)
	engine.GET("/accounts", accountHandler.List)
	engine.GET("/accounts/:id", accountHandler.Get)

	engine.POST("/transactions", transactionHandler.Create)
	engine.GET("/transactions/:id", transactionHandler.Get)
	engine.PUT("/transactions/:id", transactionHandler.Update)
	engine.DELETE("/transactions/:id", transactionHandler.Delete)
	engine.GET("/accounts/:id/transactions", transactionHandler.ListByAccount)
	engine.GET("/accounts/:id/budgets/:amount", transactionHandler.ListWithinBudget)

	engine.POST("/accounts/:id/exports", statementHandler.Export)
	engine.GET("/accounts/:id/exports", statementHandler.Read)

	server := &Server{
		DB:     conn,
		Engine: engine,
		Config: config,
	}

	return server, nil
}
