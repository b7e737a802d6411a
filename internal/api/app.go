package api

import (
	"context"
	"fmt"
	"log"
	"net/http"

	"github.com/gorilla/handlers"
	"github.com/michaeelnguyen/michaeelnguyen-pep-project/internal/config"
	"github.com/michaeelnguyen/michaeelnguyen-pep-project/internal/database"
	"github.com/michaeelnguyen/michaeelnguyen-pep-project/internal/metrics"
	"github.com/michaeelnguyen/michaeelnguyen-pep-project/internal/service"
	"github.com/michaeelnguyen/michaeelnguyen-pep-project/internal/stats"
)

type SocialMediaApp struct {
	log      *log.Logger
	db       database.SocialMediaRepository
	accounts *service.AccountService
	messages *service.MessageService
	mux      *http.Server
	stats    stats.StatsProvider
}

func NewSocialMediaApp(mux *http.ServeMux, logger *log.Logger, db database.SocialMediaRepository, statsProvider stats.StatsProvider, cfg *config.Config) *SocialMediaApp {
	accounts := service.NewAccountService(db)

	s := &SocialMediaApp{
		log:      logger,
		db:       db,
		accounts: accounts,
		messages: service.NewMessageService(db, accounts),
		stats:    statsProvider,
	}

	mux.HandleFunc("GET /healthz", s.healthCheck)
	mux.Handle("GET /metrics", metrics.Handler())
	mux.HandleFunc("POST /register", s.register)
	mux.HandleFunc("POST /login", s.login)
	mux.HandleFunc("POST /messages", s.createMessage)
	mux.HandleFunc("GET /messages", s.getAllMessages)
	mux.HandleFunc("GET /messages/{message_id}", s.getMessageById)
	mux.HandleFunc("DELETE /messages/{message_id}", s.deleteMessageById)
	mux.HandleFunc("PATCH /messages/{message_id}", s.updateMessageById)
	mux.HandleFunc("GET /accounts/{account_id}/messages", s.getMessagesByAccountId)

	h := handlers.CORS(
		handlers.MaxAge(3600),
		handlers.AllowedOrigins(cfg.AllowedOrigins),
		handlers.AllowedMethods([]string{http.MethodGet, http.MethodPost, http.MethodPatch, http.MethodDelete, http.MethodOptions}),
		handlers.AllowedHeaders([]string{"Origin", "Content-Type", "Accept"}),
	)(mux)

	h = metrics.InstrumentHandler(h)
	if logger != nil {
		h = handlers.CombinedLoggingHandler(logger.Writer(), h)
	}
	h = s.errorHandler(h)

	srv := &http.Server{
		Addr:    cfg.ServerAddr,
		Handler: h,
	}

	s.mux = srv
	return s
}

func (s *SocialMediaApp) Start() error {
	s.log.Printf("starting server on %s\n", s.mux.Addr)
	return s.mux.ListenAndServe()
}

func (s *SocialMediaApp) Shutdown(ctx context.Context) error {
	s.log.Println("shutting down HTTP server...")
	if err := s.mux.Shutdown(ctx); err != nil {
		return fmt.Errorf("server shutdown: %w", err)
	}

	return nil
}

func (s *SocialMediaApp) incr(name string) {
	if s.stats != nil {
		s.stats.Incr(name)
	}
}
