package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"CableCheck/internal/app"
	"CableCheck/internal/auth"
	"CableCheck/internal/calc/analysis"
	"CableCheck/internal/calc/loads"
	"CableCheck/internal/calc/premium/autodesign"
	"CableCheck/internal/calc/premium/batch"
	"CableCheck/internal/calc/premium/importer"
	"CableCheck/internal/calc/premium/recommend"
	"CableCheck/internal/calc/report"
	"CableCheck/internal/config"
	"CableCheck/internal/logging"
)

var wg sync.WaitGroup

func CORS(mux *mux.Router) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		mux.ServeHTTP(w, r)
	})
}

// RequestLog tags each request with an id and logs it once served.
func RequestLog(logger *zap.Logger) mux.MiddlewareFunc {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			id := r.Header.Get("X-Request-ID")
			if id == "" {
				id = uuid.NewString()
			}
			w.Header().Set("X-Request-ID", id)
			start := time.Now()
			next.ServeHTTP(w, r)
			logger.Info("request",
				zap.String("request_id", id),
				zap.String("method", r.Method),
				zap.String("path", r.URL.Path),
				zap.Duration("took", time.Since(start)),
			)
		})
	}
}

func HandleList(mux *mux.Router, a *app.App) {
	cfg := a.Config
	limiter := auth.NewIPRateLimiter(5, 20)

	mux.Use(RequestLog(a.Logger))
	mux.Handle("/metrics", promhttp.Handler()).Methods("GET")
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("ok"))
	}).Methods("GET")

	api := mux.PathPrefix("/api").Subrouter()
	api.Use(limiter.LimitMiddleware)

	tools := api.PathPrefix("/tools/cable").Subrouter()
	if cfg.TokenKey != "" {
		authEnv := &auth.Authenv{JWTkey: []byte(cfg.TokenKey), Repo: a.Users, Logger: a.Logger}
		api.HandleFunc("/login", authEnv.AuthHandler).Methods("POST")
		tools.Use(authEnv.AuthMiddleware)
	} else {
		a.Logger.Warn("TOKEN_KEY is not set; cable tools are served without authentication")
	}

	calcH := &analysis.Handler{Env: a.Env}
	loadsH := &loads.Handler{}
	selectH := &autodesign.Handler{Env: a.Env}
	prestressH := &recommend.Handler{Env: a.Env}
	batchH := &batch.Handler{Env: a.Env}
	importH := &importer.Handler{Env: a.Env}
	reportH := &report.Handler{Env: a.Env}

	tools.HandleFunc("/calc", calcH.Calc).Methods("POST")
	tools.HandleFunc("/catalog", calcH.Catalog).Methods("GET")
	tools.HandleFunc("/loads", loadsH.Calc).Methods("POST")
	tools.HandleFunc("/select", selectH.Cable).Methods("POST")
	tools.HandleFunc("/prestress", prestressH.Prestress).Methods("POST")
	tools.HandleFunc("/batch", batchH.Cable).Methods("POST")
	tools.HandleFunc("/import", importH.Cable).Methods("POST")
	tools.HandleFunc("/report", reportH.Generate).Methods("POST")
}

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}
	if err := logging.Initialize(cfg.Logging); err != nil {
		panic(err)
	}
	defer logging.Sync()
	logger := logging.Logger

	a, err := app.New(ctx, cfg, logger, "http", cfg.TokenKey != "")
	if err != nil {
		logger.Fatal("startup failed", zap.Error(err))
	}
	defer a.Close()

	mux := mux.NewRouter()
	HandleList(mux, a)
	handler := CORS(mux)

	server := &http.Server{
		Addr:              cfg.Addr,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	tls := cfg.TLSCert != "" && cfg.TLSKey != ""
	logger.Info("starting server", zap.String("addr", cfg.Addr), zap.Bool("tls", tls))

	wg.Add(1)
	go func() {
		defer wg.Done()
		var err error
		if tls {
			err = server.ListenAndServeTLS(cfg.TLSCert, cfg.TLSKey)
		} else {
			err = server.ListenAndServe()
		}
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("server error", zap.Error(err))
			cancel()
		}
	}()

	<-ctx.Done()
	logger.Info("shutdown signal received, closing active connections")

	shutdownCtx, cancelShutdown := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancelShutdown()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("server shutdown", zap.Error(err))
	}
	wg.Wait()
	logger.Info("server stopped")
}
