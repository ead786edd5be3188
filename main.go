package main

import (
    "context"
    "encoding/json"
    "fmt"
    "log"
    "net/http"
    "os"
    "os/signal"
    "runtime"
    "syscall"
    "time"

    "github.com/gorilla/mux"

    "doar-payment-api/config"
    "doar-payment-api/handlers"
    "doar-payment-api/middleware"
    "doar-payment-api/services/checkout"
    "doar-payment-api/services/checkout/stripegw"
    "doar-payment-api/services/pix"
)

func corsMiddleware(next http.Handler) http.Handler {
    return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
        w.Header().Set("Access-Control-Allow-Origin", "*")
        w.Header().Set("Access-Control-Allow-Methods", "POST, GET, OPTIONS")
        w.Header().Set("Access-Control-Allow-Headers", "Accept, Content-Type, Content-Length, Accept-Encoding")

        // Responder imediatamente para OPTIONS
        if r.Method == "OPTIONS" {
            w.WriteHeader(http.StatusOK)
            return
        }
        next.ServeHTTP(w, r)
    })
}

type responseWriter struct {
    http.ResponseWriter
    status int
}

func (rw *responseWriter) WriteHeader(code int) {
    rw.status = code
    rw.ResponseWriter.WriteHeader(code)
}

func loggingMiddleware(next http.Handler) http.Handler {
    return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
        start := time.Now()

        wrapper := &responseWriter{ResponseWriter: w, status: http.StatusOK}
        next.ServeHTTP(wrapper, r)

        // Registrar apenas requisições com duração longa ou erros
        elapsed := time.Since(start)
        if elapsed > 500*time.Millisecond || wrapper.status >= 400 {
            log.Printf(
                "%s %s %s %d %v",
                r.Method,
                r.RequestURI,
                r.RemoteAddr,
                wrapper.status,
                elapsed,
            )
        }
    })
}

func main() {
    // Configurar logging com timestamp preciso
    log.SetFlags(log.LstdFlags | log.Lshortfile | log.Lmicroseconds | log.LUTC)

    // Carregar configurações
    cfg := config.Load()
    log.Printf("Configuration loaded successfully")

    // O gateway é opcional: sem a chave, só as operações online ficam
    // indisponíveis. O fluxo offline de PIX não depende dele.
    var gateway checkout.Gateway
    if cfg.Stripe.SecretKey != "" {
        gateway = stripegw.NewClient(cfg.Stripe.SecretKey)
        log.Println("Stripe gateway configured")
    } else {
        log.Println("Warning: STRIPE_SECRET_KEY not set, online payments disabled")
    }

    // Inicializar serviços
    checkoutService := checkout.NewService(
        gateway,
        cfg.Checkout.FallbackReturnBase,
        cfg.Checkout.SiteName,
        cfg.Checkout.ProductName,
    )
    pixService := pix.NewService()

    // Inicializar handlers
    checkoutHandler := handlers.NewCheckoutHandler(checkoutService)
    pixHandler := handlers.NewPixHandler(pixService)

    // Configurar o router com middlewares
    router := mux.NewRouter()
    router.Use(corsMiddleware)
    router.Use(loggingMiddleware)

    // Rate limiting opcional, habilitado apenas quando há Redis
    if cfg.Redis.URL != "" {
        limiter, err := middleware.NewRateLimiter(cfg.Redis.URL)
        if err != nil {
            log.Printf("Warning: rate limiting disabled: %v", err)
        } else {
            router.Use(limiter.RateLimitMiddleware())
            log.Println("Rate limiting enabled")
        }
    }

    api := router.PathPrefix("/api").Subrouter()

    // Payment endpoints
    api.HandleFunc("/create-session", checkoutHandler.CreateSession).Methods("POST", "OPTIONS")
    api.HandleFunc("/session-status/{id}", checkoutHandler.SessionStatus).Methods("GET", "OPTIONS")
    api.HandleFunc("/render-code", pixHandler.RenderCode).Methods("POST", "OPTIONS")

    // Registrar hora de início para cálculo de uptime
    startTime := time.Now()

    // Endpoint de health check
    api.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
        health := struct {
            Status    string `json:"status"`
            Time      string `json:"time"`
            Gateway   string `json:"gateway"`
            Uptime    string `json:"uptime"`
            GoVersion string `json:"go_version"`
        }{
            Status:    "ok",
            Time:      time.Now().Format(time.RFC3339),
            Gateway:   "configured",
            Uptime:    fmt.Sprintf("%v", time.Since(startTime)),
            GoVersion: runtime.Version(),
        }

        if gateway == nil {
            health.Gateway = "disabled"
        }

        w.Header().Set("Content-Type", "application/json")
        json.NewEncoder(w).Encode(health)
    }).Methods("GET")

    // Páginas estáticas da doação (inclui sucesso.html e cancelado.html,
    // destinos das URLs de retorno)
    router.PathPrefix("/").Handler(http.FileServer(http.Dir(cfg.Static.Dir)))

    // Configurar servidor HTTP com timeouts
    srv := &http.Server{
        Addr:         fmt.Sprintf(":%s", cfg.Server.Port),
        Handler:      router,
        ReadTimeout:  15 * time.Second,
        WriteTimeout: 30 * time.Second,
        IdleTimeout:  120 * time.Second,
    }

    // Iniciar servidor em goroutine separada
    go func() {
        log.Printf("Server starting on port %s", cfg.Server.Port)
        if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
            log.Fatalf("Server error: %v", err)
        }
    }()

    // Configurar canal para capturar sinais de encerramento
    stop := make(chan os.Signal, 1)
    signal.Notify(stop, os.Interrupt, syscall.SIGTERM, syscall.SIGINT)

    <-stop
    log.Println("Shutdown signal received, gracefully shutting down...")

    shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 15*time.Second)
    defer shutdownCancel()

    if err := srv.Shutdown(shutdownCtx); err != nil {
        log.Printf("Server forced to shutdown: %v", err)
    }

    log.Println("Server exited properly")
}
