package main

import (
	"context"
	"crypto/tls"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/flightops/routes-service/internal/app"
	"github.com/flightops/routes-service/pkg/config"
	"github.com/flightops/routes-service/pkg/logging"
	"github.com/flightops/routes-service/pkg/telemetry"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"go.uber.org/zap"
	"golang.org/x/crypto/acme/autocert"
)

// setupServer configura o servidor HTTP ou HTTPS conforme a configuração
func setupServer(router *gin.Engine, cfg *config.Config, logger *zap.Logger) *http.Server {
	server := &http.Server{
		Addr:         fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port),
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	if !cfg.Server.TLS {
		logger.Info("Iniciando em modo HTTP", zap.String("addr", server.Addr))
		return server
	}

	// Certificados próprios, quando fornecidos
	if cfg.Server.CertFile != "" && cfg.Server.KeyFile != "" {
		logger.Info("Usando certificados TLS fornecidos",
			zap.String("certFile", cfg.Server.CertFile),
			zap.String("keyFile", cfg.Server.KeyFile))

		server.Addr = ":443"
		server.TLSConfig = &tls.Config{
			MinVersion: tls.VersionTLS13,
		}
		return server
	}

	// Sem certificados próprios: Let's Encrypt para os domínios configurados
	if len(cfg.Server.Domains) == 0 {
		logger.Warn("TLS habilitado sem certificados nem domínios; usando HTTP")
		return server
	}

	logger.Info("Inicializando Let's Encrypt", zap.Strings("domains", cfg.Server.Domains))

	certManager := autocert.Manager{
		Prompt:     autocert.AcceptTOS,
		HostPolicy: autocert.HostWhitelist(cfg.Server.Domains...),
		Cache:      autocert.DirCache("./certs"),
	}

	server.Addr = ":443"
	server.TLSConfig = &tls.Config{
		GetCertificate: certManager.GetCertificate,
		MinVersion:     tls.VersionTLS13,
	}

	// Servidor HTTP para os desafios ACME
	go func() {
		challengeServer := &http.Server{
			Addr:    ":80",
			Handler: certManager.HTTPHandler(nil),
		}
		if err := challengeServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("Erro no servidor HTTP para desafios ACME", zap.Error(err))
		}
	}()

	return server
}

func main() {
	// Carregar .env, se presente
	if err := godotenv.Load(); err != nil {
		fmt.Println("Arquivo .env não encontrado; usando variáveis de ambiente")
	}

	cfg, err := config.LoadConfig("./config")
	if err != nil {
		fmt.Printf("Falha ao carregar configuração: %v\n", err)
		os.Exit(1)
	}

	logger, err := logging.NewLogger(logging.Config{
		Level:      cfg.Logging.Level,
		Format:     cfg.Logging.Format,
		Production: cfg.Logging.Production,
	})
	if err != nil {
		fmt.Printf("Falha ao inicializar logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	// Inicializar o tracer se estiver habilitado
	if cfg.Tracing.Enabled {
		tp, err := telemetry.NewTracerProvider(
			context.Background(),
			cfg.Tracing.ServiceName,
			cfg.Tracing.Endpoint,
			cfg.Tracing.SamplingRatio,
			logger,
		)
		if err != nil {
			logger.Error("Falha ao inicializar tracer", zap.Error(err))
		} else {
			logger.Info("Tracer inicializado",
				zap.String("endpoint", cfg.Tracing.Endpoint))
			defer tp.Shutdown(context.Background())
		}
	}

	application, err := app.NewApp(context.Background(), cfg, logger)
	if err != nil {
		logger.Fatal("Falha ao inicializar aplicação", zap.Error(err))
	}
	defer application.Close()

	if cfg.Logging.Production {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	application.RegisterRoutes(router)

	server := setupServer(router, cfg, logger)

	// Iniciar o servidor em uma goroutine
	go func() {
		var err error
		if server.TLSConfig != nil {
			err = server.ListenAndServeTLS(cfg.Server.CertFile, cfg.Server.KeyFile)
		} else {
			err = server.ListenAndServe()
		}

		if err != nil && err != http.ErrServerClosed {
			logger.Fatal("Erro ao iniciar servidor", zap.Error(err))
		}
	}()

	// Esperar por sinal de interrupção para shutdown gracioso
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Encerrando servidor...")

	ctx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		logger.Fatal("Erro ao encerrar servidor", zap.Error(err))
	}

	logger.Info("Servidor encerrado com sucesso")
}
