package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"istorepro/internal/config"
	"istorepro/internal/infra"
	"istorepro/internal/middleware"
	"istorepro/internal/repository"
	"istorepro/internal/router"
	"istorepro/internal/service"
	"istorepro/internal/worker"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

const sweepInterval = time.Minute

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load config")
	}

	// dev: pretty console, prod: JSON
	if !cfg.Production() {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})
	}

	db, err := infra.NewDatabase(cfg.DatabaseURL)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to postgres")
	}

	rdb, err := infra.NewRedis(cfg.RedisURL)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to redis")
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// ── Repositories ─────────────────────────────────────────────────────────
	produtoRepo := repository.NewProdutoRepository(db)
	clienteRepo := repository.NewClienteRepository(db)
	fornecedorRepo := repository.NewFornecedorRepository(db)
	pedidoRepo := repository.NewPedidoCompraRepository(db)
	vendaRepo := repository.NewVendaRepository(db)
	reservaRepo := repository.NewReservaRepository(db)
	crediarioRepo := repository.NewCrediarioRepository(db)
	auditoriaRepo := repository.NewAuditoriaRepository(db)
	movimentoRepo := repository.NewMovimentoEstoqueRepository(db)
	metodoRepo := repository.NewMetodoPagamentoRepository(db)
	termoRepo := repository.NewTermoGarantiaRepository(db)
	reciboRepo := repository.NewReciboRepository(db)

	// ── Infrastructure ───────────────────────────────────────────────────────
	cep := infra.NewCEPClient(cfg.CEPLookupURL, infra.NewCircuitBreaker(infra.DefaultCBConfig("viacep")))
	mailer := infra.NewMailer(cfg)
	dispatcher := worker.NewDispatcher(rdb)

	// ── Services ─────────────────────────────────────────────────────────────
	estoqueSvc := service.NewEstoqueService(produtoRepo, movimentoRepo)
	metodoSvc := service.NewMetodoPagamentoService(metodoRepo, termoRepo, rdb)
	vendaSvc := service.NewVendaService(service.VendaRepos{
		Vendas:    vendaRepo,
		Reservas:  reservaRepo,
		Produtos:  produtoRepo,
		Clientes:  clienteRepo,
		Crediario: crediarioRepo,
		Auditoria: auditoriaRepo,
	}, estoqueSvc, metodoSvc, infra.NewLocker(rdb), dispatcher, cfg.ReservationTTL(), cfg.SaveLockTTL())

	// ── Background work ──────────────────────────────────────────────────────
	pool := worker.NewPool(rdb, map[string]worker.Handler{
		worker.JobRecibo: worker.NewReciboWorker(vendaRepo, termoRepo, reciboRepo, dispatcher, cfg.StoreName, cfg.ReceiptStoragePath),
		worker.JobEmail:  worker.NewEmailWorker(mailer, reciboRepo),
	})
	pool.Start(ctx, cfg.WorkerPoolSize)
	worker.StartRetryCron(ctx, worker.RetryCronConfig{Recibos: reciboRepo, Queue: dispatcher, RDB: rdb})
	worker.StartReservationSweeper(ctx, vendaSvc, sweepInterval)

	limiter := middleware.NewRateLimiter(cfg.RateLimitRPS, cfg.RateLimitBurst)
	limiter.StartPurge(ctx, 5*time.Minute)

	r := router.New(cfg, router.Deps{
		DB:           db,
		Redis:        rdb,
		CEP:          cep,
		Limiter:      limiter,
		Vendas:       vendaSvc,
		Produtos:     service.NewProdutoService(produtoRepo, estoqueSvc, rdb),
		Clientes:     service.NewClienteService(clienteRepo, cep),
		Fornecedores: service.NewFornecedorService(fornecedorRepo, pedidoRepo, produtoRepo, estoqueSvc),
		Metodos:      metodoSvc,
		Crediario:    service.NewCrediarioService(crediarioRepo, clienteRepo, auditoriaRepo),
		Recibos:      reciboRepo,
	})

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Port),
		Handler:      r,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Info().Msgf("%s backend listening on :%d", cfg.StoreName, cfg.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("server error")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("shutting down server…")
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Fatal().Err(err).Msg("forced shutdown")
	}
	cancel()
	log.Info().Msg("server exited")
}
