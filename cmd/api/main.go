package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"sensemaker/adapters/api"
	"sensemaker/adapters/postgres"
	"sensemaker/app"
	"sensemaker/internal/config"
	"sensemaker/internal/qubo"
	"sensemaker/ports"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("[Main] loading config: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var repo ports.SolutionRepository
	if cfg.Database.URL != "" {
		db, err := postgres.Connect(ctx, cfg.Database.URL)
		if err != nil {
			log.Fatalf("[Main] database: %v", err)
		}
		defer db.Close()
		repo = postgres.NewSolutionRepository(db)
		log.Printf("[Main] solution persistence enabled")
	}

	solver := qubo.NewSolver(qubo.SolverConfig{
		Reads:       cfg.Solver.Reads,
		Sweeps:      cfg.Solver.Sweeps,
		TempStart:   cfg.Solver.TempStart,
		TempEnd:     cfg.Solver.TempEnd,
		Seed:        cfg.Solver.Seed,
		Parallelism: cfg.Solver.Parallelism,
	})
	evaluator := app.NewEvaluatorService(solver, repo, cfg.Solver.Offset)

	server := api.NewServer(cfg.Server.Port, evaluator, repo)
	errCh := make(chan error, 1)
	go func() {
		errCh <- server.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("[Main] server: %v", err)
		}
	case <-ctx.Done():
		log.Printf("[Main] shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			log.Printf("[Main] shutdown: %v", err)
		}
	}
}
