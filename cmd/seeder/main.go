package main

import (
	"context"
	"log"
	"os"
	"time"

	"github.com/Domenick1991/flightreservation/config"
	"github.com/Domenick1991/flightreservation/internal/domain"
	"github.com/Domenick1991/flightreservation/internal/repository"
	"github.com/jackc/pgx/v5/pgxpool"
)

func main() {
	cfgPath := os.Getenv("CONFIG_PATH")
	if cfgPath == "" {
		cfgPath = "config.yaml"
	}

	cfg, err := config.LoadConfig(cfgPath)
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	ctx := context.Background()
	pool, err := pgxpool.New(ctx, cfg.Database.DSN())
	if err != nil {
		log.Fatalf("connect postgres: %v", err)
	}
	defer pool.Close()

	var count int
	if err := pool.QueryRow(ctx, "SELECT COUNT(*) FROM flights").Scan(&count); err != nil {
		log.Fatalf("count flights: %v", err)
	}
	if count > 0 {
		log.Printf("database already has %d flights, skipping", count)
		return
	}

	repo := repository.NewFlightRepository(pool)
	departure := time.Now().Add(24 * time.Hour).Truncate(time.Hour)

	seed := []domain.Flight{
		{DepartureCity: "Paris", ArrivalCity: "Lyon", DepartureTime: departure, ArrivalTime: departure.Add(2 * time.Hour), PriceCents: 15000, Capacity: 180},
		{DepartureCity: "Paris", ArrivalCity: "Marseille", DepartureTime: departure.Add(3 * time.Hour), ArrivalTime: departure.Add(4 * time.Hour), PriceCents: 18000, Capacity: 180},
		{DepartureCity: "Lyon", ArrivalCity: "Nice", DepartureTime: departure.Add(6 * time.Hour), ArrivalTime: departure.Add(7 * time.Hour), PriceCents: 12000, Capacity: 120},
	}

	for i := range seed {
		if err := repo.Create(ctx, &seed[i]); err != nil {
			log.Fatalf("seed flight %s-%s: %v", seed[i].DepartureCity, seed[i].ArrivalCity, err)
		}
	}

	log.Printf("seeded %d flights", len(seed))
}
