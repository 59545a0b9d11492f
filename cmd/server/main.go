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

	"sunlight-forecast/internal/adapters/forecast"
	"sunlight-forecast/internal/adapters/geocode"
	"sunlight-forecast/internal/adapters/httpclient"
	"sunlight-forecast/internal/api"
	"sunlight-forecast/internal/config"
	"sunlight-forecast/internal/services"
	"sunlight-forecast/internal/widget"

	"github.com/joho/godotenv"
)

// main is the application composition root.
// It wires concrete adapters (Nominatim, Open-Meteo) behind ports and starts the HTTP server.
func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found (using environment variables)")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	client := httpclient.New(cfg.HTTPTimeout, cfg.UserAgent)

	nominatim, err := geocode.NewNominatimGeocoder(client, cfg.NominatimURL)
	if err != nil {
		log.Fatal(err)
	}
	// Nominatim's usage policy allows about one request per second.
	geocoder := geocode.NewRateLimitedGeocoder(nominatim, cfg.GeocodeRPS, 1)

	provider, err := forecast.NewOpenMeteoClient(client, cfg.OpenMeteoURL, cfg.ForecastTimezone)
	if err != nil {
		log.Fatal(err)
	}

	svc, err := services.NewForecastService(geocoder, provider)
	if err != nil {
		log.Fatal(err)
	}

	sessions := widget.NewSessions(svc)
	router := api.NewRouter(sessions, services.NewDateFormatter(cfg.Locale))

	sweepCtx, stopSweep := context.WithCancel(context.Background())
	defer stopSweep()
	go sessions.Run(sweepCtx, cfg.SessionSweep, cfg.SessionTTL)

	// A submission holds the request open for two upstream calls plus geocode pacing.
	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      2*cfg.HTTPTimeout + 30*time.Second,
		IdleTimeout:       60 * time.Second,
	}

	go func() {
		log.Printf("Server listening addr=:%s locale=%s session_ttl=%s", cfg.Port, cfg.Locale, cfg.SessionTTL)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("listen failed: %v", err)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	<-stop

	log.Println("Shutting down")
	stopSweep()
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Printf("shutdown failed: %v", err)
	}
}
