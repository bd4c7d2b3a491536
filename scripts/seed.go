package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/medisense-health/scheduler/internal/adapters/storage"
	"github.com/medisense-health/scheduler/internal/application/services"
	"github.com/medisense-health/scheduler/internal/domain/entities"
	"github.com/medisense-health/scheduler/internal/domain/providers"
	"github.com/medisense-health/scheduler/internal/infrastructure/clients/postgres"
	"github.com/medisense-health/scheduler/internal/infrastructure/clients/redis"
	"github.com/medisense-health/scheduler/pkg/config"
	"github.com/medisense-health/scheduler/pkg/timeutil"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	var blobStore providers.BlobStore
	switch cfg.Storage.Backend {
	case "postgres":
		pgClient, err := postgres.NewClient(&cfg.Database)
		if err != nil {
			log.Fatalf("Failed to connect to DB: %v", err)
		}
		defer pgClient.Close()
		blobStore = storage.NewPostgresAdapter(pgClient)
	case "redis":
		redisClient, err := redis.NewClient(&cfg.Redis)
		if err != nil {
			log.Fatalf("Failed to connect to Redis: %v", err)
		}
		defer redisClient.Close()
		blobStore = storage.NewRedisAdapter(redisClient)
	default:
		blobStore, err = storage.NewFileAdapter(cfg.Storage.FilePath)
		if err != nil {
			log.Fatalf("Failed to open file store: %v", err)
		}
	}

	recordService := services.NewRecordService(blobStore, cfg.Storage.RecordKey, nil)
	ctx := context.Background()

	if os.Getenv("RESET_RECORDS") == "true" {
		log.Println("RESET_RECORDS=true detected, clearing records before seeding")
		token := recordService.RequestClear()
		if err := recordService.ConfirmClear(ctx, token); err != nil {
			log.Fatalf("Failed to clear records: %v", err)
		}
	}

	now := time.Now()
	records := []entities.AppointmentRecord{
		{
			ID: fmt.Sprintf("APT-%d", now.Add(-72*time.Hour).UnixMilli()),
			Hospital: entities.HospitalSnapshot{
				Name:           "City General Hospital",
				Address:        "12 Harbor Rd",
				DistanceKm:     2.4,
				Specialization: "General Medicine",
				Rating:         4.2,
				WaitTime:       "20–40 mins",
			},
			Slot: entities.TimeSlot{
				ID:       "101",
				Date:     timeutil.FormatSlotDate(now.AddDate(0, 0, -3)),
				Time:     "10:30 AM",
				Type:     entities.SlotTypeStandard,
				Duration: "30 min",
			},
			ConfirmationNumber: "MCSEED001",
			BookedAt:           now.AddDate(0, 0, -5).UTC(),
			Symptoms:           "persistent cough",
		},
		{
			ID: fmt.Sprintf("APT-%d", now.UnixMilli()),
			Hospital: entities.HospitalSnapshot{
				Name:           "St. Anne Medical Center",
				Address:        "4 Crescent Ave",
				DistanceKm:     1.1,
				Specialization: "Cardiology",
				Rating:         4.6,
				WaitTime:       "10–20 mins",
			},
			Slot: entities.TimeSlot{
				ID:       "202",
				Date:     timeutil.FormatSlotDate(now.AddDate(0, 0, 2)),
				Time:     "03:00 PM",
				Type:     entities.SlotTypeUrgent,
				Duration: "30 min",
			},
			ConfirmationNumber: "MCSEED002",
			BookedAt:           now.UTC(),
			Symptoms:           "chest pain",
		},
	}

	for _, record := range records {
		if err := recordService.Append(ctx, record); err != nil {
			log.Printf("Failed to seed record %s: %v", record.ID, err)
		}
	}

	log.Printf("Seeded %d appointment records into %s store", len(records), cfg.Storage.Backend)
}
