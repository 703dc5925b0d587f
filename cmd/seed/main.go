package main

import (
	"context"
	"log"

	"github.com/joho/godotenv"

	"venuebook/internal/config"
	"venuebook/internal/database"
	"venuebook/internal/domain"
	"venuebook/internal/repository"
)

// seed creates the campus venues on first run. Re-running against a
// populated database is a no-op.
func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	db, err := database.Connect(cfg.DatabaseURL)
	if err != nil {
		log.Fatal("DB connection failed: ", err)
	}

	log.Println("Running migrations...")
	if err := database.Migrate(db); err != nil {
		log.Fatal("migration failed: ", err)
	}

	ctx := context.Background()
	venueRepo := repository.NewVenueRepository(db)

	count, err := venueRepo.Count(ctx)
	if err != nil {
		log.Fatal("venue count failed: ", err)
	}
	if count > 0 {
		log.Printf("venues already seeded (%d present), nothing to do", count)
		return
	}

	venues := []domain.Venue{
		{
			Name:        "TUM Main Hall",
			Description: "Large hall used for university events, orientations, and graduations",
			Capacity:    500,
			Location:    "Main Campus - Tudor",
			Amenities:   "Stage, projector, PA system, chairs, fans",
		},
		{
			Name:        "ICT Boardroom",
			Description: "Executive boardroom for IT-related departmental meetings and presentations",
			Capacity:    20,
			Location:    "ICT Building, 2nd Floor",
			Amenities:   "Conference table, projector, whiteboard, internet",
		},
		{
			Name:        "Engineering Seminar Room",
			Description: "Seminar room used for workshops and faculty briefings",
			Capacity:    60,
			Location:    "Engineering Block",
			Amenities:   "Projector, seating, whiteboard, power outlets",
		},
		{
			Name:        "Library Auditorium",
			Description: "Medium-sized auditorium within the library complex used for academic presentations",
			Capacity:    120,
			Location:    "TUM Library Building",
			Amenities:   "Projector, microphone, air conditioning, seating",
		},
	}

	for i := range venues {
		if err := venueRepo.Create(ctx, &venues[i]); err != nil {
			log.Fatal("venue create failed: ", err)
		}
		log.Printf("created venue %q (id=%d)", venues[i].Name, venues[i].ID)
	}

	log.Printf("seeded %d venues", len(venues))
}
