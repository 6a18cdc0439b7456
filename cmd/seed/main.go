// Command main runs the database seeder for divespot.
package main

import (
	"flag"
	"log"

	"divespot/internal/config"
	"divespot/internal/database"
	"divespot/internal/seed"
)

func main() {
	numDivers := flag.Int("divers", 50, "Number of divers to create")
	numSpots := flag.Int("spots", 20, "Number of dive spots to create")
	numPosts := flag.Int("posts", 200, "Number of dive posts to create")
	shouldClean := flag.Bool("clean", true, "Clean database before seeding")
	flag.Parse()

	log.Println("🌱 Database Seeder")
	log.Println("==================")
	log.Printf("Target: %d divers, %d spots, %d posts, clean=%v\n", *numDivers, *numSpots, *numPosts, *shouldClean)

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	db, err := database.Connect(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	if err := seed.Seed(db, seed.Options{
		NumDivers:   *numDivers,
		NumSpots:    *numSpots,
		NumPosts:    *numPosts,
		ShouldClean: *shouldClean,
	}); err != nil {
		log.Fatalf("❌ Seeding failed: %v", err)
	}

	log.Println("✨ All done! Your database is now populated with test data.")
	log.Println("📧 All test divers have the password: password123")
}
