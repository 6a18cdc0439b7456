// Package seed provides database seeding utilities for development and testing.
package seed

import (
	"context"
	"fmt"
	"log"
	"math/rand"
	"time"

	"divespot/internal/models"
	"divespot/internal/repository"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// Options configuration for the seeder
type Options struct {
	NumDivers   int
	NumSpots    int
	NumPosts    int
	ShouldClean bool
}

// Seed populates the database with test data. Posts go through the post
// repository so diver stats, spot stats and engagement counters end up
// consistent with the rows.
func Seed(db *gorm.DB, opts Options) error {
	log.Printf("🌱 Seeding %d divers, %d spots and %d posts...", opts.NumDivers, opts.NumSpots, opts.NumPosts)

	if opts.ShouldClean {
		if err := clearData(db); err != nil {
			log.Println("⚠️  Warning: Could not clear all existing data, but continuing anyway...")
		}
	}

	factory := NewFactory(db)
	ctx := context.Background()
	//nolint:gosec // weak randomness is fine for seeding
	r := rand.New(rand.NewSource(time.Now().UnixNano()))

	divers, err := createDivers(factory, opts.NumDivers)
	if err != nil {
		return fmt.Errorf("failed to create divers: %w", err)
	}
	log.Printf("✓ %d divers created", len(divers))

	spots := make([]*models.DiveSpot, 0, opts.NumSpots)
	for i := 0; i < opts.NumSpots; i++ {
		spot, err := factory.CreateSpot(divers[r.Intn(len(divers))])
		if err != nil {
			return fmt.Errorf("failed to create spot: %w", err)
		}
		spots = append(spots, spot)
	}
	log.Printf("✓ %d spots created", len(spots))

	postRepo := repository.NewPostRepository(db)
	posts := make([]*models.DivePost, 0, opts.NumPosts)
	for i := 0; i < opts.NumPosts; i++ {
		post := factory.BuildPost(divers[r.Intn(len(divers))], spots[r.Intn(len(spots))])
		if err := postRepo.Create(ctx, post); err != nil {
			return fmt.Errorf("failed to create post: %w", err)
		}
		posts = append(posts, post)

		if i > 0 && i%100 == 0 {
			log.Printf("Created %d posts...", i)
		}
	}
	log.Printf("✓ %d posts created", len(posts))

	if err := createEngagement(ctx, factory, postRepo, r, divers, posts); err != nil {
		return fmt.Errorf("failed to create engagement: %w", err)
	}

	log.Println("🎉 Database seeding completed successfully!")
	return nil
}

func createDivers(factory *Factory, count int) ([]*models.Diver, error) {
	divers := make([]*models.Diver, 0, count)
	hashedPassword, _ := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.DefaultCost)

	// Always include some fixed accounts so local logins stay predictable.
	if count >= 3 {
		for _, u := range []string{"marina", "finn", "test"} {
			username := u
			diver, err := factory.CreateDiver(func(d *models.Diver) {
				d.Username = username
				d.Email = fmt.Sprintf("%s@example.com", username)
				d.Password = string(hashedPassword)
				d.Bio = "One of the OGs."
			})
			if err == nil {
				divers = append(divers, diver)
			}
		}
	}

	for i := len(divers); i < count; i++ {
		diver, err := factory.CreateDiver()
		if err != nil {
			log.Printf("Failed to create diver: %v", err)
			continue
		}
		divers = append(divers, diver)

		if i > 0 && i%100 == 0 {
			log.Printf("Created %d divers...", i)
		}
	}

	if len(divers) == 0 {
		return nil, fmt.Errorf("no divers created")
	}
	return divers, nil
}

func createEngagement(ctx context.Context, factory *Factory, postRepo repository.PostRepository,
	r *rand.Rand, divers []*models.Diver, posts []*models.DivePost) error {
	likes, comments := 0, 0
	for _, post := range posts {
		numLikes := r.Intn(len(divers)/2 + 1)
		for _, idx := range r.Perm(len(divers))[:numLikes] {
			if err := postRepo.Like(ctx, divers[idx].ID, post.ID); err != nil {
				return err
			}
			likes++
		}

		numComments := r.Intn(4)
		for j := 0; j < numComments; j++ {
			if _, err := factory.CreateComment(divers[r.Intn(len(divers))], post); err != nil {
				return err
			}
			comments++
		}
		if numComments > 0 {
			if err := postRepo.RecalculateCounts(ctx, post.ID, "manual"); err != nil {
				return err
			}
		}
	}
	log.Printf("✓ %d likes and %d comments created", likes, comments)
	return nil
}

func clearData(db *gorm.DB) error {
	log.Println("🗑️  Clearing existing data...")
	sql := `TRUNCATE TABLE post_comments, post_likes, dive_posts, dive_spots, divers RESTART IDENTITY CASCADE;`
	return db.Exec(sql).Error
}
