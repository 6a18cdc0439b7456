// Package seed provides helpers to create test and demo data for the
// application database. These helpers are intended for development and
// testing only.
package seed

import (
	"fmt"
	"math/rand"
	"time"

	"divespot/internal/models"

	"github.com/brianvoe/gofakeit/v6"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

var certLevels = []string{
	"Open Water", "Advanced Open Water", "Rescue Diver", "Divemaster", "Instructor",
}

var spotNames = []string{
	"Blue Corner", "SS Thistlegorm", "Richelieu Rock", "Barracuda Point",
	"Shark and Yolanda Reef", "Elphinstone Reef", "Manta Point", "The Liberty Wreck",
	"Great Blue Hole", "Darwin's Arch", "Navy Pier", "Chimney Rock",
	"Cathedral Cove", "Tiger Beach", "Silfra Fissure", "Devil's Den",
}

var seaLifeOptions = []string{
	"manta ray", "whale shark", "hawksbill turtle", "reef shark", "moray eel",
	"octopus", "barracuda", "nudibranch", "lionfish", "eagle ray", "seahorse",
	"frogfish", "napoleon wrasse", "trevally school",
}

var equipmentOptions = []string{
	"5mm wetsuit", "drysuit", "twin tanks", "nitrox 32", "dive computer",
	"reel and SMB", "underwater camera", "torch",
}

var (
	difficulties = []string{"Beginner", "Intermediate", "Advanced", "Expert"}
	waterTypes   = []string{"Salt", "Fresh", "Brackish"}
	visibilities = []string{"Excellent", "Good", "Fair", "Poor", "Very Poor"}
	winds        = []string{"Calm", "Light", "Moderate", "Strong", "Very Strong"}
	currents     = []string{"None", "Light", "Moderate", "Strong", "Very Strong"}
)

// Factory builds domain entities and persists them to the database.
// It is a thin helper used by seed presets and tests.
type Factory struct {
	db *gorm.DB
	r  *rand.Rand
}

// NewFactory creates a new Factory bound to the provided Gorm DB.
func NewFactory(db *gorm.DB) *Factory {
	gofakeit.Seed(time.Now().UnixNano())
	//nolint:gosec // weak randomness is fine for seeding
	return &Factory{db: db, r: rand.New(rand.NewSource(time.Now().UnixNano()))}
}

// CreateDiver constructs and persists a sample diver. Optional override
// functions may modify the generated diver before saving.
func (f *Factory) CreateDiver(overrides ...func(*models.Diver)) (*models.Diver, error) {
	hashedPassword, _ := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.DefaultCost)
	diver := &models.Diver{
		Username:           fmt.Sprintf("%s%d", gofakeit.Username(), gofakeit.Number(100, 999)),
		Email:              gofakeit.Email(),
		Password:           string(hashedPassword),
		DisplayName:        gofakeit.Name(),
		Bio:                gofakeit.Sentence(10),
		ProfileImageURL:    fmt.Sprintf("https://i.pravatar.cc/150?u=%s", gofakeit.UUID()),
		Location:           fmt.Sprintf("%s, %s", gofakeit.City(), gofakeit.Country()),
		CertificationLevel: certLevels[f.r.Intn(len(certLevels))],
	}

	for _, override := range overrides {
		override(diver)
	}

	if err := f.db.Create(diver).Error; err != nil {
		return nil, err
	}
	return diver, nil
}

// CreateSpot constructs and persists a sample dive spot created by the
// given diver.
func (f *Factory) CreateSpot(creator *models.Diver, overrides ...func(*models.DiveSpot)) (*models.DiveSpot, error) {
	spot := &models.DiveSpot{
		Name:           fmt.Sprintf("%s %d", spotNames[f.r.Intn(len(spotNames))], gofakeit.Number(1, 99)),
		Description:    gofakeit.Paragraph(1, 2, 8, " "),
		Latitude:       gofakeit.Latitude(),
		Longitude:      gofakeit.Longitude(),
		Address:        fmt.Sprintf("%s, %s", gofakeit.City(), gofakeit.Country()),
		MaxDepth:       float64(gofakeit.Number(8, 60)),
		Difficulty:     difficulties[f.r.Intn(len(difficulties))],
		WaterType:      waterTypes[f.r.Intn(len(waterTypes))],
		AvgVisibility:  float64(gofakeit.Number(5, 40)),
		AvgTemperature: float64(gofakeit.Number(4, 30)),
		CreatedBy:      creator.ID,
	}

	for _, override := range overrides {
		override(spot)
	}

	if err := f.db.Create(spot).Error; err != nil {
		return nil, err
	}
	return spot, nil
}

// BuildPost constructs a dive post for the given diver and spot without
// persisting it. Callers run it through the post repository so diver and
// spot stats stay consistent.
func (f *Factory) BuildPost(diver *models.Diver, spot *models.DiveSpot, overrides ...func(*models.DivePost)) *models.DivePost {
	daysBack := f.r.Intn(180)
	diveDate := time.Now().AddDate(0, 0, -daysBack)

	post := &models.DivePost{
		DiverID:           diver.ID,
		SpotID:            spot.ID,
		Caption:           gofakeit.Sentence(8),
		ImageURLs:         []string{fmt.Sprintf("/api/images/%s.jpg", gofakeit.UUID())},
		DiveDate:          diveDate.Truncate(24 * time.Hour),
		DiveTimestamp:     diveDate,
		MaxDepth:          5 + f.r.Float64()*40,
		DiveDuration:      gofakeit.Number(20, 75),
		VisibilityQuality: visibilities[f.r.Intn(len(visibilities))],
		WaterTemp:         float64(gofakeit.Number(4, 30)),
		WindConditions:    winds[f.r.Intn(len(winds))],
		CurrentConditions: currents[f.r.Intn(len(currents))],
		SeaLife:           f.pick(seaLifeOptions, 1+f.r.Intn(4)),
		Equipment:         f.pick(equipmentOptions, 1+f.r.Intn(3)),
		Notes:             gofakeit.Paragraph(1, 2, 6, " "),
	}

	for _, override := range overrides {
		override(post)
	}
	return post
}

// CreateComment constructs and persists a comment on the provided post
// authored by the provided diver. Counter recalculation is the caller's job.
func (f *Factory) CreateComment(diver *models.Diver, post *models.DivePost, overrides ...func(*models.PostComment)) (*models.PostComment, error) {
	comment := &models.PostComment{
		Content: gofakeit.Sentence(8),
		DiverID: diver.ID,
		PostID:  post.ID,
	}

	for _, override := range overrides {
		override(comment)
	}

	if err := f.db.Create(comment).Error; err != nil {
		return nil, err
	}
	return comment, nil
}

func (f *Factory) pick(options []string, n int) []string {
	if n > len(options) {
		n = len(options)
	}
	idx := f.r.Perm(len(options))[:n]
	out := make([]string, 0, n)
	for _, i := range idx {
		out = append(out, options[i])
	}
	return out
}
