package services

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/formpilot/autofill-backend/internal/database"
	"github.com/formpilot/autofill-backend/internal/models"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("unwrap db: %v", err)
	}
	// One connection keeps every session on the same in-memory database.
	sqlDB.SetMaxOpenConns(1)
	if err := database.Migrate(db); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return db
}

func seedIdentity(t *testing.T, db *gorm.DB, email string) {
	t.Helper()
	identity := models.Identity{Email: email, Name: "Test User", LastLogin: time.Now().UTC()}
	if err := db.Create(&identity).Error; err != nil {
		t.Fatalf("seed identity: %v", err)
	}
}

// seedProfile creates a "Placement" profile with personal details and the
// skills Python and C++.
func seedProfile(t *testing.T, db *gorm.DB, email string) uint {
	t.Helper()
	profile := models.UserProfile{Email: email, ProfileName: "Placement", IsActive: true}
	if err := db.Create(&profile).Error; err != nil {
		t.Fatalf("seed profile: %v", err)
	}
	personal := models.ProfilePersonal{
		ProfileID: profile.ID,
		FirstName: "Asha",
		LastName:  "Verma",
		Email:     email,
		Phone:     "9876543210",
		Gender:    "Female",
	}
	if err := db.Create(&personal).Error; err != nil {
		t.Fatalf("seed personal: %v", err)
	}
	skills := []models.ProfileSkill{
		{ProfileID: profile.ID, Category: "Languages", Skill: "Python"},
		{ProfileID: profile.ID, Category: "Languages", Skill: "C++"},
	}
	if err := db.Create(&skills).Error; err != nil {
		t.Fatalf("seed skills: %v", err)
	}
	return profile.ID
}

type fakeGenerator struct {
	resp       string
	err        error
	calls      int
	lastPrompt string
}

func (g *fakeGenerator) Generate(_ context.Context, prompt string) (string, error) {
	g.calls++
	g.lastPrompt = prompt
	return g.resp, g.err
}

func newTestService(db *gorm.DB, gen Generator) *AutofillService {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	identities := NewIdentityService(db)
	profiles := NewProfileService(db)
	return NewAutofillService(db, identities, profiles, gen, logger, 5*time.Second, "Placement")
}
