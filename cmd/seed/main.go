package main

import (
	"encoding/json"
	"flag"
	"log"
	"os"

	"github.com/joho/godotenv"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/formpilot/autofill-backend/internal/config"
	"github.com/formpilot/autofill-backend/internal/database"
	"github.com/formpilot/autofill-backend/internal/models"
)

// seedFile is the on-disk shape of one profile variant.
type seedFile struct {
	Email       string                     `json:"email"`
	ProfileName string                     `json:"profile_name"`
	Personal    *models.ProfilePersonal    `json:"personal"`
	Education   []models.ProfileEducation  `json:"education"`
	Experience  []models.ProfileExperience `json:"experience"`
	Projects    []models.ProfileProject    `json:"projects"`
	Skills      []models.ProfileSkill      `json:"skills"`
}

// seed loads one profile variant from a JSON file into the store. Rerunning
// replaces the variant's sub-entity rows, so the file stays the source of
// truth.
func main() {
	file := flag.String("file", "seed.json", "path to the profile seed file")
	email := flag.String("email", "", "override the email in the seed file")
	variant := flag.String("variant", "", "override the profile variant in the seed file")
	flag.Parse()

	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, relying on environment")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatal("Invalid configuration: ", err)
	}

	db, err := database.Connect(cfg.Database)
	if err != nil {
		log.Fatal("Failed to connect to database: ", err)
	}

	data, err := os.ReadFile(*file)
	if err != nil {
		log.Fatal("Failed to read seed file: ", err)
	}

	var seed seedFile
	if err := json.Unmarshal(data, &seed); err != nil {
		log.Fatal("Invalid seed file: ", err)
	}
	if *email != "" {
		seed.Email = *email
	}
	if *variant != "" {
		seed.ProfileName = *variant
	}
	if seed.Email == "" || seed.ProfileName == "" {
		log.Fatal("Seed file must set email and profile_name")
	}

	if err := load(db, &seed); err != nil {
		log.Fatal("Seeding failed: ", err)
	}

	log.Printf("Profile %q seeded for %s", seed.ProfileName, seed.Email)
}

func load(db *gorm.DB, seed *seedFile) error {
	profile := models.UserProfile{
		Email:       seed.Email,
		ProfileName: seed.ProfileName,
		IsActive:    true,
	}
	err := db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "email"}, {Name: "profile_name"}},
		DoUpdates: clause.AssignmentColumns([]string{"is_active", "updated_at"}),
	}).Create(&profile).Error
	if err != nil {
		return err
	}

	// Upsert may not populate ID on conflict; read it back.
	if err := db.Where("email = ? AND profile_name = ?", seed.Email, seed.ProfileName).
		First(&profile).Error; err != nil {
		return err
	}

	for _, model := range []any{
		&models.ProfilePersonal{}, &models.ProfileEducation{},
		&models.ProfileExperience{}, &models.ProfileProject{}, &models.ProfileSkill{},
	} {
		if err := db.Where("profile_id = ?", profile.ID).Delete(model).Error; err != nil {
			return err
		}
	}

	if seed.Personal != nil {
		seed.Personal.ID = 0
		seed.Personal.ProfileID = profile.ID
		if err := db.Create(seed.Personal).Error; err != nil {
			return err
		}
	}
	for i := range seed.Education {
		seed.Education[i].ID = 0
		seed.Education[i].ProfileID = profile.ID
	}
	if len(seed.Education) > 0 {
		if err := db.Create(&seed.Education).Error; err != nil {
			return err
		}
	}
	for i := range seed.Experience {
		seed.Experience[i].ID = 0
		seed.Experience[i].ProfileID = profile.ID
	}
	if len(seed.Experience) > 0 {
		if err := db.Create(&seed.Experience).Error; err != nil {
			return err
		}
	}
	for i := range seed.Projects {
		seed.Projects[i].ID = 0
		seed.Projects[i].ProfileID = profile.ID
	}
	if len(seed.Projects) > 0 {
		if err := db.Create(&seed.Projects).Error; err != nil {
			return err
		}
	}
	for i := range seed.Skills {
		seed.Skills[i].ID = 0
		seed.Skills[i].ProfileID = profile.ID
	}
	if len(seed.Skills) > 0 {
		if err := db.Create(&seed.Skills).Error; err != nil {
			return err
		}
	}

	return nil
}
