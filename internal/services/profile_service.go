package services

import (
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/formpilot/autofill-backend/internal/models"
)

// FullProfile is the structured profile embedded in the fill prompt.
// Personal is nil when no personal-details row exists; the list fields are
// empty slices rather than nil so they serialize as [] in the prompt.
type FullProfile struct {
	Personal   *models.ProfilePersonal    `json:"personal"`
	Education  []models.ProfileEducation  `json:"education"`
	Experience []models.ProfileExperience `json:"experience"`
	Projects   []models.ProfileProject    `json:"projects"`
	Skills     []models.ProfileSkill      `json:"skills"`
}

type ProfileService struct {
	DB *gorm.DB
}

func NewProfileService(db *gorm.DB) *ProfileService {
	return &ProfileService{DB: db}
}

// FetchProfile loads the profile for (email, variant). A missing profile row
// returns (nil, nil) so the caller can report it as a condition rather than
// a fault. The five sub-entity reads are independent; a write racing them
// may be observed partially, which is accepted (profile writes are rare
// administrative actions).
func (s *ProfileService) FetchProfile(email, variant string) (*FullProfile, error) {
	var profile models.UserProfile
	err := s.DB.Where("email = ? AND profile_name = ?", email, variant).First(&profile).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("lookup profile: %w", err)
	}

	full := &FullProfile{
		Education:  []models.ProfileEducation{},
		Experience: []models.ProfileExperience{},
		Projects:   []models.ProfileProject{},
		Skills:     []models.ProfileSkill{},
	}

	var personal models.ProfilePersonal
	err = s.DB.Where("profile_id = ?", profile.ID).First(&personal).Error
	switch {
	case err == nil:
		full.Personal = &personal
	case !errors.Is(err, gorm.ErrRecordNotFound):
		return nil, fmt.Errorf("fetch personal details: %w", err)
	}

	if err := s.DB.Where("profile_id = ?", profile.ID).Find(&full.Education).Error; err != nil {
		return nil, fmt.Errorf("fetch education: %w", err)
	}
	if err := s.DB.Where("profile_id = ?", profile.ID).Find(&full.Experience).Error; err != nil {
		return nil, fmt.Errorf("fetch experience: %w", err)
	}
	if err := s.DB.Where("profile_id = ?", profile.ID).Find(&full.Projects).Error; err != nil {
		return nil, fmt.Errorf("fetch projects: %w", err)
	}
	if err := s.DB.Where("profile_id = ?", profile.ID).Find(&full.Skills).Error; err != nil {
		return nil, fmt.Errorf("fetch skills: %w", err)
	}

	return full, nil
}
