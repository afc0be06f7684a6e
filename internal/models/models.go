package models

import (
	"time"

	"gorm.io/datatypes"
)

// Identity is one Google-login account, upserted on every login.
// Stored in the "profiles" table for compatibility with the extension's
// existing schema.
type Identity struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	Email     string    `gorm:"uniqueIndex;not null" json:"email"`
	Name      string    `json:"name"`
	Picture   string    `json:"picture"`
	LastLogin time.Time `json:"last_login"`
}

func (Identity) TableName() string { return "profiles" }

// UserProfile is one named profile variant for an email, e.g. "Placement"
// vs "Research". Sub-entity rows hang off its ID.
type UserProfile struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	Email       string `gorm:"uniqueIndex:idx_email_variant;not null" json:"email"`
	ProfileName string `gorm:"uniqueIndex:idx_email_variant;not null" json:"profile_name"`
	IsActive    bool   `gorm:"default:true" json:"is_active"`
}

func (UserProfile) TableName() string { return "user_profiles" }

// ProfilePersonal holds at most one row per profile.
type ProfilePersonal struct {
	ID        uint `gorm:"primaryKey" json:"-"`
	ProfileID uint `gorm:"uniqueIndex;not null" json:"-"`

	FirstName  string `json:"first_name"`
	MiddleName string `json:"middle_name"`
	LastName   string `json:"last_name"`
	Email      string `json:"email"`
	Phone      string `json:"phone"`
	Gender     string `json:"gender"`
}

func (ProfilePersonal) TableName() string { return "profile_personal" }

type ProfileEducation struct {
	ID        uint `gorm:"primaryKey" json:"-"`
	ProfileID uint `gorm:"index;not null" json:"-"`

	Degree         string  `json:"degree"`
	Specialization string  `json:"specialization"`
	Institute      string  `json:"institute"`
	University     string  `json:"university"`
	YearOfPassing  int     `json:"year_of_passing"`
	CPI            float64 `json:"cpi"`
}

func (ProfileEducation) TableName() string { return "profile_education" }

type ProfileExperience struct {
	ID        uint `gorm:"primaryKey" json:"-"`
	ProfileID uint `gorm:"index;not null" json:"-"`

	Company     string `json:"company"`
	Role        string `json:"role"`
	Location    string `json:"location"`
	StartDate   string `json:"start_date"`
	EndDate     string `json:"end_date"`
	Description string `gorm:"type:text" json:"description"`
}

func (ProfileExperience) TableName() string { return "profile_experience" }

type ProfileProject struct {
	ID        uint `gorm:"primaryKey" json:"-"`
	ProfileID uint `gorm:"index;not null" json:"-"`

	Title        string `json:"title"`
	Description  string `gorm:"type:text" json:"description"`
	Technologies string `json:"technologies"`
}

func (ProfileProject) TableName() string { return "profile_projects" }

type ProfileSkill struct {
	ID        uint `gorm:"primaryKey" json:"-"`
	ProfileID uint `gorm:"index;not null" json:"-"`

	Category string `json:"category"`
	Skill    string `json:"skill"`
}

func (ProfileSkill) TableName() string { return "profile_skills" }

// AutofillLog is one append-only usage record per successful fill.
type AutofillLog struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time `json:"created_at"`

	Email  string         `gorm:"index;not null" json:"email"`
	Fields datatypes.JSON `gorm:"type:jsonb" json:"fields"`
}

func (AutofillLog) TableName() string { return "autofill_logs" }
