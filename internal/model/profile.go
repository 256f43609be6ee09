package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Social holds a profile's social network links.
type Social struct {
	YouTube   string `json:"youtube,omitempty"`
	Twitter   string `json:"twitter,omitempty"`
	Facebook  string `json:"facebook,omitempty"`
	LinkedIn  string `json:"linkedin,omitempty"`
	Instagram string `json:"instagram,omitempty"`
}

// Experience is a job entry on a profile.
type Experience struct {
	ID          string     `json:"_id"`
	Title       string     `json:"title"`
	Company     string     `json:"company"`
	Location    string     `json:"location,omitempty"`
	From        time.Time  `json:"from"`
	To          *time.Time `json:"to,omitempty"`
	Current     bool       `json:"current"`
	Description string     `json:"description,omitempty"`
}

// Education is a school entry on a profile.
type Education struct {
	ID           string     `json:"_id"`
	School       string     `json:"school"`
	Degree       string     `json:"degree"`
	FieldOfStudy string     `json:"fieldofstudy"`
	From         time.Time  `json:"from"`
	To           *time.Time `json:"to,omitempty"`
	Current      bool       `json:"current"`
	Description  string     `json:"description,omitempty"`
}

// Profile is a user's developer profile document.
type Profile struct {
	ID             string       `json:"_id" gorm:"type:char(36);primaryKey"`
	UserID         string       `json:"-" gorm:"column:user_id;type:char(36);uniqueIndex;not null"`
	User           *User        `json:"user,omitempty" gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
	Company        string       `json:"company,omitempty" gorm:"size:255"`
	Website        string       `json:"website,omitempty" gorm:"size:255"`
	Location       string       `json:"location,omitempty" gorm:"size:255"`
	Status         string       `json:"status" gorm:"size:255;not null"`
	Skills         []string     `json:"skills" gorm:"serializer:json;type:json"`
	Bio            string       `json:"bio,omitempty" gorm:"type:text"`
	GitHubUsername string       `json:"githubusername,omitempty" gorm:"size:255"`
	Social         Social       `json:"social" gorm:"serializer:json;type:json"`
	Experience     []Experience `json:"experience" gorm:"serializer:json;type:json"`
	Education      []Education  `json:"education" gorm:"serializer:json;type:json"`
	Date           time.Time    `json:"date" gorm:"autoCreateTime"`
}

// BeforeCreate sets the id and the embedded collections before creating the record.
func (p *Profile) BeforeCreate(tx *gorm.DB) error {
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	if p.Experience == nil {
		p.Experience = []Experience{}
	}
	if p.Education == nil {
		p.Education = []Education{}
	}
	return nil
}
