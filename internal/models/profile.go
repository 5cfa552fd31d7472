package models

import (
	"time"

	"gorm.io/datatypes"
)

// SocialLinks holds the optional social network URLs of a profile.
type SocialLinks struct {
	YouTube   string `gorm:"column:youtube" json:"youtube,omitempty"`
	Twitter   string `json:"twitter,omitempty"`
	Facebook  string `json:"facebook,omitempty"`
	LinkedIn  string `gorm:"column:linkedin" json:"linkedin,omitempty"`
	Instagram string `json:"instagram,omitempty"`
}

// Profile is the single developer profile owned by a user.
type Profile struct {
	ID             uint                        `gorm:"primaryKey" json:"id"`
	UserID         uint                        `gorm:"not null;uniqueIndex" json:"user_id"`
	User           *User                       `gorm:"foreignKey:UserID" json:"user,omitempty"`
	Status         string                      `gorm:"not null" json:"status"`
	Company        string                      `json:"company,omitempty"`
	Website        string                      `json:"website,omitempty"`
	Location       string                      `json:"location,omitempty"`
	Bio            string                      `gorm:"type:text" json:"bio,omitempty"`
	GitHubUsername string                      `gorm:"column:githubusername" json:"githubusername,omitempty"`
	Skills         datatypes.JSONSlice[string] `json:"skills"`
	Social         SocialLinks                 `gorm:"embedded;embeddedPrefix:social_" json:"social"`
	Experience     []Experience                `gorm:"foreignKey:ProfileID;constraint:OnDelete:CASCADE" json:"experience"`
	Education      []Education                 `gorm:"foreignKey:ProfileID;constraint:OnDelete:CASCADE" json:"education"`
	CreatedAt      time.Time                   `json:"date"`
	UpdatedAt      time.Time                   `json:"-"`
}

// Experience is a job entry of a profile. Entries are listed newest first.
type Experience struct {
	ID          uint       `gorm:"primaryKey" json:"id"`
	ProfileID   uint       `gorm:"not null;index" json:"-"`
	Title       string     `gorm:"not null" json:"title"`
	Company     string     `gorm:"not null" json:"company"`
	Location    string     `json:"location,omitempty"`
	From        time.Time  `gorm:"column:from_date;not null" json:"from"`
	To          *time.Time `gorm:"column:to_date" json:"to,omitempty"`
	Current     bool       `gorm:"column:is_current" json:"current"`
	Description string     `gorm:"type:text" json:"description,omitempty"`
	CreatedAt   time.Time  `json:"-"`
}

// Education is a schooling entry of a profile. Entries are listed newest first.
type Education struct {
	ID           uint       `gorm:"primaryKey" json:"id"`
	ProfileID    uint       `gorm:"not null;index" json:"-"`
	School       string     `gorm:"not null" json:"school"`
	Degree       string     `gorm:"not null" json:"degree"`
	FieldOfStudy string     `gorm:"column:fieldofstudy;not null" json:"fieldofstudy"`
	From         time.Time  `gorm:"column:from_date;not null" json:"from"`
	To           *time.Time `gorm:"column:to_date" json:"to,omitempty"`
	Current      bool       `gorm:"column:is_current" json:"current"`
	Description  string     `gorm:"type:text" json:"description,omitempty"`
	CreatedAt    time.Time  `json:"-"`
}

// TableName keeps the plural form stable across naming strategies.
func (Education) TableName() string {
	return "educations"
}
