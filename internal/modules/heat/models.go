package heat

import (
	"time"

	"gorm.io/datatypes"
)

const (
	SourceRules  = "rules"
	SourceGemini = "gemini"
)

// Answers maps question id to option id.
type Answers map[string]string

type Profile struct {
	ID          string                      `gorm:"type:char(36);primaryKey" json:"id"`
	UserID      *string                     `gorm:"type:char(36);index:ix_heat_profiles_user_id" json:"user_id"`
	Answers     datatypes.JSONType[Answers] `json:"answers"`
	HeatLevel   int                         `gorm:"not null" json:"heat_level"`
	Label       string                      `gorm:"size:64;not null" json:"label"`
	MinScoville int                         `gorm:"not null" json:"min_scoville"`
	MaxScoville int                         `gorm:"not null" json:"max_scoville"`
	FlavorNotes datatypes.JSONSlice[string] `json:"flavor_notes"`
	Summary     string                      `gorm:"type:text" json:"summary"`
	Source      string                      `gorm:"size:16;not null" json:"source"`
	CreatedAt   time.Time                   `gorm:"not null;index:ix_heat_profiles_created_at" json:"created_at"`
}

func (Profile) TableName() string { return "heat_profiles" }
