package model

import "encoding/json"

// Proficiency bands of the placement test, in ascending order.
const (
	LevelL1 = "L1"
	LevelL2 = "L2"
	LevelL3 = "L3"
	LevelL4 = "L4"
	LevelL5 = "L5"
)

// TestLevels is the canonical ascending order used by the engine.
var TestLevels = []string{LevelL1, LevelL2, LevelL3, LevelL4, LevelL5}

// Question is a placement-test item. Read-only to the engine; authored and
// maintained through the admin console only.
// swagger:model Question
type Question struct {
	BaseModel

	Level       string          `gorm:"size:10;index;not null" json:"level"`
	Text        string          `gorm:"type:text;not null" json:"text"`
	Options     json.RawMessage `gorm:"type:json" json:"options"` // ordered JSON array of option strings
	Answer      string          `gorm:"size:512;not null" json:"answer"`
	Explanation string          `gorm:"type:text" json:"explanation"`
	Difficulty  string          `gorm:"size:20" json:"difficulty"`
	Active      bool            `gorm:"default:true;index" json:"active"`
}

func (Question) TableName() string {
	return "questions"
}
