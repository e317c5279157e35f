package model

// LevelTestResult is the single record persisted when a placement-test
// session reaches a terminal state. Sessions that are abandoned mid-test
// never produce one.
// swagger:model LevelTestResult
type LevelTestResult struct {
	BaseModel

	Name    string `gorm:"size:100;not null" json:"name"`
	Email   string `gorm:"size:255;index;not null" json:"email"`
	Country string `gorm:"size:100" json:"country"`

	Level     string `gorm:"size:10;not null" json:"level"` // band at termination
	Score     int    `json:"score"`                         // score within that band
	Completed bool   `gorm:"default:false" json:"completed"`

	PrivacyConsent   bool `gorm:"default:false" json:"privacyConsent"`
	AgeConsent       bool `gorm:"default:false" json:"ageConsent"`
	MarketingConsent bool `gorm:"default:false" json:"marketingConsent"`
}

func (LevelTestResult) TableName() string {
	return "level_test_results"
}
