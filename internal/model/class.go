package model

import "time"

const (
	ClassStatusOpen   = "open"
	ClassStatusClosed = "closed"
)

// swagger:model Class
type Class struct {
	UUIDBase

	Title       string `gorm:"size:255;not null" json:"title"`
	Description string `gorm:"type:text" json:"description"`
	Level       string `gorm:"size:10;index" json:"level"` // recommended band, L1..L5
	Schedule    string `gorm:"size:255" json:"schedule"`
	TeacherName string `gorm:"size:100" json:"teacherName"`
	Capacity    int    `gorm:"default:0" json:"capacity"`
	Status      string `gorm:"size:20;index;default:'open'" json:"status"`
}

func (Class) TableName() string {
	return "classes"
}

const (
	ApplicationStatusPending  = "pending"
	ApplicationStatusApproved = "approved"
	ApplicationStatusRejected = "rejected"
)

// swagger:model ClassApplication
type ClassApplication struct {
	UUIDBase

	ClassID string `gorm:"size:36;index;not null" json:"classId"`
	Name    string `gorm:"size:100;not null" json:"name"`
	Email   string `gorm:"size:255;index;not null" json:"email"`
	Country string `gorm:"size:100" json:"country"`
	Message string `gorm:"type:text" json:"message"`

	PrivacyConsent   bool `gorm:"default:false" json:"privacyConsent"`
	AgeConsent       bool `gorm:"default:false" json:"ageConsent"`
	MarketingConsent bool `gorm:"default:false" json:"marketingConsent"`

	Status    string     `gorm:"size:20;index;default:'pending'" json:"status"`
	Reason    string     `gorm:"type:text" json:"reason"` // decision reason, may be empty
	DecidedAt *time.Time `json:"decidedAt,omitempty"`
}

func (ClassApplication) TableName() string {
	return "class_applications"
}
