package database

import (
	"time"

	"gorm.io/gorm"
)

// RunModel represents the database model for one harness run
type RunModel struct {
	ID         uint   `gorm:"primaryKey"`
	RunID      string `gorm:"uniqueIndex;not null"`
	StartedAt  time.Time
	DurationMS int64
	Total      int
	Passed     int
	Failed     int
	Errored    int
	Skipped    int
	XFailed    int
	XPassed    int
	Reruns     int
	Succeeded  bool `gorm:"index"`
	CreatedAt  time.Time
	Results    []CaseResultModel `gorm:"foreignKey:RunModelID;constraint:OnDelete:CASCADE"`
}

func (RunModel) TableName() string {
	return "contract_runs"
}

// CaseResultModel represents the stored result of one scenario in a run
type CaseResultModel struct {
	ID         uint   `gorm:"primaryKey"`
	RunModelID uint   `gorm:"index;not null"`
	Position   int    `gorm:"not null"`
	Name       string `gorm:"index;not null"`
	Outcome    string `gorm:"not null"`
	Reason     string
	Message    string
	StatusCode int
	ElapsedMS  int64
	Attempts   []AttemptRecord `gorm:"serializer:json;type:text"`
}

func (CaseResultModel) TableName() string {
	return "contract_case_results"
}

// AttemptRecord is the JSON form of one attempt kept on a case result row
type AttemptRecord struct {
	Number     int    `json:"number"`
	Outcome    string `json:"outcome"`
	Message    string `json:"message,omitempty"`
	StatusCode int    `json:"status_code,omitempty"`
	ElapsedMS  int64  `json:"elapsed_ms"`
}

// Migrate creates or updates the result tables
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(&RunModel{}, &CaseResultModel{})
}
