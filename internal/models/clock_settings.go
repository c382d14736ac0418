package models

import (
	"time"
)

// ClockSettingsID is the primary key of the single settings row.
const ClockSettingsID = 1

// ClockSettings represents the single-row clock_settings table.
// The time offset is persisted so every process (API, worker, cron)
// observes the same application time.
type ClockSettings struct {
	ID                       uint       `gorm:"primarykey" json:"id"`
	TimeOffsetMs             *int64     `json:"time_offset_ms"`
	TimeOffsetSetAt          *time.Time `json:"time_offset_set_at"`
	TimeOffsetSetBy          string     `gorm:"size:16" json:"time_offset_set_by"`
	AutoApproveDistributions bool       `gorm:"default:false" json:"auto_approve_distributions"`
	UpdatedAt                time.Time  `json:"updated_at" gorm:"autoUpdateTime"`
}

func (ClockSettings) TableName() string {
	return "clock_settings"
}
