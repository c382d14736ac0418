package services

import (
	"time"

	logger "github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"fundcontrol/internal/models"
)

// Clock computes application time as real time plus an admin-settable,
// persisted offset. Time is never frozen: two Now() calls separated by real
// elapsed time always differ by that much.
type Clock struct {
	db *gorm.DB
}

func NewClock(db *gorm.DB) *Clock {
	return &Clock{db: db}
}

// Settings loads the single clock_settings row, creating it on first use.
func (c *Clock) Settings() (*models.ClockSettings, error) {
	var settings models.ClockSettings
	err := c.db.Where(models.ClockSettings{ID: models.ClockSettingsID}).
		FirstOrCreate(&settings).Error
	if err != nil {
		return nil, err
	}
	return &settings, nil
}

// Now returns current application time in UTC. Falls back to real time if
// the settings row cannot be read; accrual code self-heals on the next pass.
func (c *Clock) Now() time.Time {
	real := time.Now().UTC()
	settings, err := c.Settings()
	if err != nil {
		logger.Errorf("clock: failed to load settings, using real time: %v", err)
		return real
	}
	if settings.TimeOffsetMs == nil {
		return real
	}
	return real.Add(time.Duration(*settings.TimeOffsetMs) * time.Millisecond)
}

// Set stores offset = desired - realNow so application time lands on the
// desired timestamp and keeps flowing from there. The write commits before
// the caller triggers any synchronization pass.
func (c *Clock) Set(desired time.Time, actor string) (*models.ClockSettings, error) {
	settings, err := c.Settings()
	if err != nil {
		return nil, err
	}

	real := time.Now().UTC()
	offsetMs := desired.UTC().Sub(real).Milliseconds()
	settings.TimeOffsetMs = &offsetMs
	settings.TimeOffsetSetAt = &real
	settings.TimeOffsetSetBy = actor

	if err := c.db.Save(settings).Error; err != nil {
		return nil, err
	}
	logger.Infof("clock: offset set to %dms by %s (app time %s)",
		offsetMs, actor, desired.UTC().Format(time.RFC3339))
	return settings, nil
}

// Reset clears the offset, returning application time to real time.
func (c *Clock) Reset(actor string) (*models.ClockSettings, error) {
	settings, err := c.Settings()
	if err != nil {
		return nil, err
	}

	settings.TimeOffsetMs = nil
	settings.TimeOffsetSetAt = nil
	settings.TimeOffsetSetBy = actor

	err = c.db.Model(settings).Select("TimeOffsetMs", "TimeOffsetSetAt", "TimeOffsetSetBy").
		Updates(map[string]interface{}{
			"time_offset_ms":     nil,
			"time_offset_set_at": nil,
			"time_offset_set_by": actor,
		}).Error
	if err != nil {
		return nil, err
	}
	logger.Infof("clock: offset reset by %s", actor)
	return settings, nil
}

// SetAutoApprove toggles automatic approval of generated distributions.
func (c *Clock) SetAutoApprove(enabled bool) (*models.ClockSettings, error) {
	settings, err := c.Settings()
	if err != nil {
		return nil, err
	}
	settings.AutoApproveDistributions = enabled
	if err := c.db.Save(settings).Error; err != nil {
		return nil, err
	}
	return settings, nil
}
