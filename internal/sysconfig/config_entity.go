package sysconfig

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// Default entitlements seeded when a year is created without leave types.
var DefaultLeaveTypes = map[string]int{
	"casual": 12,
	"sick":   8,
	"earned": 20,
}

// YearConfig is the single policy row for a calendar year: which weekdays
// count as working days, the holiday set, and the per-type entitlements.
type YearConfig struct {
	ID                 uuid.UUID      `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Year               int            `gorm:"not null;uniqueIndex:uq_year_configs_year"`
	WorkingDaysPerWeek int            `gorm:"not null;default:5"`
	Holidays           datatypes.JSON `gorm:"type:jsonb"`
	LeaveTypes         datatypes.JSON `gorm:"type:jsonb"`

	CreatedAt time.Time
	UpdatedAt time.Time
}

func (YearConfig) TableName() string {
	return "year_configs"
}

// HolidayMap decodes the stored holiday column, ISO date → label.
func (c *YearConfig) HolidayMap() map[string]string {
	out := map[string]string{}
	if len(c.Holidays) > 0 {
		_ = json.Unmarshal(c.Holidays, &out)
	}
	return out
}

// EntitlementMap decodes the stored leave-type column, type → days per year.
func (c *YearConfig) EntitlementMap() map[string]int {
	out := map[string]int{}
	if len(c.LeaveTypes) > 0 {
		_ = json.Unmarshal(c.LeaveTypes, &out)
	}
	return out
}

// Policy builds the pure calendar policy for this year's configuration.
func (c *YearConfig) Policy() CalendarPolicy {
	holidays := make(map[string]struct{})
	for date := range c.HolidayMap() {
		holidays[date] = struct{}{}
	}
	return CalendarPolicy{
		WorkingDaysPerWeek: c.WorkingDaysPerWeek,
		Holidays:           holidays,
	}
}

func encodeJSON(v any) datatypes.JSON {
	payload, err := json.Marshal(v)
	if err != nil {
		return datatypes.JSON("{}")
	}
	return payload
}
