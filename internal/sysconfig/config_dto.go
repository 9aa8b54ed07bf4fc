package sysconfig

type CreateConfigRequest struct {
	Year               int               `json:"year" binding:"required,min=2000,max=2100"`
	WorkingDaysPerWeek int               `json:"working_days_per_week" binding:"required,oneof=4 5 6"`
	Holidays           map[string]string `json:"holidays"`
	LeaveTypes         map[string]int    `json:"leave_types"`
}

type UpdateConfigRequest struct {
	WorkingDaysPerWeek *int               `json:"working_days_per_week" binding:"omitempty,oneof=4 5 6"`
	Holidays           *map[string]string `json:"holidays"`
	LeaveTypes         *map[string]int    `json:"leave_types"`
}

type ConfigResponse struct {
	ID                 string            `json:"id"`
	Year               int               `json:"year"`
	WorkingDaysPerWeek int               `json:"working_days_per_week"`
	Holidays           map[string]string `json:"holidays"`
	LeaveTypes         map[string]int    `json:"leave_types"`
}

func mapToResponse(c YearConfig) ConfigResponse {
	return ConfigResponse{
		ID:                 c.ID.String(),
		Year:               c.Year,
		WorkingDaysPerWeek: c.WorkingDaysPerWeek,
		Holidays:           c.HolidayMap(),
		LeaveTypes:         c.EntitlementMap(),
	}
}
