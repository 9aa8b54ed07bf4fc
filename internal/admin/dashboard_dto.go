package admin

import "github.com/sushant-78/smart-leave-managment-back-end/internal/audit"

type DashboardResponse struct {
	Users         UserStats                `json:"users"`
	Leaves        LeaveStats               `json:"leaves"`
	ConfigPresent bool                     `json:"config_present"`
	RecentAudit   []audit.AuditLogResponse `json:"recent_audit"`
}

type UserStats struct {
	Total      int64 `json:"total"`
	Employees  int64 `json:"employees"`
	Managers   int64 `json:"managers"`
	Admins     int64 `json:"admins"`
	Unassigned int64 `json:"unassigned"`
}

type LeaveStats struct {
	Total    int64            `json:"total"`
	Pending  int64            `json:"pending"`
	Approved int64            `json:"approved"`
	Rejected int64            `json:"rejected"`
	ByType   map[string]int64 `json:"by_type"`
}
