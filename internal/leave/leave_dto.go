package leave

import (
	"time"

	"github.com/sushant-78/smart-leave-managment-back-end/internal/user"
)

const dateLayout = "2006-01-02"

type ApplyLeaveRequest struct {
	LeaveType string `json:"leave_type" binding:"required"`
	FromDate  string `json:"from_date" binding:"required,datetime=2006-01-02"`
	ToDate    string `json:"to_date" binding:"required,datetime=2006-01-02"`
	Reason    string `json:"reason" binding:"required,min=10,max=1000"`
}

type DecideLeaveRequest struct {
	Status  string  `json:"status" binding:"required,oneof=approved rejected"`
	Comment *string `json:"comment" binding:"omitempty,max=500"`
}

type LeaveResponse struct {
	ID              string            `json:"id"`
	UserID          string            `json:"user_id"`
	User            *user.UserSummary `json:"user,omitempty"`
	ApproverID      *string           `json:"approver_id,omitempty"`
	Approver        *user.UserSummary `json:"approver,omitempty"`
	LeaveType       string            `json:"leave_type"`
	FromDate        string            `json:"from_date"`
	ToDate          string            `json:"to_date"`
	WorkingDays     int               `json:"working_days"`
	Reason          string            `json:"reason"`
	Status          string            `json:"status"`
	ApproverComment *string           `json:"approver_comment,omitempty"`
	CreatedAt       time.Time         `json:"created_at"`
}

type BalanceResponse struct {
	Year     int                    `json:"year"`
	Balances map[string]TypeBalance `json:"balances"`
}

type TypeBalance struct {
	Entitlement int `json:"entitlement"`
	Used        int `json:"used"`
	Remaining   int `json:"remaining"`
}

func summaryOf(u *user.User) *user.UserSummary {
	if u == nil {
		return nil
	}
	s := user.UserSummary{
		ID:    u.ID.String(),
		Name:  u.Name,
		Email: u.Email,
	}
	return &s
}

func mapToResponse(l Leave) LeaveResponse {
	resp := LeaveResponse{
		ID:              l.ID.String(),
		UserID:          l.UserID.String(),
		User:            summaryOf(l.User),
		Approver:        summaryOf(l.Approver),
		LeaveType:       l.LeaveType,
		FromDate:        l.FromDate.Format(dateLayout),
		ToDate:          l.ToDate.Format(dateLayout),
		WorkingDays:     l.WorkingDays,
		Reason:          l.Reason,
		Status:          l.Status,
		ApproverComment: l.ApproverComment,
		CreatedAt:       l.CreatedAt,
	}
	if l.ApproverID != nil {
		v := l.ApproverID.String()
		resp.ApproverID = &v
	}
	return resp
}

func mapToListResponse(leaves []Leave) []LeaveResponse {
	resp := make([]LeaveResponse, len(leaves))
	for i, l := range leaves {
		resp[i] = mapToResponse(l)
	}
	return resp
}
