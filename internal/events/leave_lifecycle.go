package events

import "time"

const LeaveLifecycleTopic = "leave.lifecycle.v1"

const (
	LeaveApplied   = "leave_applied"
	LeaveApproved  = "leave_approved"
	LeaveRejected  = "leave_rejected"
	LeaveCancelled = "leave_cancelled"
)

// LeaveLifecycleEvent is self-contained so the notification consumer never
// has to read the database to compose a message.
type LeaveLifecycleEvent struct {
	EventType     string    `json:"event_type"`
	RequestID     string    `json:"request_id,omitempty"`
	LeaveID       string    `json:"leave_id"`
	UserID        string    `json:"user_id"`
	UserName      string    `json:"user_name"`
	UserEmail     string    `json:"user_email"`
	ApproverEmail string    `json:"approver_email,omitempty"`
	LeaveType     string    `json:"leave_type"`
	FromDate      string    `json:"from_date"`
	ToDate        string    `json:"to_date"`
	WorkingDays   int       `json:"working_days,omitempty"`
	Comment       string    `json:"comment,omitempty"`
	OccurredAt    time.Time `json:"occurred_at"`
}
