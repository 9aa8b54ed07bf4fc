package consumer

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/sushant-78/smart-leave-managment-back-end/internal/events"

	kafkago "github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

// ConsumeLeaveLifecycle turns leave lifecycle events into simulated email
// notifications. Delivery is a log line only; there is no real mail gateway.
func ConsumeLeaveLifecycle(
	ctx context.Context,
	reader *kafkago.Reader,
	logger *zap.Logger,
) {
	log := logger.Named("kafka.consumer.leave_lifecycle")
	log.Info("leave lifecycle consumer started")

	for {
		msg, err := reader.FetchMessage(ctx)
		if err != nil {
			if ctx.Err() != nil {
				log.Info("leave lifecycle consumer stopped")
				return
			}
			log.Error("fetch leave lifecycle message failed", zap.Error(err))
			continue
		}

		var event events.LeaveLifecycleEvent
		if err := json.Unmarshal(msg.Value, &event); err != nil {
			log.Error("decode leave lifecycle event failed", zap.Error(err))
			_ = reader.CommitMessages(ctx, msg)
			continue
		}

		recipient, body := composeNotification(event)
		log.Info("email simulated",
			zap.String("request_id", event.RequestID),
			zap.String("event_type", event.EventType),
			zap.String("leave_id", event.LeaveID),
			zap.String("to", recipient),
			zap.String("body", body),
		)

		if err := reader.CommitMessages(ctx, msg); err != nil {
			log.Error("commit leave lifecycle message failed", zap.Error(err))
		}
	}
}

func composeNotification(event events.LeaveLifecycleEvent) (recipient, body string) {
	switch event.EventType {
	case events.LeaveApplied:
		recipient = event.ApproverEmail
		if recipient == "" {
			recipient = "admin"
		}
		body = fmt.Sprintf("Leave request from %s (%s to %s)",
			event.UserName, event.FromDate, event.ToDate)
	case events.LeaveApproved:
		recipient = event.UserEmail
		body = fmt.Sprintf("Your leave from %s to %s has been approved",
			event.FromDate, event.ToDate)
	case events.LeaveRejected:
		recipient = event.UserEmail
		body = fmt.Sprintf("Your leave from %s to %s has been rejected",
			event.FromDate, event.ToDate)
	case events.LeaveCancelled:
		recipient = event.UserEmail
		body = "Your leave request has been cancelled"
	default:
		recipient = event.UserEmail
		body = fmt.Sprintf("Update on your leave from %s to %s",
			event.FromDate, event.ToDate)
	}
	return recipient, body
}
