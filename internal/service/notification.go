package service

import (
	"context"
	"fmt"
	"log"
	"time"

	"tripfund/internal/domain"
)

// NotificationType represents the type of notification.
type NotificationType string

const (
	NotificationCommitmentCreated NotificationType = "COMMITMENT_CREATED"
	NotificationThresholdReached  NotificationType = "THRESHOLD_REACHED"
	NotificationCaptureSucceeded  NotificationType = "CAPTURE_SUCCEEDED"
	NotificationCaptureFailed     NotificationType = "CAPTURE_FAILED"
)

// Notification represents a notification to be sent.
type Notification struct {
	Type      NotificationType
	Recipient string // traveler name, or the trip's organizer channel
	Title     string
	Message   string
	Data      map[string]interface{}
	CreatedAt time.Time
}

// NotificationService handles notification delivery.
type NotificationService struct {
	// In a real system, this would have:
	// - Email client (SendGrid)
	// - SMS client (Twilio)
	// - WebSocket connections for real-time trip pages
}

// NewNotificationService creates a new NotificationService.
func NewNotificationService() *NotificationService {
	return &NotificationService{}
}

// NotifyCommitmentCreated notifies the traveler their pledge was recorded.
func (s *NotificationService) NotifyCommitmentCreated(ctx context.Context, c *domain.TravelerCommitment, tripTotal int64) error {
	notification := Notification{
		Type:      NotificationCommitmentCreated,
		Recipient: c.TravelerName,
		Title:     "Commitment Recorded",
		Message:   fmt.Sprintf("Your card was authorized for $%d.%02d. You'll only be charged if the trip funds.", c.CommittedAmount/100, c.CommittedAmount%100),
		Data: map[string]interface{}{
			"commitment_id": c.ID,
			"trip_id":       c.TripID,
			"amount":        c.CommittedAmount,
			"trip_total":    tripTotal,
		},
		CreatedAt: time.Now(),
	}
	return s.send(ctx, notification)
}

// NotifyThresholdReached notifies the trip's organizer channel that the trip funded.
func (s *NotificationService) NotifyThresholdReached(ctx context.Context, tripID string, total int64) error {
	notification := Notification{
		Type:      NotificationThresholdReached,
		Recipient: tripID,
		Title:     "Trip Funded",
		Message:   fmt.Sprintf("The trip reached its funding threshold with $%d.%02d committed. Capturing payments.", total/100, total%100),
		Data: map[string]interface{}{
			"trip_id":         tripID,
			"total_committed": total,
		},
		CreatedAt: time.Now(),
	}
	return s.send(ctx, notification)
}

// NotifyCaptureSucceeded notifies the traveler their payment went through.
func (s *NotificationService) NotifyCaptureSucceeded(ctx context.Context, c *domain.TravelerCommitment) error {
	notification := Notification{
		Type:      NotificationCaptureSucceeded,
		Recipient: c.TravelerName,
		Title:     "Payment Captured",
		Message:   fmt.Sprintf("Your $%d.%02d payment for the trip was captured. See you there!", c.CommittedAmount/100, c.CommittedAmount%100),
		Data: map[string]interface{}{
			"commitment_id": c.ID,
			"trip_id":       c.TripID,
			"amount":        c.CommittedAmount,
		},
		CreatedAt: time.Now(),
	}
	return s.send(ctx, notification)
}

// NotifyCaptureFailed notifies the traveler their payment could not be captured.
func (s *NotificationService) NotifyCaptureFailed(ctx context.Context, c *domain.TravelerCommitment) error {
	notification := Notification{
		Type:      NotificationCaptureFailed,
		Recipient: c.TravelerName,
		Title:     "Payment Failed",
		Message:   "We couldn't capture your payment for the trip. Please contact the organizer.",
		Data: map[string]interface{}{
			"commitment_id": c.ID,
			"trip_id":       c.TripID,
			"amount":        c.CommittedAmount,
		},
		CreatedAt: time.Now(),
	}
	return s.send(ctx, notification)
}

// send delivers a notification (mock implementation).
func (s *NotificationService) send(ctx context.Context, notification Notification) error {
	// In a real implementation, this would:
	// 1. Store notification in database
	// 2. Send email/SMS to the traveler
	// 3. Broadcast via WebSocket to the trip page

	log.Printf("[NOTIFICATION] Type=%s, Recipient=%s, Title=%s, Message=%s",
		notification.Type, notification.Recipient, notification.Title, notification.Message)

	return nil
}
