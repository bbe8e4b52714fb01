// api/util/notification_service.go

package util

import (
	"context"

	"go.uber.org/zap"

	logger "github.com/dev-anuragk/assistly/api/logging"
	"github.com/dev-anuragk/assistly/api/model"
)

// NotificationService fans account and organization changes out to operators.
// Delivery is log-backed for now; a queue client can slot in behind the same
// methods.
type NotificationService struct{}

func NewNotificationService() *NotificationService {
	return &NotificationService{}
}

// SubscribeAll registers the notification handlers on the event bus.
func (n *NotificationService) SubscribeAll(bus *EventBus) {
	bus.Subscribe(EventUserCreated, func(ctx context.Context, e Event) error {
		if user, ok := e.Payload.(model.User); ok {
			return n.NotifyUserChange(ctx, "created", user)
		}
		return nil
	})
	bus.Subscribe(EventUserDeleted, func(ctx context.Context, e Event) error {
		if user, ok := e.Payload.(model.User); ok {
			return n.NotifyUserChange(ctx, "deleted", user)
		}
		return nil
	})
	bus.Subscribe(EventOrganizationCreated, func(ctx context.Context, e Event) error {
		if org, ok := e.Payload.(model.Organization); ok {
			return n.NotifyOrganizationChange(ctx, "created", org)
		}
		return nil
	})
	bus.Subscribe(EventOrganizationDeleted, func(ctx context.Context, e Event) error {
		if org, ok := e.Payload.(model.Organization); ok {
			return n.NotifyOrganizationChange(ctx, "deleted", org)
		}
		return nil
	})
}

func (n *NotificationService) NotifyUserChange(ctx context.Context, changeType string, user model.User) error {
	logger.Info("NOTIFICATION: user "+changeType,
		zap.String("userID", user.ID),
		zap.String("email", user.Email),
		zap.String("role", string(user.Role)))
	return nil
}

func (n *NotificationService) NotifyOrganizationChange(ctx context.Context, changeType string, org model.Organization) error {
	logger.Info("NOTIFICATION: organization "+changeType,
		zap.String("organizationID", org.ID),
		zap.String("name", org.Name))
	return nil
}

func (n *NotificationService) NotifyAdmins(ctx context.Context, message string) error {
	logger.Info("Notifying admins", zap.String("message", message))
	return nil
}
