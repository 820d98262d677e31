package enums

import "fmt"

// NotificationKind names the order lifecycle events that trigger emails.
type NotificationKind string

const (
	NotificationOrderPlaced     NotificationKind = "order-placed"
	NotificationOrderDispatched NotificationKind = "order-dispatched"
)

var validNotificationKinds = []NotificationKind{
	NotificationOrderPlaced,
	NotificationOrderDispatched,
}

// IsValid checks whether the given kind matches the canonical enum.
func (n NotificationKind) IsValid() bool {
	for _, candidate := range validNotificationKinds {
		if candidate == n {
			return true
		}
	}
	return false
}

// ParseNotificationKind converts raw strings into NotificationKind.
func ParseNotificationKind(value string) (NotificationKind, error) {
	for _, candidate := range validNotificationKinds {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid notification kind %q", value)
}
