package ports

import "go.trai.ch/oracle/internal/core/domain"

// EventSource delivers resource-changed notifications asynchronously.
//
//go:generate go run go.uber.org/mock/mockgen -source=events.go -destination=mocks/mock_events.go -package=mocks
type EventSource interface {
	// Subscribe registers handler for every future notification.
	// Handlers run on the source's goroutines, never on the publisher's call stack.
	// The returned function cancels the subscription.
	Subscribe(handler func(domain.ResourceChanged)) (cancel func())
}
