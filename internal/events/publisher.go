//go:generate go run go.uber.org/mock/mockgen -source=publisher.go -destination=../mocks/mock_publisher.go -package=mocks
package events

import "context"

// Publisher sends ledger events somewhere.
type Publisher interface {
	Publish(ctx context.Context, event LedgerEvent) error
}
