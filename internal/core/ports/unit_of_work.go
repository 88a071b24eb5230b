package ports

import (
	"context"
)

// UnitOfWorkFactory creates new UnitOfWork instances for each request/command.
// This ensures proper isolation between concurrent operations.
type UnitOfWorkFactory interface {
	Create() UnitOfWork
}

// UnitOfWork represents a business transaction boundary.
// Every mutating operation that touches more than one record (acceptance
// cascades, reposts, recurring creation) runs inside a single unit of work
// so that partial cascades are impossible. Client code must explicitly
// manage the transaction lifecycle.
type UnitOfWork interface {
	// Begin starts a new database transaction.
	Begin(ctx context.Context) error

	// Commit commits the current transaction.
	// Returns error if no active transaction or commit fails.
	Commit(ctx context.Context) error

	// Rollback rolls back the current transaction.
	// Returns error if no active transaction or rollback fails.
	Rollback(ctx context.Context) error

	// JobPostRepository returns a JobPostRepository bound to the current transaction.
	JobPostRepository() JobPostRepository

	// ApplicationRepository returns an ApplicationRepository bound to the current transaction.
	ApplicationRepository() ApplicationRepository
}
