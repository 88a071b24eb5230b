// Package commands contains business operations that modify system state.
// Implements the Command pattern for write operations in the CQRS architecture.
// All commands follow a consistent pattern: validation, transaction management, and persistence.
package commands

import (
	"context"

	"careshift/internal/core/ports"
)

// Unit of Work interfaces provide transaction management for command handlers.
// These abstractions ensure data consistency across aggregate boundaries.
type (
	// TxManager handles database transaction lifecycle.
	// Ensures atomic operations across multiple repository calls.
	TxManager interface {
		Begin(ctx context.Context) error
		Commit(ctx context.Context) error
		Rollback(ctx context.Context) error
	}

	// JobPostRepoFactory provides access to the job post repository within a transaction.
	JobPostRepoFactory interface {
		JobPostRepository() ports.JobPostRepository
	}

	// ApplicationRepoFactory provides access to the application repository within a transaction.
	ApplicationRepoFactory interface {
		ApplicationRepository() ports.ApplicationRepository
	}

	// JobPostUoW manages transactions for job-post-only operations.
	// Used when commands only modify job post aggregates.
	JobPostUoW interface {
		TxManager
		JobPostRepoFactory
	}

	// JobPostUoWFactory creates new job post unit of work instances.
	JobPostUoWFactory interface {
		Create() JobPostUoW
	}

	// UoW manages transactions across both job post and application aggregates.
	// Used for lifecycle commands that coordinate changes between the two.
	//
	// Example:
	//   uow := factory.Create()
	//   err := uow.Begin(ctx)
	//   defer uow.Rollback(ctx)
	//
	//   jobRepo := uow.JobPostRepository()
	//   appRepo := uow.ApplicationRepository()
	//   // ... perform operations
	//
	//   err = uow.Commit(ctx)
	UoW interface {
		TxManager
		JobPostRepoFactory
		ApplicationRepoFactory
	}

	// UoWFactory creates new unit of work instances for cross-aggregate operations.
	UoWFactory interface {
		Create() UoW
	}
)
