// Package application contains the Application aggregate: a healthcare
// worker's request to perform a specific job post, from submission through
// acceptance, on-site check-in/out and completion.
//
// Applications are only ever mutated through the lifecycle command handlers;
// the aggregate enforces per-application rules while the handlers enforce
// the cross-application invariants (unique worker/job pair, single accepted
// application per job, no overlapping accepted windows per worker).
package application
