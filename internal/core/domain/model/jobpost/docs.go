// Package jobpost contains the JobPost aggregate: a care shift (or the
// parent/template of a recurring series of shifts) offered by a job poster.
//
// The aggregate enforces field validity and status transitions locally.
// Cross-aggregate rules such as slot uniqueness per owner and application
// cascades live in the command handlers that load and persist job posts
// through the unit of work.
package jobpost
