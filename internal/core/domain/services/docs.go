// Package services contains stateless domain services that work across
// aggregates: time-conflict resolution between a worker's applications,
// candidate match scoring against a job's requirements, and geodesic
// distance between postcodes.
package services
