// Package jobs provides scheduled background tasks for the scheduling service.
//
// This package implements cron-based jobs using github.com/robfig/cron/v3.
// The core stays strictly request/response; the only background work is the
// notification side-channel.
//
// # Available Jobs
//
// 1. NotificationRetryJob - Periodically re-attempts delivery of
// notifications that failed their first dispatch.
//
// # Usage
//
// Jobs are managed through JobManager which provides a unified interface:
//
//	jobManager := jobs.NewJobManager(dispatcher, logger)
//
//	if err := jobManager.StartAll(); err != nil {
//		log.Fatal("Failed to start jobs:", err)
//	}
//
//	defer jobManager.StopAll()
package jobs
