// Package jobs holds background work that runs outside request handling.
//
// SnapshotRefresher periodically pulls every collection from the festival
// API and saves it as the dashboard's offline snapshot:
//
//	job := jobs.NewSnapshotRefresher(dashboard, time.Minute)
//	job.Start()
//	defer job.Stop()
package jobs
