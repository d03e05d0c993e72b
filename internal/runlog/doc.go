// Package runlog owns the run.log artifact: the session that mirrors every
// line to a live stream and the persisted file, the line formats, and the
// helpers that scrape metrics and parameters back out of finished runs.
package runlog
