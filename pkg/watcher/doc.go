/*
Package watcher periodically scans the exporter's log directory for new
trace.*.json files and spawns one tailer.Tailer goroutine per file it has
not already seen.

The watcher is the sole spawner of tailers: once a path is added to its
tailed-files set it is never removed, even if the tailer for it later
exits, since the database keeps rotated trace logs pinned in place for
the process lifetime. The tailed-files set lives entirely inside the
watcher's own goroutine and is touched by nothing else.
*/
package watcher
