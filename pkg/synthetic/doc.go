/*
Package synthetic is a local smoke-testing collaborator: it writes
fabricated trace.*.json lines on a timer so the watcher/tailer/registry
pipeline can be exercised without a live database. It is not part of the
exporter's core and is only wired in behind the --synthetic flag.
*/
package synthetic
