/*
Package tailer follows a single trace.*.json file from its end, decoding
one JSON object per line and handing each to a registry.Registry.

A Tailer never replays history: on open it seeks to end-of-file, so a
freshly discovered file (or a reopened one after an error) only yields
lines written from that point forward. It retries indefinitely on open,
seek, and read errors rather than giving up on the file, since the
database keeps rotated trace logs pinned in place for the lifetime of the
process.

Process-level counters (lines processed, parse errors, record errors) are
exported through pkg/metrics, labeled by the tailed file's base name.
*/
package tailer
