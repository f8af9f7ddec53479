// Package cmaplog is a thin wrapper around the standard log package,
// used sparingly for container compaction, marker-pool exhaustion, and
// load/save failures. No injected logger object, no structured fields,
// just package-level calls.
package cmaplog

import "log"

func Compacted(containerKind string, before, after int) {
	log.Printf("cmaps: compacted %s container: %d slots -> %d live slots", containerKind, before, after)
}

func PoolExhausted(kind string, chunkSize int) {
	log.Printf("cmaps: marker pool exhausted for %s columns at chunk size %d, allocating fresh", kind, chunkSize)
}

func LoadFailed(path string, err error) {
	log.Printf("cmaps: load failed for %q: %v", path, err)
}

func SaveFailed(path string, err error) {
	log.Printf("cmaps: save failed for %q: %v", path, err)
}
