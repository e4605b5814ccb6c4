package store

import (
	"time"

	"github.com/wigest/chartboard/chart"
)

// Record is a chart mounted into a dashboard container.
type Record struct {
	// ContainerID is the id of the element the chart is mounted into.
	ContainerID string

	// HandleID identifies the chart instance.
	HandleID string

	// Chart is the mounted specification.
	Chart chart.Chart

	// MountedAt is when the chart was recorded.
	MountedAt time.Time
}

// Store defines the interface for recording and reading mounted charts.
//
// Store implementations must be safe for concurrent access: the board writes
// during mount while the server may already be reading.
type Store interface {
	// Put records a chart. A record for the same container replaces the
	// previous one and keeps its position.
	Put(rec Record)

	// Get returns the record for a container id.
	Get(containerID string) (Record, bool)

	// GetAll returns all records in mount order.
	// The returned slice is a snapshot; modifications do not affect the store.
	GetAll() []Record

	// Reset removes every record.
	Reset()
}
