// Package store provides the registry of charts mounted on the dashboard.
//
// This package is internal to chartboard. The board's renderer records each
// chart it mounts here, and the HTTP server reads from it to build the page,
// the JSON API and server-side images.
//
// Records are keyed by container id and kept in mount order. The dashboard
// data is literal, so the store has no update stream; a new mount replaces
// the previous record for the same container in place.
package store
