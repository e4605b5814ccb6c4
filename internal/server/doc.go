// Package server provides the HTTP server for the chartboard dashboard.
//
// This package is internal to chartboard and handles all HTTP concerns:
//
//   - Dashboard page: the page template at "/", with chart data inlined
//   - Static assets: the browser script under "/assets/"
//   - JSON API: Chart.js configurations at "/api/charts" and "/api/charts/{id}"
//   - Images: server-side renders at "/charts/{id}.png" and "/charts/{id}.svg"
//
// API and image routes allow cross-origin GET requests, and responses are
// gzip-compressed for clients that accept it. The server supports
// graceful shutdown via context cancellation, with a 5-second timeout for
// in-flight requests.
//
// Users of the chartboard library should not need to interact with this
// package directly. The server is started by [chartboard.Board.Start].
package server
