// Package middleware contains HTTP middleware for the Fiber application.
//
// # Components
//
//   - auth: API key validation through the X-API-Key header. An empty key
//     leaves the API open, which suits a single-user workstation.
//   - rayid: Tags every request with a RayID, stored in the context locals
//     and echoed in the response headers for log correlation.
//
// RayID is registered first so every later log line carries it.
package middleware
