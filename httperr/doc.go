// Package httperr carries error snapshots over HTTP.
//
// Write and Fiber encode any error as an apiError.Snapshot JSON body; FromResponse decodes
// such a body on the client side.
package httperr
