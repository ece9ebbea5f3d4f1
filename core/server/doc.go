// Package server holds configuration for the HTTP server.
//
// The server itself is a Fiber application assembled in the start command;
// this package only defines the settings it is built from (listen port and
// the API key protecting operational endpoints).
package server
