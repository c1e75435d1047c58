// Package objects holds the wire-level DTOs shared by handlers and services.
package objects
