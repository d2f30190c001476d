// Package util provides generic utility functions for the pelatform toolkit.
//
// It includes slice operations, pointer helpers, map utilities, string
// sanitization, and size parsing.
package util
