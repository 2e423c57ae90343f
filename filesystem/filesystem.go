// Package filesystem routes every file access of the CLI through one afero
// backend, so tests can run against memory.
package filesystem

import "github.com/spf13/afero"

var backend = osBackend()

func osBackend() afero.Afero {
	return afero.Afero{Fs: afero.NewOsFs()}
}

// API is the backend in use.
func API() afero.Afero {
	return backend
}

// SetOsFs switches to the real filesystem.
func SetOsFs() {
	backend = osBackend()
}

// SetMemMapFs switches to a fresh in-memory filesystem.
func SetMemMapFs() {
	backend = afero.Afero{Fs: afero.NewMemMapFs()}
}
