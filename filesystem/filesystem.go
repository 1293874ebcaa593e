// Package filesystem holds the afero backend every file access goes through.
package filesystem

import "github.com/spf13/afero"

var backend = afero.Afero{Fs: afero.NewOsFs()}

// API returns the current backend.
func API() afero.Afero {
	return backend
}

// SetOsFs switches to the real filesystem.
func SetOsFs() {
	backend = afero.Afero{Fs: afero.NewOsFs()}
}

// SetMemMapFs switches to an empty in-memory filesystem. Tests call it from init.
func SetMemMapFs() {
	backend = afero.Afero{Fs: afero.NewMemMapFs()}
}
