// Package mocks provides map-backed implementations of the repository
// interfaces. They honour the same not-found, uniqueness and single-use
// contracts as the database backends and are meant for tests.
package mocks
