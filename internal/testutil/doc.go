// Package testutil holds fixtures shared by the package tests: temporary
// step trees and a goroutine-safe log buffer.
package testutil
