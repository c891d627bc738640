// Package domain holds the core inventory entities and the repository
// interfaces implemented by the storage adapters. It has no dependencies on
// transport or persistence packages.
package domain
