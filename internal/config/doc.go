// Package config defines the format-agnostic model of a puzzle run and the
// Loader interface that produces it.
//
// The Model is the single source of truth for the app package. Concrete
// loaders, such as the HCL one, live in separate packages.
package config
