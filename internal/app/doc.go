// Package app contains the core application logic. It loads puzzle
// definitions, runs each scan and walk, prints their answers and writes walk
// snapshots, independent of any specific entrypoint like a CLI.
package app
