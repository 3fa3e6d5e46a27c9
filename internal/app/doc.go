// Package app contains the core application logic. It defines the main App
// struct, its configuration, and the submission pipeline from input files to
// scheduler job ids, decoupled from any specific entrypoint like a CLI.
package app
