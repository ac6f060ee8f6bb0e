// Package app contains the core application logic of the subdsl tool. It
// defines the App struct, its configuration, and the check, dump and inspect
// commands, decoupled from the CLI that drives them.
package app
