// Package config defines the settings model of the subdsl tool and the
// Loader interface for reading it from a settings file.
//
// The `config.Settings` value is format-agnostic: the HCL implementation in
// this package decodes `log`, `validate` and `output` blocks into it, and the
// CLI layers its flags on top before handing the result to the app.
package config
