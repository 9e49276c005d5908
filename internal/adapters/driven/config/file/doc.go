// Package file provides file-based implementations of driven port interfaces.
// These adapters persist data to the local filesystem.
//
// Adapters:
//   - ConfigStore: TOML-based configuration storage
//   - TemplateStore: text/template files for transform actions
//   - Workflows: YAML workflow definitions with optional hot reload
package file
