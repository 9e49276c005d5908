// Package domain defines the core business entities for noteflow.
//
// This package is part of the hexagonal architecture's innermost layer.
// It has NO external dependencies and defines the fundamental types:
//
//   - ContentType: The closed set of content kinds the processor accepts
//   - ProcessedContent: The canonical output of processing and of every workflow action
//   - ProcessedDocument: The whole-document variant produced from a file
//   - DocumentGraph: Chunks and the weighted, typed edges between them
//   - WorkflowDefinition: A trigger plus an ordered list of actions
//   - ModelConfig: Backend configuration for one content type
//   - AIResponse: The always-valid result of an AI access call
//
// # Architectural Position
//
// Domain is at the centre of the hexagon. It may only import
// the Go standard library. All other packages depend on domain,
// never the reverse.
//
// # Import Rules
//
//   - Can Import: Standard library only
//   - Cannot Import: Any internal/ package, any external dependency
package domain
