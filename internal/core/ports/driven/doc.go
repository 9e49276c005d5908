// Package driven defines the interfaces that core calls OUT to infrastructure.
//
// These are the "driven" or "secondary" ports in hexagonal architecture.
// Core services depend on these interfaces, and infrastructure adapters
// implement them.
//
// # Required Interfaces
//
// These must be provided for the application to function:
//
//   - TextBackend, ImageBackend, VideoBackend, AudioBackend, TableBackend:
//     per content type model capability sets
//   - BackendLoader: Builds a backend from a ModelConfig
//   - Chunker, GraphBuilder: Split text and relate the resulting chunks
//   - TemplateStore: Named templates for transform actions
//   - ConfigStore: Application configuration
//
// # Optional Interfaces
//
// These can be nil - the application degrades gracefully:
//
//   - CompletionClient: External model endpoint. Without it, every AI request falls back.
//   - ResponseCache: AI response cache. Without it, every request goes to the endpoint.
//   - RecordStore: Storage collaborator that indexes processed documents.
//
// # Import Rules
//
//   - Can Import: domain package only
//   - Cannot Import: Any adapter or postprocessor package
package driven
