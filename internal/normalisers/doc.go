// Package normalisers converts markup formats into plain text before they
// reach the text backend. Each normaliser knows how to extract text from a
// specific MIME type; the Registry picks one by sniffing the content.
package normalisers
