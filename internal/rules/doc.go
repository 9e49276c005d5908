// Package rules provides category rules for the categorizer: keyword
// matching, AI scoring and plain functions.
package rules
