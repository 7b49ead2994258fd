// Package widget defines the declarative widget specifications that make up a
// quick setup stage and the helpers that walk them.
//
// A widget tree arrives as JSON or YAML keyed by "widget_type". Unknown types
// decode without error and are treated as opaque leaves by every helper in this
// package.
package widget
