// Package template defines the template renderer seam used by component
// partials and stage chrome. The gotemplate subpackage provides the default
// pongo2-backed implementation.
package template
