// Package profile holds the contact data rendered into a signature and the
// single field-extraction step every formatter (HTML templates, plain text,
// vCard) reads from, so a new profile field only needs wiring in one place.
package profile
