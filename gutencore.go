// Package gutencore extracts the literary core of a Project Gutenberg
// ebook. Given an ebook page URL it scrapes bibliographic metadata,
// downloads the plain-text edition, asks a language model to locate the
// start and end anchors of the actual work, slices away the surrounding
// boilerplate, and writes the metadata JSON and cleaned text to disk.
//
// This package contains domain types and interfaces following Ben Johnson's
// Standard Package Layout. Implementations live in subdirectories named
// after their primary dependency (e.g., goquery/, gemini/, fs/).
package gutencore
