// Package cli implements the mockigd command-line interface.
//
// The serve command runs a gateway in the foreground with a baseline mock
// for every supported action. describe and operations print the documents
// and the action catalog without starting anything.
package cli
