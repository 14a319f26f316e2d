// Package extract implements the field extractor for AL extension files.
//
// For every source file with the recognized extension it locates the first
// line that carries an object number and builds a model.ExtensionRecord
// from it:
//
//	pageextension 50100 "Customer Card Ext" extends "Customer Card"
//	^category     ^id                        ^object name after "extends "
//
// Two matching modes exist. In content mode the identifier is the first
// standalone digit token on the line. In name mode it is the digit run that
// directly follows a run of letters (e.g. "PEX50292"), taken from the file
// name when the name carries one.
//
// The package is pure apart from reading file contents: no logging, no
// writes, no package-level mutable state.
package extract
