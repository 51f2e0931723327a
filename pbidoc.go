// Package pbidoc documents Power BI template packages. It unpacks a .pbit
// archive, flattens the report layout and data model descriptors into
// tabular datasets, and renders them as a static documentation file.
//
// This package contains domain types and interfaces following Ben Johnson's
// Standard Package Layout. Implementations live in subdirectories named
// after their primary dependency (e.g., zip/, jsonparser/, excelize/).
package pbidoc
