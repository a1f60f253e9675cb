// Package datacite renders the internal resource graph as DataCite
// Metadata Schema 4.6 documents (JSON and XML), transforms external
// DataCite JSON back into the graph, and validates documents against the
// registry's acceptance rules.
package datacite

// Schema constants for the targeted DataCite Metadata Schema release.
const (
	Version        = "4.6"
	Namespace      = "http://datacite.org/schema/kernel-4"
	SchemaLocation = Namespace + " http://schema.datacite.org/meta/kernel-4.6/metadata.xsd"
)
