package ports

// SchemaValidator validates decoded JSON documents against named schema documents.
//
// Validate returns a resource error when the schema cannot be loaded and a
// schema violation error when the document does not conform.
type SchemaValidator interface {
	Validate(schemaName string, document interface{}) error
}
