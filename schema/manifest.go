package schema

// ExtensionSchemaURLs maps course.yml extension keys to the canonical URL of
// their JSON schema. Extensions live outside the typed config sections (the
// `logging` block is the built-in example), and this manifest is how their
// schemas would be composed into the base schema for validation and IDE
// support once published.
var ExtensionSchemaURLs = map[string]string{
	// Built-in extensions ship with the binary, so nothing is fetched yet.
	// External extensions register here when they publish:
	// "analytics": "https://schemas.lectern.dev/analytics/v1.schema.json",
}
