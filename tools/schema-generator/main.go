// Command schema-generator regenerates the embedded course.yml JSON schema
// from the config types. Run it after changing config structs:
//
//	go run ./tools/schema-generator
package main

import (
	"log"
	"os"
	"path/filepath"

	"github.com/lectern/lectern/config"
)

func main() {
	schemaBytes, err := config.GenerateSchema()
	if err != nil {
		log.Fatalf("Error generating schema: %v", err)
	}

	outputPath := filepath.Join("schema", "course.embedded.schema.json")
	if err := os.MkdirAll(filepath.Dir(outputPath), 0755); err != nil {
		log.Fatalf("Error creating schema directory: %v", err)
	}

	if err := os.WriteFile(outputPath, schemaBytes, 0644); err != nil {
		log.Fatalf("Error writing schema file: %v", err)
	}

	log.Printf("Successfully generated schema at %s", outputPath)
}
