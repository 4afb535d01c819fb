package main

import (
	"log"
	"os"

	"mirrorpick/internal/config"

	json "github.com/goccy/go-json"
)

func main() {
	data, err := json.MarshalIndent(config.Schema(), "", "  ")
	if err != nil {
		log.Fatalf("Error marshaling schema: %v", err)
	}

	out := "mirrorpick.schema.json"
	if len(os.Args) > 1 {
		out = os.Args[1]
	}
	if err := os.WriteFile(out, append(data, '\n'), 0o644); err != nil {
		log.Fatalf("Error writing schema file: %v", err)
	}

	log.Printf("Successfully generated config schema at %s", out)
}
