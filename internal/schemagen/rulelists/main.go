package main

import (
	"flag"
	"log"
	"os"

	"github.com/macropower/modelkit/api/v1beta1/rulelists"
	"github.com/macropower/modelkit/pkg/schema"
)

var outFile = flag.String("o", "schema.json", "Output file for the generated schema")

func main() {
	flag.Parse()

	// Paths are relative to the go:generate directive in the rulelists
	// package, which is where this runs.
	gen := schema.NewGenerator(&rulelists.RuleList{},
		"github.com/macropower/modelkit/api",
		"../..",
	)
	jsData, err := gen.Generate()
	if err != nil {
		log.Fatalf("generate JSON schema: %v", err)
	}

	// Write schema.json file.
	err = os.WriteFile(*outFile, jsData, 0o600)
	if err != nil {
		log.Fatalf("write schema file: %v", err)
	}
}
