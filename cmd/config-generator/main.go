// Package main is the entry point for the config-generator CLI.
//
// config-generator reads an annotated config.yaml schema and emits typed
// configuration structs plus the code that reads them:
//
//	config-generator [input-dir] [output-dir]
//	config-generator assets <output.json> <list.txt>
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/joho/godotenv"

	"config-generator/cmd/config-generator/internal"
)

func main() {
	// A missing .env file is fine; variables may come from the environment.
	_ = godotenv.Load()

	if err := internal.Run(context.Background(), os.Args[1:], os.Getenv); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}
