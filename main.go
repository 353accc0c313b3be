// Command grocerscan finds the best current UK supermarket price for
// grocery products by scraping Trolley.co.uk and fuzzy-matching listings
// against the queried product name.
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"os"
)

func main() {
	if len(os.Args) >= 2 {
		switch os.Args[1] {
		case "lookup":
			runLookup()
			return
		case "bulk":
			runBulk()
			return
		case "help":
			fmt.Println("Usage: grocerscan [command]")
			fmt.Println("")
			fmt.Println("Commands:")
			fmt.Println("  (no args)      Start the HTTP API server")
			fmt.Println("  lookup <name>  Look up one product: grocerscan lookup \"Heinz Baked Beanz 415g\"")
			fmt.Println("  bulk <in.csv> [out.csv]  Look up every product in a CSV file")
			fmt.Println("  help           Show this help message")
			return
		}
	}
	runServer()
}

func runLookup() {
	if len(os.Args) < 3 {
		log.Fatal("Usage: grocerscan lookup \"<product name>\"")
	}
	query := os.Args[2]

	a, err := newApp()
	if err != nil {
		log.Fatalf("Failed to start: %v", err)
	}
	defer a.close()

	res, listings, err := a.lookup(context.Background(), query)
	if err != nil {
		log.Fatalf("Lookup failed: %v", err)
	}
	if res == nil {
		fmt.Printf("No match found for %q (%d candidates considered)\n", query, len(listings))
		return
	}

	out, err := json.MarshalIndent(res, "", "  ")
	if err != nil {
		log.Fatalf("Encoding result failed: %v", err)
	}
	fmt.Println(string(out))
	fmt.Printf("\n%d candidates considered\n", len(listings))
}
