package main

import (
	"context"
	"encoding/csv"
	"fmt"
	"log"
	"os"
	"strings"
)

// bulkStats tallies match quality across a bulk run, mirroring what the
// lookup confidence tiers mean in practice.
type bulkStats struct {
	total    int
	high     int // confidence >= 0.9
	medium   int // 0.7 <= confidence < 0.9
	low      int // below 0.7 (promo-penalised fuzzy matches)
	notFound int
	flagged  int // matches with validation issues
}

// runBulk looks up every product named in the first column of a CSV file
// and writes a results CSV. A header row is detected and skipped.
func runBulk() {
	if len(os.Args) < 3 {
		log.Fatal("Usage: grocerscan bulk <input.csv> [output.csv]")
	}
	inPath := os.Args[2]
	outPath := "grocerscan_results.csv"
	if len(os.Args) >= 4 {
		outPath = os.Args[3]
	}

	a, err := newApp()
	if err != nil {
		log.Fatalf("Failed to start: %v", err)
	}
	defer a.close()

	queries, err := readQueries(inPath)
	if err != nil {
		log.Fatalf("Reading %s: %v", inPath, err)
	}
	if len(queries) == 0 {
		log.Fatalf("No product names found in %s", inPath)
	}
	log.Printf("Looking up %d products from %s", len(queries), inPath)

	out, err := os.Create(outPath)
	if err != nil {
		log.Fatalf("Creating %s: %v", outPath, err)
	}
	defer out.Close()

	w := csv.NewWriter(out)
	defer w.Flush()
	if err := w.Write([]string{"query", "matched_name", "retailer", "price", "confidence", "match_type", "issues"}); err != nil {
		log.Fatalf("Writing header: %v", err)
	}

	var stats bulkStats
	ctx := context.Background()
	for i, query := range queries {
		stats.total++
		log.Printf("[%d/%d] %s", i+1, len(queries), query)

		res, _, err := a.lookup(ctx, query)
		if err != nil {
			log.Printf("Lookup failed for %q: %v", query, err)
		}
		if res == nil {
			stats.notFound++
			if err := w.Write([]string{query, "", "", "", "", "not_found", ""}); err != nil {
				log.Fatalf("Writing row: %v", err)
			}
			continue
		}

		switch {
		case res.Confidence >= 0.9:
			stats.high++
		case res.Confidence >= 0.7:
			stats.medium++
		default:
			stats.low++
		}
		if len(res.ValidationIssues) > 0 {
			stats.flagged++
		}

		price := ""
		if res.Price != nil {
			price = fmt.Sprintf("%.2f", *res.Price)
		}
		row := []string{
			query,
			res.Name,
			res.Retailer,
			price,
			fmt.Sprintf("%.3f", res.Confidence),
			string(res.MatchType),
			strings.Join(res.ValidationIssues, "; "),
		}
		if err := w.Write(row); err != nil {
			log.Fatalf("Writing row: %v", err)
		}
	}

	log.Printf("Done: %d products, %d high / %d medium / %d low confidence, %d not found, %d flagged",
		stats.total, stats.high, stats.medium, stats.low, stats.notFound, stats.flagged)
	log.Printf("Results written to %s", outPath)
}

// readQueries loads product names from the first CSV column, skipping an
// obvious header row and blank lines.
func readQueries(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1
	records, err := r.ReadAll()
	if err != nil {
		return nil, err
	}

	var queries []string
	for i, record := range records {
		if len(record) == 0 {
			continue
		}
		name := strings.TrimSpace(record[0])
		if name == "" {
			continue
		}
		if i == 0 && isHeader(name) {
			continue
		}
		queries = append(queries, name)
	}
	return queries, nil
}

func isHeader(cell string) bool {
	switch strings.ToLower(cell) {
	case "product", "product name", "name", "query", "item":
		return true
	}
	return false
}
