package main

import (
	"context"
	"fmt"
	"log"

	"grocerscan/cache"
	"grocerscan/config"
	"grocerscan/index"
	"grocerscan/matcher"
	"grocerscan/scraper"
	"grocerscan/store"
)

// earlyExitConfidence stops probing further search terms once a match
// this strong is found.
const earlyExitConfidence = 0.8

// app wires the lookup pipeline together: scraper, cache, matcher and
// the optional persistence and index layers.
type app struct {
	cfg     *config.Config
	matcher *matcher.Matcher
	scraper *scraper.Client
	cache   *cache.Store
	repo    *store.Repository // nil without DATABASE_URL
	idx     *index.Index      // nil without MEILI_URL
}

func newApp() (*app, error) {
	cfg := config.Load()

	mCfg := matcher.DefaultConfig()
	mCfg.ScanAllRetailers = cfg.ScanAllRetailers

	a := &app{
		cfg:     cfg,
		matcher: matcher.New(mCfg),
		scraper: scraper.New(cfg.TrolleyBaseURL, cfg.RequestTimeout, cfg.ScrapeRate),
	}

	c, err := cache.Open(cfg.CachePath)
	if err != nil {
		return nil, fmt.Errorf("opening cache: %w", err)
	}
	a.cache = c

	if cfg.DatabaseURL != "" {
		repo, err := store.Open(cfg.DatabaseURL)
		if err != nil {
			log.Printf("Warning: lookup history disabled: %v", err)
		} else {
			a.repo = repo
			log.Println("Database connected successfully")
		}
	}

	a.idx = index.New(cfg.MeiliURL, cfg.MeiliAPIKey, cfg.MeiliIndex)
	if a.idx != nil {
		if err := a.idx.Setup(); err != nil {
			log.Printf("Warning: search index disabled: %v", err)
			a.idx = nil
		}
	}
	return a, nil
}

func (a *app) close() {
	if a.cache != nil {
		a.cache.Close()
	}
	if a.repo != nil {
		a.repo.Close()
	}
}

// lookup runs one product query end to end: derive search terms, scrape
// candidates (cached), attach retailer prices, and select the best match.
// Probing stops early once a confident match appears. The returned
// listings are every candidate considered, for diagnostics.
func (a *app) lookup(ctx context.Context, query string) (*matcher.MatchResult, []matcher.Listing, error) {
	terms := a.matcher.SearchTerms(query)
	if len(terms) == 0 {
		return nil, nil, fmt.Errorf("no usable search terms for %q", query)
	}

	var listings []matcher.Listing
	seen := make(map[string]bool)
	var best *matcher.MatchResult

	for _, term := range terms {
		cards, err := a.searchCached(ctx, term)
		if err != nil {
			log.Printf("Search for %q failed: %v", term, err)
			continue
		}
		for _, card := range cards {
			listing := a.toListing(ctx, card)
			key := listing.URL
			if key == "" {
				key = listing.Name
			}
			if key == "" || seen[key] {
				continue
			}
			seen[key] = true
			listings = append(listings, listing)
		}

		best = a.matcher.SelectBest(query, listings, a.cfg.MatchThreshold)
		if best != nil && best.Confidence > earlyExitConfidence {
			break
		}
	}

	if best == nil {
		best = a.matcher.SelectBest(query, listings, a.cfg.MatchThreshold)
	}
	if best != nil {
		a.record(ctx, query, best)
	}
	return best, listings, nil
}

// searchCached wraps scraper.Search with the TTL cache.
func (a *app) searchCached(ctx context.Context, term string) ([]scraper.Candidate, error) {
	key := cache.Key("search", a.cfg.TrolleyBaseURL, term)

	var cards []scraper.Candidate
	if found, err := a.cache.Get(key, &cards); err != nil {
		log.Printf("Cache read failed for %q: %v", term, err)
	} else if found {
		return cards, nil
	}

	cards, err := a.scraper.Search(ctx, term)
	if err != nil {
		return nil, err
	}
	if err := a.cache.Set(key, cards, a.cfg.CacheTTL); err != nil {
		log.Printf("Cache write failed for %q: %v", term, err)
	}
	return cards, nil
}

// toListing converts a scraped card into a match candidate. Retailer
// prices come from the card text itself; a product page fetch fills them
// in when the card carries none.
func (a *app) toListing(ctx context.Context, card scraper.Candidate) matcher.Listing {
	listing := matcher.Listing{
		RawText: card.RawText,
		Name:    a.matcher.NormalizeName(card.RawText),
		URL:     card.URL,
	}

	listing.Prices = a.matcher.ExtractRetailerPrices(card.RawText)
	if len(listing.Prices) > 0 || card.URL == "" {
		return listing
	}

	key := cache.Key("page", card.URL)
	var pageText string
	if found, err := a.cache.Get(key, &pageText); err != nil || !found {
		pageText, err = a.scraper.FetchPageText(ctx, card.URL)
		if err != nil {
			log.Printf("Page fetch failed for %s: %v", card.URL, err)
			return listing
		}
		if err := a.cache.Set(key, pageText, a.cfg.CacheTTL); err != nil {
			log.Printf("Cache write failed for %s: %v", card.URL, err)
		}
	}
	listing.Prices = a.matcher.ExtractRetailerPrices(pageText)
	return listing
}

// record persists and indexes a match; failures here never fail a lookup.
func (a *app) record(ctx context.Context, query string, res *matcher.MatchResult) {
	if a.repo != nil {
		if err := a.repo.SaveResult(ctx, query, res); err != nil {
			log.Printf("Saving result for %q failed: %v", query, err)
		}
	}
	if a.idx != nil {
		brand, _ := a.matcher.SplitBrand(res.Name)
		if err := a.idx.IndexResult(query, brand, res); err != nil {
			log.Printf("Indexing result for %q failed: %v", query, err)
		}
	}
}
