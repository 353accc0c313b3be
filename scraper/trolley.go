// Package scraper fetches and parses product search pages from
// Trolley.co.uk, the price-comparison site covering the tracked UK
// retailers.
package scraper

import (
	"context"
	"fmt"
	"math/rand"
	"net/http"
	"net/url"
	"regexp"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/time/rate"
)

// Candidate is one product card scraped from a search results page.
type Candidate struct {
	RawText string `json:"raw_text"`
	URL     string `json:"url,omitempty"`
}

// Client scrapes the target site politely: rate limited, with rotating
// browser user agents. Safe for concurrent use.
type Client struct {
	httpClient *http.Client
	baseURL    string
	limiter    *rate.Limiter
	userAgents []string
}

var defaultUserAgents = []string{
	"Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/126.0.0.0 Safari/537.36",
	"Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/126.0.0.0 Safari/537.36",
	"Mozilla/5.0 (Windows NT 10.0; Win64; x64; rv:127.0) Gecko/20100101 Firefox/127.0",
	"Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/605.1.15 (KHTML, like Gecko) Version/17.5 Safari/605.1.15",
}

// Card selectors tried in order; the first selector yielding results wins.
// Trolley has changed its markup before, so several generations are kept.
var cardSelectors = []string{
	"[data-testid=product-card]",
	".product-card",
	".product-item",
	".search-result",
	"article",
}

// navWords filter out navigation chrome picked up by the generic fallback.
var navWords = []string{"sign in", "register", "basket", "cookie", "privacy", "about us"}

// New builds a scrape client. perSecond bounds outbound request rate;
// values at or below zero fall back to one request every two seconds.
func New(baseURL string, timeout time.Duration, perSecond float64) *Client {
	if perSecond <= 0 {
		perSecond = 0.5
	}
	return &Client{
		httpClient: &http.Client{Timeout: timeout},
		baseURL:    strings.TrimRight(baseURL, "/"),
		limiter:    rate.NewLimiter(rate.Limit(perSecond), 1),
		userAgents: defaultUserAgents,
	}
}

// Search scrapes the results page for a search term and returns the
// product cards found on it.
func (c *Client) Search(ctx context.Context, term string) ([]Candidate, error) {
	searchURL := fmt.Sprintf("%s/search/results?q=%s", c.baseURL, url.QueryEscape(term))
	doc, err := c.fetch(ctx, searchURL)
	if err != nil {
		return nil, fmt.Errorf("searching %q: %w", term, err)
	}
	return c.parseCards(doc), nil
}

// FetchPageText retrieves a product page and returns its visible text,
// the input for retailer price extraction.
func (c *Client) FetchPageText(ctx context.Context, pageURL string) (string, error) {
	doc, err := c.fetch(ctx, pageURL)
	if err != nil {
		return "", fmt.Errorf("fetching %s: %w", pageURL, err)
	}
	doc.Find("script, style, noscript").Remove()
	return normalizeSpace(doc.Text()), nil
}

func (c *Client) fetch(ctx context.Context, rawURL string) (*goquery.Document, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", c.userAgents[rand.Intn(len(c.userAgents))])
	req.Header.Set("Accept", "text/html,application/xhtml+xml")
	req.Header.Set("Accept-Language", "en-GB,en;q=0.9")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status %d", resp.StatusCode)
	}
	return goquery.NewDocumentFromReader(resp.Body)
}

func (c *Client) parseCards(doc *goquery.Document) []Candidate {
	for _, selector := range cardSelectors {
		var cards []Candidate
		doc.Find(selector).Each(func(_ int, s *goquery.Selection) {
			if card, ok := c.extractCard(s); ok {
				cards = append(cards, card)
			}
		})
		if len(cards) > 0 {
			return cards
		}
	}

	// Generic fallback: any div whose text looks like a product listing.
	var cards []Candidate
	doc.Find("div").Each(func(_ int, s *goquery.Selection) {
		if s.Children().Is("div") {
			return
		}
		if card, ok := c.extractCard(s); ok {
			cards = append(cards, card)
		}
	})
	return cards
}

// extractCard pulls raw text and a product link out of one node. Text
// must be listing-sized and mention a price or quantity to qualify.
func (c *Client) extractCard(s *goquery.Selection) (Candidate, bool) {
	text := normalizeSpace(s.Text())
	if len(text) < 20 || len(text) > 500 {
		return Candidate{}, false
	}
	if !looksLikeListing(text) {
		return Candidate{}, false
	}
	lower := strings.ToLower(text)
	for _, w := range navWords {
		if strings.Contains(lower, w) {
			return Candidate{}, false
		}
	}

	card := Candidate{RawText: text}
	if href, ok := s.Find("a[href]").First().Attr("href"); ok {
		card.URL = c.absoluteURL(href)
	} else if href, ok := s.Attr("href"); ok {
		card.URL = c.absoluteURL(href)
	}
	return card, true
}

func (c *Client) absoluteURL(href string) string {
	if strings.HasPrefix(href, "http://") || strings.HasPrefix(href, "https://") {
		return href
	}
	return c.baseURL + "/" + strings.TrimLeft(href, "/")
}

var quantityHintPattern = regexp.MustCompile(`(?i)\b\d+(?:\.\d+)?\s*(?:kg|g|ml|l|packs?)\b`)

func looksLikeListing(text string) bool {
	return strings.Contains(text, "£") || quantityHintPattern.MatchString(text)
}

func normalizeSpace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
