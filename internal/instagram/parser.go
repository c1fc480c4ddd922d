package instagram

import (
	"context"
	"fmt"
	"net/http"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"go.uber.org/zap"
)

// ProfileStats is what the public profile page exposes without auth.
type ProfileStats struct {
	Handle    string    `json:"handle"`
	Followers *int      `json:"followers,omitempty"`
	Following *int      `json:"following,omitempty"`
	Posts     *int      `json:"posts,omitempty"`
	FullName  string    `json:"full_name,omitempty"`
	FetchedAt time.Time `json:"fetched_at"`
}

type Parser struct {
	httpClient *http.Client
	log        *zap.Logger
	maxRetries int
}

func NewParser(timeoutMS, maxRetries int, log *zap.Logger) *Parser {
	return &Parser{
		httpClient: &http.Client{
			Timeout: time.Duration(timeoutMS) * time.Millisecond,
		},
		log:        log,
		maxRetries: maxRetries,
	}
}

// FetchProfile loads the public profile page and reads the counters out of
// the og:description meta tag, e.g.
// "2.5M Followers, 312 Following, 1,204 Posts - ...".
func (p *Parser) FetchProfile(ctx context.Context, handle string) (*ProfileStats, error) {
	url := fmt.Sprintf("https://www.instagram.com/%s/", handle)

	var doc *goquery.Document
	var lastErr error

	for attempt := 0; attempt <= p.maxRetries; attempt++ {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
		if err != nil {
			return nil, err
		}
		req.Header.Set("User-Agent", "Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36")
		req.Header.Set("Accept-Language", "en-US,en;q=0.9")

		resp, err := p.httpClient.Do(req)
		if err != nil {
			lastErr = err
			time.Sleep(time.Duration(attempt+1) * 500 * time.Millisecond)
			continue
		}

		if resp.StatusCode == http.StatusNotFound {
			resp.Body.Close()
			return nil, fmt.Errorf("profile %q not found", handle)
		}
		if resp.StatusCode != http.StatusOK {
			resp.Body.Close()
			lastErr = fmt.Errorf("HTTP %d for %s", resp.StatusCode, url)
			time.Sleep(time.Duration(attempt+1) * 500 * time.Millisecond)
			continue
		}

		doc, err = goquery.NewDocumentFromReader(resp.Body)
		resp.Body.Close()
		if err != nil {
			lastErr = err
			continue
		}
		lastErr = nil
		break
	}

	if lastErr != nil {
		return nil, lastErr
	}

	stats := &ProfileStats{
		Handle:    handle,
		FetchedAt: time.Now(),
	}

	desc, _ := doc.Find(`meta[property="og:description"]`).Attr("content")
	if desc == "" {
		return nil, fmt.Errorf("no og:description on profile %q", handle)
	}
	parseOGDescription(desc, stats)
	if stats.Followers == nil {
		return nil, fmt.Errorf("no follower count on profile %q", handle)
	}

	if title, ok := doc.Find(`meta[property="og:title"]`).Attr("content"); ok {
		// "Full Name (@handle) • Instagram photos and videos"
		if i := strings.Index(title, "(@"); i > 0 {
			stats.FullName = strings.TrimSpace(title[:i])
		}
	}

	return stats, nil
}

var counterRE = regexp.MustCompile(`([\d,.]+[KkMmBb]?)\s+(Followers|Following|Posts)`)

func parseOGDescription(desc string, stats *ProfileStats) {
	for _, m := range counterRE.FindAllStringSubmatch(desc, -1) {
		n := parseCount(m[1])
		switch m[2] {
		case "Followers":
			stats.Followers = &n
		case "Following":
			stats.Following = &n
		case "Posts":
			stats.Posts = &n
		}
	}
}

var countRE = regexp.MustCompile(`[\d,.]+[KkMmBb]?`)

func parseCount(text string) int {
	text = strings.ReplaceAll(text, " ", "")
	text = strings.ReplaceAll(text, ",", "")

	match := countRE.FindString(text)
	if match == "" {
		return 0
	}

	multiplier := 1.0
	switch {
	case strings.HasSuffix(match, "K"), strings.HasSuffix(match, "k"):
		multiplier = 1e3
		match = match[:len(match)-1]
	case strings.HasSuffix(match, "M"), strings.HasSuffix(match, "m"):
		multiplier = 1e6
		match = match[:len(match)-1]
	case strings.HasSuffix(match, "B"), strings.HasSuffix(match, "b"):
		multiplier = 1e9
		match = match[:len(match)-1]
	}

	f, err := strconv.ParseFloat(match, 64)
	if err != nil {
		return 0
	}
	return int(f * multiplier)
}
