package feeds

import (
	"encoding/xml"
	"fmt"
	"strings"
	"time"

	"github.com/verdiblanco/rumormill/internal/domain/model"
)

// rssDocument is the subset of RSS 2.0 we consume.
type rssDocument struct {
	XMLName xml.Name `xml:"rss"`
	Channel struct {
		Items []rssItem `xml:"item"`
	} `xml:"channel"`
}

type rssItem struct {
	Title       string `xml:"title"`
	Link        string `xml:"link"`
	PubDate     string `xml:"pubDate"`
	Description string `xml:"description"`
}

// atomFeed is the subset of Atom we consume.
type atomFeed struct {
	XMLName xml.Name    `xml:"feed"`
	Entries []atomEntry `xml:"entry"`
}

type atomEntry struct {
	Title   string     `xml:"title"`
	Links   []atomLink `xml:"link"`
	Updated string     `xml:"updated"`
	Summary string     `xml:"summary"`
	Content string     `xml:"content"`
}

type atomLink struct {
	Rel  string `xml:"rel,attr"`
	Href string `xml:"href,attr"`
}

// pubDateLayouts lists the date formats observed across real rumor feeds,
// tried in order.
var pubDateLayouts = []string{
	time.RFC1123Z,
	time.RFC1123,
	time.RFC822Z,
	time.RFC822,
	time.RFC3339,
	"2006-01-02T15:04:05Z0700",
	"2006-01-02 15:04:05",
}

// parseFeed decodes an RSS 2.0 or Atom payload into rumor items tagged with
// the source name. Items without a link are skipped; items with an
// unparseable date keep a zero date and sort last.
func parseFeed(data []byte, source string) ([]model.RumorItem, error) {
	var rss rssDocument
	if err := xml.Unmarshal(data, &rss); err == nil && rss.XMLName.Local == "rss" {
		return fromRSS(rss, source), nil
	}

	var atom atomFeed
	if err := xml.Unmarshal(data, &atom); err == nil && atom.XMLName.Local == "feed" {
		return fromAtom(atom, source), nil
	}

	return nil, fmt.Errorf("%w: %s payload is neither rss nor atom", ErrParseFailed, source)
}

func fromRSS(doc rssDocument, source string) []model.RumorItem {
	items := make([]model.RumorItem, 0, len(doc.Channel.Items))
	for _, it := range doc.Channel.Items {
		link := strings.TrimSpace(it.Link)
		if link == "" {
			continue
		}
		items = append(items, model.RumorItem{
			Title:       strings.TrimSpace(it.Title),
			Link:        link,
			PublishDate: parsePubDate(it.PubDate),
			Source:      source,
			Description: strings.TrimSpace(it.Description),
		})
	}
	return items
}

func fromAtom(feed atomFeed, source string) []model.RumorItem {
	items := make([]model.RumorItem, 0, len(feed.Entries))
	for _, e := range feed.Entries {
		link := atomEntryLink(e.Links)
		if link == "" {
			continue
		}
		desc := strings.TrimSpace(e.Summary)
		if desc == "" {
			desc = strings.TrimSpace(e.Content)
		}
		items = append(items, model.RumorItem{
			Title:       strings.TrimSpace(e.Title),
			Link:        link,
			PublishDate: parsePubDate(e.Updated),
			Source:      source,
			Description: desc,
		})
	}
	return items
}

// atomEntryLink prefers rel="alternate" (or no rel) over other link kinds.
func atomEntryLink(links []atomLink) string {
	var fallback string
	for _, l := range links {
		href := strings.TrimSpace(l.Href)
		if href == "" {
			continue
		}
		if l.Rel == "" || l.Rel == "alternate" {
			return href
		}
		if fallback == "" {
			fallback = href
		}
	}
	return fallback
}

func parsePubDate(raw string) time.Time {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return time.Time{}
	}
	for _, layout := range pubDateLayouts {
		if t, err := time.Parse(layout, raw); err == nil {
			return t.UTC()
		}
	}
	return time.Time{}
}
