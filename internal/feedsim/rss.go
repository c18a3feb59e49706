package feedsim

import (
	"encoding/xml"
	"fmt"
	"time"
)

type rssDocument struct {
	XMLName xml.Name   `xml:"rss"`
	Version string     `xml:"version,attr"`
	Channel rssChannel `xml:"channel"`
}

type rssChannel struct {
	Title       string    `xml:"title"`
	Link        string    `xml:"link"`
	Description string    `xml:"description"`
	Items       []rssItem `xml:"item"`
}

type rssItem struct {
	Title       string `xml:"title"`
	Link        string `xml:"link"`
	Description string `xml:"description"`
	PubDate     string `xml:"pubDate"`
	GUID        string `xml:"guid"`
}

// RenderRSS serializes items into an RSS 2.0 document for one source,
// newest item first the way real feeds publish.
func RenderRSS(source string, items []Item) ([]byte, error) {
	channel := rssChannel{
		Title:       source,
		Link:        "https://feedsim.invalid/" + source,
		Description: "Simulated transfer rumor feed",
	}

	for i := len(items) - 1; i >= 0; i-- {
		item := items[i]
		channel.Items = append(channel.Items, rssItem{
			Title:       item.Title,
			Link:        item.Link,
			Description: item.Description,
			PubDate:     item.PublishDate.Format(time.RFC1123Z),
			GUID:        item.Link,
		})
	}

	doc := rssDocument{Version: "2.0", Channel: channel}
	out, err := xml.MarshalIndent(doc, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to render feed %s: %w", source, err)
	}
	return append([]byte(xml.Header), out...), nil
}
