package service_test

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	. "github.com/smartystreets/goconvey/convey"

	"github.com/verdiblanco/rumormill/internal/adapters/feeds"
	service "github.com/verdiblanco/rumormill/internal/app"
)

const integrationFeed = `<?xml version="1.0" encoding="UTF-8"?>
<rss version="2.0">
  <channel>
    <title>Transfer Talk</title>
    <item>
      <title>Isco linked with a summer switch</title>
      <link>https://rumors.example/isco-switch</link>
      <pubDate>Mon, 02 Feb 2026 10:00:00 +0000</pubDate>
      <description>The playmaker tops the shortlist.</description>
    </item>
    <item>
      <title>Fekir agent spotted at training ground</title>
      <link>https://rumors.example/fekir-agent</link>
      <pubDate>Tue, 03 Feb 2026 09:00:00 +0000</pubDate>
    </item>
    <item>
      <title>Stadium renovation approved</title>
      <link>https://rumors.example/stadium</link>
      <pubDate>Tue, 03 Feb 2026 11:00:00 +0000</pubDate>
    </item>
  </channel>
</rss>`

func TestServiceIntegration(t *testing.T) {
	Convey("Given a service wired to a live feed", t, func() {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "application/rss+xml")
			fmt.Fprint(w, integrationFeed)
		}))
		defer srv.Close()

		svc := service.New(
			service.WithWorkerCount(2),
			service.WithQueueSize(100),
			service.WithDedupeSize(100),
			service.WithSources([]feeds.Source{{Name: "transfer-talk", URL: srv.URL}}),
		)
		defer svc.Stop()

		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		So(svc.Start(ctx), ShouldBeNil)

		isco, err := svc.CreatePlayer(ctx, "Isco", nil)
		So(err, ShouldBeNil)
		fekir, err := svc.CreatePlayer(ctx, "Fekir", nil)
		So(err, ShouldBeNil)
		_, err = svc.CreatePlayer(ctx, "Bellingham", nil)
		So(err, ShouldBeNil)

		Convey("When running a sync cycle", func() {
			report, err := svc.RunSyncCycle(ctx)
			So(err, ShouldBeNil)

			Convey("Then every feed item was fetched and enqueued", func() {
				So(report.Fetched, ShouldEqual, 3)
				So(report.Enqueued, ShouldEqual, 3)
				So(report.Duplicates, ShouldEqual, 0)
			})

			Convey("Then the latest rumors are exposed", func() {
				rumors := svc.Rumors(ctx)
				So(rumors, ShouldHaveLength, 3)
				// Sorted newest first.
				So(rumors[0].Link, ShouldEqual, "https://rumors.example/stadium")
			})

			Convey("Then mentioned players appear in trending", func() {
				waitForMentions(ctx, t, svc, 2)

				entries, terr := svc.Trending(ctx, 10)
				So(terr, ShouldBeNil)
				So(entries, ShouldHaveLength, 2)

				// Fekir's rumor is newer, so it ranks first.
				So(entries[0].PlayerID, ShouldEqual, fekir.ID)
				So(entries[0].Rank, ShouldEqual, 1)
				So(entries[1].PlayerID, ShouldEqual, isco.ID)

				// Bellingham had no mention and stays out of the list.
				for _, e := range entries {
					So(e.Name, ShouldNotEqual, "Bellingham")
				}
			})

			Convey("And a second cycle sees only duplicates", func() {
				report2, err2 := svc.RunSyncCycle(ctx)
				So(err2, ShouldBeNil)
				So(report2.Fetched, ShouldEqual, 3)
				So(report2.Enqueued, ShouldEqual, 0)
				So(report2.Duplicates, ShouldEqual, 3)
			})
		})
	})
}

// waitForMentions polls trending until the expected number of players have
// at least one recorded mention, or the deadline passes.
func waitForMentions(ctx context.Context, t *testing.T, svc *service.Service, want int) {
	t.Helper()
	deadline := time.Now().Add(5 * time.Second)
	for time.Now().Before(deadline) {
		entries, err := svc.Trending(ctx, 10)
		if err == nil && len(entries) >= want {
			return
		}
		time.Sleep(20 * time.Millisecond)
	}
	t.Fatalf("timed out waiting for %d trending players", want)
}
