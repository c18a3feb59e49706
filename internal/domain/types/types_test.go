package types_test

import (
	"testing"
	"time"

	. "github.com/smartystreets/goconvey/convey"

	"github.com/verdiblanco/rumormill/internal/domain/model"
	"github.com/verdiblanco/rumormill/internal/domain/types"
)

func TestTrendingEntry(t *testing.T) {
	Convey("Given a player record", t, func() {
		last := time.Date(2026, 2, 3, 12, 0, 0, 0, time.UTC)
		p := model.Player{
			ID:         "p1",
			Name:       "Isco",
			RumorCount: 7,
			LastSeenAt: last,
		}

		Convey("When building a trending entry", func() {
			entry := types.NewTrendingEntry(3, p)

			Convey("Then it carries the rank and the player fields", func() {
				So(entry.Rank, ShouldEqual, 3)
				So(entry.PlayerID, ShouldEqual, "p1")
				So(entry.Name, ShouldEqual, "Isco")
				So(entry.RumorCount, ShouldEqual, 7)
				So(entry.LastSeenAt.Equal(last), ShouldBeTrue)
			})
		})
	})
}

func TestPlayerView(t *testing.T) {
	Convey("Given a player with aliases", t, func() {
		p := model.Player{
			ID:             "p1",
			Name:           "Isco Alarcón",
			NormalizedName: "isco alarcon",
			Aliases:        []string{"isco"},
			RumorCount:     2,
		}

		Convey("When building its view", func() {
			view := types.NewPlayerView(p)

			Convey("Then all public fields are present", func() {
				So(view.ID, ShouldEqual, "p1")
				So(view.NormalizedName, ShouldEqual, "isco alarcon")
				So(view.Aliases, ShouldResemble, []string{"isco"})
				So(view.AbsorbedInto, ShouldBeEmpty)
			})
		})
	})

	Convey("Given a player with no aliases", t, func() {
		view := types.NewPlayerView(model.Player{ID: "p2", Name: "Fekir"})

		Convey("Then the alias list serializes as an empty array, not null", func() {
			So(view.Aliases, ShouldNotBeNil)
			So(view.Aliases, ShouldBeEmpty)
		})
	})

	Convey("Given a retired player", t, func() {
		view := types.NewPlayerView(model.Player{ID: "dup", AbsorbedInto: "p1"})

		Convey("Then the view names the absorbing record", func() {
			So(view.AbsorbedInto, ShouldEqual, "p1")
		})
	})
}

func TestRumorView(t *testing.T) {
	Convey("Given a rumor item", t, func() {
		pub := time.Date(2026, 2, 2, 10, 0, 0, 0, time.UTC)
		r := model.RumorItem{
			Title:       "Isco linked with summer move",
			Link:        "https://rumors.example/isco-move",
			PublishDate: pub,
			Source:      "transfer-talk",
		}

		Convey("When building its view", func() {
			view := types.NewRumorView(r)

			Convey("Then it mirrors the item", func() {
				So(view.Title, ShouldEqual, r.Title)
				So(view.Link, ShouldEqual, r.Link)
				So(view.PublishDate.Equal(pub), ShouldBeTrue)
				So(view.Source, ShouldEqual, "transfer-talk")
				So(view.Description, ShouldBeEmpty)
			})
		})
	})
}
