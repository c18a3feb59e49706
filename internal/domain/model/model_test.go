package model_test

import (
	"testing"
	"time"

	model "github.com/verdiblanco/rumormill/internal/domain/model"
	"github.com/smartystreets/goconvey/convey"
)

func TestRumorItem(t *testing.T) {
	convey.Convey("Given a RumorItem struct", t, func() {
		convey.Convey("When creating a new rumor", func() {
			published := time.Date(2026, 1, 10, 9, 30, 0, 0, time.UTC)
			rumor := model.RumorItem{
				Title:       "El Betis pretende fichar a Isco para enero",
				Link:        "https://example.com/rumors/isco-betis",
				PublishDate: published,
				Source:      "marca",
				Description: "El club andaluz prepara una oferta",
			}

			convey.Convey("Then it should have the correct values", func() {
				convey.So(rumor.Title, convey.ShouldContainSubstring, "Isco")
				convey.So(rumor.Link, convey.ShouldNotBeEmpty)
				convey.So(rumor.PublishDate, convey.ShouldEqual, published)
				convey.So(rumor.Source, convey.ShouldEqual, "marca")
			})
		})
	})
}

func TestPlayerRetired(t *testing.T) {
	convey.Convey("Given a Player record", t, func() {
		convey.Convey("When it has not been merged", func() {
			p := model.Player{ID: "p1", Name: "Isco", NormalizedName: "isco"}

			convey.Convey("Then it is not retired", func() {
				convey.So(p.Retired(), convey.ShouldBeFalse)
			})
		})

		convey.Convey("When it has been absorbed into another record", func() {
			p := model.Player{ID: "p2", AbsorbedInto: "p1"}

			convey.Convey("Then it is retired", func() {
				convey.So(p.Retired(), convey.ShouldBeTrue)
			})
		})
	})
}
