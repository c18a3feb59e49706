package flags_test

import (
	"testing"

	. "github.com/smartystreets/goconvey/convey"

	"github.com/verdiblanco/rumormill/internal/flags"
)

func TestStaticProvider(t *testing.T) {
	Convey("Given a static flag provider", t, func() {
		p := flags.NewStaticProvider(map[string]bool{
			"rumor_sync": true,
			"dark_mode":  false,
		})

		Convey("Then enabled flags report true", func() {
			So(p.IsEnabled("rumor_sync"), ShouldBeTrue)
		})

		Convey("Then disabled flags report false", func() {
			So(p.IsEnabled("dark_mode"), ShouldBeFalse)
		})

		Convey("Then unknown flags default to disabled", func() {
			So(p.IsEnabled("nonexistent"), ShouldBeFalse)
		})

		Convey("When a flag is flipped at runtime", func() {
			p.Set("rumor_sync", false)

			Convey("Then the new value is visible", func() {
				So(p.IsEnabled("rumor_sync"), ShouldBeFalse)
			})
		})
	})

	Convey("Given a provider built from a nil map", t, func() {
		p := flags.NewStaticProvider(nil)

		Convey("Then every flag is disabled", func() {
			So(p.IsEnabled("anything"), ShouldBeFalse)
		})
	})
}
