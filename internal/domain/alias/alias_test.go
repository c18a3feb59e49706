package alias_test

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"

	alias "github.com/verdiblanco/rumormill/internal/domain/alias"
	. "github.com/smartystreets/goconvey/convey"
)

func TestInMemoryIndex(t *testing.T) {
	ctx := context.Background()

	Convey("Given a new alias index", t, func() {
		idx := alias.NewInMemoryIndex()

		Convey("When resolving an unknown name", func() {
			_, ok := idx.Resolve(ctx, "isco")

			Convey("Then it should not resolve", func() {
				So(ok, ShouldBeFalse)
			})
		})

		Convey("When registering a name", func() {
			err := idx.Register(ctx, "isco", "p1")

			Convey("Then it should resolve to the player", func() {
				So(err, ShouldBeNil)
				id, ok := idx.Resolve(ctx, "isco")
				So(ok, ShouldBeTrue)
				So(id, ShouldEqual, "p1")
				So(idx.Size(), ShouldEqual, 1)
			})

			Convey("And registering the same mapping again is a no-op", func() {
				So(idx.Register(ctx, "isco", "p1"), ShouldBeNil)
				So(idx.Size(), ShouldEqual, 1)
			})

			Convey("And registering the name for another player conflicts", func() {
				err := idx.Register(ctx, "isco", "p2")
				So(errors.Is(err, alias.ErrAliasConflict), ShouldBeTrue)

				id, _ := idx.Resolve(ctx, "isco")
				So(id, ShouldEqual, "p1")
			})
		})

		Convey("When registering invalid input", func() {
			So(errors.Is(idx.Register(ctx, "", "p1"), alias.ErrInvalidAlias), ShouldBeTrue)
			So(errors.Is(idx.Register(ctx, "isco", ""), alias.ErrInvalidAlias), ShouldBeTrue)
		})

		Convey("When a player owns several aliases", func() {
			So(idx.Register(ctx, "isco", "p1"), ShouldBeNil)
			So(idx.Register(ctx, "isco alarcon", "p1"), ShouldBeNil)
			So(idx.Register(ctx, "francisco alarcon", "p1"), ShouldBeNil)

			Convey("Then Aliases returns all of them", func() {
				So(idx.Aliases(ctx, "p1"), ShouldHaveLength, 3)
			})

			Convey("And Unregister removes a single mapping", func() {
				idx.Unregister(ctx, "isco alarcon", "p1")
				_, ok := idx.Resolve(ctx, "isco alarcon")
				So(ok, ShouldBeFalse)
				So(idx.Aliases(ctx, "p1"), ShouldHaveLength, 2)
			})

			Convey("And Unregister ignores names owned by someone else", func() {
				So(idx.Register(ctx, "fekir", "p2"), ShouldBeNil)
				idx.Unregister(ctx, "fekir", "p1")
				id, ok := idx.Resolve(ctx, "fekir")
				So(ok, ShouldBeTrue)
				So(id, ShouldEqual, "p2")
			})
		})

		Convey("When reassigning every alias of a duplicate", func() {
			So(idx.Register(ctx, "isco", "dup"), ShouldBeNil)
			So(idx.Register(ctx, "isco alarcon", "dup"), ShouldBeNil)
			So(idx.Register(ctx, "fekir", "primary"), ShouldBeNil)

			moved := idx.Reassign(ctx, "dup", "primary")

			Convey("Then the moved names resolve to the primary", func() {
				So(moved, ShouldHaveLength, 2)
				for _, name := range moved {
					id, ok := idx.Resolve(ctx, name)
					So(ok, ShouldBeTrue)
					So(id, ShouldEqual, "primary")
				}
				So(idx.Aliases(ctx, "dup"), ShouldBeEmpty)
				So(idx.Aliases(ctx, "primary"), ShouldHaveLength, 3)
			})

			Convey("And reassigning a player with no aliases moves nothing", func() {
				So(idx.Reassign(ctx, "dup", "primary"), ShouldBeEmpty)
			})
		})
	})
}

func TestInMemoryIndexConcurrency(t *testing.T) {
	ctx := context.Background()

	Convey("Given concurrent registrations", t, func() {
		idx := alias.NewInMemoryIndex(alias.WithInitialCapacity(1000))

		var wg sync.WaitGroup
		for i := 0; i < 10; i++ {
			wg.Add(1)
			go func(n int) {
				defer wg.Done()
				for j := 0; j < 100; j++ {
					name := fmt.Sprintf("player %d %d", n, j)
					_ = idx.Register(ctx, name, fmt.Sprintf("p%d", n))
				}
			}(i)
		}
		wg.Wait()

		Convey("Then every mapping should be present", func() {
			So(idx.Size(), ShouldEqual, 1000)
		})
	})
}
