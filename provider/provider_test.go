package provider

import (
	"context"
	"errors"
	"testing"

	"github.com/anisan-cli/anisync/entry"
	"github.com/anisan-cli/anisync/fault"
	. "github.com/smartystreets/goconvey/convey"
)

func TestTable(t *testing.T) {
	Convey("Given a status table", t, func() {
		table := StatusTable("test",
			P(entry.NotInList, ""),
			P(entry.Current, "watching"),
			P(entry.Completed, "completed"),
			P(entry.OnHold, "on_hold"),
			P(entry.Dropped, "dropped"),
			P(entry.Planned, "plan"),
		).Alias("rewatching", entry.Current)

		Convey("Every status should round trip", func() {
			for _, status := range entry.Statuses {
				native, err := table.Native(status)
				So(err, ShouldBeNil)

				generic, err := table.Generic(native)
				So(err, ShouldBeNil)
				So(generic, ShouldEqual, status)
			}
		})

		Convey("An alias should decode but not encode", func() {
			status, err := table.Generic("rewatching")
			So(err, ShouldBeNil)
			So(status, ShouldEqual, entry.Current)

			native, _ := table.Native(entry.Current)
			So(native, ShouldEqual, "watching")
		})

		Convey("An unknown native value should be a protocol error", func() {
			_, err := table.Generic("binging")
			So(fault.Is(err, fault.Protocol), ShouldBeTrue)
		})
	})

	Convey("A partial status table should panic", t, func() {
		So(func() {
			StatusTable("test", P(entry.Current, 1))
		}, ShouldPanic)
	})

	Convey("A non-injective table should panic", t, func() {
		So(func() {
			NewTable("test", "kind", P(1, "a"), P(2, "a"))
		}, ShouldPanic)
	})
}

func TestPaginate(t *testing.T) {
	Convey("Given a source with five pages", t, func() {
		var requested []int
		fetch := func(_ context.Context, page int) ([]int, bool, error) {
			requested = append(requested, page)
			return []int{page * 10, page*10 + 1}, page < 5, nil
		}

		Convey("Without a limit it should stop when no page follows", func() {
			items, err := Paginate(context.Background(), 0, fetch)
			So(err, ShouldBeNil)
			So(requested, ShouldResemble, []int{1, 2, 3, 4, 5})
			So(items, ShouldHaveLength, 10)
		})

		Convey("With the find cap it should never go past it", func() {
			items, err := Paginate(context.Background(), FindPageCap, fetch)
			So(err, ShouldBeNil)
			So(requested, ShouldHaveLength, FindPageCap)
			So(items, ShouldResemble, []int{10, 11, 20, 21})
		})
	})

	Convey("A failing page should abort", t, func() {
		boom := errors.New("boom")
		_, err := Paginate(context.Background(), 0, func(_ context.Context, page int) ([]string, bool, error) {
			if page == 2 {
				return nil, false, boom
			}
			return []string{"a"}, true, nil
		})
		So(err, ShouldEqual, boom)
	})

	Convey("A cancelled context should stop before the first request", t, func() {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		called := false
		_, err := Paginate(ctx, 0, func(context.Context, int) ([]string, bool, error) {
			called = true
			return nil, false, nil
		})
		So(err, ShouldEqual, context.Canceled)
		So(called, ShouldBeFalse)
	})
}
