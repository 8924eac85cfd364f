package query

import (
	"testing"

	"github.com/anisan-cli/anisync/filesystem"
	"github.com/anisan-cli/anisync/key"
	. "github.com/smartystreets/goconvey/convey"
	"github.com/spf13/viper"
)

func init() {
	filesystem.SetMemMapFs()
}

func TestQuery(t *testing.T) {
	Convey("Given query history", t, func() {
		viper.Set(key.SearchShowQuerySuggestions, true)

		So(Remember("anime", "Naruto", 1), ShouldBeNil)
		So(Remember("anime", "  bleach ", 10), ShouldBeNil)
		So(Remember("manga", "berserk", 1), ShouldBeNil)

		Convey("Suggestions should be sorted by rank", func() {
			So(Remember("anime", "black lagoon", 2), ShouldBeNil)

			s := SuggestMany("anime", "bl")
			So(s, ShouldHaveLength, 2)
			So(s[0], ShouldEqual, "bleach")
			So(s[1], ShouldEqual, "black lagoon")
		})

		Convey("Suggestions should not leak across media kinds", func() {
			So(SuggestMany("anime", "berserk"), ShouldBeEmpty)
			So(Suggest("manga", "bers").MustGet(), ShouldEqual, "berserk")
		})

		Convey("Remembering again should raise the rank", func() {
			So(Remember("anime", "naruto", 100), ShouldBeNil)
			So(Suggest("anime", "").MustGet(), ShouldEqual, "naruto")
		})

		Convey("Empty queries should be ignored", func() {
			So(Remember("anime", "   ", 1), ShouldBeNil)
			So(SuggestMany("anime", ""), ShouldNotContain, "")
		})

		Convey("Suggestions can be turned off", func() {
			viper.Set(key.SearchShowQuerySuggestions, false)
			So(SuggestMany("anime", "bl"), ShouldBeEmpty)
			So(Suggest("anime", "bl").IsAbsent(), ShouldBeTrue)
		})

		Convey("Input should be sanitized", func() {
			So(sanitize("  NARUTO  "), ShouldEqual, "naruto")
		})
	})
}
