package where

import (
	"path/filepath"
	"testing"

	"github.com/anisan-cli/anisync/filesystem"
	"github.com/samber/lo"
	. "github.com/smartystreets/goconvey/convey"
)

func init() {
	filesystem.SetMemMapFs()
}

func TestPaths(t *testing.T) {
	Convey("Path functions", t, func() {
		Convey("Config()", func() {
			path := Config()
			So(path, ShouldNotBeEmpty)
			So(lo.Must(filesystem.API().IsDir(path)), ShouldBeTrue)
		})

		Convey("Cache()", func() {
			path := Cache()
			So(path, ShouldNotBeEmpty)
			So(lo.Must(filesystem.API().IsDir(path)), ShouldBeTrue)
		})

		Convey("Logs()", func() {
			path := Logs()
			So(path, ShouldNotBeEmpty)
			So(lo.Must(filesystem.API().IsDir(path)), ShouldBeTrue)
		})

		Convey("List() should be keyed by kind, provider and username", func() {
			path := List("anime", "kitsu", "Mizore")
			So(filepath.Dir(path), ShouldEqual, Lists())
			So(filepath.Base(path), ShouldEqual, "anime_kitsu_mizore.json")
			So(List("manga", "kitsu", "Mizore"), ShouldNotEqual, path)
		})
	})
}
