package cmd

import (
	"testing"

	"github.com/anisan-cli/anisync/config"
	"github.com/anisan-cli/anisync/fault"
	"github.com/anisan-cli/anisync/key"
	"github.com/anisan-cli/anisync/list"
	. "github.com/smartystreets/goconvey/convey"
)

func TestParseValue(t *testing.T) {
	Convey("Values should be parsed by the type of their default", t, func() {
		v, err := parseValue(config.Default[key.NetworkTimeout], []string{"45"})
		So(err, ShouldBeNil)
		So(v, ShouldEqual, 45)

		v, err = parseValue(config.Default[key.LogsWrite], []string{"true"})
		So(err, ShouldBeNil)
		So(v, ShouldEqual, true)

		v, err = parseValue(config.Default[key.AnilistUsername], []string{"alice"})
		So(err, ShouldBeNil)
		So(v, ShouldEqual, "alice")

		_, err = parseValue(config.Default[key.NetworkTimeout], []string{"soon"})
		So(fault.Is(err, fault.Validation), ShouldBeTrue)
	})

	Convey("Unknown keys should suggest the closest one", t, func() {
		So(errUnknownKey("sync.intervl").Error(), ShouldContainSubstring, "sync.interval")
	})
}

func TestDescribe(t *testing.T) {
	Convey("Dropped changes should be reported", t, func() {
		So(describe(list.Report{Pushed: 2, Pulled: 10}), ShouldNotContainSubstring, "Dropped")
		So(describe(list.Report{Pushed: 1, Dropped: 1, Pulled: 10}), ShouldContainSubstring, "Dropped 1 change")
	})
}
