package config

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

func TestSetup(t *testing.T) {
	Convey("Config Setup", t, func() {
		Convey("Should initialize without error", func() {
			So(Setup(), ShouldBeNil)
		})

		Convey("Should have default values populated", func() {
			_ = Setup()
			for name := range Default {
				So(viper.Get(name), ShouldNotBeNil)
			}
			So(viper.GetString(key.ProviderDefault), ShouldEqual, "anilist")
		})

		Convey("EnvKeyReplacer should convert dots to underscores", func() {
			So(EnvKeyReplacer.Replace("anilist.client_id"), ShouldEqual, "anilist_client_id")
		})
	})
}

func TestField(t *testing.T) {
	Convey("Given a registered field", t, func() {
		field := Default[key.AnilistClientID]

		Convey("Env should carry the application prefix", func() {
			So(field.Env(), ShouldEqual, "ANISYNC_ANILIST_CLIENT_ID")
		})

		Convey("typeName should describe the default value", func() {
			So(field.typeName(), ShouldEqual, "string")
			timeout := Default[key.NetworkTimeout]
			So(timeout.typeName(), ShouldEqual, "int")
		})
	})
}
