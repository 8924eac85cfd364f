package integration

import (
	"testing"

	"github.com/anisan-cli/anisync/fault"
	"github.com/anisan-cli/anisync/key"
	"github.com/anisan-cli/anisync/provider"
	. "github.com/smartystreets/goconvey/convey"
	"github.com/spf13/viper"
)

func TestRegistry(t *testing.T) {
	Convey("Builtins should be AniList, Kitsu and MyAnimeList", t, func() {
		So(IDs(), ShouldResemble, []string{"anilist", "kitsu", "mal"})
	})

	Convey("Get should ignore case", t, func() {
		i, err := Get(" AniList ")
		So(err, ShouldBeNil)
		So(i.Name, ShouldEqual, "AniList")
	})

	Convey("Unknown providers should fail validation", t, func() {
		_, err := Get("shikimori")
		So(fault.Is(err, fault.Validation), ShouldBeTrue)
		So(err.Error(), ShouldContainSubstring, "anilist, kitsu, mal")
	})

	Convey("Default should follow provider.default", t, func() {
		viper.Set(key.ProviderDefault, "mal")
		i, err := Default()
		So(err, ShouldBeNil)
		So(i.ID, ShouldEqual, "mal")
	})
}

func TestCreate(t *testing.T) {
	Convey("Given configured accounts", t, func() {
		viper.Set(key.AnilistUsername, "alice")
		viper.Set(key.AnilistClientID, "1234")
		viper.Set(key.AnilistClientSecret, "secret")
		viper.Set(key.MalUsername, "bob")

		Convey("Create should bind the configured account", func() {
			i, err := Get("anilist")
			So(err, ShouldBeNil)

			p, err := i.Create(provider.Options{})
			So(err, ShouldBeNil)
			So(p.Account(), ShouldResemble, provider.Account{Provider: "anilist", Username: "alice"})
		})

		Convey("An explicit account should win over the configuration", func() {
			i, _ := Get("mal")
			p, err := i.Create(provider.Options{Account: provider.Account{Username: "carol"}})
			So(err, ShouldBeNil)
			So(p.Account(), ShouldResemble, provider.Account{Provider: "mal", Username: "carol"})
		})

		Convey("Missing client credentials should fail validation", func() {
			viper.Set(key.AnilistClientSecret, "")
			i, _ := Get("anilist")
			_, err := i.Create(provider.Options{})
			So(fault.Is(err, fault.Validation), ShouldBeTrue)
		})

		Convey("A missing username should fail validation", func() {
			viper.Set(key.KitsuUsername, "")
			i, _ := Get("kitsu")
			_, err := i.Create(provider.Options{})
			So(fault.Is(err, fault.Validation), ShouldBeTrue)
		})
	})
}
