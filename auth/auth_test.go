package auth

import (
	"context"
	"testing"
	"time"

	"github.com/anisan-cli/anisync/fault"
	. "github.com/smartystreets/goconvey/convey"
	"github.com/zalando/go-keyring"
)

func TestKeyring(t *testing.T) {
	keyring.MockInit()

	Convey("Given the keyring store", t, func() {
		store := Keyring{}
		key := Key("anilist", "Alice")

		Convey("Key should be case-insensitive on the username", func() {
			So(key, ShouldEqual, Key("anilist", "alice"))
			So(key, ShouldEqual, "anilist/alice")
		})

		Convey("A missing secret should report ErrNoSecret", func() {
			_, err := store.Secret("kitsu/nobody")
			So(err, ShouldEqual, ErrNoSecret)
		})

		Convey("A saved secret should be returned", func() {
			So(store.SetSecret(key, "hunter2"), ShouldBeNil)
			secret, err := store.Secret(key)
			So(err, ShouldBeNil)
			So(secret, ShouldEqual, "hunter2")

			Convey("And deleted", func() {
				So(store.DeleteSecret(key), ShouldBeNil)
				_, err := store.Secret(key)
				So(err, ShouldEqual, ErrNoSecret)
			})
		})

		Convey("An empty secret should be refused", func() {
			So(store.SetSecret(key, ""), ShouldNotBeNil)
		})

		Convey("Deleting a missing secret should succeed", func() {
			So(store.DeleteSecret("mal/ghost"), ShouldBeNil)
		})
	})
}

func TestSession(t *testing.T) {
	Convey("Given a session", t, func() {
		now := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
		session := &Session{Now: func() time.Time { return now }}

		So(session.State(), ShouldEqual, NoToken)

		Convey("When a handshake begins", func() {
			session.Begin()
			So(session.State(), ShouldEqual, Exchanging)

			Convey("And a token arrives", func() {
				session.Authenticate("token", now.Add(time.Hour))
				So(session.State(), ShouldEqual, Authenticated)

				token, ok := session.Token()
				So(ok, ShouldBeTrue)
				So(token, ShouldEqual, "token")

				Convey("It should expire lazily", func() {
					now = now.Add(time.Hour)
					So(session.State(), ShouldEqual, Expired)
					_, ok := session.Token()
					So(ok, ShouldBeFalse)
				})
			})
		})

		Convey("A token without expiry should never expire", func() {
			session.Authenticate("token", time.Time{})
			now = now.Add(24 * 365 * time.Hour)
			So(session.State(), ShouldEqual, Authenticated)
		})

		Convey("Reset should forget everything", func() {
			session.Authenticate("token", time.Time{})
			session.Identify(7, "alice")
			session.Reset()

			id, name := session.User()
			So(session.State(), ShouldEqual, NoToken)
			So(id, ShouldEqual, 0)
			So(name, ShouldBeEmpty)
		})
	})
}

func TestChannel(t *testing.T) {
	Convey("Given a reauthorization channel", t, func() {
		channel := NewChannel()
		ctx := context.Background()

		Convey("A supplied secret should be returned to the waiting caller", func() {
			go func() {
				req := <-channel.Requests()
				if req.Provider == "anilist" {
					req.Supply("new-code")
				} else {
					req.Decline()
				}
			}()

			secret, err := channel.Reauthorize(ctx, "anilist", "https://example.com/authorize")
			So(err, ShouldBeNil)
			So(secret, ShouldEqual, "new-code")
		})

		Convey("A declined request should fail with ErrAuthRequired", func() {
			go func() {
				(<-channel.Requests()).Decline()
			}()

			_, err := channel.Reauthorize(ctx, "anilist", "")
			So(err, ShouldEqual, fault.ErrAuthRequired)
			So(fault.Is(err, fault.Auth), ShouldBeTrue)
		})

		Convey("A cancelled context should release the caller", func() {
			ctx, cancel := context.WithCancel(ctx)
			cancel()

			_, err := channel.Reauthorize(ctx, "anilist", "")
			So(err, ShouldEqual, context.Canceled)
		})
	})

	Convey("Decline should always refuse", t, func() {
		_, err := Decline.Reauthorize(context.Background(), "kitsu", "")
		So(err, ShouldEqual, fault.ErrAuthRequired)
	})
}

func TestSessionExpire(t *testing.T) {
	Convey("Expire should move an authenticated session to expired", t, func() {
		session := &Session{}
		session.Authenticate("token", time.Time{})
		session.Expire()
		So(session.State(), ShouldEqual, Expired)
	})

	Convey("Expire should leave an empty session alone", t, func() {
		session := &Session{}
		session.Expire()
		So(session.State(), ShouldEqual, NoToken)
	})
}

func TestAuthenticateFor(t *testing.T) {
	Convey("AuthenticateFor should measure the lifetime from the session clock", t, func() {
		now := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
		session := &Session{Now: func() time.Time { return now }}

		expiry := session.AuthenticateFor("token", time.Hour)
		So(expiry, ShouldEqual, now.Add(time.Hour))
		So(session.State(), ShouldEqual, Authenticated)

		So(session.AuthenticateFor("token", 0).IsZero(), ShouldBeTrue)
	})
}
