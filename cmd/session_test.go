package cmd

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/anisan-cli/anisync/fault"
	. "github.com/smartystreets/goconvey/convey"
)

func TestAwaitCode(t *testing.T) {
	Convey("Given a reauthorization prompt", t, func() {
		Convey("The typed code should be returned", func() {
			code, err := awaitCode(context.Background(), func(code *string) error {
				*code = "abc123"
				return nil
			})
			So(err, ShouldBeNil)
			So(code, ShouldEqual, "abc123")
		})

		Convey("An empty answer should require authorization", func() {
			_, err := awaitCode(context.Background(), func(*string) error { return nil })
			So(errors.Is(err, fault.ErrAuthRequired), ShouldBeTrue)
		})

		Convey("A cancelled context should end the wait while the prompt is still open", func() {
			release := make(chan struct{})
			defer close(release)

			ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
			defer cancel()

			_, err := awaitCode(ctx, func(*string) error {
				<-release
				return nil
			})
			So(errors.Is(err, context.DeadlineExceeded), ShouldBeTrue)
		})
	})
}
