package fault

import (
	"context"
	"fmt"
	"testing"

	"github.com/pkg/errors"
	. "github.com/smartystreets/goconvey/convey"
)

func TestClassification(t *testing.T) {
	Convey("Given a transport failure", t, func() {
		err := Wrap(Transport, "kitsu", context.DeadlineExceeded, "pull library")

		Convey("It should keep its kind and cause", func() {
			So(Is(err, Transport), ShouldBeTrue)
			So(errors.Is(err, context.DeadlineExceeded), ShouldBeTrue)
			So(err.Error(), ShouldStartWith, "kitsu: pull library")
		})

		Convey("Wrapping it again should not reclassify it", func() {
			again := Wrap(Protocol, "kitsu", err, "sync")
			So(KindOf(again), ShouldEqual, Transport)
		})

		Convey("Wrapping with fmt should stay classified", func() {
			So(Is(fmt.Errorf("outer: %w", err), Transport), ShouldBeTrue)
		})
	})

	Convey("Given unclassified errors", t, func() {
		So(KindOf(errors.New("plain")), ShouldEqual, 0)
		So(Wrap(Auth, "", nil, "noop"), ShouldBeNil)
	})

	Convey("ErrAuthRequired should be an auth failure", t, func() {
		So(Is(ErrAuthRequired, Auth), ShouldBeTrue)
		So(Is(New(Rejected, "mal", "already in list: %d", 21), Rejected), ShouldBeTrue)
	})
}
