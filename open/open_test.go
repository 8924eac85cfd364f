package open

import (
	"testing"

	. "github.com/smartystreets/goconvey/convey"
)

func TestURL(t *testing.T) {
	Convey("Only web addresses should be opened", t, func() {
		So(URL("file:///etc/passwd"), ShouldNotBeNil)
		So(URL("javascript:alert(1)"), ShouldNotBeNil)
		So(URL("://broken"), ShouldNotBeNil)
	})
}
