package memalloc_test

import (
	"testing"

	. "github.com/smartystreets/goconvey/convey"

	"github.com/flier/memalloc/pkg/memalloc"
)

func TestOutOfMemoryCallback(t *testing.T) {
	Convey("Given a custom out-of-memory callback", t, func() {
		original := memalloc.GetOutOfMemoryCallback()
		defer memalloc.SetOutOfMemoryCallback(original)

		calls := 0
		memalloc.SetOutOfMemoryCallback(func() { calls++ })

		Convey("GetOutOfMemoryCallback returns it back unchanged", func() {
			memalloc.GetOutOfMemoryCallback()()
			So(calls, ShouldEqual, 1)
		})

		Convey("Setting nil reinstalls the default callback", func() {
			memalloc.SetOutOfMemoryCallback(nil)

			So(memalloc.GetOutOfMemoryCallback(), ShouldNotBeNil)
		})
	})
}
