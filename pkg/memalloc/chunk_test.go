package memalloc_test

import (
	"testing"

	. "github.com/smartystreets/goconvey/convey"

	"github.com/flier/memalloc/pkg/memalloc"
)

func TestChunk(t *testing.T) {
	Convey("Given a freshly constructed chunk", t, func() {
		c := memalloc.NewChunk(64)
		So(c, ShouldNotBeNil)
		defer c.Free()

		Convey("Its base is non-nil and End is base+size", func() {
			So(c.Base(), ShouldNotEqual, memalloc.Addr(0))
			So(c.End(), ShouldEqual, c.Base().Add(int(c.Size())))
		})

		Convey("It owns every address within [base, base+size)", func() {
			So(c.Owns(c.Base()), ShouldBeTrue)
			So(c.Owns(c.Base().Add(int(c.Size())-1)), ShouldBeTrue)
		})

		Convey("It does not own the address one past its end", func() {
			So(c.Owns(c.End()), ShouldBeFalse)
		})

		Convey("It does not own an address before its base", func() {
			So(c.Owns(c.Base().Add(-1)), ShouldBeFalse)
		})
	})
}
