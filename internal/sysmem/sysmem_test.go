package sysmem_test

import (
	"testing"
	"unsafe"

	. "github.com/smartystreets/goconvey/convey"

	"github.com/flier/memalloc/internal/sysmem"
)

func TestReserve(t *testing.T) {
	Convey("Given a reservation request", t, func() {
		Convey("When the requested size is smaller than a page", func() {
			addr, n, err := sysmem.Reserve(16)
			So(err, ShouldBeNil)
			So(addr, ShouldNotEqual, 0)
			So(n, ShouldEqual, sysmem.PageSize)

			defer sysmem.Release(addr, n)

			Convey("Then the returned region is writable", func() {
				p := (*byte)(unsafe.Pointer(addr))
				*p = 0xAB
				So(*p, ShouldEqual, byte(0xAB))
			})
		})

		Convey("When the requested size spans several pages", func() {
			want := sysmem.PageSize*2 + 1
			addr, n, err := sysmem.Reserve(want)
			So(err, ShouldBeNil)
			So(n, ShouldBeGreaterThanOrEqualTo, want)
			So(n%sysmem.PageSize, ShouldEqual, 0)

			So(sysmem.Release(addr, n), ShouldBeNil)
		})
	})
}
