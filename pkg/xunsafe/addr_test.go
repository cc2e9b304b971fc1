package xunsafe_test

import (
	"testing"
	"unsafe"

	. "github.com/smartystreets/goconvey/convey"

	"github.com/flier/memalloc/pkg/xunsafe"
)

func TestAddr(t *testing.T) {
	Convey("Given address operations", t, func() {
		Convey("When getting the address of a value", func() {
			i := 42
			addr := xunsafe.AddrOf(&i)
			So(uintptr(addr), ShouldEqual, uintptr(unsafe.Pointer(&i)))
			So(addr.IsNil(), ShouldBeFalse)
		})

		Convey("When the zero Addr is nil", func() {
			var addr xunsafe.Addr[int]
			So(addr.IsNil(), ShouldBeTrue)
			So(addr.AssertValid(), ShouldBeNil)
		})

		Convey("When asserting an address back to a pointer", func() {
			s := "hello"
			addr := xunsafe.AddrOf(&s)
			ptr := addr.AssertValid()
			So(ptr, ShouldEqual, &s)
			So(*ptr, ShouldEqual, "hello")
		})

		Convey("When performing address arithmetic over an array", func() {
			arr := [5]int{1, 2, 3, 4, 5}
			base := xunsafe.AddrOf(&arr[0])

			Convey("Add scales by the size of the element type", func() {
				addr2 := base.Add(2)
				So(*addr2.AssertValid(), ShouldEqual, 3)

				addr4 := base.Add(4)
				So(*addr4.AssertValid(), ShouldEqual, 5)
			})

			Convey("Sub is the inverse of Add", func() {
				addr4 := base.Add(4)
				addr2 := base.Add(2)
				So(addr4.Sub(addr2), ShouldEqual, 2)
				So(addr2.Sub(addr2), ShouldEqual, 0)
			})
		})

		Convey("When casting an address to an unrelated element type", func() {
			var b byte
			addr := xunsafe.AddrOf(&b)
			asInt := xunsafe.AddrCast[int](addr)
			So(uintptr(asInt), ShouldEqual, uintptr(addr))
		})
	})
}
