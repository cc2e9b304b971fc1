package memalloc_test

import (
	"testing"
	"unsafe"

	. "github.com/smartystreets/goconvey/convey"

	"github.com/flier/memalloc/pkg/memalloc"
)

func TestInlineAllocator(t *testing.T) {
	Convey("Given InlineAllocator[4, int]", t, func() {
		a := memalloc.NewInlineAllocator[int](4)
		elemSize := int(unsafe.Sizeof(int(0)))

		Convey("Scenario: allocate, free a hole, allocate a run that must skip it", func() {
			slotA := a.Allocate(1)
			So(slotA, ShouldNotEqual, memalloc.Addr(0))

			slotB := a.Allocate(1)
			So(slotB, ShouldNotEqual, memalloc.Addr(0))
			So(slotB, ShouldEqual, slotA.Add(elemSize))

			a.Deallocate(slotA, 1)

			slotC := a.Allocate(2)
			So(slotC, ShouldNotEqual, memalloc.Addr(0))
			So(slotC, ShouldEqual, slotB.Add(elemSize))

			slotX := a.Allocate(1)
			So(slotX, ShouldEqual, slotA)

			So(a.IsFull(), ShouldBeTrue)
		})

		Convey("Boundary: allocating N+1 slots fails", func() {
			So(a.Allocate(5), ShouldEqual, memalloc.Addr(0))
		})

		Convey("FreeSize tracks popcount", func() {
			So(a.FreeSize(), ShouldEqual, 4*elemSize)

			a.Allocate(1)
			So(a.FreeSize(), ShouldEqual, 3*elemSize)
		})

		Convey("Owns is true only for addresses on an element boundary", func() {
			p := a.Allocate(1)
			So(a.Owns(p), ShouldBeTrue)
			So(a.Owns(p.Add(1)), ShouldBeFalse)
		})

		Convey("Deallocate restores the bitmap bit-for-bit", func() {
			before := a.FreeSize()

			p := a.Allocate(2)
			a.Deallocate(p, 2)

			So(a.FreeSize(), ShouldEqual, before)
		})

		Convey("Rebind produces a fresh pool of the same slot count", func() {
			r := memalloc.Rebind[byte](a)
			So(r, ShouldNotBeNil)
			So(r.IsFull(), ShouldBeFalse)
		})
	})
}
