package memalloc_test

import (
	"testing"
	"unsafe"

	. "github.com/smartystreets/goconvey/convey"

	"github.com/flier/memalloc/pkg/memalloc"
)

func TestPageAllocator(t *testing.T) {
	intSize := memalloc.Size(unsafe.Sizeof(int(0)))

	Convey("Given PageAllocator(sizeof(int), 4, preallocate=true)", t, func() {
		a := memalloc.NewPageAllocator(intSize, 4, true)
		defer a.Free()

		Convey("Scenario: four allocates stay on one page, the fifth grows to a second", func() {
			for i := 0; i < 4; i++ {
				So(a.Allocate(1), ShouldNotEqual, memalloc.Addr(0))
			}

			So(a.IsFull(), ShouldBeTrue)

			fifth := a.Allocate(1)
			So(fifth, ShouldNotEqual, memalloc.Addr(0))
			So(a.IsFull(), ShouldBeFalse)
		})
	})

	Convey("Given PageAllocator(sizeof(int), 4) without preallocation", t, func() {
		a := memalloc.NewPageAllocator(intSize, 4, false)
		defer a.Free()

		Convey("Scenario: the page fills from high address to low", func() {
			a3 := a.Allocate(1)
			a2 := a.Allocate(1)
			a1 := a.Allocate(1)
			a0 := a.Allocate(1)

			So(a0.Add(int(intSize)), ShouldEqual, a1)
			So(a1.Add(int(intSize)), ShouldEqual, a2)
			So(a2.Add(int(intSize)), ShouldEqual, a3)
		})

		Convey("Round trip: deallocate then allocate the same size returns the same address", func() {
			p := a.Allocate(1)
			a.Deallocate(p, 1)

			So(a.Allocate(1), ShouldEqual, p)
		})

		Convey("Owns is true only for aligned addresses within a page's payload", func() {
			p := a.Allocate(1)
			So(a.Owns(p), ShouldBeTrue)
			So(a.Owns(p.Add(1)), ShouldBeFalse)
			So(a.Owns(memalloc.Addr(0)), ShouldBeFalse)
		})

		Convey("FreeSize reflects the slots currently on the free list", func() {
			// Force the first page into existence so free_size is stable
			// across the Allocate/Deallocate pair below.
			warm := a.Allocate(1)
			before := a.FreeSize()

			p := a.Allocate(1)
			So(a.FreeSize(), ShouldEqual, before-intSize)

			a.Deallocate(p, 1)
			So(a.FreeSize(), ShouldEqual, before)

			a.Deallocate(warm, 1)
		})
	})
}
