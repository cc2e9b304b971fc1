package memalloc_test

import (
	"testing"
	"unsafe"

	. "github.com/smartystreets/goconvey/convey"

	"github.com/flier/memalloc/pkg/memalloc"
)

func TestDebugPageAllocator(t *testing.T) {
	intSize := memalloc.Size(unsafe.Sizeof(int(0)))

	Convey("Given DebugPageAllocator(sizeof(int), 4, preallocate=true)", t, func() {
		d := memalloc.NewDebugPageAllocator(intSize, 4, true)
		defer d.Free()

		Convey("Stats track pages, live objects, and free objects", func() {
			So(d.Stats().AllocatedPages, ShouldEqual, 1)
			So(d.Stats().FreeObjects, ShouldEqual, 4)

			p := d.Allocate(1)
			So(p, ShouldNotEqual, memalloc.Addr(0))
			So(d.Stats().AllocatedObjects, ShouldEqual, 1)
			So(d.Stats().FreeObjects, ShouldEqual, 3)

			d.Deallocate(p, 1)
			So(d.Stats().AllocatedObjects, ShouldEqual, 0)
			So(d.Stats().FreeObjects, ShouldEqual, 4)
		})

		Convey("Growing to a second page is tracked", func() {
			for i := 0; i < 5; i++ {
				d.Allocate(1)
			}

			So(d.Stats().AllocatedPages, ShouldEqual, 2)
		})
	})
}
