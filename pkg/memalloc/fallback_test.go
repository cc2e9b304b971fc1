package memalloc_test

import (
	"testing"

	. "github.com/smartystreets/goconvey/convey"

	"github.com/flier/memalloc/pkg/memalloc"
)

func TestFallbackAllocator(t *testing.T) {
	Convey("Given Fallback<Inline<4,int>, Inline<2,int>>", t, func() {
		f := memalloc.FallbackAllocator[*memalloc.InlineAllocator[int], *memalloc.InlineAllocator[int]]{
			Primary:  memalloc.NewInlineAllocator[int](4),
			Fallback: memalloc.NewInlineAllocator[int](2),
		}

		Convey("Scenario: primary serves until exhausted, then fallback, then both are full", func() {
			So(f.Allocate(2), ShouldNotEqual, memalloc.Addr(0)) // primary: 2/4
			So(f.Allocate(1), ShouldNotEqual, memalloc.Addr(0)) // primary: 3/4

			// Primary has one slot left; a 2-slot request cannot fit there
			// and falls through.
			p := f.Allocate(2)
			So(p, ShouldNotEqual, memalloc.Addr(0))
			So(f.Fallback.Owns(p), ShouldBeTrue)

			So(f.Allocate(1), ShouldNotEqual, memalloc.Addr(0)) // primary: 4/4

			So(f.Allocate(1), ShouldEqual, memalloc.Addr(0))
			So(f.IsFull(), ShouldBeTrue)
		})

		Convey("Owns is true precisely when either child owns the address", func() {
			p := f.Primary.Allocate(1)
			So(f.Owns(p), ShouldBeTrue)

			q := f.Fallback.Allocate(1)
			So(f.Owns(q), ShouldBeTrue)
		})

		Convey("FreeSize is the max of the two children", func() {
			want := max(f.Primary.FreeSize(), f.Fallback.FreeSize())
			So(f.FreeSize(), ShouldEqual, want)
		})
	})

	Convey("Given GlobalAsFallback, the global allocator must be the innermost leaf", t, func() {
		f := memalloc.DefaultInlineAllocator[int](2)

		p := f.Allocate(1)
		So(p, ShouldNotEqual, memalloc.Addr(0))
		So(f.Primary.Owns(p), ShouldBeTrue)

		q := f.Allocate(10) // exceeds the inline pool, falls through to Global
		So(q, ShouldNotEqual, memalloc.Addr(0))
		So(f.Primary.Owns(q), ShouldBeFalse)
		So(f.Fallback.Owns(q), ShouldBeTrue)

		f.Deallocate(p, 1)
		f.Deallocate(q, 10)
	})
}
