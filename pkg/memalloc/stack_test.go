package memalloc_test

import (
	"testing"

	. "github.com/smartystreets/goconvey/convey"

	"github.com/flier/memalloc/pkg/memalloc"
)

func TestStackAllocator(t *testing.T) {
	Convey("Given StackAllocator(16)", t, func() {
		s := memalloc.NewStackAllocator(16)
		So(s, ShouldNotBeNil)
		defer s.Free()

		Convey("Scenario: allocate 5, allocate 6, deallocate in LIFO order", func() {
			So(s.IsFull(), ShouldBeFalse)

			a5 := s.Allocate(5)
			So(a5, ShouldNotEqual, memalloc.Addr(0))
			So(s.FreeSize(), ShouldEqual, 11)
			So(s.IsFull(), ShouldBeFalse)

			a6 := s.Allocate(6)
			So(a6, ShouldNotEqual, memalloc.Addr(0))
			So(s.FreeSize(), ShouldEqual, 5)
			So(s.IsFull(), ShouldBeFalse)

			s.Deallocate(a6, 6)
			So(s.FreeSize(), ShouldEqual, 11)
			So(s.IsFull(), ShouldBeFalse)

			s.Deallocate(a5, 5)
			So(s.FreeSize(), ShouldEqual, 16)
		})

		Convey("Boundary: allocating more than free_size fails and leaves state unchanged", func() {
			before := s.FreeSize()

			So(s.Allocate(17), ShouldEqual, memalloc.Addr(0))
			So(s.FreeSize(), ShouldEqual, before)
		})

		Convey("Round trip: a balanced LIFO sequence restores free_size", func() {
			before := s.FreeSize()

			a := s.Allocate(3)
			b := s.Allocate(4)
			s.Deallocate(b, 4)
			s.Deallocate(a, 3)

			So(s.FreeSize(), ShouldEqual, before)
		})

		Convey("Owns is true for the chunk's range and false outside it", func() {
			So(s.Owns(s.Allocate(1)), ShouldBeTrue)
		})
	})
}
