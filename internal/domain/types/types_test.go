package types_test

import (
	"testing"

	types "github.com/okian/thaidash/internal/domain/types"
	. "github.com/smartystreets/goconvey/convey"
)

func TestCategoryLabels(t *testing.T) {
	Convey("Given the closed category sets", t, func() {
		Convey("When rendering gender labels", func() {
			So(types.GenderMale.String(), ShouldEqual, "Male")
			So(types.GenderFemale.String(), ShouldEqual, "Female")
			So(types.GenderLGBTQ.String(), ShouldEqual, "LGBTQ")
			So(types.Gender(42).String(), ShouldEqual, "LGBTQ")
		})

		Convey("When rendering ordered buckets", func() {
			So(types.AgeGroups()[0].String(), ShouldEqual, "<18")
			So(types.AgeGroups()[len(types.AgeGroups())-1], ShouldEqual, types.AgeUnknown)
			So(types.PriceBudget.String(), ShouldEqual, "Budget (≤400฿)")
			So(types.PriceTiers()[len(types.PriceTiers())-1], ShouldEqual, types.PriceUnknown)
		})

		Convey("When the zero value of each set is inspected", func() {
			var g types.Gender
			var e types.EventCategory
			var d types.DistanceCategory

			Convey("Then it is the designated default", func() {
				So(g, ShouldEqual, types.GenderLGBTQ)
				So(e, ShouldEqual, types.EventOther)
				So(d, ShouldEqual, types.DistanceNone)
				So(d.Valid(), ShouldBeFalse)
			})
		})
	})
}

func TestParseDistanceCategory(t *testing.T) {
	Convey("Given extracted distance labels", t, func() {
		Convey("When the label is inside the fixed domain", func() {
			So(types.ParseDistanceCategory("5K"), ShouldEqual, types.Distance5K)
			So(types.ParseDistanceCategory("10K"), ShouldEqual, types.Distance10K)
			So(types.ParseDistanceCategory("21.1K"), ShouldEqual, types.DistanceHalf)
			So(types.ParseDistanceCategory("42.2K"), ShouldEqual, types.DistanceFull)
			So(types.ParseDistanceCategory("Other"), ShouldEqual, types.DistanceOther)
		})

		Convey("When the label is outside the domain", func() {
			Convey("Then it lands in the null slot rather than Other", func() {
				So(types.ParseDistanceCategory("24K"), ShouldEqual, types.DistanceNone)
				So(types.ParseDistanceCategory("3K"), ShouldEqual, types.DistanceNone)
				So(types.ParseDistanceCategory("24K").String(), ShouldEqual, "")
			})
		})

		Convey("Then the ordered domain excludes the null slot", func() {
			for _, d := range types.DistanceCategories() {
				So(d.Valid(), ShouldBeTrue)
			}
			So(len(types.DistanceCategories()), ShouldEqual, 5)
		})
	})
}
