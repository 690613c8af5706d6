package normalize_test

import (
	"testing"
	"time"

	"github.com/okian/thaidash/internal/domain/normalize"
	"github.com/okian/thaidash/internal/domain/types"
	. "github.com/smartystreets/goconvey/convey"
)

func TestDistance(t *testing.T) {
	Convey("Given free-text ticket labels", t, func() {
		Convey("When the label names a race type", func() {
			So(normalize.Distance("Bangkok Full Marathon"), ShouldEqual, "42.2K")
			So(normalize.Distance("Marathon"), ShouldEqual, "42.2K")
			So(normalize.Distance("Super Half Marathon"), ShouldEqual, "21.1K")
			So(normalize.Distance("half"), ShouldEqual, "21.1K")
			So(normalize.Distance("Mini Marathon"), ShouldEqual, "Other")
		})

		Convey("When the label carries a number followed by K or KM", func() {
			So(normalize.Distance("Fun Run 5K"), ShouldEqual, "5K")
			So(normalize.Distance("21.1K Half"), ShouldEqual, "21.1K")
			So(normalize.Distance("10 km"), ShouldEqual, "10K")
			So(normalize.Distance("Trail 24KM"), ShouldEqual, "24K")
			So(normalize.Distance("5.0K"), ShouldEqual, "5K")
			So(normalize.Distance("42.20 K"), ShouldEqual, "42.2K")
		})

		Convey("When both a number and a keyword are present", func() {
			Convey("Then the numeric match wins", func() {
				So(normalize.Distance("Marathon 10K relay"), ShouldEqual, "10K")
			})
		})

		Convey("When nothing matches", func() {
			So(normalize.Distance("VIP Ticket"), ShouldEqual, "Other")
			So(normalize.Distance("Early Bird"), ShouldEqual, "Other")
			So(normalize.Distance(""), ShouldEqual, "Other")
			So(normalize.Distance("   "), ShouldEqual, "Other")
		})

		Convey("When applied to its own output", func() {
			Convey("Then it is idempotent", func() {
				for _, label := range []string{"Bangkok Full Marathon", "Fun Run 5K", "VIP Ticket", "21.1K Half", "3K walk", "24 KM"} {
					out := normalize.Distance(label)
					again := normalize.Distance(out)
					So(again == out || again == normalize.DistanceOther, ShouldBeTrue)
				}
			})
		})
	})
}

func TestPrice(t *testing.T) {
	Convey("Given price cells", t, func() {
		Convey("When the cell is numeric", func() {
			p, ok := normalize.Price(" 650.5 ")
			So(ok, ShouldBeTrue)
			So(p, ShouldEqual, 650.5)
		})

		Convey("When the cell is blank or garbage", func() {
			for _, raw := range []string{"", "free", "NaN", "inf", "1,200"} {
				_, ok := normalize.Price(raw)
				So(ok, ShouldBeFalse)
			}
		})

		Convey("Then prices render without a trailing fraction", func() {
			So(normalize.FormatPrice(500), ShouldEqual, "500")
			So(normalize.FormatPrice(708.25), ShouldEqual, "708.25")
		})
	})
}

func TestDate(t *testing.T) {
	Convey("Given date cells in various formats", t, func() {
		want := time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC)

		Convey("When the format is tolerated", func() {
			for _, raw := range []string{"2024-01-15", "2024/01/15", "01/15/2024", "15/01/2024", "2024-01-15T00:00:00Z"} {
				got, ok := normalize.Date(raw)
				So(ok, ShouldBeTrue)
				So(got.Equal(want), ShouldBeTrue)
			}
		})

		Convey("When month and day are not zero padded", func() {
			cases := map[string]time.Time{
				"1/2/2024":           time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC),
				"15/1/2024":          want,
				"2024/1/5":           time.Date(2024, 1, 5, 0, 0, 0, 0, time.UTC),
				"2024-1-5":           time.Date(2024, 1, 5, 0, 0, 0, 0, time.UTC),
				"5 Jan 2024":         time.Date(2024, 1, 5, 0, 0, 0, 0, time.UTC),
				"Jan 5, 2024":        time.Date(2024, 1, 5, 0, 0, 0, 0, time.UTC),
				"1/15/2024 08:30:00": time.Date(2024, 1, 15, 8, 30, 0, 0, time.UTC),
				"2024-1-5 08:30:00":  time.Date(2024, 1, 5, 8, 30, 0, 0, time.UTC),
			}
			for raw, exp := range cases {
				got, ok := normalize.Date(raw)
				So(ok, ShouldBeTrue)
				So(got.Equal(exp), ShouldBeTrue)
			}
		})

		Convey("When the date carries a zone offset", func() {
			got, ok := normalize.Date("2024-01-15 08:30:00+07:00")
			So(ok, ShouldBeTrue)
			So(got.Equal(time.Date(2024, 1, 15, 1, 30, 0, 0, time.UTC)), ShouldBeTrue)
		})

		Convey("When the cell is unparsable", func() {
			for _, raw := range []string{"", "nan", "not a date", "2024-13-45"} {
				_, ok := normalize.Date(raw)
				So(ok, ShouldBeFalse)
			}
		})

		Convey("Then dates format back to text", func() {
			So(normalize.FormatDate(want), ShouldEqual, "2024-01-15")
			So(normalize.FormatDate(want.Add(90*time.Minute)), ShouldEqual, "2024-01-15 01:30:00")
		})
	})
}

func TestAge(t *testing.T) {
	Convey("Given a reference instant", t, func() {
		ref := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)

		Convey("When the birth date is ordinary", func() {
			age, ok := normalize.Age(time.Date(1990, 6, 2, 0, 0, 0, 0, time.UTC), ref)
			So(ok, ShouldBeTrue)
			So(age, ShouldEqual, 33)
		})

		Convey("When the birth date is in the future", func() {
			_, ok := normalize.Age(ref.AddDate(1, 0, 0), ref)
			So(ok, ShouldBeFalse)
		})

		Convey("When the age exceeds the upper bound", func() {
			_, ok := normalize.Age(time.Date(1850, 1, 1, 0, 0, 0, 0, time.UTC), ref)
			So(ok, ShouldBeFalse)
		})

		Convey("When the birth date is the reference day", func() {
			age, ok := normalize.Age(ref, ref)
			So(ok, ShouldBeTrue)
			So(age, ShouldEqual, 0)
		})
	})
}

func TestGender(t *testing.T) {
	Convey("Given gender text in several languages", t, func() {
		Convey("When the term is known", func() {
			So(normalize.Gender("M"), ShouldEqual, types.GenderMale)
			So(normalize.Gender("male"), ShouldEqual, types.GenderMale)
			So(normalize.Gender(" Male "), ShouldEqual, types.GenderMale)
			So(normalize.Gender("ชาย"), ShouldEqual, types.GenderMale)
			So(normalize.Gender("F"), ShouldEqual, types.GenderFemale)
			So(normalize.Gender("หญิง"), ShouldEqual, types.GenderFemale)
			So(normalize.Gender("Non-Binary"), ShouldEqual, types.GenderLGBTQ)
		})

		Convey("When the term is not in the table", func() {
			Convey("Then it is exactly LGBTQ", func() {
				for _, raw := range []string{"unknown", "Other", "", "nan", "Sleeveless", "xyz", "man"} {
					So(normalize.Gender(raw), ShouldEqual, types.GenderLGBTQ)
				}
			})
		})
	})
}

func TestEventName(t *testing.T) {
	Convey("Given an event name with surrounding space", t, func() {
		So(normalize.EventName("  LAGUNA PHUKET MARATHON 2024 "), ShouldEqual, "LAGUNA PHUKET MARATHON 2024")
	})

	Convey("Given a decomposed accented name", t, func() {
		So(normalize.EventName("Cafe\u0301 Run"), ShouldEqual, "Caf\u00e9 Run")
	})
}
