package summary_test

import (
	"context"
	"testing"
	"time"

	"github.com/okian/thaidash/internal/domain/model"
	"github.com/okian/thaidash/internal/domain/pipeline"
	"github.com/okian/thaidash/internal/domain/summary"
	. "github.com/smartystreets/goconvey/convey"
)

func TestOf(t *testing.T) {
	Convey("Given a cleaned dataset with gaps", t, func() {
		raw := model.NewTable(
			[]string{model.ColID, model.ColTicketTypePrice, model.ColBirthDate, model.ColCity},
			[][]string{
				{"p1", "500", "1990-01-01", "Bangkok"},
				{"p2", "1000", "", ""},
				{"p3", "oops", "2000-01-01", "Bangkok"},
				{"p4", "500", "nope", "Chiang Mai"},
			},
		)
		clock := func() time.Time { return time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC) }
		res, err := pipeline.New(pipeline.WithClock(clock)).Run(context.Background(), raw)
		So(err, ShouldBeNil)

		s := summary.Of(res.Dataset)
		byName := map[string]summary.Column{}
		for _, c := range s.Columns {
			byName[c.Name] = c
		}

		Convey("Columns follow export order", func() {
			So(s.Rows, ShouldEqual, 4)
			names := make([]string, len(s.Columns))
			for i, c := range s.Columns {
				names[i] = c.Name
			}
			So(names, ShouldResemble, res.Dataset.Columns())
		})

		Convey("Missing and distinct counts ignore blanks", func() {
			So(byName[model.ColCity].Missing, ShouldEqual, 1)
			So(byName[model.ColCity].MissingPercent, ShouldEqual, 25.0)
			So(byName[model.ColCity].Distinct, ShouldEqual, 2)
			So(byName[model.ColBirthDate].Missing, ShouldEqual, 2)
			So(byName[model.ColID].Distinct, ShouldEqual, 4)
		})

		Convey("Numeric statistics cover price and age", func() {
			price := s.Numeric[model.ColTicketTypePrice]
			So(price.Count, ShouldEqual, 4)
			So(price.Min, ShouldEqual, 0)
			So(price.Max, ShouldEqual, 1000)
			So(price.Mean, ShouldEqual, 500)
			So(price.Median, ShouldEqual, 500)

			age := s.Numeric[model.ColAge]
			So(age.Count, ShouldEqual, 2)
			So(age.Min, ShouldEqual, 25)
			So(age.Max, ShouldEqual, 35)
		})
	})

	Convey("Given no dataset", t, func() {
		s := summary.Of(nil)
		So(s.Rows, ShouldEqual, 0)
		So(s.Numeric, ShouldBeEmpty)
	})
}
