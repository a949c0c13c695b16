package batch_test

import (
	"testing"

	"github.com/notafinal/notafinal/internal/domain/batch"
	"github.com/notafinal/notafinal/internal/domain/model"
	"github.com/notafinal/notafinal/internal/domain/penalty"
	"github.com/notafinal/notafinal/internal/domain/policy"
	. "github.com/smartystreets/goconvey/convey"
)

var goodHeader = []string{"nome", "nota", "datahora"}

func testPolicy() policy.Policy {
	pol, err := policy.New("19:50", "22:30", 40)
	if err != nil {
		panic(err)
	}
	return pol
}

func TestHeaderValid(t *testing.T) {
	Convey("Given header rows", t, func() {
		Convey("Then the required column set is matched case-insensitively, in any order, ignoring extras", func() {
			So(batch.HeaderValid([]string{"nome", "nota", "datahora"}), ShouldBeTrue)
			So(batch.HeaderValid([]string{"DataHora", " NOTA ", "Nome", "turma"}), ShouldBeTrue)
			So(batch.HeaderValid([]string{"nome", "nota"}), ShouldBeFalse)
			So(batch.HeaderValid([]string{"name", "score", "datetime"}), ShouldBeFalse)
			So(batch.HeaderValid(nil), ShouldBeFalse)
		})
	})
}

func TestProcess(t *testing.T) {
	Convey("Given a policy and a mix of rows", t, func() {
		pol := testPolicy()

		rows := []model.RawRow{
			{Name: "Ana", Score: "80", Timestamp: "2024-05-01 20:50:00"},
			{Name: "", Score: "70", Timestamp: "2024-05-01 20:00:00"},
			{Name: "Bruno", Score: "abc", Timestamp: "2024-05-01 20:00:00"},
			{Name: "Carla", Score: "90", Timestamp: "05/01/2024 20:00"},
			{Name: "Davi", Score: "60", Timestamp: "2024-05-01 19:00:00"},
		}

		Convey("When the header is well-formed", func() {
			result := batch.Process(goodHeader, rows, pol)

			Convey("Then valid rows are scored in input order and rejects are counted", func() {
				So(result.TotalRows, ShouldEqual, 5)
				So(result.ValidRows, ShouldEqual, 2)
				So(result.InvalidRows, ShouldEqual, 3)
				So(result.Records, ShouldHaveLength, 2)
				So(result.Records[0].Name, ShouldEqual, "Ana")
				So(result.Records[0].FinalScore, ShouldEqual, 68)
				So(result.Records[0].Status, ShouldEqual, penalty.StatusLate)
				So(result.Records[1].Name, ShouldEqual, "Davi")
				So(result.Records[1].Status, ShouldEqual, penalty.StatusOnTime)
			})
		})

		Convey("When the header is missing a required column", func() {
			result := batch.Process([]string{"nome", "nota"}, rows, pol)

			Convey("Then exactly one extra invalid increment is recorded and rows still run", func() {
				So(result.ValidRows, ShouldEqual, 2)
				So(result.InvalidRows, ShouldEqual, 4)
				So(result.TotalRows, ShouldEqual, 5)
			})
		})

		Convey("When there are no rows", func() {
			result := batch.Process(goodHeader, nil, pol)

			Convey("Then the result is empty but not an error", func() {
				So(result.Records, ShouldBeEmpty)
				So(result.TotalRows, ShouldEqual, 0)
				So(result.ValidRows, ShouldEqual, 0)
				So(result.InvalidRows, ShouldEqual, 0)
			})
		})

		Convey("When every row is invalid", func() {
			result := batch.Process(goodHeader, rows[1:4], pol)

			Convey("Then the record list is empty and the caller decides what that means", func() {
				So(result.Records, ShouldBeEmpty)
				So(result.ValidRows, ShouldEqual, 0)
				So(result.InvalidRows, ShouldEqual, 3)
			})
		})
	})
}

func TestProcess_RecordFields(t *testing.T) {
	Convey("Given a single late row", t, func() {
		result := batch.Process(goodHeader, []model.RawRow{
			{Name: " Eva ", Score: "80", Timestamp: "2024-05-01 23:00:00"},
		}, testPolicy())

		Convey("Then the scored record carries the sanitized name and the verbatim timestamp", func() {
			So(result.Records, ShouldHaveLength, 1)
			rec := result.Records[0]
			So(rec.Name, ShouldEqual, "Eva")
			So(rec.OriginalScore, ShouldEqual, 80.0)
			So(rec.FinalScore, ShouldEqual, 48)
			So(rec.DiscountPercent, ShouldEqual, 40.00)
			So(rec.DiscountAmount, ShouldEqual, 32.00)
			So(rec.MinutesLate, ShouldEqual, 160)
			So(rec.Status, ShouldEqual, penalty.StatusMaxDelay)
			So(rec.Timestamp, ShouldEqual, "2024-05-01 23:00:00")
		})
	})
}
