package store_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/notafinal/notafinal/internal/adapters/store"
	"github.com/notafinal/notafinal/internal/domain/policy"
	. "github.com/smartystreets/goconvey/convey"
)

func TestFileStore(t *testing.T) {
	Convey("Given a file store in a temp directory", t, func() {
		dir := t.TempDir()
		st := store.NewFileStore(filepath.Join(dir, "policy.json"))

		Convey("When no snapshot exists yet", func() {
			_, err := st.Load()

			Convey("Then Load reports ErrNotFound", func() {
				So(err, ShouldWrap, store.ErrNotFound)
			})
		})

		Convey("When a policy is saved and loaded back", func() {
			pol, err := policy.New("20:00", "21:30", 25)
			So(err, ShouldBeNil)
			So(st.Save(pol), ShouldBeNil)

			loaded, err := st.Load()

			Convey("Then the three editable fields round-trip and the window is recomputed", func() {
				So(err, ShouldBeNil)
				So(loaded.Start.String(), ShouldEqual, "20:00")
				So(loaded.Cutoff.String(), ShouldEqual, "21:30")
				So(loaded.MaxPercent, ShouldEqual, 25.0)
				So(loaded.WindowMinutes, ShouldEqual, 90)
			})

			Convey("And the snapshot file never contains the derived window", func() {
				data, err := os.ReadFile(st.Path())
				So(err, ShouldBeNil)
				So(string(data), ShouldContainSubstring, "start_time")
				So(string(data), ShouldNotContainSubstring, "window")
			})
		})

		Convey("When the snapshot file is corrupt", func() {
			So(os.WriteFile(st.Path(), []byte("{not json"), 0o644), ShouldBeNil)

			_, err := st.Load()

			Convey("Then Load reports ErrLoadSnapshot", func() {
				So(err, ShouldWrap, store.ErrLoadSnapshot)
			})
		})

		Convey("When the snapshot holds values that fail policy validation", func() {
			So(os.WriteFile(st.Path(), []byte(`{"start_time":"22:30","cutoff_time":"19:50","max_percent":40}`), 0o644), ShouldBeNil)

			_, err := st.Load()

			Convey("Then Load reports ErrLoadSnapshot", func() {
				So(err, ShouldWrap, store.ErrLoadSnapshot)
			})
		})

		Convey("When the target directory does not exist yet", func() {
			nested := store.NewFileStore(filepath.Join(dir, "deep", "policy.json"))
			pol, err := policy.New("19:50", "22:30", 40)
			So(err, ShouldBeNil)

			Convey("Then Save creates it", func() {
				So(nested.Save(pol), ShouldBeNil)
				_, err := nested.Load()
				So(err, ShouldBeNil)
			})
		})
	})
}
