package config_test

import (
	"context"
	"testing"

	"github.com/notafinal/notafinal/internal/config"
	. "github.com/smartystreets/goconvey/convey"
)

func TestLoad(t *testing.T) {
	Convey("Given the loader", t, func() {
		ctx := context.Background()

		Convey("When no file or env overrides exist", func() {
			cfg, err := config.Load(ctx)

			Convey("Then defaults come back unchanged", func() {
				So(err, ShouldBeNil)
				So(cfg.Addr, ShouldEqual, ":8080")
				So(cfg.StartTime, ShouldEqual, "19:50")
			})
		})

		Convey("When env variables override fields", func() {
			t.Setenv("NOTAFINAL_ADDR", ":9999")
			t.Setenv("NOTAFINAL_LOG_LEVEL", "debug")
			t.Setenv("NOTAFINAL_START_TIME", "18:00")
			t.Setenv("NOTAFINAL_CUTOFF_TIME", "20:00")

			cfg, err := config.Load(ctx)

			Convey("Then the env layer wins", func() {
				So(err, ShouldBeNil)
				So(cfg.Addr, ShouldEqual, ":9999")
				So(cfg.LogLevel, ShouldEqual, "debug")
				So(cfg.StartTime, ShouldEqual, "18:00")
				So(cfg.CutoffTime, ShouldEqual, "20:00")
			})
		})

		Convey("When the seed policy is inconsistent", func() {
			t.Setenv("NOTAFINAL_START_TIME", "22:30")
			t.Setenv("NOTAFINAL_CUTOFF_TIME", "19:50")

			_, err := config.Load(ctx)

			Convey("Then loading fails with ErrInvalidConfig", func() {
				So(err, ShouldWrap, config.ErrInvalidConfig)
			})
		})

		Convey("When addr is cleared", func() {
			t.Setenv("NOTAFINAL_ADDR", "")

			_, err := config.Load(ctx)

			Convey("Then loading fails with ErrInvalidConfig", func() {
				So(err, ShouldWrap, config.ErrInvalidConfig)
			})
		})
	})
}
