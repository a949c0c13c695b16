package config_test

import (
	"testing"

	"github.com/notafinal/notafinal/internal/config"
	. "github.com/smartystreets/goconvey/convey"
)

func TestConfig_New(t *testing.T) {
	Convey("Given a new config with default options", t, func() {
		cfg := config.New()

		Convey("Then it should have sensible defaults", func() {
			So(cfg.LogLevel, ShouldEqual, "info")
			So(cfg.Addr, ShouldEqual, ":8080")
			So(cfg.PolicyFile, ShouldEqual, "data/policy.json")
			So(cfg.WatchPolicyFile, ShouldBeFalse)
			So(cfg.MaxUploadBytes, ShouldEqual, int64(5<<20))
			So(cfg.StartTime, ShouldEqual, "19:50")
			So(cfg.CutoffTime, ShouldEqual, "22:30")
			So(cfg.MaxPercent, ShouldEqual, 40.0)
		})
	})
}
