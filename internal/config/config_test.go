package config_test

import (
	"errors"
	"testing"

	"github.com/okian/thaidash/internal/config"
	"github.com/smartystreets/goconvey/convey"
)

func TestConfig_New(t *testing.T) {
	convey.Convey("Given a new config with default options", t, func() {
		cfg := config.New()

		convey.Convey("Then it should have sensible defaults", func() {
			convey.So(cfg.Addr, convey.ShouldEqual, ":9080")
			convey.So(cfg.SampleRows, convey.ShouldEqual, 500)
			convey.So(cfg.SampleSeed, convey.ShouldEqual, 42)
			convey.So(cfg.TopN, convey.ShouldEqual, 10)
			convey.So(cfg.InactiveDays, convey.ShouldEqual, 90)
			convey.So(cfg.LogFormat, convey.ShouldEqual, "text")
			convey.So(cfg.MetricsNamespace, convey.ShouldEqual, "thaidash")
			convey.So(cfg.MetricsSubsystem, convey.ShouldEqual, "analytics")
			convey.So(config.Validate(cfg), convey.ShouldBeNil)
		})
	})

	convey.Convey("Given invalid values", t, func() {
		convey.Convey("An unknown log level is rejected", func() {
			cfg := config.New()
			cfg.LogLevel = "verbose"
			convey.So(errors.Is(config.Validate(cfg), config.ErrInvalidConfig), convey.ShouldBeTrue)
		})

		convey.Convey("A limit cap below the default top-N is rejected", func() {
			cfg := config.New()
			cfg.MaxTopLimit = 5
			convey.So(errors.Is(config.Validate(cfg), config.ErrInvalidConfig), convey.ShouldBeTrue)
		})

		convey.Convey("An unknown log format is rejected", func() {
			cfg := config.New()
			cfg.LogFormat = "xml"
			convey.So(errors.Is(config.Validate(cfg), config.ErrInvalidConfig), convey.ShouldBeTrue)
		})

		convey.Convey("An empty metrics namespace is rejected", func() {
			cfg := config.New()
			cfg.MetricsNamespace = ""
			convey.So(errors.Is(config.Validate(cfg), config.ErrInvalidConfig), convey.ShouldBeTrue)
		})

		convey.Convey("Non-positive histogram buckets are rejected", func() {
			cfg := config.New()
			cfg.MetricsBuckets = []float64{10, 0}
			convey.So(errors.Is(config.Validate(cfg), config.ErrInvalidConfig), convey.ShouldBeTrue)
		})

		convey.Convey("An empty address is rejected", func() {
			cfg := config.New()
			cfg.Addr = ""
			convey.So(config.Validate(cfg), convey.ShouldNotBeNil)
		})
	})
}
