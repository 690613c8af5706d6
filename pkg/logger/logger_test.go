package logger

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"testing"
	"time"

	. "github.com/smartystreets/goconvey/convey"
)

func TestLoggerInit(t *testing.T) {
	Convey("Given the global logger", t, func() {
		So(Init(), ShouldBeNil)
		Reset(func() { _ = Sync() })

		Convey("Get returns a usable logger", func() {
			So(Get(), ShouldNotBeNil)
			Get().Info(context.Background(), "test message", String("k", "v"))
		})

		Convey("Named loggers are non-nil", func() {
			So(Named("test"), ShouldNotBeNil)
		})
	})
}

func TestLoggerOutput(t *testing.T) {
	Convey("Given a logger writing JSON to a buffer", t, func() {
		var buf bytes.Buffer
		l := New(WithWriter(&buf), WithJSON(true)).Named("pipeline")
		Reset(func() { SetLevel(slog.LevelInfo) })

		Convey("Fields and the component name are rendered", func() {
			l.Info(context.Background(), "run complete",
				Int("rows", 3),
				Float64("revenue", 1500.5),
				Bool("synthetic", true),
				Duration("took", time.Second),
				Error(errors.New("boom")),
			)
			out := buf.String()
			So(out, ShouldContainSubstring, `"component":"pipeline"`)
			So(out, ShouldContainSubstring, `"rows":3`)
			So(out, ShouldContainSubstring, `"synthetic":true`)
			So(out, ShouldContainSubstring, `"msg":"run complete"`)
		})

		Convey("Debug is suppressed until the level is lowered", func() {
			l.Debug(context.Background(), "hidden")
			So(buf.String(), ShouldBeEmpty)

			So(SetLevelString("debug"), ShouldBeNil)
			l.Debug(context.Background(), "shown")
			So(buf.String(), ShouldContainSubstring, "shown")
		})
	})
}

func TestSetLevelString(t *testing.T) {
	Convey("Given level names", t, func() {
		Reset(func() { SetLevel(slog.LevelInfo) })

		for _, lvl := range []string{"debug", "INFO", "warn", "warning", "error", ""} {
			So(SetLevelString(lvl), ShouldBeNil)
		}
		So(SetLevelString("verbose"), ShouldNotBeNil)
	})
}
