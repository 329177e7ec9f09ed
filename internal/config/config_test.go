package config_test

import (
	"context"
	"testing"
	"time"

	"github.com/okian/kaizolist/internal/config"
	"github.com/okian/kaizolist/internal/domain/scoring"
	"github.com/smartystreets/goconvey/convey"
)

func TestConfig_New(t *testing.T) {
	convey.Convey("Given a new config with default options", t, func() {
		cfg := config.New(context.Background())

		convey.Convey("Then it should have sensible defaults", func() {
			convey.So(cfg.Addr, convey.ShouldEqual, ":9080")
			convey.So(cfg.DataDir, convey.ShouldEqual, "data")
			convey.So(cfg.LevelsFile, convey.ShouldEqual, "levels.json")
			convey.So(cfg.MaxLeaderboardLimit, convey.ShouldEqual, 100)
			convey.So(cfg.DuplicateCredit, convey.ShouldBeFalse)
			convey.So(cfg.ReloadInterval(), convey.ShouldEqual, time.Duration(0))
			convey.So(cfg.Validate(), convey.ShouldBeNil)
		})

		convey.Convey("Then scoring defaults round-trip to the canonical params", func() {
			convey.So(cfg.ScoringParams(), convey.ShouldResemble, scoring.DefaultParams())
		})
	})
}
