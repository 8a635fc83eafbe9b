package model_test

import (
	"encoding/json"
	"testing"
	"time"

	model "github.com/okian/mvdstats/internal/domain/model"
	"github.com/smartystreets/goconvey/convey"
)

func TestMatchJSON(t *testing.T) {
	convey.Convey("Given a Match", t, func() {
		m := model.Match{
			ID:            "id-1",
			Checksum:      "abc",
			Map:           "dm2",
			Source:        model.SourceKtxstats,
			MatchDuration: 10 * time.Minute,
			Players: []model.Player{
				{Name: "eQu", Team: "red", Color: [2]uint8{4, 4}, Frags: 20, Ping: 12},
			},
		}

		convey.Convey("When encoding it as JSON", func() {
			b, err := json.Marshal(m)
			convey.So(err, convey.ShouldBeNil)

			var out map[string]any
			convey.So(json.Unmarshal(b, &out), convey.ShouldBeNil)

			convey.Convey("Then fields use snake_case names", func() {
				convey.So(out["source"], convey.ShouldEqual, "ktxstats")
				convey.So(out["map"], convey.ShouldEqual, "dm2")
				convey.So(out["match_duration"], convey.ShouldEqual, float64(10*time.Minute))
				convey.So(out, convey.ShouldNotContainKey, "filename")
				convey.So(out, convey.ShouldNotContainKey, "flags")
			})

			convey.Convey("Then players keep their colours", func() {
				players := out["players"].([]any)
				convey.So(players, convey.ShouldHaveLength, 1)
				p := players[0].(map[string]any)
				convey.So(p["color"], convey.ShouldResemble, []any{float64(4), float64(4)})
			})
		})
	})
}
