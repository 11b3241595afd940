package catalog_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/okian/mergington/internal/domain/catalog"
	. "github.com/smartystreets/goconvey/convey"
)

func writeSeed(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "seed.yaml")
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("write seed: %v", err)
	}
	return path
}

func TestDefault(t *testing.T) {
	Convey("Given the default catalog", t, func() {
		c := catalog.Default()

		Convey("Then it holds the nine school activities", func() {
			So(len(c), ShouldEqual, 9)
			So(c, ShouldContainKey, "Chess Club")
			So(c, ShouldContainKey, "Programming Class")
			So(c, ShouldContainKey, "Science Olympiad")
		})

		Convey("And Chess Club matches the school's roster", func() {
			chess := c["Chess Club"]
			So(chess.MaxParticipants, ShouldEqual, 12)
			So(chess.Participants, ShouldResemble, []string{"michael@mergington.edu", "daniel@mergington.edu"})
		})

		Convey("And every record is valid", func() {
			for _, a := range c {
				So(a.Validate(), ShouldBeNil)
			}
		})

		Convey("And each call returns an independent copy", func() {
			a := c["Art Club"]
			a.Participants[0] = "changed@mergington.edu"
			So(catalog.Default()["Art Club"].Participants[0], ShouldEqual, "zoe@mergington.edu")
		})
	})
}

func TestLoadFile(t *testing.T) {
	ctx := context.Background()

	Convey("Given a YAML seed file", t, func() {
		path := writeSeed(t, `
Chess Club:
  description: Learn strategies and compete in chess tournaments
  schedule: "Fridays, 3:30 PM - 5:00 PM"
  max_participants: 12
  participants:
    - michael@mergington.edu
    - daniel@mergington.edu
Robotics v2.0:
  description: Build robots
  schedule: Mondays
  max_participants: 8
`)

		Convey("When loading it", func() {
			c, err := catalog.LoadFile(ctx, path)

			Convey("Then activities are keyed by their exact names", func() {
				So(err, ShouldBeNil)
				So(len(c), ShouldEqual, 2)
				So(c["Chess Club"].MaxParticipants, ShouldEqual, 12)
				So(c["Chess Club"].Participants, ShouldResemble, []string{"michael@mergington.edu", "daniel@mergington.edu"})
			})

			Convey("And names containing dots survive", func() {
				So(c, ShouldContainKey, "Robotics v2.0")
				So(c["Robotics v2.0"].Participants, ShouldNotBeNil)
				So(c["Robotics v2.0"].Participants, ShouldBeEmpty)
			})
		})
	})

	Convey("Given a seed with a duplicate participant", t, func() {
		path := writeSeed(t, `
Art Club:
  max_participants: 16
  participants: [zoe@mergington.edu, zoe@mergington.edu]
`)
		_, err := catalog.LoadFile(ctx, path)

		Convey("Then loading fails as invalid", func() {
			So(errors.Is(err, catalog.ErrInvalidSeed), ShouldBeTrue)
		})
	})

	Convey("Given a missing file", t, func() {
		_, err := catalog.LoadFile(ctx, filepath.Join(t.TempDir(), "missing.yaml"))

		Convey("Then loading fails with a load error", func() {
			So(errors.Is(err, catalog.ErrLoadSeed), ShouldBeTrue)
		})
	})

	Convey("Given an empty file", t, func() {
		path := writeSeed(t, "")
		_, err := catalog.LoadFile(ctx, path)

		Convey("Then loading fails as invalid", func() {
			So(errors.Is(err, catalog.ErrInvalidSeed), ShouldBeTrue)
		})
	})
}
