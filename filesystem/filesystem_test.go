package filesystem

import (
	"testing"
	"time"

	"github.com/samber/lo"
	. "github.com/smartystreets/goconvey/convey"
)

func TestBackend(t *testing.T) {
	Convey("The backend can be swapped", t, func() {
		SetOsFs()
		So(API().Name(), ShouldEqual, "OsFs")

		SetMemMapFs()
		So(API().Name(), ShouldEqual, "MemMapFS")
	})
}

func TestPersisted(t *testing.T) {
	Convey("Given an in-memory backend", t, func() {
		SetMemMapFs()

		Convey("A value should survive a new cache over the same file", func() {
			So(Persisted[[]string]("/state/watched.json", 0).Set([]string{"alice"}), ShouldBeNil)
			So(lo.Must(API().Exists("/state/watched.json")), ShouldBeTrue)

			value, expired, err := Persisted[[]string]("/state/watched.json", 0).Get()
			So(err, ShouldBeNil)
			So(expired, ShouldBeFalse)
			So(value, ShouldResemble, []string{"alice"})
		})

		Convey("A value past its lifetime should expire", func() {
			So(Persisted[string]("/state/version.json", time.Millisecond).Set("1.2.0"), ShouldBeNil)
			time.Sleep(5 * time.Millisecond)

			value, _, err := Persisted[string]("/state/version.json", time.Millisecond).Get()
			So(err, ShouldBeNil)
			So(value, ShouldBeEmpty)
		})
	})
}
