package icon

import (
	"testing"

	"github.com/dlive-cli/dlive/key"
	. "github.com/smartystreets/goconvey/convey"
	"github.com/spf13/viper"
)

func TestGet(t *testing.T) {
	Convey("Given a registered icon", t, func() {
		target := Live

		Convey("It renders correctly for each variant", func() {
			for _, variant := range AvailableVariants() {
				Convey("variant="+variant, func() {
					viper.Set(key.IconsVariant, variant)
					So(Get(target), ShouldNotBeEmpty)
				})
			}
		})

		Convey("It returns empty for an unknown variant", func() {
			viper.Set(key.IconsVariant, "")
			So(Get(target), ShouldBeEmpty)
		})
	})

	Convey("Colored icons should keep their glyph", t, func() {
		viper.Set(key.IconsVariant, "plain")
		So(Colored(Live), ShouldContainSubstring, "LIVE")
		So(Colored(Offline), ShouldContainSubstring, "off")
		So(Colored(User), ShouldEqual, Get(User))

		viper.Set(key.IconsVariant, "none")
		So(Colored(Live), ShouldBeEmpty)
	})

	Convey("Variants should be copied", t, func() {
		variants := AvailableVariants()
		variants[0] = "changed"
		So(AvailableVariants()[0], ShouldEqual, "emoji")
	})

	Convey("Every icon should be registered", t, func() {
		viper.Set(key.IconsVariant, "plain")
		for i := Fail; i <= Play; i++ {
			So(icons, ShouldContainKey, i)
			So(Get(i), ShouldNotBeEmpty)
		}
	})
}
