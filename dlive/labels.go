package dlive

// Labels shown to users.
const (
	LabelFeatured         = "Featured"
	LabelLivestreams      = "Live streams"
	LabelCategories       = "Categories"
	LabelRecommended      = "Recommended channels"
	LabelSearch           = "Search"
	LabelSearchUsers      = "Channels"
	LabelSearchCategories = "Categories"
	LabelWatched          = "Recently watched"
	LabelMore             = "More..."
	LabelNewSearch        = "New search..."
	LabelAgeRestricted    = "18+"
	LabelOffline          = "%s is offline"
)
