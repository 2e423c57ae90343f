package dlive

import "github.com/dlive-cli/dlive/graphql"

// Operation names.
const (
	OpStream           = "stream"
	OpUser             = "user"
	OpLivestreams      = "livestreams"
	OpFeatured         = "featured"
	OpRecommended      = "recommended"
	OpCategories       = "categories"
	OpSearchUsers      = "searchUsers"
	OpSearchCategories = "searchCategories"
)

// Search kinds, used to key search history.
const (
	SearchKindUsers      = "users"
	SearchKindCategories = "categories"
)

const categoryFields = `
	backendID
	title
	imgUrl
	coverImgUrl
	watchingCount`

const creatorFields = `
	username
	displayname
	avatar`

const livestreamFields = `
	permlink
	ageRestriction
	thumbnailUrl
	title
	createdAt
	watchingCount
	language {
		backendID
		code
	}
	category {` + categoryFields + `
	}
	creator {` + creatorFields + `
	}`

const pastBroadcastFields = `
	permlink
	ageRestriction
	length
	thumbnailUrl
	title
	createdAt
	viewCount
	playbackUrl
	language {
		backendID
		code
	}
	category {` + categoryFields + `
	}
	creator {` + creatorFields + `
	}`

const pageInfoFields = `
	pageInfo {
		endCursor
		hasNextPage
	}`

const userFields = creatorFields + `
	followers {
		totalCount
	}`

const streamQuery = `query Stream($username: String!) {
	user(username: $username) {
		username
		displayname
		avatar
		livestream {` + livestreamFields + `
		}
	}
}`

const userQuery = `query User($username: String!, $first: Int, $after: String = "-1") {
	user(username: $username) {
		username
		displayname
		avatar
		createdAt
		followers {
			totalCount
		}
		livestream {` + livestreamFields + `
		}
		pastBroadcasts(first: $first, after: $after) {` + pageInfoFields + `
			list {` + pastBroadcastFields + `
			}
		}
	}
}`

const livestreamsQuery = `query Livestreams($first: Int, $after: String = "-1", $categoryID: Int = 0, $showNSFW: Boolean = false) {
	livestreams(input: {first: $first, after: $after, categoryID: $categoryID, showNSFW: $showNSFW, order: TRENDING}) {` + pageInfoFields + `
		list {` + livestreamFields + `
		}
	}
}`

const featuredQuery = `query Featured($userLanguageCode: String) {
	carousels(count: 8, userLanguageCode: $userLanguageCode) {
		item {
			... on Livestream {` + livestreamFields + `
			}
		}
	}
}`

const recommendedQuery = `query Recommended {
	globalInfo {
		recommendChannels(limit: 8) {
			user {` + userFields + `
			}
		}
	}
}`

const categoriesQuery = `query Categories($first: Int, $after: String = "-1") {
	categories(input: {first: $first, after: $after}) {` + pageInfoFields + `
		list {` + categoryFields + `
		}
	}
}`

const searchUsersQuery = `query SearchUsers($text: String!, $first: Int, $after: String = "-1") {
	search(text: $text) {
		allUsers(first: $first, after: $after) {` + pageInfoFields + `
			list {
				... on Livestream {
					creator {` + userFields + `
					}
				}
				... on User {` + userFields + `
				}
			}
		}
	}
}`

const searchCategoriesQuery = `query SearchCategories($text: String!, $first: Int, $after: String = "-1") {
	search(text: $text) {
		liveCategories(first: $first, after: $after) {` + pageInfoFields + `
			list {` + categoryFields + `
			}
		}
	}
}`

// Operations is the table of every query the service sends.
var Operations = graphql.Table{
	OpStream:           {Query: streamQuery, Path: []string{"user"}},
	OpUser:             {Query: userQuery, Path: []string{"user"}},
	OpLivestreams:      {Query: livestreamsQuery, Path: []string{"livestreams"}},
	OpFeatured:         {Query: featuredQuery, Path: []string{"carousels"}},
	OpRecommended:      {Query: recommendedQuery, Path: []string{"globalInfo", "recommendChannels"}},
	OpCategories:       {Query: categoriesQuery, Path: []string{"categories"}},
	OpSearchUsers:      {Query: searchUsersQuery, Path: []string{"search", "allUsers"}},
	OpSearchCategories: {Query: searchCategoriesQuery, Path: []string{"search", "liveCategories"}},
}
