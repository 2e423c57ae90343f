package dlive

import (
	"github.com/dlive-cli/dlive/listing"
	"github.com/samber/mo"
)

// Folder is a static navigation entry identified by its type and style.
type Folder struct {
	Type  string `json:"type"`
	Style string `json:"style"`
}

type folderEntry struct {
	label  string
	action string
	params listing.Params
}

// folders maps type and style to what the folder shows.
// An empty action means the action is the folder type.
var folders = map[string]map[string]folderEntry{
	"streams": {
		"":         {label: LabelLivestreams},
		"featured": {label: LabelFeatured, action: "featured"},
	},
	"categories": {
		"": {label: LabelCategories},
	},
	"users": {
		"recommended": {label: LabelRecommended, action: "recommended"},
	},
	"search": {
		"":           {label: LabelSearch},
		"users":      {label: LabelSearchUsers, action: "search_history", params: listing.Params{"query": SearchKindUsers}},
		"categories": {label: LabelSearchCategories, action: "search_history", params: listing.Params{"query": SearchKindCategories}},
	},
	"watched": {
		"": {label: LabelWatched},
	},
}

// searchStyles are the sub folders of the search folder.
var searchStyles = []string{"users", "categories"}

func (*Folder) Kind() Kind { return KindFolder }

func (*Folder) sealed() {}

// Row renders the folder from the schema. Unknown folders have no row.
// The context action is ignored, folders carry their own.
func (f *Folder) Row(ctx listing.Context) mo.Option[listing.Row] {
	entry, ok := folders[f.Type][f.Style]
	if !ok {
		return mo.None[listing.Row]()
	}

	action := entry.action
	if action == "" {
		action = f.Type
	}

	return mo.Some(listing.Row{
		Label:  entry.label,
		Path:   listing.BuildURL(ctx.BaseURL, entry.params.With("action", action)),
		Folder: true,
		Plot:   entry.label,
	})
}

// Home lists the root folders.
func Home() *Collection[*Folder] {
	return folderCollection(
		&Folder{Type: "streams", Style: "featured"},
		&Folder{Type: "users", Style: "recommended"},
		&Folder{Type: "streams"},
		&Folder{Type: "categories"},
		&Folder{Type: "search"},
		&Folder{Type: "watched"},
	)
}

// SearchFolders lists the kinds of search available.
func SearchFolders() *Collection[*Folder] {
	items := make([]*Folder, len(searchStyles))
	for i, style := range searchStyles {
		items[i] = &Folder{Type: "search", Style: style}
	}
	return folderCollection(items...)
}

func folderCollection(items ...*Folder) *Collection[*Folder] {
	options := make([]mo.Option[*Folder], len(items))
	for i, item := range items {
		options[i] = mo.Some(item)
	}
	return NewCollection(options, Meta{})
}
