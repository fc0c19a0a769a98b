package services

import (
	"path"
	"sort"
	"strconv"
	"strings"

	"github.com/jared-cannon/app-registry/internal/models"
)

// Listing texts
const (
	EmptyListingMessage = "لا توجد تطبيقات مضافة حالياً."
	FreeYesLabel        = "نعم"
	FreeNoLabel         = "لا"
	ToggleTitle         = "إظهار/إخفاء التفاصيل"
)

// TableHeaders are the fixed column headers of the listing table
var TableHeaders = []string{"اسم التطبيق", "الشركة", "المجال", "مجاني", "تفاصيل"}

// SlideDurationMs is the show/hide transition length of a detail row
const SlideDurationMs = 180

// MediaKind selects the player used for a record's media URL
type MediaKind string

const (
	MediaNone  MediaKind = ""
	MediaAudio MediaKind = "audio"
	MediaVideo MediaKind = "video"
)

var videoExtensions = map[string]bool{
	".mp4":  true,
	".m4v":  true,
	".webm": true,
	".ogv":  true,
	".mov":  true,
}

// MediaKindOf guesses the player for a media URL from its extension
func MediaKindOf(media string) MediaKind {
	if media == "" {
		return MediaNone
	}
	p := media
	if i := strings.IndexAny(p, "?#"); i >= 0 {
		p = p[:i]
	}
	if videoExtensions[strings.ToLower(path.Ext(p))] {
		return MediaVideo
	}
	return MediaAudio
}

// Disclosure is the set of detail rows currently shown, by record index
type Disclosure map[int]bool

// ParseDisclosure reads a comma separated index list such as "0,3".
// Anything that is not a non-negative integer is ignored.
func ParseDisclosure(s string) Disclosure {
	d := Disclosure{}
	for _, part := range strings.Split(s, ",") {
		idx, err := strconv.Atoi(strings.TrimSpace(part))
		if err != nil || idx < 0 {
			continue
		}
		d[idx] = true
	}
	return d
}

// IsOpen reports whether the detail row of idx is shown
func (d Disclosure) IsOpen(idx int) bool {
	return d[idx]
}

// Toggle returns a copy of d with only idx flipped
func (d Disclosure) Toggle(idx int) Disclosure {
	out := make(Disclosure, len(d)+1)
	for k, v := range d {
		if v {
			out[k] = true
		}
	}
	if out[idx] {
		delete(out, idx)
	} else {
		out[idx] = true
	}
	return out
}

// String encodes d in ParseDisclosure form with sorted indexes
func (d Disclosure) String() string {
	idxs := make([]int, 0, len(d))
	for k, v := range d {
		if v {
			idxs = append(idxs, k)
		}
	}
	sort.Ints(idxs)

	parts := make([]string, len(idxs))
	for i, idx := range idxs {
		parts[i] = strconv.Itoa(idx)
	}
	return strings.Join(parts, ",")
}

// TableRow is one record: the summary row and its detail row
type TableRow struct {
	Index     int
	Name      string
	Company   string
	Domain    string
	FreeLabel string
	Logo      string
	Website   string
	Summary   string
	Media     string
	MediaKind MediaKind
	Open      bool
	// ToggleQuery is the disclosure after activating this row's toggle
	ToggleQuery string
}

// TableModel is everything the listing page needs to draw the table
type TableModel struct {
	Empty       bool
	Placeholder string
	Headers     []string
	Rows        []TableRow
	SlideMs     int
}

// BuildTableModel builds the listing table for list, most recent first.
// Rows not in open start collapsed; indexes past the end of list are ignored.
func BuildTableModel(list models.AppList, open Disclosure) TableModel {
	if len(list) == 0 {
		return TableModel{Empty: true, Placeholder: EmptyListingMessage}
	}

	model := TableModel{
		Headers: TableHeaders,
		Rows:    make([]TableRow, 0, len(list)),
		SlideMs: SlideDurationMs,
	}

	// Drop stale indexes so toggle links never carry them forward
	visible := Disclosure{}
	for idx := range open {
		if open.IsOpen(idx) && idx < len(list) {
			visible[idx] = true
		}
	}

	for i, app := range list {
		freeLabel := FreeNoLabel
		if app.IsFree() {
			freeLabel = FreeYesLabel
		}
		model.Rows = append(model.Rows, TableRow{
			Index:       i,
			Name:        app.Name,
			Company:     app.Company,
			Domain:      app.Domain,
			FreeLabel:   freeLabel,
			Logo:        app.Logo,
			Website:     app.Website,
			Summary:     app.Summary,
			Media:       app.Media,
			MediaKind:   MediaKindOf(app.Media),
			Open:        visible.IsOpen(i),
			ToggleQuery: visible.Toggle(i).String(),
		})
	}
	return model
}

// ListingTable loads the stored list and builds its table
func ListingTable(store *RecordStore, open Disclosure) TableModel {
	return BuildTableModel(store.LoadAll(), open)
}
