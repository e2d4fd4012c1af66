package winamp

// Item is one media library entry returned by a query. Year, Track and
// Length are -1 when the library has no value; Length is in seconds.
type Item struct {
	Filename string
	Title    string
	Album    string
	Artist   string
	Comment  string
	Genre    string
	Year     int
	Track    int
	Length   int
}

func itemFrom(r *Record) Item {
	return Item{
		Filename: r.StringOr("filename", ""),
		Title:    r.StringOr("title", ""),
		Album:    r.StringOr("album", ""),
		Artist:   r.StringOr("artist", ""),
		Comment:  r.StringOr("comment", ""),
		Genre:    r.StringOr("genre", ""),
		Year:     int(r.Int32("year")),
		Track:    int(r.Int32("track")),
		Length:   int(r.Int32("length")),
	}
}

// DisplayTitle returns the title, or the filename when the library has no
// title for the item.
func (it Item) DisplayTitle() string {
	if it.Title != "" {
		return it.Title
	}
	return it.Filename
}
