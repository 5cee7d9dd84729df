package extractor

// rawInfo mirrors the fields of a yt-dlp --dump-json document that the
// engine cares about.
type rawInfo struct {
	ID       string  `json:"id"`
	Title    string  `json:"title"`
	Uploader string  `json:"uploader"`
	Duration float64 `json:"duration"`

	Formats          []rawFormat `json:"formats"`
	RequestedFormats []rawFormat `json:"requested_formats"`

	Subtitles         map[string][]rawTrack `json:"subtitles"`
	AutomaticCaptions map[string][]rawTrack `json:"automatic_captions"`
	Chapters          []rawChapter          `json:"chapters"`
}

type rawFormat struct {
	FormatID       string  `json:"format_id"`
	Format         string  `json:"format"`
	FormatNote     string  `json:"format_note"`
	VCodec         string  `json:"vcodec"`
	ACodec         string  `json:"acodec"`
	Width          int     `json:"width"`
	Height         int     `json:"height"`
	TBR            float64 `json:"tbr"`
	Filesize       int64   `json:"filesize"`
	FilesizeApprox int64   `json:"filesize_approx"`
	URL            string  `json:"url"`
	Protocol       string  `json:"protocol"`
	Ext            string  `json:"ext"`
}

type rawTrack struct {
	URL  string `json:"url"`
	Ext  string `json:"ext"`
	Name string `json:"name"`
}

type rawChapter struct {
	Title     string  `json:"title"`
	StartTime float64 `json:"start_time"`
	EndTime   float64 `json:"end_time"`
}
