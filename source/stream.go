package source

// Protocol is the transport of a stream.
type Protocol string

const (
	ProtocolHLS         Protocol = "hls"
	ProtocolProgressive Protocol = "progressive"
)

// Transcoding is an unresolved stream variant of a track.
// Its URL must be exchanged for the actual stream location.
type Transcoding struct {
	URL      string   `json:"url"`
	Preset   string   `json:"preset"`
	Protocol Protocol `json:"protocol"`
	MimeType string   `json:"mime_type"`
}

// Stream is a resolved, directly playable location.
type Stream struct {
	URL      string   `json:"url"`
	Protocol Protocol `json:"protocol"`
}

// Preferred picks the transcoding to resolve: HLS first, then progressive.
func Preferred(transcodings []Transcoding) (Transcoding, bool) {
	for _, want := range []Protocol{ProtocolHLS, ProtocolProgressive} {
		for _, t := range transcodings {
			if t.Protocol == want {
				return t, true
			}
		}
	}
	return Transcoding{}, false
}
