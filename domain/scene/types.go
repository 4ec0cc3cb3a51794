package scene

// Image is one frame of the observed sequence. Index is the frame's
// position in the sequence (0-based) and is what adjacency and ordering
// checks operate on; ID is the upstream dataset identifier.
type Image struct {
	ID    string `json:"id"`
	Index int    `json:"index"`
}

// Instance is a read-only view of an entity observed in one image. The
// engine never inspects appearance or scene-graph data; it only needs
// identity and which image the instance lives in.
type Instance struct {
	ID    string `json:"id"`
	Label string `json:"label"`
	Image Image  `json:"image"`
}

// GetImage returns the image this instance was observed in.
func (in Instance) GetImage() Image { return in.Image }

// SameImage reports whether two instances live in the same image.
func SameImage(a, b Instance) bool { return a.Image.ID == b.Image.ID }

// Action is an instance with the sentiment its label resolves to.
// Sentiment is precomputed upstream and consumed by affect-curve scoring.
type Action struct {
	Instance
	Sentiment float64 `json:"sentiment"`
}
