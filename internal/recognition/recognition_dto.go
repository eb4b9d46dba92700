package recognition

// BBox is a face bounding box in pixel coordinates [x1, y1, x2, y2].
type BBox [4]int

type DetectedFace struct {
	Embedding []float32 `json:"embedding"`
	BBox      BBox      `json:"bbox"`
}

type RecognizedFace struct {
	IdentityID string  `json:"identity_id"`
	Name       string  `json:"name"`
	Score      float64 `json:"score"`
	BBox       BBox    `json:"bbox"`
	Action     string  `json:"action"`
}

type UnknownFace struct {
	ID    string  `json:"id"`
	BBox  BBox    `json:"bbox"`
	Score float64 `json:"score"`
}

type FrameResult struct {
	Recognized        []RecognizedFace `json:"recognized"`
	UnrecognizedCount int              `json:"unrecognized_count"`
	UnrecognizedFaces []UnknownFace    `json:"unrecognized_faces"`
	TotalFaces        int              `json:"total_faces"`
	ProcessingTimeMS  int64            `json:"processing_time_ms"`
}
