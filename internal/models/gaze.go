package models

// BlendshapeScore is one named facial channel value within a gaze sample.
// Scores are typically in [0,1] but the capture pipeline does not clamp them.
type BlendshapeScore struct {
	Index        int     `json:"index"`
	Score        float64 `json:"score"`
	CategoryName string  `json:"categoryName"`
	DisplayName  string  `json:"displayName,omitempty"`
}

// GazeSample is one time-stamped facial-expression observation.
type GazeSample struct {
	Timestamp float64           `json:"timestamp"`
	Scores    []BlendshapeScore `json:"scores"`
}

// GazeAnalysis is the result of analyzing one session's gaze samples: a
// sparse 2D heatmap of quantized gaze direction plus a composite attention
// score in [0,1]. Recomputed from scratch on every session finalize.
type GazeAnalysis struct {
	Heatmap        map[string]int `json:"heatmap"`
	AttentionScore float64        `json:"attention_score"`
}
