package models

// TranscriptWord is one recognized word with its start/end time in seconds.
type TranscriptWord struct {
	Start float64 `json:"start"`
	End   float64 `json:"end"`
	Word  string  `json:"word"`
}

// Transcript is the full recognized text plus word-level timing.
type Transcript struct {
	FullText string           `json:"full_text"`
	Words    []TranscriptWord `json:"words"`
}

// VolumeBucket is one fixed-width slice of the loudness timeline.
type VolumeBucket struct {
	T    float64 `json:"t"`    // bucket start, seconds
	RMS  float64 `json:"rms"`  // rounded to 6 decimals
	DBFS float64 `json:"dbfs"` // rounded to 1 decimal
}

// FillerWord is one filler word with its occurrence count, as reported by the
// qualitative feedback service.
type FillerWord struct {
	Word  string `json:"word"`
	Count int    `json:"count"`
}

// FormulationAid is a rewrite suggestion for an awkward passage.
type FormulationAid struct {
	Original    string `json:"original"`
	Suggestion  string `json:"suggestion"`
	Explanation string `json:"explanation"`
}

// QualitativeFeedback is the structured response of the audio-feedback
// inference service for one transcript.
type QualitativeFeedback struct {
	Fillers          []FillerWord     `json:"fillers"`
	Questions        []string         `json:"questions"`
	FormulationAids  []FormulationAid `json:"formulation_aids"`
	ClarityScore     int              `json:"clarity_score"`     // 0-100
	EngagementRating int              `json:"engagement_rating"` // 0-100
}

// AudioMeasurement holds all raw signals extracted from one recording. Built
// once per recording and immutable afterwards.
type AudioMeasurement struct {
	Transcript     Transcript          `json:"transcript"`
	TotalWords     int                 `json:"total_words"`
	Duration       float64             `json:"duration"` // seconds, rounded to 2
	WPM            float64             `json:"wpm"`      // rounded to 1
	AvgVolumeDBFS  float64             `json:"avg_volume_dbfs"`
	VolumeTimeline []VolumeBucket      `json:"volume_timeline"`
	VolumeDegraded bool                `json:"volume_degraded,omitempty"`
	Feedback       QualitativeFeedback `json:"feedback"`
	FillerRatio    float64             `json:"filler_ratio"` // rounded to 3
}

// AudioScoreSet holds the normalized delivery sub-scores and the weighted
// total. Sub-scores are integers in [0,100].
type AudioScoreSet struct {
	SpeakingPace int `json:"speaking_score"`
	Volume       int `json:"volume_score"`
	Filler       int `json:"filler_score"`
	Clarity      int `json:"clarity_score"`
	Engagement   int `json:"engagement_rating"`
	TotalScore   int `json:"total_score"`
}
