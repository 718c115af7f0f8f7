package audio

import (
	"log/slog"
	"math"
	"os"

	"github.com/go-audio/wav"

	"github.com/flightdeck-app/flightdeck/internal/models"
)

const (
	// bucketSeconds is the loudness timeline resolution.
	bucketSeconds = 0.1

	// SilenceFloorDBFS is reported for buckets (or recordings) with zero
	// signal, where true dBFS would be negative infinity.
	SilenceFloorDBFS = -100.0

	// DegradedDBFS is the sentinel average loudness reported when volume
	// extraction fails. Extraction failures degrade the measurement; they
	// never fail the recording analysis.
	DegradedDBFS = -99.0
)

// VolumeResult holds the loudness measurements for one recording.
type VolumeResult struct {
	AvgDBFS  float64
	Timeline []models.VolumeBucket
	Degraded bool
}

// degradedVolume is returned for any extraction failure.
func degradedVolume(path string, err error) *VolumeResult {
	slog.Warn("volume extraction failed, continuing without loudness",
		"path", path, "error", err)
	return &VolumeResult{
		AvgDBFS:  DegradedDBFS,
		Timeline: []models.VolumeBucket{},
		Degraded: true,
	}
}

// ExtractVolume decodes the WAV recording at path and measures the overall
// average loudness plus a fixed-resolution loudness timeline. Multi-channel
// audio is mixed down to mono before measuring. ExtractVolume never returns
// an error: failures produce a degraded result with sentinel values.
func ExtractVolume(path string) *VolumeResult {
	f, err := os.Open(path)
	if err != nil {
		return degradedVolume(path, err)
	}
	defer f.Close()

	dec := wav.NewDecoder(f)
	buf, err := dec.FullPCMBuffer()
	if err != nil {
		return degradedVolume(path, err)
	}
	if !dec.IsValidFile() || buf == nil || buf.Format == nil {
		return degradedVolume(path, errNotWAV)
	}

	channels := buf.Format.NumChannels
	sampleRate := buf.Format.SampleRate
	if channels <= 0 || sampleRate <= 0 {
		return degradedVolume(path, errNotWAV)
	}

	bitDepth := int(dec.BitDepth)
	if bitDepth == 0 {
		bitDepth = 16
	}
	maxAmp := float64(int64(1) << (bitDepth - 1))

	// Mix down to normalized mono frames in [-1, 1].
	frames := make([]float64, 0, len(buf.Data)/channels)
	for i := 0; i+channels <= len(buf.Data); i += channels {
		sum := 0.0
		for c := 0; c < channels; c++ {
			sum += float64(buf.Data[i+c])
		}
		frames = append(frames, sum/float64(channels)/maxAmp)
	}
	if len(frames) == 0 {
		return degradedVolume(path, errNotWAV)
	}

	result := &VolumeResult{
		AvgDBFS:  models.Round1(dbfs(rms(frames))),
		Timeline: bucketTimeline(frames, sampleRate),
	}
	return result
}

type volumeError string

func (e volumeError) Error() string { return string(e) }

const errNotWAV = volumeError("not a decodable WAV stream")

func rms(frames []float64) float64 {
	if len(frames) == 0 {
		return 0
	}
	sum := 0.0
	for _, v := range frames {
		sum += v * v
	}
	return math.Sqrt(sum / float64(len(frames)))
}

func dbfs(rms float64) float64 {
	if rms <= 0 {
		return SilenceFloorDBFS
	}
	return 20 * math.Log10(rms)
}

func bucketTimeline(frames []float64, sampleRate int) []models.VolumeBucket {
	framesPerBucket := int(float64(sampleRate) * bucketSeconds)
	if framesPerBucket <= 0 {
		framesPerBucket = 1
	}

	var timeline []models.VolumeBucket
	for start := 0; start < len(frames); start += framesPerBucket {
		end := start + framesPerBucket
		if end > len(frames) {
			end = len(frames)
		}
		r := rms(frames[start:end])
		timeline = append(timeline, models.VolumeBucket{
			T:    models.Round2(float64(len(timeline)) * bucketSeconds),
			RMS:  models.RoundN(r, 6),
			DBFS: models.Round1(dbfs(r)),
		})
	}
	return timeline
}
