package audio

import (
	"os"
	"path/filepath"
	"testing"

	goaudio "github.com/go-audio/audio"
	"github.com/go-audio/wav"
	"github.com/stretchr/testify/require"
)

// writeWAV writes a mono 16-bit PCM file with the given constant amplitude.
func writeWAV(t *testing.T, sampleRate, frames, amplitude int) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "rec.wav")
	f, err := os.Create(path)
	require.NoError(t, err)
	defer f.Close()

	enc := wav.NewEncoder(f, sampleRate, 16, 1, 1)
	data := make([]int, frames)
	for i := range data {
		data[i] = amplitude
	}
	require.NoError(t, enc.Write(&goaudio.IntBuffer{
		Format:         &goaudio.Format{NumChannels: 1, SampleRate: sampleRate},
		Data:           data,
		SourceBitDepth: 16,
	}))
	require.NoError(t, enc.Close())
	return path
}

func TestExtractVolumeConstantTone(t *testing.T) {
	// Half-scale DC: normalized RMS 0.5, dBFS 20*log10(0.5) = -6.02.
	path := writeWAV(t, 8000, 1600, 16384)

	res := ExtractVolume(path)
	require.False(t, res.Degraded)
	require.Equal(t, -6.0, res.AvgDBFS)

	require.Len(t, res.Timeline, 2)
	require.Equal(t, 0.0, res.Timeline[0].T)
	require.Equal(t, 0.1, res.Timeline[1].T)
	for _, b := range res.Timeline {
		require.Equal(t, 0.5, b.RMS)
		require.Equal(t, -6.0, b.DBFS)
	}
}

func TestExtractVolumeSilence(t *testing.T) {
	path := writeWAV(t, 8000, 800, 0)

	res := ExtractVolume(path)
	require.False(t, res.Degraded)
	require.Equal(t, SilenceFloorDBFS, res.AvgDBFS)
	require.Len(t, res.Timeline, 1)
	require.Equal(t, 0.0, res.Timeline[0].RMS)
	require.Equal(t, SilenceFloorDBFS, res.Timeline[0].DBFS)
}

func TestExtractVolumeShortLastBucket(t *testing.T) {
	// 1.25 buckets of frames: the partial tail still gets a bucket.
	path := writeWAV(t, 8000, 1000, 16384)

	res := ExtractVolume(path)
	require.False(t, res.Degraded)
	require.Len(t, res.Timeline, 2)
}

func TestExtractVolumeDegraded(t *testing.T) {
	t.Run("missing file", func(t *testing.T) {
		res := ExtractVolume(filepath.Join(t.TempDir(), "nope.wav"))
		require.True(t, res.Degraded)
		require.Equal(t, DegradedDBFS, res.AvgDBFS)
		require.Empty(t, res.Timeline)
	})

	t.Run("not a wav", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "garbage.wav")
		require.NoError(t, os.WriteFile(path, []byte("definitely not riff"), 0o644))

		res := ExtractVolume(path)
		require.True(t, res.Degraded)
		require.Equal(t, DegradedDBFS, res.AvgDBFS)
		require.Empty(t, res.Timeline)
	})
}
