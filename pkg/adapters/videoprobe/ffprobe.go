package videoprobe

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/tidwall/gjson"

	"github.com/user/lapse/pkg/ports"
)

// ParseFFprobe reads the first stream of `ffprobe -of json` output.
func ParseFFprobe(data []byte) (ports.VideoInfo, error) {
	if !gjson.ValidBytes(data) {
		return ports.VideoInfo{}, fmt.Errorf("%w: invalid JSON", ErrProbeFailed)
	}
	stream := gjson.GetBytes(data, "streams.0")
	if !stream.Exists() {
		return ports.VideoInfo{}, ErrNoVideoTrack
	}

	info := ports.VideoInfo{
		Width:         int(stream.Get("width").Int()),
		Height:        int(stream.Get("height").Int()),
		Codec:         stream.Get("codec_name").String(),
		FrameCount:    -1,
		KeyFrameCount: -1,
	}

	info.FPS = ParseRate(stream.Get("avg_frame_rate").String())
	if info.FPS == 0 {
		info.FPS = ParseRate(stream.Get("r_frame_rate").String())
	}

	// nb_frames is a string and "N/A" for containers that do not record it.
	if n, err := strconv.Atoi(stream.Get("nb_frames").String()); err == nil && n > 0 {
		info.FrameCount = n
	}
	return info, nil
}

// ParseRate parses an ffmpeg rational such as "30000/1001". It returns 0
// for malformed or undefined rates.
func ParseRate(s string) float64 {
	num, den, ok := strings.Cut(s, "/")
	if !ok {
		v, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return 0
		}
		return v
	}
	n, err1 := strconv.ParseFloat(num, 64)
	d, err2 := strconv.ParseFloat(den, 64)
	if err1 != nil || err2 != nil || d == 0 {
		return 0
	}
	return n / d
}
