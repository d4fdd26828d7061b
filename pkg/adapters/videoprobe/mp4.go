package videoprobe

import (
	"fmt"
	"io"

	"github.com/Eyevinn/mp4ff/mp4"

	"github.com/user/lapse/pkg/ports"
)

// FromMP4 reads the video properties from an ISO BMFF file's sample tables.
// A track whose frame size cannot be read is an error, so callers can fall
// back to ffprobe.
func FromMP4(r io.ReadSeeker) (ports.VideoInfo, error) {
	info, err := decodeMP4(r)
	if err != nil {
		return ports.VideoInfo{}, err
	}
	if info.Width <= 0 || info.Height <= 0 {
		return ports.VideoInfo{}, fmt.Errorf("%w: %q sample entry", ErrUnknownFrameSize, info.Codec)
	}
	return info, nil
}

func decodeMP4(r io.ReadSeeker) (ports.VideoInfo, error) {
	mp4File, err := mp4.DecodeFile(r)
	if err != nil {
		return ports.VideoInfo{}, fmt.Errorf("decode mp4: %w", err)
	}

	if mp4File.IsFragmented() {
		return fromFragmented(mp4File)
	}
	if mp4File.Moov == nil {
		return ports.VideoInfo{}, ErrNoVideoTrack
	}
	trak := videoTrak(mp4File.Moov.Traks)
	if trak == nil {
		return ports.VideoInfo{}, ErrNoVideoTrack
	}

	info := baseInfo(trak)
	stbl := trak.Mdia.Minf.Stbl
	if stbl.Stsz != nil {
		info.FrameCount = int(stbl.Stsz.SampleNumber)
	}
	if stbl.Stss != nil {
		info.KeyFrameCount = len(stbl.Stss.SampleNumber)
	} else if info.FrameCount >= 0 {
		// No stss box means every sample is a sync sample.
		info.KeyFrameCount = info.FrameCount
	}

	if mdhd := trak.Mdia.Mdhd; mdhd != nil && mdhd.Duration > 0 && info.FrameCount > 0 {
		info.FPS = float64(info.FrameCount) * float64(mdhd.Timescale) / float64(mdhd.Duration)
	}
	return info, nil
}

func fromFragmented(mp4File *mp4.File) (ports.VideoInfo, error) {
	if mp4File.Init == nil || mp4File.Init.Moov == nil {
		return ports.VideoInfo{}, ErrNoVideoTrack
	}
	trak := videoTrak(mp4File.Init.Moov.Traks)
	if trak == nil {
		return ports.VideoInfo{}, ErrNoVideoTrack
	}
	info := baseInfo(trak)
	trackID := trak.Tkhd.TrackID

	var trex *mp4.TrexBox
	if mvex := mp4File.Init.Moov.Mvex; mvex != nil {
		for _, t := range mvex.Trexs {
			if t.TrackID == trackID {
				trex = t
				break
			}
		}
	}

	var samples, keys int
	var duration uint64
	for _, seg := range mp4File.Segments {
		for _, frag := range seg.Fragments {
			if frag.Moof == nil {
				continue
			}
			owned := false
			for _, traf := range frag.Moof.Trafs {
				if traf.Tfhd.TrackID == trackID {
					owned = true
				}
			}
			if !owned {
				continue
			}
			full, err := frag.GetFullSamples(trex)
			if err != nil {
				return ports.VideoInfo{}, fmt.Errorf("read fragment samples: %w", err)
			}
			for _, sample := range full {
				samples++
				duration += uint64(sample.Dur)
				if sample.Flags == mp4.SyncSampleFlags {
					keys++
				}
			}
		}
	}
	if samples > 0 {
		info.FrameCount = samples
		info.KeyFrameCount = keys
	}
	if mdhd := trak.Mdia.Mdhd; mdhd != nil && duration > 0 && samples > 0 {
		info.FPS = float64(samples) * float64(mdhd.Timescale) / float64(duration)
	}
	return info, nil
}

func videoTrak(traks []*mp4.TrakBox) *mp4.TrakBox {
	for _, trak := range traks {
		if trak.Mdia == nil || trak.Mdia.Hdlr == nil || trak.Mdia.Hdlr.HandlerType != "vide" {
			continue
		}
		if trak.Mdia.Minf == nil || trak.Mdia.Minf.Stbl == nil || trak.Mdia.Minf.Stbl.Stsd == nil {
			continue
		}
		return trak
	}
	return nil
}

func baseInfo(trak *mp4.TrakBox) ports.VideoInfo {
	info := ports.VideoInfo{FrameCount: -1, KeyFrameCount: -1}
	for _, child := range trak.Mdia.Minf.Stbl.Stsd.Children {
		if vse, ok := child.(*mp4.VisualSampleEntryBox); ok {
			info.Width = int(vse.Width)
			info.Height = int(vse.Height)
			info.Codec = vse.Type()
			break
		}
	}
	return info
}
