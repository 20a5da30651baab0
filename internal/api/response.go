package api

import "github.com/simonhull/audioinfo"

// AudioInfo is the success body of both analyze endpoints.
type AudioInfo struct {
	Duration      float64 `json:"duration"`
	SampleRate    int     `json:"sample_rate"`
	ChannelsCount int     `json:"channels_count"`
	Format        string  `json:"format"`
	// BitDepth is null for compressed formats.
	BitDepth *int `json:"bit_depth"`
}

// NewAudioInfo converts extracted metadata to its wire form.
func NewAudioInfo(m *audioinfo.Metadata) AudioInfo {
	info := AudioInfo{
		Duration:      m.Duration,
		SampleRate:    m.SampleRate,
		ChannelsCount: m.Channels,
		Format:        m.Format.MIMEType(),
	}
	if m.HasBitDepth() {
		depth := m.BitDepth
		info.BitDepth = &depth
	}
	return info
}
