// converter/probe.go

package converter

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os/exec"
	"strconv"
	"strings"
	"time"

	"MediaConverter/common"
)

// ProbeInfo summarizes what ffprobe reports about a media file
type ProbeInfo struct {
	FormatName string
	Duration   time.Duration
	BitRate    int64
	AudioCodec string
	VideoCodec string
	Width      int
	Height     int
	Streams    int
}

// String renders the info as a single status line
func (p ProbeInfo) String() string {
	parts := []string{p.FormatName}
	if p.Duration > 0 {
		parts = append(parts, p.Duration.Round(time.Second).String())
	}
	if p.VideoCodec != "" {
		parts = append(parts, fmt.Sprintf("video %s %dx%d", p.VideoCodec, p.Width, p.Height))
	}
	if p.AudioCodec != "" {
		parts = append(parts, "audio "+p.AudioCodec)
	}
	return strings.Join(parts, ", ")
}

type probeOutput struct {
	Streams []struct {
		CodecType string `json:"codec_type"`
		CodecName string `json:"codec_name"`
		Width     int    `json:"width"`
		Height    int    `json:"height"`
	} `json:"streams"`
	Format struct {
		FormatName string `json:"format_name"`
		Duration   string `json:"duration"`
		BitRate    string `json:"bit_rate"`
	} `json:"format"`
}

// Prober runs the ffprobe helper
type Prober struct {
	helper string
	logger *common.Logger
}

// NewProber creates a prober for the helper at helperPath
func NewProber(helperPath string, logger *common.Logger) *Prober {
	return &Prober{helper: helperPath, logger: logger}
}

// Probe reads container and stream information of path
func (p *Prober) Probe(ctx context.Context, path string) (ProbeInfo, error) {
	if !common.FileExists(path) {
		return ProbeInfo{}, common.NewOperationError(common.KindNotFound, common.OperationProbe, path, "", nil)
	}
	if !common.FileExists(p.helper) {
		return ProbeInfo{}, common.NewOperationError(common.KindHelperNotFound, common.OperationProbe, path,
			fmt.Sprintf("%s not found at %s", common.HelperFFprobe, p.helper), nil)
	}

	var stdout, stderr bytes.Buffer
	cmd := exec.CommandContext(ctx, p.helper,
		"-v", "quiet", "-print_format", "json", "-show_format", "-show_streams", path)
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	hideWindow(cmd)

	if err := cmd.Run(); err != nil {
		if ctx.Err() != nil {
			return ProbeInfo{}, common.NewOperationError(common.KindCancelled, common.OperationProbe, path, "", ctx.Err())
		}
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			return ProbeInfo{}, common.NewOperationError(common.KindUnsupportedInput, common.OperationProbe, path,
				stderrTail(stderr.String(), exitErr), err)
		}
		return ProbeInfo{}, common.NewOperationError(common.KindHelperNotFound, common.OperationProbe, path, "", err)
	}

	info, err := parseProbeOutput(stdout.Bytes())
	if err != nil {
		return ProbeInfo{}, common.NewOperationError(common.KindIOError, common.OperationProbe, path, "", err)
	}
	p.logger.Debug("Probed %s: %s", path, info)
	return info, nil
}

func parseProbeOutput(data []byte) (ProbeInfo, error) {
	var out probeOutput
	if err := json.Unmarshal(data, &out); err != nil {
		return ProbeInfo{}, fmt.Errorf("failed to parse probe output: %w", err)
	}

	info := ProbeInfo{
		FormatName: out.Format.FormatName,
		Streams:    len(out.Streams),
	}
	if seconds, err := strconv.ParseFloat(out.Format.Duration, 64); err == nil {
		info.Duration = time.Duration(seconds * float64(time.Second))
	}
	if rate, err := strconv.ParseInt(out.Format.BitRate, 10, 64); err == nil {
		info.BitRate = rate
	}
	for _, s := range out.Streams {
		switch s.CodecType {
		case "audio":
			if info.AudioCodec == "" {
				info.AudioCodec = s.CodecName
			}
		case "video":
			if info.VideoCodec == "" {
				info.VideoCodec = s.CodecName
				info.Width, info.Height = s.Width, s.Height
			}
		}
	}
	return info, nil
}
