package analyzer

import (
	"context"
	"fmt"
	"os/exec"
	"strconv"
	"strings"

	"github.com/sportclip/highlightd/internal/common"
)

// FFProbe derives media duration by invoking the ffprobe binary.
type FFProbe struct {
	binPath string
}

// NewFFProbe returns a prober using the given ffprobe binary
// ("ffprobe" if empty).
func NewFFProbe(binPath string) *FFProbe {
	if binPath == "" {
		binPath = "ffprobe"
	}
	return &FFProbe{binPath: binPath}
}

func (p *FFProbe) Duration(ctx context.Context, videoPath string) (float64, error) {
	cmd := exec.CommandContext(ctx, p.binPath,
		"-v", "error",
		"-show_entries", "format=duration",
		"-of", "default=noprint_wrappers=1:nokey=1",
		videoPath,
	)

	out, err := cmd.Output()
	if err != nil {
		return 0, fmt.Errorf("%w: ffprobe: %v", common.ErrorMediaUnreadable, err)
	}

	duration, err := strconv.ParseFloat(strings.TrimSpace(string(out)), 64)
	if err != nil {
		return 0, fmt.Errorf("%w: parsing ffprobe output %q: %v", common.ErrorMediaUnreadable, strings.TrimSpace(string(out)), err)
	}

	return duration, nil
}
