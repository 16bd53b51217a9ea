package deps

import (
	"fmt"
	"os"
	"os/exec"
	"strings"

	"golang.org/x/sys/unix"
)

// Requirement defines an external dependency sublign relies on.
type Requirement struct {
	Name        string
	Command     string
	Description string
	Optional    bool
}

// Status reports the availability of a dependency.
type Status struct {
	Name        string
	Command     string
	Description string
	Optional    bool
	Available   bool
	Detail      string
}

// CheckBinaries evaluates the provided requirements and reports availability.
func CheckBinaries(requirements []Requirement) []Status {
	results := make([]Status, 0, len(requirements))
	for _, req := range requirements {
		cmd := strings.TrimSpace(req.Command)
		status := Status{
			Name:        req.Name,
			Command:     cmd,
			Description: strings.TrimSpace(req.Description),
			Optional:    req.Optional,
		}
		if cmd == "" {
			status.Available = false
			status.Detail = "command not configured"
			results = append(results, status)
			continue
		}
		if _, err := exec.LookPath(cmd); err != nil {
			status.Available = false
			status.Detail = fmt.Sprintf("binary %q not found", cmd)
			results = append(results, status)
			continue
		}
		status.Available = true
		results = append(results, status)
	}
	return results
}

// Required returns the external binaries a sync run depends on.
func Required(ffmpeg, ffprobe string) []Requirement {
	return []Requirement{
		{Name: "FFmpeg", Command: ffmpeg, Description: "Transcodes media audio for analysis"},
		{Name: "FFprobe", Command: ffprobe, Description: "Validates containers before transcoding"},
	}
}

// CheckWorkDir verifies the working directory exists and is fully accessible
// before any transcode writes into it.
func CheckWorkDir(path string) Status {
	status := Status{Name: "Work directory", Description: "Holds temporary transcode output"}
	trimmed := strings.TrimSpace(path)
	if trimmed == "" {
		status.Detail = "paths.work_dir is not configured"
		return status
	}
	status.Command = trimmed

	info, err := os.Stat(trimmed)
	if err != nil {
		if os.IsNotExist(err) {
			status.Detail = fmt.Sprintf("%s does not exist", trimmed)
		} else {
			status.Detail = fmt.Sprintf("stat %s: %v", trimmed, err)
		}
		return status
	}
	if !info.IsDir() {
		status.Detail = fmt.Sprintf("%s is not a directory", trimmed)
		return status
	}
	if err := unix.Access(trimmed, unix.R_OK|unix.W_OK|unix.X_OK); err != nil {
		status.Detail = fmt.Sprintf("insufficient permissions on %s: %v", trimmed, err)
		return status
	}
	status.Available = true
	status.Detail = fmt.Sprintf("%s (read/write ok)", trimmed)
	return status
}

// FirstMissing returns the first non-optional dependency that is unavailable,
// or nil when everything required resolves.
func FirstMissing(statuses []Status) *Status {
	for i := range statuses {
		if statuses[i].Available || statuses[i].Optional {
			continue
		}
		return &statuses[i]
	}
	return nil
}
