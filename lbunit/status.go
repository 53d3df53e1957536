package lbunit

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"slices"
	"strconv"
	"time"

	"github.com/leafbridge/leafbridge-hello/localfs"
)

// StatusTag is a coarse workload status.
type StatusTag string

// Workload status tags.
const (
	StatusMaintenance StatusTag = "maintenance"
	StatusBlocked     StatusTag = "blocked"
	StatusActive      StatusTag = "active"
)

// Validate returns an error if the tag is not recognized.
func (tag StatusTag) Validate() error {
	switch tag {
	case StatusMaintenance, StatusBlocked, StatusActive:
		return nil
	default:
		return fmt.Errorf("unrecognized status: %s", tag)
	}
}

// Port is a network port that the workload exposes.
type Port struct {
	Number   int    `json:"number"`
	Protocol string `json:"protocol"`
}

// String returns the port in "number/protocol" form.
func (p Port) String() string {
	return strconv.Itoa(p.Number) + "/" + p.Protocol
}

// Status is the most recently reported status of the workload.
type Status struct {
	Tag     StatusTag `json:"status,omitempty"`
	Message string    `json:"message,omitempty"`
	Updated time.Time `json:"updated,omitzero"`
	Ports   []Port    `json:"ports,omitzero"`
}

// StatusSink accepts status reports and port declarations. It is never read
// back by the controller.
type StatusSink interface {
	SetStatus(tag StatusTag, message string) error
	OpenPort(port int, protocol string) error
}

// StatusFile is a StatusSink that keeps the latest status in a JSON file.
type StatusFile struct {
	Path string
}

// SetStatus records the given status.
func (f StatusFile) SetStatus(tag StatusTag, message string) error {
	if err := tag.Validate(); err != nil {
		return err
	}
	status, err := ReadStatus(f.Path)
	if err != nil {
		return err
	}
	status.Tag = tag
	status.Message = message
	status.Updated = time.Now().UTC()
	return f.write(status)
}

// OpenPort records the given port as exposed. Opening a port that is already
// open has no effect.
func (f StatusFile) OpenPort(port int, protocol string) error {
	if port <= 0 || port > 65535 {
		return fmt.Errorf("invalid port number: %d", port)
	}
	status, err := ReadStatus(f.Path)
	if err != nil {
		return err
	}
	p := Port{Number: port, Protocol: protocol}
	if slices.Contains(status.Ports, p) {
		return nil
	}
	status.Ports = append(status.Ports, p)
	return f.write(status)
}

func (f StatusFile) write(status Status) error {
	data, err := json.MarshalIndent(status, "", "  ")
	if err != nil {
		return err
	}
	return localfs.WriteFile(f.Path, append(data, '\n'), 0o644)
}

// ReadStatus reads the status stored at path. A missing file yields a zero
// status.
func ReadStatus(path string) (Status, error) {
	if path == "" {
		return Status{}, errors.New("missing status file path")
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return Status{}, nil
		}
		return Status{}, err
	}
	var status Status
	if err := json.Unmarshal(data, &status); err != nil {
		return Status{}, fmt.Errorf("failed to parse status file \"%s\": %w", path, err)
	}
	return status, nil
}
