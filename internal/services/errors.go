package services

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrUnsupportedFormat marks media files whose container is outside the
	// closed set of supported extensions.
	ErrUnsupportedFormat = errors.New("unsupported media format")
	// ErrPrecondition marks operations invoked before their inputs were prepared,
	// such as requesting labels for media that was never featurized.
	ErrPrecondition = errors.New("precondition violation")
	// ErrExternalTool marks failures reported by external binaries or runtimes.
	ErrExternalTool = errors.New("external tool error")
	// ErrConfiguration marks unusable configuration values.
	ErrConfiguration = errors.New("configuration error")
	// ErrNotFound marks missing files or history records.
	ErrNotFound = errors.New("not found")
)

// Wrap builds an error message that includes component context while tagging it
// with the provided marker for later classification. The marker should be one
// of the exported sentinel errors above.
func Wrap(marker error, component, operation, message string, err error) error {
	detail := buildDetail(component, operation, message)
	if marker == nil {
		marker = ErrExternalTool
	}
	if err != nil {
		return fmt.Errorf("%w: %s: %w", marker, detail, err)
	}
	return fmt.Errorf("%w: %s", marker, detail)
}

func buildDetail(component, operation, message string) string {
	parts := make([]string, 0, 3)
	if component = strings.TrimSpace(component); component != "" {
		parts = append(parts, component)
	}
	if operation = strings.TrimSpace(operation); operation != "" {
		parts = append(parts, operation)
	}
	if message = strings.TrimSpace(message); message != "" {
		parts = append(parts, message)
	}
	if len(parts) == 0 {
		return "service failure"
	}
	return strings.Join(parts, ": ")
}
