package subtitle

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/asticode/go-astisub"
	"golang.org/x/text/encoding/charmap"

	"sublign/internal/services"
)

// Track is one SRT file opened for alignment.
type Track struct {
	Path string
	subs *astisub.Subtitles
}

// Entry is a single cue with its text flattened to one line.
type Entry struct {
	Start time.Duration
	End   time.Duration
	Text  string
}

// Load reads an SRT file, decoding it as ISO-8859-1. Legacy subtitle
// releases commonly carry that encoding and plain ASCII decodes the same
// either way, so timing survives even when the guess is wrong.
func Load(path string) (*Track, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, services.Wrap(services.ErrNotFound, "subtitle", "load", "open subtitle", err)
	}
	defer f.Close()

	subs, err := astisub.ReadFromSRT(charmap.ISO8859_1.NewDecoder().Reader(f))
	if err != nil {
		return nil, services.Wrap(services.ErrPrecondition, "subtitle", "load",
			fmt.Sprintf("parse %s", path), err)
	}
	return &Track{Path: path, subs: subs}, nil
}

// Count returns the number of cues.
func (t *Track) Count() int {
	if t == nil || t.subs == nil {
		return 0
	}
	return len(t.subs.Items)
}

// Entries returns the cues in file order.
func (t *Track) Entries() []Entry {
	if t == nil || t.subs == nil {
		return nil
	}
	entries := make([]Entry, 0, len(t.subs.Items))
	for _, item := range t.subs.Items {
		entries = append(entries, Entry{
			Start: item.StartAt,
			End:   item.EndAt,
			Text:  itemText(item),
		})
	}
	return entries
}

// Shift moves every cue by the given offset. Cues pushed entirely before
// zero are dropped and cues straddling zero are clamped to start at zero.
func (t *Track) Shift(offset time.Duration) {
	if t == nil || t.subs == nil {
		return
	}
	t.subs.Add(offset)
}

// Save rewrites the file in place as UTF-8.
func (t *Track) Save() error {
	return t.SaveTo(t.Path)
}

// SaveTo writes the track to the given path as UTF-8. A track without
// cues is refused before the destination is touched.
func (t *Track) SaveTo(path string) error {
	if t == nil || t.subs == nil {
		return services.Wrap(services.ErrPrecondition, "subtitle", "save", "no subtitles loaded", nil)
	}
	if len(t.subs.Items) == 0 {
		return services.Wrap(services.ErrPrecondition, "subtitle", "save", "no cues to write", nil)
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("save subtitle: %w", err)
	}
	if err := t.subs.WriteToSRT(f); err != nil {
		f.Close()
		return fmt.Errorf("save subtitle %s: %w", path, err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("save subtitle %s: %w", path, err)
	}
	return nil
}

func itemText(item *astisub.Item) string {
	var sb strings.Builder
	for i, line := range item.Lines {
		if i > 0 {
			sb.WriteByte(' ')
		}
		for j, lineItem := range line.Items {
			if j > 0 {
				sb.WriteByte(' ')
			}
			sb.WriteString(lineItem.Text)
		}
	}
	return sb.String()
}
