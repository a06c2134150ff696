package anim

import (
	"errors"
	"fmt"
	"os"
	"sort"

	"gopkg.in/yaml.v3"
)

// ErrInvalidClip reports a clip that cannot be played.
var ErrInvalidClip = errors.New("invalid animation clip")

// Library maps clip names to clips.
type Library map[string]*Clip

// Names returns the clip names in sorted order.
func (l Library) Names() []string {
	names := make([]string, 0, len(l))
	for name := range l {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Validate checks every clip, reporting the first problem in name order.
func (l Library) Validate() error {
	for _, name := range l.Names() {
		if err := validateClip(l[name]); err != nil {
			return fmt.Errorf("%w %q: %v", ErrInvalidClip, name, err)
		}
	}
	return nil
}

func validateClip(c *Clip) error {
	if c == nil {
		return errors.New("empty definition")
	}
	if c.Duration <= 0 {
		return fmt.Errorf("duration %v must be positive", c.Duration)
	}
	if len(c.Keyframes) == 0 {
		return errors.New("no keyframes")
	}
	prev := float32(0)
	for i, kf := range c.Keyframes {
		if kf.Time < 0 || kf.Time > c.Duration {
			return fmt.Errorf("keyframe %d time %v outside [0, %v]", i, kf.Time, c.Duration)
		}
		if kf.Time < prev {
			return fmt.Errorf("keyframe %d time %v before previous %v", i, kf.Time, prev)
		}
		prev = kf.Time
	}
	return nil
}

// ParseLibrary decodes and validates a library document. JSON documents are
// accepted as YAML flow syntax.
func ParseLibrary(data []byte) (Library, error) {
	var lib Library
	if err := yaml.Unmarshal(data, &lib); err != nil {
		return nil, fmt.Errorf("decoding animation library: %w", err)
	}
	if lib == nil {
		lib = Library{}
	}
	if err := lib.Validate(); err != nil {
		return nil, err
	}
	return lib, nil
}

// LoadLibrary reads and parses a library file.
func LoadLibrary(path string) (Library, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading animation library %s: %w", path, err)
	}
	lib, err := ParseLibrary(data)
	if err != nil {
		return nil, fmt.Errorf("loading %s: %w", path, err)
	}
	return lib, nil
}
