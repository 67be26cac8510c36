// Package assets loads the decorative home-page animation.
package assets

import (
	"encoding/json"
	"fmt"
	"os"
)

// Animation is a Lottie JSON document. A nil *Animation means the home page
// renders without it.
type Animation struct {
	Data []byte
}

// LoadAnimation reads and validates the animation once at start-up.
func LoadAnimation(path string) (*Animation, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read animation %s: %w", path, err)
	}
	if !json.Valid(data) {
		return nil, fmt.Errorf("animation %s is not valid JSON", path)
	}
	return &Animation{Data: data}, nil
}
