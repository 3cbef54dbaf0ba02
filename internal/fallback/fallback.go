// Package fallback holds the static dataset the dashboard falls back to
// while the remote backend is unavailable.
package fallback

import (
	_ "embed"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/ariefcatur/go-seller-dashboard/internal/catalog"
)

//go:embed dataset.yaml
var embedded []byte

const topContentSize = 3

type Dataset struct {
	Products     []catalog.Product      `yaml:"products"`
	VideoContent []catalog.VideoContent `yaml:"videoContent"`
	Orders       []catalog.Order        `yaml:"orders"`
	Money        catalog.MoneyData      `yaml:"money"`
	Social       catalog.SocialMetrics  `yaml:"social"`
	Analytics    catalog.Analytics      `yaml:"analytics"`
}

// Loader produces a fresh copy of the dataset on every call.
type Loader func() (*Dataset, error)

// Load parses the embedded dataset.
func Load() (*Dataset, error) {
	return Parse(embedded)
}

// FromFile returns a Loader reading path on every call, or the embedded
// dataset when path is empty.
func FromFile(path string) Loader {
	if path == "" {
		return Load
	}
	return func() (*Dataset, error) {
		b, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read fallback dataset: %w", err)
		}
		return Parse(b)
	}
}

// Failing returns a Loader that always fails with err.
func Failing(err error) Loader {
	return func() (*Dataset, error) { return nil, err }
}

func Parse(b []byte) (*Dataset, error) {
	var ds Dataset
	if err := yaml.Unmarshal(b, &ds); err != nil {
		return nil, fmt.Errorf("parse fallback dataset: %w", err)
	}
	if len(ds.Social.TopPerformingContent) == 0 && len(ds.VideoContent) > 0 {
		n := min(topContentSize, len(ds.VideoContent))
		ds.Social.TopPerformingContent = append([]catalog.VideoContent(nil), ds.VideoContent[:n]...)
	}
	return &ds, nil
}
