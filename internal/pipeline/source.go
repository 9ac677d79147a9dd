package pipeline

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	apperrors "autoreport/internal/errors"
	"autoreport/internal/schema"
	"autoreport/pkg/contracts/domain"
)

type sourceKind int

const (
	kindListings sourceKind = iota
	kindComments
	kindReviews
)

type datasetInfo struct {
	kind     sourceKind
	platform domain.Platform
	source   domain.CommentSource
}

var datasets = map[schema.Family]datasetInfo{
	schema.FamilyAmazonSales:    {kind: kindListings, platform: domain.PlatformAmazon},
	schema.FamilyTikTokSales:    {kind: kindListings, platform: domain.PlatformTikTok},
	schema.FamilyTikTokComments: {kind: kindComments, source: domain.SourceTikTok},
	schema.FamilyRedditComments: {kind: kindComments, source: domain.SourceReddit},
	schema.FamilyAmazonReviews:  {kind: kindReviews, platform: domain.PlatformAmazon},
	schema.FamilyTikTokReviews:  {kind: kindReviews, platform: domain.PlatformTikTok},
}

// ParseDataset maps a dataset name such as "amazon_sales" to its family
func ParseDataset(name string) (schema.Family, error) {
	f := schema.Family(strings.ToLower(strings.TrimSpace(name)))
	if _, ok := datasets[f]; !ok {
		return "", apperrors.NewNotFoundError(fmt.Sprintf("dataset %q", name))
	}
	return f, nil
}

// Source is one raw input of a run
type Source struct {
	Dataset schema.Family
	// Name is the original file name; its extension selects the loader
	Name string
	Data []byte
}

// SourceFromFile reads a source from disk
func SourceFromFile(dataset schema.Family, path string) (Source, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Source{}, apperrors.NewStorageError(fmt.Sprintf("failed to read %s", path), err)
	}
	return Source{Dataset: dataset, Name: filepath.Base(path), Data: data}, nil
}

// Fingerprint returns a SHA-256 digest identifying a set of sources. The
// order of sources does not matter.
func Fingerprint(sources []Source) string {
	sorted := make([]Source, len(sources))
	copy(sorted, sources)
	sort.Slice(sorted, func(i, j int) bool {
		if sorted[i].Dataset != sorted[j].Dataset {
			return sorted[i].Dataset < sorted[j].Dataset
		}
		return sorted[i].Name < sorted[j].Name
	})

	h := sha256.New()
	for _, s := range sorted {
		h.Write([]byte(s.Dataset))
		h.Write([]byte{0})
		h.Write([]byte(strings.ToLower(filepath.Ext(s.Name))))
		h.Write([]byte{0})
		h.Write([]byte(strconv.Itoa(len(s.Data))))
		h.Write([]byte{0})
		h.Write(s.Data)
	}
	return hex.EncodeToString(h.Sum(nil))
}

func validateSources(sources []Source) error {
	if len(sources) == 0 {
		return apperrors.NewAppValidationError("at least one source is required")
	}
	seen := make(map[schema.Family]bool, len(sources))
	for _, s := range sources {
		if _, ok := datasets[s.Dataset]; !ok {
			return apperrors.NewAppValidationError(fmt.Sprintf("unknown dataset %q", s.Dataset))
		}
		if seen[s.Dataset] {
			return apperrors.NewAppValidationError(fmt.Sprintf("dataset %q supplied more than once", s.Dataset))
		}
		seen[s.Dataset] = true
	}
	return nil
}
