package files

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strings"
	"time"

	"autoreport/internal/schema"
)

// FileInfo represents information about a discovered file
type FileInfo struct {
	Path    string
	Name    string
	Size    int64
	ModTime time.Time
}

// Discovery finds export files on disk
type Discovery struct {
	basePath string
	logger   *slog.Logger
}

// NewDiscovery creates a new file discovery instance. Relative directories
// are resolved against basePath.
func NewDiscovery(basePath string, logger *slog.Logger) *Discovery {
	if logger == nil {
		logger = slog.Default()
	}
	return &Discovery{basePath: basePath, logger: logger}
}

// sourceExtensions are the file types the table loader understands
var sourceExtensions = map[string]bool{
	".csv":  true,
	".xlsx": true,
	".xls":  true,
}

// FindSourceFiles lists the CSV and Excel files of a directory
// (non-recursive). Hidden files and Excel lock files are skipped.
func (d *Discovery) FindSourceFiles(dir string) ([]FileInfo, error) {
	fullPath := dir
	if !filepath.IsAbs(dir) {
		fullPath = filepath.Join(d.basePath, dir)
	}

	entries, err := os.ReadDir(fullPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read directory %s: %w", fullPath, err)
	}

	var files []FileInfo
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}

		name := entry.Name()
		if strings.HasPrefix(name, ".") || strings.HasPrefix(name, "~$") {
			continue
		}
		if !sourceExtensions[strings.ToLower(filepath.Ext(name))] {
			continue
		}

		info, err := entry.Info()
		if err != nil {
			continue
		}

		files = append(files, FileInfo{
			Path:    filepath.Join(fullPath, name),
			Name:    name,
			Size:    info.Size(),
			ModTime: info.ModTime(),
		})
	}

	sort.Slice(files, func(i, j int) bool {
		return files[i].Name < files[j].Name
	})

	return files, nil
}

// DiscoverSources maps the files of dir to datasets by file name. When more
// than one file matches a dataset the most recently modified wins.
func (d *Discovery) DiscoverSources(dir string) (map[schema.Family]FileInfo, error) {
	files, err := d.FindSourceFiles(dir)
	if err != nil {
		return nil, err
	}

	candidates := make(map[schema.Family][]FileInfo)
	for _, f := range files {
		dataset, ok := MatchDataset(f.Name)
		if !ok {
			d.logger.Debug("Skipping unrecognized file", slog.String("file", f.Name))
			continue
		}
		candidates[dataset] = append(candidates[dataset], f)
	}

	found := make(map[schema.Family]FileInfo, len(candidates))
	for dataset, list := range candidates {
		latest, _ := GetLatestFile(list)
		if len(list) > 1 {
			d.logger.Warn("Multiple files match dataset, using latest",
				slog.String("dataset", string(dataset)),
				slog.String("file", latest.Name),
				slog.Int("candidates", len(list)))
		}
		found[dataset] = latest
	}

	d.logger.Info("Discovered source files",
		slog.String("dir", dir),
		slog.Int("files", len(files)),
		slog.Int("datasets", len(found)))

	return found, nil
}

// numberPrefix matches export numbering such as "1. ", "3." or "2、"
var numberPrefix = regexp.MustCompile(`^\s*\d+\s*[.、)_-]?\s*`)

// datasetPatterns is checked in order; review and comment names are tested
// before the bare platform sales names they contain.
var datasetPatterns = []struct {
	dataset  schema.Family
	keywords []string
}{
	{schema.FamilyTikTokReviews, []string{"tiktok店铺评论", "tk店铺评论", "tiktok_reviews", "tiktok_shop_reviews"}},
	{schema.FamilyAmazonReviews, []string{"amazon商品评论", "amazon评论", "amazon_reviews"}},
	{schema.FamilyTikTokComments, []string{"tk视频评论", "tiktok视频评论", "tiktok_comments", "tk_comments"}},
	{schema.FamilyRedditComments, []string{"reddit"}},
	{schema.FamilyAmazonSales, []string{"amazon销售", "amazon_sales"}},
	{schema.FamilyTikTokSales, []string{"tk销售", "tiktok销售", "tiktok_sales", "tk_sales"}},
}

// MatchDataset maps an export file name such as "1. amazon销售.xlsx" or
// "tiktok_comments.csv" to its dataset
func MatchDataset(name string) (schema.Family, bool) {
	stem := strings.TrimSuffix(filepath.Base(name), filepath.Ext(name))
	stem = numberPrefix.ReplaceAllString(stem, "")
	stem = strings.ToLower(strings.TrimSpace(stem))
	stem = strings.NewReplacer(" ", "_", "-", "_").Replace(stem)

	for _, p := range datasetPatterns {
		for _, kw := range p.keywords {
			if strings.Contains(stem, kw) {
				return p.dataset, true
			}
		}
	}
	return "", false
}

// GetLatestFile returns the most recently modified file. Ties go to the
// lexically greater name.
func GetLatestFile(files []FileInfo) (FileInfo, bool) {
	if len(files) == 0 {
		return FileInfo{}, false
	}

	latest := files[0]
	for _, f := range files[1:] {
		if f.ModTime.After(latest.ModTime) || (f.ModTime.Equal(latest.ModTime) && f.Name > latest.Name) {
			latest = f
		}
	}
	return latest, true
}
