package fetch

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	getter "github.com/hashicorp/go-getter"
)

// Fetcher downloads dimension databases from anything go-getter understands
// (local paths, http(s), git, s3, gcs).
type Fetcher struct {
	log *slog.Logger
	pwd string
}

// New creates a Fetcher. Relative sources are resolved against the current
// working directory.
func New(log *slog.Logger) (*Fetcher, error) {
	pwd, err := os.Getwd()
	if err != nil {
		return nil, fmt.Errorf("get working directory: %w", err)
	}
	return &Fetcher{log: log, pwd: pwd}, nil
}

// Fetch downloads the single file at src into dst and returns dst.
func (f *Fetcher) Fetch(ctx context.Context, src, dst string) (string, error) {
	if src == "" {
		return "", fmt.Errorf("fetch: empty source")
	}
	if dst == "" {
		return "", fmt.Errorf("fetch %s: empty destination", src)
	}
	if err := os.MkdirAll(filepath.Dir(dst), 0o755); err != nil {
		return "", fmt.Errorf("create destination dir: %w", err)
	}

	f.log.Info("start downloading dimension", "source", src, "dest", dst)

	client := &getter.Client{
		Ctx:     ctx,
		Src:     src,
		Dst:     dst,
		Pwd:     f.pwd,
		Mode:    getter.ClientModeFile,
		Getters: copyingGetters(),
	}
	if err := client.Get(); err != nil {
		return "", fmt.Errorf("fetch %s: %w", src, err)
	}

	f.log.Info("done downloading dimension", "dest", dst)
	return dst, nil
}

// copyingGetters returns the default getters with local files copied
// rather than symlinked into place.
func copyingGetters() map[string]getter.Getter {
	getters := make(map[string]getter.Getter, len(getter.Getters))
	for k, g := range getter.Getters {
		getters[k] = g
	}
	getters["file"] = &getter.FileGetter{Copy: true}
	return getters
}
