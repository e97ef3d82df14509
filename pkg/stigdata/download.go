package stigdata

import (
	"archive/zip"
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"
)

// Source describes one downloadable DISA STIG release.
type Source struct {
	URL      string
	Filename string
	Version  string
	Priority int
}

// Sources lists the known STIG archive locations, RHEL 9 prioritized.
// DISA moves these between releases; override the URL when they do.
var Sources = map[string]Source{
	"rhel9": {
		URL:      "https://dl.dod.cyber.mil/wp-content/uploads/stigs/zip/U_RHEL_9_STIG_V1R3_Manual-xccdf.xml.zip",
		Filename: "rhel9_stig.zip",
		Version:  "9",
		Priority: 1,
	},
	"rhel8": {
		URL:      "https://dl.dod.cyber.mil/wp-content/uploads/stigs/zip/U_RHEL_8_STIG_V1R12_Manual-xccdf.xml.zip",
		Filename: "rhel8_stig.zip",
		Version:  "8",
		Priority: 2,
	},
}

// SourceNames returns the known source keys in priority order.
func SourceNames() []string {
	names := make([]string, 0, len(Sources))
	for name := range Sources {
		names = append(names, name)
	}
	sort.Slice(names, func(i, j int) bool {
		return Sources[names[i]].Priority < Sources[names[j]].Priority
	})
	return names
}

// Downloader fetches and unpacks STIG archives.
type Downloader struct {
	httpClient *http.Client
}

// NewDownloader returns a Downloader with a generous timeout; the DISA
// archives are a few megabytes.
func NewDownloader() *Downloader {
	return &Downloader{httpClient: &http.Client{Timeout: 5 * time.Minute}}
}

// NewDownloaderWithHTTPClient is the test constructor.
func NewDownloaderWithHTTPClient(httpClient *http.Client) *Downloader {
	return &Downloader{httpClient: httpClient}
}

// Download fetches the named STIG release into outDir and returns the
// path of the downloaded archive.
func (d *Downloader) Download(ctx context.Context, name, outDir string) (string, error) {
	source, ok := Sources[name]
	if !ok {
		return "", fmt.Errorf("unknown STIG source %q (available: %s)", name, strings.Join(SourceNames(), ", "))
	}

	if err := os.MkdirAll(outDir, 0755); err != nil {
		return "", fmt.Errorf("failed to create output directory: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, source.URL, nil)
	if err != nil {
		return "", err
	}

	resp, err := d.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("failed to download %s STIG: %w", name, err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("failed to download %s STIG: %s", name, resp.Status)
	}

	outPath := filepath.Join(outDir, source.Filename)
	out, err := os.Create(outPath)
	if err != nil {
		return "", fmt.Errorf("failed to create %s: %w", outPath, err)
	}
	defer func() { _ = out.Close() }()

	if _, err := io.Copy(out, resp.Body); err != nil {
		return "", fmt.Errorf("failed to write %s: %w", outPath, err)
	}

	return outPath, nil
}

// Extract unpacks a downloaded archive next to itself and returns the
// XCCDF XML files found inside. Entries that would escape the extraction
// directory are rejected.
func Extract(zipPath string) ([]string, error) {
	extractDir := strings.TrimSuffix(zipPath, filepath.Ext(zipPath))
	if err := os.MkdirAll(extractDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create extraction directory: %w", err)
	}

	reader, err := zip.OpenReader(zipPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open archive %s: %w", zipPath, err)
	}
	defer func() { _ = reader.Close() }()

	var xmlFiles []string
	for _, file := range reader.File {
		dest := filepath.Join(extractDir, file.Name)
		if !strings.HasPrefix(dest, filepath.Clean(extractDir)+string(os.PathSeparator)) {
			return nil, fmt.Errorf("archive entry %q escapes extraction directory", file.Name)
		}

		if file.FileInfo().IsDir() {
			if err := os.MkdirAll(dest, 0755); err != nil {
				return nil, err
			}
			continue
		}

		if err := extractFile(file, dest); err != nil {
			return nil, err
		}

		if strings.EqualFold(filepath.Ext(dest), ".xml") {
			xmlFiles = append(xmlFiles, dest)
		}
	}

	sort.Strings(xmlFiles)
	return xmlFiles, nil
}

func extractFile(file *zip.File, dest string) error {
	if err := os.MkdirAll(filepath.Dir(dest), 0755); err != nil {
		return err
	}

	in, err := file.Open()
	if err != nil {
		return fmt.Errorf("failed to open archive entry %s: %w", file.Name, err)
	}
	defer func() { _ = in.Close() }()

	out, err := os.Create(dest)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", dest, err)
	}
	defer func() { _ = out.Close() }()

	if _, err := io.Copy(out, in); err != nil {
		return fmt.Errorf("failed to extract %s: %w", file.Name, err)
	}
	return nil
}
