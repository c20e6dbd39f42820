package output

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/klauspost/compress/zstd"

	"github.com/chrisdamba/heatwavesim/internal/cloudwriter"
	"github.com/chrisdamba/heatwavesim/internal/models"
)

const zstdExt = ".zst"

// Archive is the single-document record of a whole run.
type Archive struct {
	RunID      string              `json:"run_id"`
	Logs       []models.AgentLog   `json:"logs"`
	DailyStats []models.DailyStats `json:"daily_stats"`
	RiderStats []models.RiderStats `json:"rider_stats"`
	Report     *models.Report      `json:"report"`
}

func EncodeArchive(w io.Writer, a *Archive, compress bool) error {
	if !compress {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(a)
	}

	zw, err := zstd.NewWriter(w, zstd.WithEncoderLevel(zstd.SpeedFastest))
	if err != nil {
		return fmt.Errorf("zstd writer: %w", err)
	}
	if err := json.NewEncoder(zw).Encode(a); err != nil {
		zw.Close()
		return err
	}
	return zw.Close()
}

func DecodeArchive(r io.Reader, compressed bool) (*Archive, error) {
	if compressed {
		zr, err := zstd.NewReader(r)
		if err != nil {
			return nil, fmt.Errorf("zstd reader: %w", err)
		}
		defer zr.Close()
		r = zr
	}
	var a Archive
	if err := json.NewDecoder(r).Decode(&a); err != nil {
		return nil, err
	}
	return &a, nil
}

// archiveName appends .zst to compressed archives that lack it.
func archiveName(name string, compress bool) string {
	if compress && !strings.HasSuffix(name, zstdExt) {
		return name + zstdExt
	}
	return name
}

// WriteArchive stores a at config.ArchivePath, either on disk or, for the
// cloud destination, as an object under the output folder. It returns where
// the archive went.
func WriteArchive(ctx context.Context, config *models.Config, a *Archive) (string, error) {
	name := archiveName(config.ArchivePath, config.ArchiveCompress)

	if config.OutputDestination == "cloud" {
		factory, err := cloudwriter.NewFactory(ctx, config.CloudStorage)
		if err != nil {
			return "", err
		}
		return writeCloudArchive(factory, config, name, a)
	}

	if dir := filepath.Dir(name); dir != "." {
		if err := os.MkdirAll(dir, os.ModePerm); err != nil {
			return "", err
		}
	}
	f, err := os.Create(name)
	if err != nil {
		return "", err
	}
	if err := EncodeArchive(f, a, config.ArchiveCompress); err != nil {
		f.Close()
		return "", fmt.Errorf("encode archive: %w", err)
	}
	return name, f.Close()
}

func writeCloudArchive(factory cloudwriter.CloudWriterFactory, config *models.Config, name string, a *Archive) (string, error) {
	objectPath := path.Join(config.OutputFolder, filepath.Base(name))
	w, err := factory.NewWriter(config.CloudStorage.BucketName, objectPath)
	if err != nil {
		return "", err
	}
	if err := EncodeArchive(w, a, config.ArchiveCompress); err != nil {
		w.Discard()
		w.Close()
		return "", fmt.Errorf("encode archive: %w", err)
	}
	if err := w.Close(); err != nil {
		return "", err
	}
	return fmt.Sprintf("s3://%s/%s", config.CloudStorage.BucketName, objectPath), nil
}
