package strategy

import (
	"os"
	"path/filepath"

	"go.uber.org/zap"
)

// DefaultDir is the cache directory used when none is configured.
const DefaultDir = "cache"

// lostFoundDir receives files recovery could not map back to a key.
const lostFoundDir = "lost+found"

// writeFileSync writes data to path and fsyncs before returning, so a
// successful Put is durable even across an immediate crash.
func writeFileSync(path string, data []byte) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if _, err := f.Write(data); err != nil {
		f.Close()
		return err
	}
	if err := f.Sync(); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// recoverScan walks dir non-recursively. Files the accept callback
// rejects are moved, best effort, into lost+found; accepted files are
// handed to keep with their stat-reported size. A file that cannot be
// stat'd is skipped; only failing to read the directory itself aborts
// the scan.
func recoverScan(dir string, log *zap.Logger, accept func(string) bool, keep func(name, path string, size int)) error {
	lost := filepath.Join(dir, lostFoundDir)
	if err := os.MkdirAll(lost, 0o755); err != nil {
		return err
	}

	dirents, err := os.ReadDir(dir)
	if err != nil {
		return err
	}
	for _, de := range dirents {
		if de.IsDir() {
			continue
		}
		name := de.Name()
		path := filepath.Join(dir, name)
		if !accept(name) {
			// Quarantine errors are deliberately ignored; one stray file
			// must not fail the rest of the recovery.
			_ = os.Rename(path, filepath.Join(lost, name))
			log.Warn("quarantined unrecognized cache file", zap.String("file", name))
			continue
		}
		info, err := de.Info()
		if err != nil {
			log.Warn("skipping unreadable cache file", zap.String("file", name), zap.Error(err))
			continue
		}
		keep(name, path, int(info.Size()))
	}
	return nil
}
