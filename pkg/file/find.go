package file

import (
	"fmt"
	"os"
	"path/filepath"
	"time"
)

// FindLatest returns the most recently modified regular file under dir,
// walking subdirectories. Returns an error when dir holds no files.
func FindLatest(dir string) (string, error) {
	var (
		latest     string
		latestTime time.Time
	)

	err := filepath.Walk(dir, func(path string, info os.FileInfo,
		err error) error {
		if err != nil {
			return err
		}

		if !info.IsDir() && info.ModTime().After(latestTime) {
			latest = path
			latestTime = info.ModTime()
		}
		return nil
	})
	if err != nil {
		return "", err
	}
	if latest == "" {
		return "", fmt.Errorf("no files found in %s", dir)
	}
	return latest, nil
}
