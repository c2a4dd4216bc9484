// Package util holds small helpers shared by the upload path and startup logging.
package util

import (
	"crypto/sha256"
	"encoding/hex"
	"io"
	"os"
	"strconv"
	"time"

	"github.com/pkg/errors"
)

// FileSHA256 returns the hex SHA-256 digest of the file at path.
func FileSHA256(path string) (string, error) {
	file, err := os.Open(path)
	if err != nil {
		return "", errors.Wrap(err, "failed to open file")
	}
	defer file.Close()

	h := sha256.New()
	if _, err := io.Copy(h, file); err != nil {
		return "", errors.Wrap(err, "failed to hash file")
	}

	return hex.EncodeToString(h.Sum(nil)), nil
}

var byteUnits = []string{"KB", "MB", "GB", "TB", "PB", "EB"}

// FormatBytes renders a size with binary units, e.g. "1.5 KB".
func FormatBytes(n int64) string {
	if n < 1024 {
		return strconv.FormatInt(n, 10) + " B"
	}

	value := float64(n) / 1024
	unit := 0
	for value >= 1024 && unit < len(byteUnits)-1 {
		value /= 1024
		unit++
	}

	return strconv.FormatFloat(value, 'f', 1, 64) + " " + byteUnits[unit]
}

// FormatDuration renders a duration to the second with at most two units, e.g. "1h30m", "5m10s", "45s".
func FormatDuration(d time.Duration) string {
	secs := int64(d.Round(time.Second) / time.Second)

	switch {
	case secs < 60:
		return strconv.FormatInt(secs, 10) + "s"
	case secs < 3600:
		return strconv.FormatInt(secs/60, 10) + "m" + strconv.FormatInt(secs%60, 10) + "s"
	default:
		return strconv.FormatInt(secs/3600, 10) + "h" + strconv.FormatInt(secs%3600/60, 10) + "m"
	}
}
