package indexnow

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"
)

var (
	ErrMissingKeyFile = errors.New("missing key file")
	ErrEmptyKeyFile   = errors.New("key file is empty")
)

// LoadKey returns envKey when it is set, otherwise the trimmed content of
// keyFile.
func LoadKey(envKey, keyFile string) (string, error) {
	if key := strings.TrimSpace(envKey); key != "" {
		return key, nil
	}

	content, err := os.ReadFile(keyFile)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return "", fmt.Errorf(
				"%w at %s: ensure the Bing verification file is present",
				ErrMissingKeyFile,
				keyFile,
			)
		}

		return "", fmt.Errorf("could not read key file %s: %w", keyFile, err)
	}

	key := strings.TrimSpace(string(content))
	if key == "" {
		return "", fmt.Errorf(
			"%w: populate %s with the API key",
			ErrEmptyKeyFile,
			keyFile,
		)
	}

	return key, nil
}
