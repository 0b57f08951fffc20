package config

import (
	"errors"
	"fmt"
	"io/fs"

	"github.com/joho/godotenv"
)

// loadDotEnv exports KEY=VALUE pairs from the given files into the process
// environment. Variables already set in the environment are left alone and
// missing files are skipped.
func loadDotEnv(filenames ...string) error {
	for _, name := range filenames {
		err := godotenv.Load(name)
		if err == nil || errors.Is(err, fs.ErrNotExist) {
			continue
		}
		return fmt.Errorf("error loading %s: %w", name, err)
	}

	return nil
}
