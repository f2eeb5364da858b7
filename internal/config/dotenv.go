// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/joho/godotenv"
)

const defaultDotEnvFile = ".env"

// loadDotEnv loads variables from the file named by DOTENV, or from ./.env
// when DOTENV is unset. godotenv never overrides variables that are already
// present in the process environment.
//
// A missing default .env file is not an error; a missing file explicitly
// named by DOTENV is.
func loadDotEnv() error {
	path, explicit := os.LookupEnv("DOTENV")
	if !explicit || path == "" {
		path = defaultDotEnvFile
		explicit = false
	}

	if err := godotenv.Load(path); err != nil {
		if !explicit && errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("error loading .env file %q: %w", path, err)
	}

	return nil
}
