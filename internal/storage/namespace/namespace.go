// Package namespace validates profile names shared by every storage backend.
package namespace

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
)

// Default is the profile used when none is given.
const Default = "default"

// ErrInvalidProfile is returned for profile names that cannot be used as a
// namespace.
var ErrInvalidProfile = errors.New("invalid profile name")

var validName = regexp.MustCompile(`^[A-Za-z0-9._-]+$`)

// Resolve maps an empty profile to Default and validates the result.
func Resolve(profile string) (string, error) {
	profile = strings.TrimSpace(profile)
	if profile == "" {
		return Default, nil
	}
	if err := Validate(profile); err != nil {
		return "", err
	}
	return profile, nil
}

// Validate checks that profile is usable as a file name and a redis key part.
func Validate(profile string) error {
	if !validName.MatchString(profile) || profile == "." || profile == ".." {
		return fmt.Errorf("%w: %q", ErrInvalidProfile, profile)
	}
	return nil
}
