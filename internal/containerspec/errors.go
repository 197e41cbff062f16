package containerspec

import "fmt"

// InvalidImageError is raised at builder time when a config's image does
// not begin with the variant's canonical image prefix.
type InvalidImageError struct {
	ExpectedPrefix string
	Actual         string
}

func (e *InvalidImageError) Error() string {
	return fmt.Sprintf("invalid image %q: expected prefix %q", e.Actual, e.ExpectedPrefix)
}

// MissingRequiredOptionError is raised at builder time for a config
// missing a required field.
type MissingRequiredOptionError struct {
	Name string
}

func (e *MissingRequiredOptionError) Error() string {
	return fmt.Sprintf("missing required option %q", e.Name)
}
