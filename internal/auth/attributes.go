package auth

import (
	"sort"
	"strings"

	"presignup-linker/internal/directory"
)

// ReservedAttributePrefix marks attributes computed by the directory itself.
// They are rejected when passed to account creation.
const ReservedAttributePrefix = "cognito:"

// ShapeAttributes converts signup attributes into the list form used for
// account creation, dropping reserved attributes. The result is sorted by name.
func ShapeAttributes(attributes map[string]string) []directory.Attribute {
	out := make([]directory.Attribute, 0, len(attributes))
	for name, value := range attributes {
		if strings.HasPrefix(name, ReservedAttributePrefix) {
			continue
		}
		out = append(out, directory.Attribute{Name: name, Value: value})
	}

	sort.Slice(out, func(i, j int) bool {
		return out[i].Name < out[j].Name
	})

	return out
}
