package pathutil

import "regexp"

// PathParamRegex matches path template parameters like {paramName}.
// It captures the parameter name inside the braces.
var PathParamRegex = regexp.MustCompile(`\{([^}]+)\}`)

// PathParams returns the template parameter names of a path in order of appearance.
// Example: "/users/{userId}/pets/{petId}" -> ["userId", "petId"]
func PathParams(path string) []string {
	matches := PathParamRegex.FindAllStringSubmatch(path, -1)
	if len(matches) == 0 {
		return nil
	}
	names := make([]string, 0, len(matches))
	for _, m := range matches {
		names = append(names, m[1])
	}
	return names
}
