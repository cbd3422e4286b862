package migrate

// secretPaths are the legacy settings keys that hold credentials. They are
// never copied into a migrated configuration; callers move them into the
// vault instead.
var secretPaths = []string{
	"settings.apiKey",
	"settings.anthropicApiKey",
	"settings.openaiKey",
	"settings.githubToken",
}

// ExtractSecrets pulls credential values out of a legacy document, keyed by
// their legacy field name. Missing or non-string values are skipped.
func ExtractSecrets(doc map[string]any) map[string]string {
	out := map[string]string{}
	for _, path := range secretPaths {
		v, ok := lookup(doc, path)
		if !ok {
			continue
		}
		s, ok := asString(v)
		if !ok || s == "" {
			continue
		}
		out[lastSegment(path)] = s
	}
	return out
}

func lastSegment(path string) string {
	for i := len(path) - 1; i >= 0; i-- {
		if path[i] == '.' {
			return path[i+1:]
		}
	}
	return path
}
