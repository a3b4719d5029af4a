package matching

// skillAliases maps common spellings to one canonical skill name. Keys and
// values are already normalized with normalizeName.
var skillAliases = map[string]string{
	"golang":     "go",
	"js":         "javascript",
	"ts":         "typescript",
	"node":       "node.js",
	"nodejs":     "node.js",
	"reactjs":    "react",
	"react.js":   "react",
	"vue":        "vue.js",
	"vuejs":      "vue.js",
	"postgres":   "postgresql",
	"psql":       "postgresql",
	"k8s":        "kubernetes",
	"gcp":        "google cloud",
	"py":         "python",
	"c sharp":    "c#",
	"csharp":     "c#",
	"dotnet":     ".net",
	"front end":  "frontend",
	"back end":   "backend",
	"ml":         "machine learning",
}

// canonicalSkillName normalizes case and whitespace, then folds known aliases.
func canonicalSkillName(name string) string {
	n := normalizeName(name)
	if c, ok := skillAliases[n]; ok {
		return c
	}
	return n
}
