package lang

import (
	"encoding/json"
	"os"
	"path/filepath"

	"github.com/spf13/viper"
)

// projectIndicators maps marker files to a project type, checked in order.
var projectIndicators = []struct {
	file        string
	projectType string
}{
	{"Cargo.toml", "rust"},
	{"package.json", "javascript"},
	{"pyproject.toml", "python"},
	{"setup.py", "python"},
	{"requirements.txt", "python"},
	{"go.mod", "go"},
	{"pom.xml", "java"},
	{"build.gradle", "java"},
	{"CMakeLists.txt", "c/cpp"},
	{"Makefile", "make"},
}

// DetectProjectType guesses the project type from marker files in dir.
func DetectProjectType(dir string) string {
	for _, ind := range projectIndicators {
		if _, err := os.Stat(filepath.Join(dir, ind.file)); err == nil {
			return ind.projectType
		}
	}
	return ""
}

// DetectProjectName reads the project name from Cargo.toml, package.json,
// or pyproject.toml, falling back to the directory name.
func DetectProjectName(dir string) string {
	if name := tomlKey(filepath.Join(dir, "Cargo.toml"), "package.name"); name != "" {
		return name
	}

	if data, err := os.ReadFile(filepath.Join(dir, "package.json")); err == nil {
		var pkg struct {
			Name string `json:"name"`
		}
		if json.Unmarshal(data, &pkg) == nil && pkg.Name != "" {
			return pkg.Name
		}
	}

	if name := tomlKey(filepath.Join(dir, "pyproject.toml"), "project.name"); name != "" {
		return name
	}

	return filepath.Base(dir)
}

func tomlKey(path, key string) string {
	f, err := os.Open(path)
	if err != nil {
		return ""
	}
	defer f.Close()

	v := viper.New()
	v.SetConfigType("toml")
	if err := v.ReadConfig(f); err != nil {
		return ""
	}
	return v.GetString(key)
}
