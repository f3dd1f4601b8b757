// Package version holds build metadata for the fstrify CLI.
//
// Все переменные простые строки, чтобы их можно было переопределить
// через -ldflags "-X fstrify/internal/version.Version=...".
package version

import (
	"strings"

	"github.com/fatih/color"
)

var (
	// Version is the semantic version of the CLI.
	Version = "0.1.0-dev"

	// GitCommit is an optional git commit hash.
	GitCommit = ""

	// GitMessage is an optional git commit message.
	GitMessage = ""

	// BuildDate is an optional build date in ISO-8601.
	BuildDate = ""
)

var componentColors = []*color.Color{
	color.New(color.FgYellow, color.Bold),
	color.New(color.FgGreen, color.Bold),
	color.New(color.FgBlue, color.Bold),
}

// Colorized возвращает Version с раскрашенными компонентами
// major.minor.patch; суффикс (-dev, +meta) остаётся без цвета.
// Для JSON и --version используется обычный Version.
func Colorized() string {
	core, suffix := splitSuffix(Version)
	parts := strings.Split(core, ".")
	for i, part := range parts {
		if i < len(componentColors) {
			parts[i] = componentColors[i].Sprint(part)
		}
	}
	return strings.Join(parts, ".") + suffix
}

// splitSuffix отделяет пререлизный/билдовый хвост от числового ядра.
func splitSuffix(v string) (core, suffix string) {
	if i := strings.IndexAny(v, "-+"); i >= 0 {
		return v[:i], v[i:]
	}
	return v, ""
}
