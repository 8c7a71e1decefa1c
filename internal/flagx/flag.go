// Package flagx lets the server and CLI config loaders each parse only the
// command-line flags they own. The config file path is read before the file
// layer loads, and the remaining flags are applied after environment overrides.
package flagx

import (
	"flag"
	"io"
	"os"
	"strings"
)

// FilterArgs keeps the flags named in allowedFlags, plus their values, and
// drops everything else. Both "-a :8080" and "-a=:8080" are understood. A
// token after an allowed flag counts as its value unless it starts with '-'.
// The result is never nil.
func FilterArgs(args []string, allowedFlags []string) []string {
	allowed := make(map[string]struct{}, len(allowedFlags))
	for _, f := range allowedFlags {
		allowed[f] = struct{}{}
	}

	filtered := make([]string, 0, len(args))
	for i := 0; i < len(args); i++ {
		arg := args[i]

		if name, _, ok := strings.Cut(arg, "="); ok && strings.HasPrefix(arg, "-") {
			if _, keep := allowed[name]; keep {
				filtered = append(filtered, arg)
			}
			continue
		}

		if _, keep := allowed[arg]; !keep {
			continue
		}
		filtered = append(filtered, arg)
		if i+1 < len(args) && !strings.HasPrefix(args[i+1], "-") {
			i++
			filtered = append(filtered, args[i])
		}
	}

	return filtered
}

// ConfigFileFromArgs returns the -c/-config value in args, or "" when neither
// is given. The last occurrence wins.
func ConfigFileFromArgs(args []string) string {
	var path string

	fs := flag.NewFlagSet("config", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	fs.StringVar(&path, "config", "", "Path to config file (.json, .yaml, .yml)")
	fs.StringVar(&path, "c", "", "Path to config file (short)")
	_ = fs.Parse(FilterArgs(args, []string{"-c", "-config"}))

	return path
}

// ConfigFileFlags is ConfigFileFromArgs over os.Args. Both config loaders call
// it before reading the config file.
func ConfigFileFlags() string {
	return ConfigFileFromArgs(os.Args[1:])
}
