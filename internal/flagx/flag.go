// Package flagx helps several flag sets share one command line: each consumer
// filters os.Args down to the flags it owns before parsing.
package flagx

import (
	"flag"
	"os"
	"strings"
)

// FilterArgs keeps only the flags named in allowed (and their values) from
// args, in their original order.
//
// Valued flags may be written as "-d quiz.db" or "-d=quiz.db". A flag listed
// in switches is boolean: it is kept on its own and never swallows the next
// token, so "-k positional" keeps just "-k".
func FilterArgs(args []string, allowed []string, switches ...string) []string {
	valued := make(map[string]bool, len(allowed)+len(switches))
	for _, f := range allowed {
		valued[f] = true
	}
	for _, f := range switches {
		valued[f] = false
	}

	filtered := make([]string, 0, len(args))
	for i := 0; i < len(args); i++ {
		arg := args[i]
		if !strings.HasPrefix(arg, "-") {
			continue
		}

		name, _, hasValue := strings.Cut(arg, "=")
		takesValue, ok := valued[name]
		if !ok {
			continue
		}

		filtered = append(filtered, arg)
		if hasValue || !takesValue {
			continue
		}
		if i+1 < len(args) && !strings.HasPrefix(args[i+1], "-") {
			filtered = append(filtered, args[i+1])
			i++
		}
	}

	return filtered
}

// ConfigFile returns the JSON config path given with -c or -config in args,
// or "" when neither is present.
func ConfigFile(args []string) string {
	var path string

	fs := flag.NewFlagSet("config-file", flag.ContinueOnError)
	fs.SetOutput(discard{})
	fs.StringVar(&path, "config", "", "path to config file")
	fs.StringVar(&path, "c", "", "path to config file (short)")
	_ = fs.Parse(FilterArgs(args, []string{"-c", "-config", "--config"}))

	return path
}

// JsonConfigFlags is ConfigFile applied to the process arguments.
func JsonConfigFlags() string {
	return ConfigFile(os.Args[1:])
}

type discard struct{}

func (discard) Write(p []byte) (int, error) { return len(p), nil }
