package cli

import "strings"

// legacyFlags are the find-style single-dash flags of the original tool.
var legacyFlags = map[string]bool{
	"inum":   true,
	"name":   true,
	"size":   true,
	"nlinks": true,
	"exec":   true,
}

// valueFlags take their value from the next argument when written without
// "=".
var valueFlags = map[string]bool{
	"inum":        true,
	"name":        true,
	"size":        true,
	"nlinks":      true,
	"exec":        true,
	"config":      true,
	"backend":     true,
	"buffer-size": true,
}

// legacyArgs rewrites "-inum 5" style flags to the "--inum 5" form pflag
// understands. Flag values (as in "-size -10") and everything after "--" are
// left untouched.
func legacyArgs(args []string) []string {
	out := make([]string, 0, len(args))

	for i := 0; i < len(args); i++ {
		a := args[i]

		if a == "--" {
			out = append(out, args[i:]...)

			break
		}

		if len(a) > 1 && a[0] == '-' && a[1] != '-' && legacyFlags[a[1:]] {
			a = "-" + a
		}

		out = append(out, a)

		if strings.HasPrefix(a, "--") && valueFlags[a[2:]] && i+1 < len(args) {
			i++
			out = append(out, args[i])
		}
	}

	return out
}
