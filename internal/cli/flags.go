package cli

import "github.com/spf13/pflag"

func addNextFlag(fs *pflag.FlagSet, next *bool) {
	fs.BoolVar(next, "next", false, "Use next week rather than the current week")
}
