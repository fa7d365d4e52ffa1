package cmd

import (
	"fmt"
	"runtime"
	"runtime/debug"

	"github.com/spf13/cobra"
)

// version is set via -ldflags at build time.
var version = "(devel)"

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version and build details",
	Run: func(cmd *cobra.Command, args []string) {
		info, _ := debug.ReadBuildInfo()
		short, _ := cmd.Flags().GetBool("short")
		if short {
			fmt.Println(resolveVersion(version, info))
			return
		}
		fmt.Println(versionLine(version, info))
	},
}

func init() {
	versionCmd.Flags().Bool("short", false, "Print only the version number")
}

// resolveVersion prefers the ldflags value, then the module version
// recorded by go install.
func resolveVersion(v string, info *debug.BuildInfo) string {
	if v != "(devel)" && v != "" {
		return v
	}
	if info != nil && info.Main.Version != "" {
		return info.Main.Version
	}
	return "(devel)"
}

// versionLine renders "smartest <version> (<revision>, <go>, <os/arch>)".
func versionLine(v string, info *debug.BuildInfo) string {
	rev, dirty := "", false
	goVersion := runtime.Version()
	if info != nil {
		goVersion = info.GoVersion
		for _, s := range info.Settings {
			switch s.Key {
			case "vcs.revision":
				rev = s.Value
			case "vcs.modified":
				dirty = s.Value == "true"
			}
		}
	}
	if len(rev) > 12 {
		rev = rev[:12]
	}
	if rev == "" {
		rev = "unknown commit"
	} else if dirty {
		rev += "-dirty"
	}
	return fmt.Sprintf("smartest %s (%s, %s, %s/%s)",
		resolveVersion(v, info), rev, goVersion, runtime.GOOS, runtime.GOARCH)
}
