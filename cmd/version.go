package cmd

import (
	"encoding/json"
	"fmt"
	"os"
	"runtime"
	"strings"

	"github.com/dlive-cli/dlive/constant"
	"github.com/dlive-cli/dlive/key"
	"github.com/dlive-cli/dlive/style"
	"github.com/dlive-cli/dlive/version"
	"github.com/dlive-cli/dlive/where"
	"github.com/samber/lo"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func init() {
	rootCmd.AddCommand(versionCmd)
	versionCmd.SetOut(os.Stdout)
	versionCmd.Flags().BoolP("short", "s", false, "print the version string only")
	versionCmd.Flags().BoolP("json", "j", false, "print build information as json")
	versionCmd.MarkFlagsMutuallyExclusive("short", "json")
}

type buildInfo struct {
	Version  string `json:"version"`
	Revision string `json:"revision"`
	BuiltAt  string `json:"built_at"`
	BuiltBy  string `json:"built_by"`
	Platform string `json:"platform"`
	Endpoint string `json:"endpoint"`
	Config   string `json:"config"`
}

func currentBuild() buildInfo {
	return buildInfo{
		Version:  constant.Version,
		Revision: constant.Revision,
		BuiltAt:  strings.TrimSpace(constant.BuiltAt),
		BuiltBy:  constant.BuiltBy,
		Platform: runtime.GOOS + "/" + runtime.GOARCH,
		Endpoint: viper.GetString(key.DliveEndpoint),
		Config:   where.Config(),
	}
}

// rows keeps the display order stable.
func (b buildInfo) rows() [][2]string {
	return [][2]string{
		{"Version", b.Version},
		{"Revision", b.Revision},
		{"Built at", b.BuiltAt},
		{"Built by", b.BuiltBy},
		{"Platform", b.Platform},
		{"Endpoint", b.Endpoint},
		{"Config", b.Config},
	}
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Show version and build information",
	Run: func(cmd *cobra.Command, args []string) {
		if lo.Must(cmd.Flags().GetBool("short")) {
			cmd.Println(constant.Version)
			return
		}

		info := currentBuild()

		if lo.Must(cmd.Flags().GetBool("json")) {
			encoder := json.NewEncoder(cmd.OutOrStdout())
			encoder.SetIndent("", "  ")
			handleErr(encoder.Encode(info))
			return
		}

		defer version.Notify()

		cmd.Println(style.Title(constant.Dlive))
		cmd.Println()
		for _, row := range info.rows() {
			cmd.Printf("  %s %s\n", style.Faint(fmt.Sprintf("%-10s", row[0])), style.Bold(row[1]))
		}
	},
}
