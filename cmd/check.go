package cmd

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/dlive-cli/dlive/constant"
	"github.com/dlive-cli/dlive/icon"
	"github.com/dlive-cli/dlive/key"
	"github.com/dlive-cli/dlive/style"
	"github.com/spf13/viper"
)

// CheckDependencies exits when the configured media player cannot be found.
func CheckDependencies() {
	exe := viper.GetString(key.Player)
	if _, err := exec.LookPath(exe); err != nil {
		printMissingDependencyError(exe)
		os.Exit(1)
	}
}

// installCommand suggests how to install dep on goos.
func installCommand(goos, dep string) string {
	name := strings.ToLower(filepath.Base(dep))
	if name != "mpv" && name != "iina" {
		return ""
	}

	switch goos {
	case constant.Darwin:
		if name == "iina" {
			return "brew install --cask iina"
		}
		return "brew install mpv"
	case constant.Linux:
		if name == "mpv" {
			return "sudo apt install mpv"
		}
	case constant.Windows:
		if name == "mpv" {
			return "scoop install mpv"
		}
	}

	return ""
}

func printMissingDependencyError(dep string) {
	installCmd := installCommand(runtime.GOOS, dep)

	box := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(style.ErrorColor).
		Padding(1, 2).
		Margin(1, 0)

	title := style.New().Bold(true).Foreground(style.ErrorColor).Render(fmt.Sprintf("%s Error: Missing Dependency", icon.Get(icon.Fail)))
	body := style.New().Foreground(style.TextColor).Render(fmt.Sprintf("The media player '%s' was not found in your PATH.\nChange it with: dlive config set player.default <path>", dep))

	suggestion := ""
	if installCmd != "" {
		suggestion = fmt.Sprintf("\n\nTo install it, try running:\n  %s", style.New().Foreground(style.AccentColor).Bold(true).Render(installCmd))
	}

	fmt.Println(box.Render(
		lipgloss.JoinVertical(lipgloss.Left,
			title,
			"\n",
			body,
			suggestion,
		),
	))
}
