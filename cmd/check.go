package cmd

import (
	"fmt"
	"os"
	"os/exec"
	"runtime"

	"github.com/charmbracelet/lipgloss"
	"github.com/poolsuite-cli/poolsuite/constant"
	"github.com/poolsuite-cli/poolsuite/icon"
	"github.com/poolsuite-cli/poolsuite/key"
	"github.com/poolsuite-cli/poolsuite/style"
	"github.com/spf13/viper"
)

// linuxInstallers maps a package manager to its mpv install command.
var linuxInstallers = []struct {
	manager string
	command string
}{
	{"pacman", "sudo pacman -S mpv"},
	{"apt", "sudo apt install mpv"},
	{"dnf", "sudo dnf install mpv"},
}

// CheckDependencies exits with install instructions if the player
// executable is not in PATH.
func CheckDependencies() {
	executable := viper.GetString(key.PlayerExecutable)
	if _, err := exec.LookPath(executable); err != nil {
		printMissingDependencyError(executable)
		os.Exit(1)
	}
}

// installCommand suggests how to install mpv on this machine.
func installCommand(goos string, lookPath func(string) (string, error)) string {
	switch goos {
	case constant.Darwin:
		return "brew install mpv"
	case constant.Windows:
		return "scoop install mpv"
	case constant.Linux:
		for _, installer := range linuxInstallers {
			if _, err := lookPath(installer.manager); err == nil {
				return installer.command
			}
		}
		return linuxInstallers[1].command
	default:
		return ""
	}
}

func printMissingDependencyError(dep string) {
	box := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(style.ErrorColor).
		Padding(1, 2).
		Margin(1, 0)

	title := style.New().Bold(true).Foreground(style.ErrorColor).Render(fmt.Sprintf("%s Error: Missing Dependency", icon.Get(icon.Fail)))
	body := style.New().Foreground(style.TextColor).Render(fmt.Sprintf("The required dependency '%s' was not found in your PATH.", dep))

	suggestion := ""
	if installCmd := installCommand(runtime.GOOS, exec.LookPath); installCmd != "" {
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
