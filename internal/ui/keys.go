package ui

import tea "github.com/charmbracelet/bubbletea"

func isQuit(msg tea.KeyMsg) bool {
	switch msg.String() {
	case "q", "esc", "ctrl+c":
		return true
	}
	return false
}

func helpText(showHUD bool) string {
	if showHUD {
		return "h hide hud  q quit"
	}
	return "h show hud  q quit"
}
