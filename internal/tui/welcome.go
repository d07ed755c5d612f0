// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Thripura Sri

package tui

type welcomeModel struct {
	items   []string
	idx     int
	version string
}

func newWelcomeModel(version string) welcomeModel {
	return welcomeModel{
		items:   []string{"Sign in", "Create account"},
		version: version,
	}
}

func (m welcomeModel) View() string {
	out := "VoiceNudge"
	if m.version != "" {
		out += " " + m.version
	}
	out += "\n\nChoose an action:\n\n"
	for i, item := range m.items {
		cursor := "  "
		if i == m.idx {
			cursor = "> "
		}
		out += cursor + item + "\n"
	}
	out += "\n" + helpStyle.Render("ctrl+c: quit")
	return out
}
