// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"github.com/teactl/teactl/internal/present"

	"github.com/charmbracelet/lipgloss"
)

var (
	// TitleStyle is for the root command title.
	TitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(present.ColorPrimary)

	// SubtitleStyle is for secondary text.
	SubtitleStyle = lipgloss.NewStyle().
			Foreground(present.ColorMuted)

	// SuccessStyle is for confirmations.
	SuccessStyle = lipgloss.NewStyle().
			Foreground(present.ColorSuccess)

	// ErrorStyle is for error labels.
	ErrorStyle = present.ErrorStyle

	// WarningStyle is for warnings.
	WarningStyle = lipgloss.NewStyle().
			Foreground(present.ColorWarning)

	// CmdStyle is for command lines and paths.
	CmdStyle = lipgloss.NewStyle().
			Foreground(present.ColorHighlight)
)
