// Package ui holds the lipgloss styles shared by the CLI's text output.
package ui
