// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package tui

import (
	"fmt"
	"strings"

	"github.com/MKhiriev/sky-shelf/models"
)

// Overlays replace the browser view until dismissed.

func confirmClearOverlay(target string) string {
	return overlayBoxStyle.Render(fmt.Sprintf("Clear %s?\n\n%s", target, helpStyle.Render("y yes    n no")))
}

func errorOverlay(message string) string {
	return overlayBoxStyle.Render(fmt.Sprintf("%s\n\n%s\n\n%s",
		errorStyle.Render("Error"), message, helpStyle.Render("enter / esc close")))
}

func buildInfoOverlay(info models.AppBuildInfo) string {
	rows := [][2]string{
		{"Version", info.BuildVersion()},
		{"Date", info.BuildDate()},
		{"Commit", info.BuildCommit()},
	}

	var b strings.Builder
	b.WriteString(titleStyle.Render("skyshelf"))
	b.WriteString("\n\n")
	for _, row := range rows {
		fmt.Fprintf(&b, "%-8s %s\n", row[0]+":", orNA(row[1]))
	}
	b.WriteString("\n")
	b.WriteString(helpStyle.Render("esc back"))
	return overlayBoxStyle.Render(b.String())
}

func orNA(v string) string {
	if v = strings.TrimSpace(v); v == "" {
		return "N/A"
	}
	return v
}
