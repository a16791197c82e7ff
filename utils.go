package main

import (
	"fmt"
	"os"
	"time"
)

// ==================== UTILITY FUNCTIONS ====================

func formatNumberLarge(n int64) string {
	if n >= 1e12 {
		return fmt.Sprintf("%.2fT", float64(n)/1e12)
	} else if n >= 1e9 {
		return fmt.Sprintf("%.2fB", float64(n)/1e9)
	} else if n >= 1e6 {
		return fmt.Sprintf("%.2fM", float64(n)/1e6)
	} else if n >= 1e3 {
		return fmt.Sprintf("%.2fK", float64(n)/1e3)
	}
	return fmt.Sprintf("%d", n)
}

func formatDurationDetailed(d time.Duration) string {
	if d < time.Minute {
		return fmt.Sprintf("%.1fs", d.Seconds())
	} else if d < time.Hour {
		minutes := int(d.Minutes())
		seconds := int(d.Seconds()) % 60
		return fmt.Sprintf("%dm%ds", minutes, seconds)
	}
	hours := int(d.Hours())
	minutes := int(d.Minutes()) % 60
	return fmt.Sprintf("%dh%dm", hours, minutes)
}

func getHostnameSafe() string {
	hostname, err := os.Hostname()
	if err != nil {
		return "unknown"
	}
	return hostname
}
