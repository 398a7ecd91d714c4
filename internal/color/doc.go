// Package color provides terminal color detection and theming for stackctl.
//
// This package handles the complexity of terminal color support detection
// and provides consistent color theming across the application. It ensures
// that stackctl displays correctly in various terminal environments.
//
// # Core Functionality
//
// The package provides:
//   - Terminal color capability detection (via lipgloss)
//   - Adaptive color profiles (TrueColor, 256 colors, 16 colors, no color)
//   - Dark and light theme support
//   - Semantic styles for service lifecycle states
//
// # Theme System
//
// Colors are organized into semantic categories:
//   - Success: positive states (ready, healthy, running)
//   - Warning: caution states (starting, degraded, unknown)
//   - Error: failure states (error, unhealthy, skipped)
//   - Muted: de-emphasized text (stopped, absent)
//
// # Usage Example
//
//	color.Initialize(lipgloss.HasDarkBackground())
//	fmt.Println(color.SuccessStyle.Render("Ready"))
//	fmt.Println(color.ErrorStyle.Render("Error"))
//
// # Environment Variables
//
// Respected environment variables:
//   - NO_COLOR: disable all color output
//   - COLORTERM: indicates TrueColor support
//   - TERM: terminal type for capability detection
//
// # Thread Safety
//
// Initialize must be called before concurrent use; rendering through the
// exported styles afterwards is safe from multiple goroutines.
package color
