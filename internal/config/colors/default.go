package colors

// Default returns the default color scheme (purple accent)
func Default() *ColorScheme {
	return &ColorScheme{
		Preset: "default",

		Accent: "#874BFD",

		Title:  "#D75FD7",
		Subtle: "#585858",
		Normal: "#D0D0D0",

		Done:    "#5FD75F",
		Overdue: "#FF5F5F",

		InfoFg:    "#00AFFF",
		InfoBg:    "#00005F",
		WarningFg: "#FFD700",
		WarningBg: "#875F00",
		ErrorFg:   "#FF0000",
		ErrorBg:   "#5F0000",
	}
}
