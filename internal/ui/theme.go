package ui

import "charm.land/lipgloss/v2"

type Theme struct {
	Header       lipgloss.Style
	Tab          lipgloss.Style
	TabActive    lipgloss.Style
	Badges       lipgloss.Style
	Status       lipgloss.Style
	Tip          lipgloss.Style
	PanelBorder  lipgloss.Style
	PanelBody    lipgloss.Style
	OverlayTitle lipgloss.Style
	Fail         lipgloss.Style
}

func ThemeForVariant(variant string) Theme {
	switch variant {
	case "meadow":
		return meadowTheme()
	case "retro":
		return retroTheme()
	default:
		return silkTheme()
	}
}

func silkTheme() Theme {
	violet := lipgloss.Color("#6C5CE7")
	mint := lipgloss.Color("#55EFC4")
	pink := lipgloss.Color("#FD79A8")
	ink := lipgloss.Color("#1E1B2E")
	slate := lipgloss.Color("#2D3436")
	paper := lipgloss.Color("#F5F3FF")
	sky := lipgloss.Color("#74B9FF")

	return Theme{
		Header: lipgloss.NewStyle().
			Background(ink).
			Foreground(paper).
			Padding(0, 1),
		Tab: lipgloss.NewStyle().
			Foreground(paper),
		TabActive: lipgloss.NewStyle().
			Background(violet).
			Foreground(paper).
			Bold(true),
		Badges: lipgloss.NewStyle().
			Foreground(mint),
		Status: lipgloss.NewStyle().
			Background(slate).
			Foreground(paper).
			Padding(0, 1),
		Tip: lipgloss.NewStyle().
			Foreground(sky).
			Italic(true).
			Padding(0, 1),
		PanelBorder: lipgloss.NewStyle().
			Foreground(violet),
		PanelBody: lipgloss.NewStyle().
			Foreground(paper),
		OverlayTitle: lipgloss.NewStyle().
			Foreground(sky).
			Bold(true),
		Fail: lipgloss.NewStyle().
			Foreground(pink).
			Bold(true),
	}
}

func meadowTheme() Theme {
	honey := lipgloss.Color("#F2B872")
	sage := lipgloss.Color("#80C4A3")
	rose := lipgloss.Color("#D17A86")
	night := lipgloss.Color("#1E2430")
	slate := lipgloss.Color("#30394A")
	paper := lipgloss.Color("#F4F6FA")
	sky := lipgloss.Color("#86B6F6")

	return Theme{
		Header:       lipgloss.NewStyle().Background(night).Foreground(paper).Padding(0, 1),
		Tab:          lipgloss.NewStyle().Foreground(paper),
		TabActive:    lipgloss.NewStyle().Background(honey).Foreground(night).Bold(true),
		Badges:       lipgloss.NewStyle().Foreground(sage),
		Status:       lipgloss.NewStyle().Background(slate).Foreground(paper).Padding(0, 1),
		Tip:          lipgloss.NewStyle().Foreground(sky).Padding(0, 1),
		PanelBorder:  lipgloss.NewStyle().Foreground(honey),
		PanelBody:    lipgloss.NewStyle().Foreground(paper),
		OverlayTitle: lipgloss.NewStyle().Foreground(honey).Bold(true),
		Fail:         lipgloss.NewStyle().Foreground(rose).Bold(true),
	}
}

func retroTheme() Theme {
	lime := lipgloss.Color("#9CF5A2")
	amber := lipgloss.Color("#E5D47A")
	red := lipgloss.Color("#FF6B6B")
	deep := lipgloss.Color("#07150A")
	forest := lipgloss.Color("#12301A")
	glow := lipgloss.Color("#C5F7C4")

	return Theme{
		Header:       lipgloss.NewStyle().Background(deep).Foreground(glow).Padding(0, 1),
		Tab:          lipgloss.NewStyle().Foreground(glow),
		TabActive:    lipgloss.NewStyle().Background(forest).Foreground(amber).Bold(true),
		Badges:       lipgloss.NewStyle().Foreground(amber),
		Status:       lipgloss.NewStyle().Background(forest).Foreground(glow).Padding(0, 1),
		Tip:          lipgloss.NewStyle().Foreground(lime).Padding(0, 1),
		PanelBorder:  lipgloss.NewStyle().Foreground(forest),
		PanelBody:    lipgloss.NewStyle().Foreground(glow),
		OverlayTitle: lipgloss.NewStyle().Foreground(amber).Bold(true),
		Fail:         lipgloss.NewStyle().Foreground(red).Bold(true),
	}
}
