package view

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/google/uuid"
)

type CommonModel struct {
	Width  int
	Height int
}

type BackMsg struct{}

func Back() tea.Msg {
	return BackMsg{}
}

// ShowQuoteMsg asks the root model to open the quote view for one budget.
type ShowQuoteMsg struct {
	ID uuid.UUID
}
