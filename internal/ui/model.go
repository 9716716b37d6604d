package ui

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/bubbles/filepicker"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"

	"github.com/nconklindev/tabconv/internal/converter"
	"github.com/nconklindev/tabconv/internal/types"
)

type state int

const (
	stateFilePicker state = iota
	stateFormatSelection
	stateProcessing
	stateComplete
	stateError
)

// Service is the conversion contract the UI drives.
type Service interface {
	Resolve(source, target converter.Extension) (converter.Operation, error)
	Convert(path string, target converter.Extension) (*types.ConversionResult, error)
}

// Config sets where the file picker starts and which target is preselected.
type Config struct {
	// Dir is where the file picker starts.
	Dir string

	// DefaultTarget is highlighted when the format list opens.
	DefaultTarget converter.Extension
}

type Model struct {
	state         state
	service       Service
	defaultTarget converter.Extension

	filepicker   filepicker.Model
	spinner      spinner.Model
	selectedFile string
	cursor       int
	target       converter.Extension
	result       *types.ConversionResult
	err          error
	width        int
	height       int
}

type conversionCompleteMsg struct {
	result *types.ConversionResult
	err    error
}

func NewModel(svc Service, conf Config) Model {
	fp := filepicker.New()
	fp.AllowedTypes = allowedTypes()
	fp.CurrentDirectory = conf.Dir

	fp.Styles.Cursor = lipgloss.NewStyle().Foreground(accentColor)
	fp.Styles.Symlink = lipgloss.NewStyle().Foreground(highlightColor)
	fp.Styles.Directory = lipgloss.NewStyle().Foreground(highlightColor)
	fp.Styles.File = lipgloss.NewStyle().Foreground(textColor)
	fp.Styles.Permission = lipgloss.NewStyle().Foreground(mutedColor)
	fp.Styles.Selected = lipgloss.NewStyle().Foreground(accentColor).Bold(true)
	fp.Styles.FileSize = lipgloss.NewStyle().Foreground(mutedColor)

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = SpinnerStyle

	return Model{
		state:         stateFilePicker,
		service:       svc,
		defaultTarget: conf.DefaultTarget,
		filepicker:    fp,
		spinner:       sp,
	}
}

func allowedTypes() []string {
	exts := make([]string, len(converter.Extensions))
	for i, ext := range converter.Extensions {
		exts[i] = ext.String()
	}
	return exts
}

func (m Model) Init() tea.Cmd {
	return m.filepicker.Init()
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height

		// Leave room for the title, subtitle and help lines.
		height := msg.Height - 14
		if height < 5 {
			height = 5
		}

		m.filepicker.SetHeight(height)

		return m, nil

	case tea.KeyMsg:
		switch m.state {
		case stateFilePicker:
			switch msg.String() {
			case "ctrl+c", "q":
				return m, tea.Quit
			}

		case stateFormatSelection:
			switch msg.String() {
			case "ctrl+c", "q":
				return m, tea.Quit
			case "up", "k":
				if m.cursor > 0 {
					m.cursor--
				}
			case "down", "j":
				if m.cursor < len(converter.Extensions)-1 {
					m.cursor++
				}
			case "esc":
				return m.reset(), nil
			case "enter":
				return m.startConversion(converter.Extensions[m.cursor])
			}
			return m, nil

		case stateProcessing:
			// The conversion cannot be interrupted, only the program.
			if msg.String() == "ctrl+c" {
				return m, tea.Quit
			}
			return m, nil

		case stateComplete, stateError:
			switch msg.String() {
			case "ctrl+c", "q":
				return m, tea.Quit
			case "enter", "esc":
				return m.reset(), nil
			}
			return m, nil
		}

	case conversionCompleteMsg:
		if msg.err != nil {
			m.err = msg.err
			m.state = stateError
			return m, nil
		}
		m.result = msg.result
		m.state = stateComplete
		return m, nil

	case spinner.TickMsg:
		if m.state != stateProcessing {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}

	if m.state == stateFilePicker {
		var cmd tea.Cmd
		m.filepicker, cmd = m.filepicker.Update(msg)

		if didSelect, path := m.filepicker.DidSelectFile(msg); didSelect {
			return m.selectFile(path), nil
		}

		return m, cmd
	}

	return m, nil
}

// selectFile opens the format list for path with the default target
// highlighted.
func (m Model) selectFile(path string) Model {
	m.selectedFile = path
	m.cursor = 0
	for i, ext := range converter.Extensions {
		if ext == m.defaultTarget {
			m.cursor = i
		}
	}
	m.state = stateFormatSelection
	return m
}

func (m Model) startConversion(target converter.Extension) (Model, tea.Cmd) {
	m.target = target
	m.state = stateProcessing
	return m, tea.Batch(m.spinner.Tick, convert(m.service, m.selectedFile, target))
}

func convert(svc Service, path string, target converter.Extension) tea.Cmd {
	return func() tea.Msg {
		result, err := svc.Convert(path, target)
		return conversionCompleteMsg{result: result, err: err}
	}
}

// reset returns to the file picker, keeping its current directory.
func (m Model) reset() Model {
	m.state = stateFilePicker
	m.selectedFile = ""
	m.cursor = 0
	m.target = ""
	m.result = nil
	m.err = nil
	return m
}

func (m Model) View() string {
	switch m.state {
	case stateFilePicker:
		return m.viewFilePicker()
	case stateFormatSelection:
		return m.viewFormatSelection()
	case stateProcessing:
		return m.viewProcessing()
	case stateComplete:
		return m.viewComplete()
	case stateError:
		return m.viewError()
	}
	return ""
}

func (m Model) viewFilePicker() string {
	var s strings.Builder

	s.WriteString(TitleStyle.Render("▦ tabconv - Tabular File Converter"))
	s.WriteString("\n")
	s.WriteString(SubtitleStyle.Render("Select a TXT, CSV or XLSX file to convert"))
	s.WriteString("\n\n")
	s.WriteString(m.filepicker.View())
	s.WriteString("\n\n")
	s.WriteString(HelpStyle.Render("Press q to quit"))

	return s.String()
}

func (m Model) viewFormatSelection() string {
	var s strings.Builder

	source := converter.SourceExtension(m.selectedFile)

	s.WriteString(TitleStyle.Render("▦ Select Target Format"))
	s.WriteString("\n")
	s.WriteString(SubtitleStyle.Render(fmt.Sprintf("File: %s", filepath.Base(m.selectedFile))))
	s.WriteString("\n\n")

	for i, ext := range converter.Extensions {
		cursor := " "
		if m.cursor == i {
			cursor = ">"
		}

		line := fmt.Sprintf("%s %s", cursor, ext)

		_, err := m.service.Resolve(source, ext)
		switch {
		case m.cursor == i:
			line = SelectedStyle.Render(line)
		case err != nil:
			line = UnavailableStyle.Render(line + " (not available)")
		default:
			line = UnselectedStyle.Render(line)
		}

		s.WriteString(line)
		s.WriteString("\n")
	}

	s.WriteString("\n")
	s.WriteString(HelpStyle.Render("↑/↓: navigate • enter: convert • esc: back • q: quit"))

	return BoxStyle.Render(s.String())
}

func (m Model) viewProcessing() string {
	var s strings.Builder

	s.WriteString(TitleStyle.Render("▦ Processing..."))
	s.WriteString("\n\n")
	s.WriteString(fmt.Sprintf("%s Converting %s to %s", m.spinner.View(), filepath.Base(m.selectedFile), m.target))

	return BoxStyle.Render(s.String())
}

func (m Model) viewComplete() string {
	var s strings.Builder

	s.WriteString(TitleStyle.Render("✓ Conversion Complete!"))
	s.WriteString("\n\n")

	maxPathLen := m.width - 20
	if maxPathLen < 30 {
		maxPathLen = 30
	}

	s.WriteString(fmt.Sprintf("Input:  %s\n", truncatePath(m.result.InputFile, maxPathLen)))
	s.WriteString(SuccessStyle.Render(fmt.Sprintf("Output: %s", truncatePath(m.result.OutputFile, maxPathLen))))
	s.WriteString("\n\n")
	s.WriteString(fmt.Sprintf("Columns: %s\n", strings.Join(m.result.Headers, ", ")))
	s.WriteString(fmt.Sprintf("Rows converted: %d\n", m.result.RowsProcessed))
	s.WriteString(fmt.Sprintf("Size: %s\n", humanize.Bytes(uint64(m.result.BytesWritten))))
	s.WriteString("\n")
	s.WriteString(HelpStyle.Render("enter: convert another file • q: quit"))

	return BoxStyle.Render(s.String())
}

func (m Model) viewError() string {
	var s strings.Builder

	s.WriteString(ErrorStyle.Render(errorTitle(m.err)))
	s.WriteString("\n\n")
	s.WriteString(m.err.Error())
	s.WriteString("\n\n")
	s.WriteString(HelpStyle.Render("enter: choose another file • q: quit"))

	return BoxStyle.Render(s.String())
}

func errorTitle(err error) string {
	switch converter.KindOf(err) {
	case converter.KindUnsupportedConversion:
		return "✗ Unsupported Conversion"
	case converter.KindSourceRead:
		return "✗ Could Not Read Source File"
	case converter.KindTargetWrite:
		return "✗ Could Not Write Output File"
	default:
		return "✗ Error"
	}
}

func truncatePath(path string, limit int) string {
	if len(path) <= limit {
		return path
	}
	return "..." + path[len(path)-limit+3:]
}
