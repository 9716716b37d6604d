package ui

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/require"

	"github.com/nconklindev/tabconv/internal/converter"
	"github.com/nconklindev/tabconv/internal/types"
)

type fakeService struct {
	table  *converter.ConversionTable
	result *types.ConversionResult
	err    error

	calls []converter.Extension
}

func (f *fakeService) Resolve(source, target converter.Extension) (converter.Operation, error) {
	return f.table.Resolve(source, target)
}

func (f *fakeService) Convert(_ string, target converter.Extension) (*types.ConversionResult, error) {
	f.calls = append(f.calls, target)
	return f.result, f.err
}

func newTestModel(svc *fakeService) Model {
	svc.table = converter.DefaultConversionTable(converter.CodecOptions{})
	return NewModel(svc, Config{Dir: "/data", DefaultTarget: converter.XLSX})
}

func key(s string) tea.KeyMsg {
	switch s {
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	case "up":
		return tea.KeyMsg{Type: tea.KeyUp}
	case "down":
		return tea.KeyMsg{Type: tea.KeyDown}
	case "ctrl+c":
		return tea.KeyMsg{Type: tea.KeyCtrlC}
	default:
		return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
	}
}

func update(t *testing.T, m Model, msg tea.Msg) (Model, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(msg)
	model, ok := next.(Model)
	require.True(t, ok)
	return model, cmd
}

func TestNewModel(t *testing.T) {
	m := newTestModel(&fakeService{})

	require.Equal(t, stateFilePicker, m.state)
	require.Equal(t, []string{".csv", ".txt", ".xlsx"}, m.filepicker.AllowedTypes)
	require.Equal(t, "/data", m.filepicker.CurrentDirectory)
}

func TestSelectFileHighlightsDefaultTarget(t *testing.T) {
	m := newTestModel(&fakeService{}).selectFile("/data/report.csv")

	require.Equal(t, stateFormatSelection, m.state)
	require.Equal(t, converter.XLSX, converter.Extensions[m.cursor])
	require.Contains(t, m.View(), "report.csv")
	require.Contains(t, m.View(), ".txt (not available)")
}

func TestFormatSelectionNavigation(t *testing.T) {
	m := newTestModel(&fakeService{}).selectFile("/data/report.xlsx")

	m, _ = update(t, m, key("up"))
	m, _ = update(t, m, key("up"))
	m, _ = update(t, m, key("up"))
	require.Equal(t, 0, m.cursor)

	m, _ = update(t, m, key("j"))
	require.Equal(t, converter.TXT, converter.Extensions[m.cursor])

	m, _ = update(t, m, key("down"))
	m, _ = update(t, m, key("down"))
	require.Equal(t, len(converter.Extensions)-1, m.cursor)

	m, _ = update(t, m, key("esc"))
	require.Equal(t, stateFilePicker, m.state)
	require.Empty(t, m.selectedFile)
}

func TestConversionSuccess(t *testing.T) {
	svc := &fakeService{result: &types.ConversionResult{
		InputFile:     "/data/report.csv",
		OutputFile:    "/data/report.xlsx",
		Headers:       []string{"Name", "Age"},
		RowsProcessed: 2,
		BytesWritten:  5120,
	}}
	m := newTestModel(svc).selectFile("/data/report.csv")

	m, cmd := update(t, m, key("enter"))
	require.Equal(t, stateProcessing, m.state)
	require.Equal(t, converter.XLSX, m.target)
	require.NotNil(t, cmd)

	msg := convert(svc, m.selectedFile, m.target)()
	require.Equal(t, []converter.Extension{converter.XLSX}, svc.calls)

	m, _ = update(t, m, msg)
	require.Equal(t, stateComplete, m.state)

	view := m.View()
	require.Contains(t, view, "Conversion Complete")
	require.Contains(t, view, "/data/report.xlsx")
	require.Contains(t, view, "Rows converted: 2")
	require.Contains(t, view, "5.1 kB")

	m, _ = update(t, m, key("enter"))
	require.Equal(t, stateFilePicker, m.state)
	require.Nil(t, m.result)
}

func TestProcessingIgnoresKeys(t *testing.T) {
	m := newTestModel(&fakeService{}).selectFile("/data/report.csv")
	m, _ = update(t, m, key("enter"))

	for _, k := range []string{"enter", "esc", "q", "down"} {
		var cmd tea.Cmd
		m, cmd = update(t, m, key(k))
		require.Equal(t, stateProcessing, m.state)
		require.Nil(t, cmd)
	}

	_, cmd := update(t, m, key("ctrl+c"))
	require.NotNil(t, cmd)
	require.Equal(t, tea.Quit(), cmd())
}

func TestConversionErrorTitles(t *testing.T) {
	table := converter.DefaultConversionTable(converter.CodecOptions{})
	_, unsupported := table.Resolve(converter.TXT, converter.CSV)
	_, unknown := converter.ParseExtension("pdf")

	scenarios := map[string]struct {
		err   error
		title string
	}{
		"unsupported": {
			err:   unsupported,
			title: "Unsupported Conversion",
		},
		"unknown extension": {
			err:   unknown,
			title: "Unsupported Conversion",
		},
		"source read": {
			err:   &converter.Error{Kind: converter.KindSourceRead, Reason: converter.ErrFileNotFound, Path: "/data/missing.csv"},
			title: "Could Not Read Source File",
		},
		"target write": {
			err:   &converter.Error{Kind: converter.KindTargetWrite, Reason: converter.ErrTargetExists, Path: "/data/report.xlsx"},
			title: "Could Not Write Output File",
		},
	}

	for name, s := range scenarios {
		t.Run(name, func(t *testing.T) {
			m := newTestModel(&fakeService{}).selectFile("/data/report.txt")
			m, _ = update(t, m, key("enter"))

			m, _ = update(t, m, conversionCompleteMsg{err: s.err})
			require.Equal(t, stateError, m.state)
			require.Contains(t, m.View(), s.title)

			m, _ = update(t, m, key("esc"))
			require.Equal(t, stateFilePicker, m.state)
			require.Nil(t, m.err)
		})
	}
}

func TestQuitKeys(t *testing.T) {
	m := newTestModel(&fakeService{})

	_, cmd := update(t, m, key("q"))
	require.NotNil(t, cmd)
	require.Equal(t, tea.Quit(), cmd())

	m = m.selectFile("/data/report.csv")
	_, cmd = update(t, m, key("q"))
	require.NotNil(t, cmd)
	require.Equal(t, tea.Quit(), cmd())
}

func TestTruncatePath(t *testing.T) {
	require.Equal(t, "/data/report.csv", truncatePath("/data/report.csv", 30))
	require.Equal(t, ".../report.csv", truncatePath("/very/long/directory/report.csv", 14))
}
