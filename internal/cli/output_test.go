package cli

import (
	"bytes"
	"os"
	"strings"
	"testing"

	"github.com/jacksmith/todo/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIsTerminal(t *testing.T) {
	// We test with a regular file which should not be a terminal
	f, err := os.CreateTemp("", "test")
	if err != nil {
		t.Skip("cannot create temp file")
	}
	defer os.Remove(f.Name())
	defer f.Close()

	assert.False(t, IsTerminal(f), "temp file should not be a terminal")
	assert.False(t, IsInteractive(f), "temp file should not be interactive")

	var buf bytes.Buffer
	assert.False(t, IsTerminal(&buf), "bytes.Buffer should not be a terminal")
	assert.False(t, IsInteractive(strings.NewReader("")), "strings.Reader should not be interactive")
}

func TestColorFunctions(t *testing.T) {
	SetColorEnabled(true)

	assert.Equal(t, "\033[32mtest\033[0m", Green("test"))
	assert.Equal(t, "\033[90mtest\033[0m", Gray("test"))
	assert.Equal(t, "\033[9mtest\033[0m", Strike("test"))

	SetColorEnabled(false)

	assert.Equal(t, "test", Green("test"))
	assert.Equal(t, "test", Gray("test"))
	assert.Equal(t, "test", Strike("test"))
}

func TestConfigureColor(t *testing.T) {
	defer SetColorEnabled(false)
	var buf bytes.Buffer

	require.NoError(t, ConfigureColor("always", &buf))
	assert.True(t, ColorEnabled())

	require.NoError(t, ConfigureColor("never", &buf))
	assert.False(t, ColorEnabled())

	SetColorEnabled(true)
	require.NoError(t, ConfigureColor("auto", &buf))
	assert.False(t, ColorEnabled(), "buffer is not a terminal")

	err := ConfigureColor("rainbow", &buf)
	require.Error(t, err)
	var vErr *ValidationError
	assert.ErrorAs(t, err, &vErr)
	assert.Equal(t, "color", vErr.Field)
}

func TestTableEmpty(t *testing.T) {
	table := NewTable()
	var buf bytes.Buffer
	table.Render(&buf)
	assert.Equal(t, "", buf.String())
}

func TestTableMultipleRows(t *testing.T) {
	table := NewTable()
	table.AddRow("a", "bb", "ccc")
	table.AddRow("dddd", "e", "ff")

	var buf bytes.Buffer
	table.Render(&buf)

	expected := "a     bb  ccc\n" +
		"dddd  e   ff\n"
	assert.Equal(t, expected, buf.String())
}

func TestTableMaxWidth(t *testing.T) {
	table := NewTable()
	table.SetMaxWidth(1, 8)
	table.AddRow("#1", "hello world", "x")

	var buf bytes.Buffer
	table.Render(&buf)
	assert.Equal(t, "#1  hello...  x\n", buf.String())
}

func TestRenderTasks(t *testing.T) {
	SetColorEnabled(false)

	t.Run("empty list", func(t *testing.T) {
		var buf bytes.Buffer
		RenderTasks(&buf, nil)
		assert.Equal(t, "No tasks.\n", buf.String())
	})

	t.Run("aligned rows in list order", func(t *testing.T) {
		var buf bytes.Buffer
		RenderTasks(&buf, []model.Task{
			{ID: 1, Name: "buy milk", Done: true},
			{ID: 12, Name: "call mom"},
		})

		expected := "#1   [x]  buy milk\n" +
			"#12  [ ]  call mom\n"
		assert.Equal(t, expected, buf.String())
	})

	t.Run("long names are truncated", func(t *testing.T) {
		var buf bytes.Buffer
		RenderTasks(&buf, []model.Task{{ID: 1, Name: strings.Repeat("x", 100)}})

		assert.Contains(t, buf.String(), strings.Repeat("x", DefaultMaxNameWidth-3)+"...")
		assert.NotContains(t, buf.String(), strings.Repeat("x", DefaultMaxNameWidth))
	})

	t.Run("colored output keeps alignment", func(t *testing.T) {
		SetColorEnabled(true)
		defer SetColorEnabled(false)

		var buf bytes.Buffer
		RenderTasks(&buf, []model.Task{
			{ID: 1, Name: "done one", Done: true},
			{ID: 2, Name: "open one"},
		})

		lines := strings.Split(strings.TrimSuffix(buf.String(), "\n"), "\n")
		require.Len(t, lines, 2)
		assert.Contains(t, lines[0], "\033[32m[x]\033[0m")
		assert.Equal(t, visibleWidth("#1  [x]  "), strings.Index(lines[1], "open one"))
	})
}

func TestFormatCheckbox(t *testing.T) {
	SetColorEnabled(false)
	assert.Equal(t, "[x]", FormatCheckbox(true))
	assert.Equal(t, "[ ]", FormatCheckbox(false))
}

func TestVisibleWidth(t *testing.T) {
	tests := []struct {
		input string
		want  int
	}{
		{"hello", 5},
		{"", 0},
		{"\033[32mhello\033[0m", 5},
		{"\033[31m\033[0m", 0},
		{"a\033[32mb\033[0mc", 3},
		{"молоко", 6},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.want, visibleWidth(tt.input))
		})
	}
}

func TestTruncate(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		maxWidth int
		want     string
	}{
		{"no truncation needed", "hello", 10, "hello"},
		{"exact fit", "hello", 5, "hello"},
		{"truncated", "hello world", 8, "hello..."},
		{"very short max", "hello world", 3, "..."},
		{"max 1", "hello", 1, "h"},
		{"max 0", "hello", 0, ""},
		{"empty string", "", 10, ""},
		{"multibyte", "купити молоко", 9, "купити..."},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Truncate(tt.input, tt.maxWidth)
			assert.Equal(t, tt.want, got)
			assert.LessOrEqual(t, visibleWidth(got), tt.maxWidth)
		})
	}
}

func TestTruncateWithANSI(t *testing.T) {
	SetColorEnabled(true)
	defer SetColorEnabled(false)

	got := Truncate(Green("hello world"), 8)
	assert.Equal(t, 8, visibleWidth(got))
	assert.True(t, strings.HasSuffix(got, colorReset))
}
