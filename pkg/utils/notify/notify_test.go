package notify_test

import (
	"bytes"
	"testing"

	"github.com/openedx/repotools/pkg/utils/notify"
	"github.com/stretchr/testify/assert"
)

func TestWriteMessageSymbols(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		msgType notify.MessageType
		want    string
	}{
		{name: "error", msgType: notify.ErrorType, want: "✗ message\n"},
		{name: "warning", msgType: notify.WarningType, want: "⚠ message\n"},
		{name: "activity", msgType: notify.ActivityType, want: "► message\n"},
		{name: "generate", msgType: notify.GenerateType, want: "✚ message\n"},
		{name: "success", msgType: notify.SuccessType, want: "✔ message\n"},
		{name: "info", msgType: notify.InfoType, want: "ℹ message\n"},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			t.Parallel()

			var out bytes.Buffer

			notify.WriteMessage(notify.Message{
				Type:    testCase.msgType,
				Content: "message",
				Writer:  &out,
			})

			assert.Equal(t, testCase.want, out.String())
		})
	}
}

func TestWriteMessageWithFormatting(t *testing.T) {
	t.Parallel()

	var out bytes.Buffer

	notify.Errorf(&out, "error: %s (%d)", "failed", 42)

	assert.Equal(t, "✗ error: failed (42)\n", out.String())
}

func TestWriteMessageMultiLineContentIndented(t *testing.T) {
	t.Parallel()

	var out bytes.Buffer

	notify.Successf(&out, "first line\nsecond line\n\nthird line")

	assert.Equal(t, "✔ first line\n  second line\n\n  third line\n", out.String())
}

func TestWriteMessageTitle(t *testing.T) {
	t.Parallel()

	var out bytes.Buffer

	notify.Titlef(&out, "🧪", "Modernize %s...", "tox.ini")

	assert.Equal(t, "🧪 Modernize tox.ini...\n", out.String())
}

func TestWriteMessageTitleDefaultEmoji(t *testing.T) {
	t.Parallel()

	var out bytes.Buffer

	notify.WriteMessage(notify.Message{Type: notify.TitleType, Content: "title", Writer: &out})

	assert.Equal(t, "ℹ️ title\n", out.String())
}

func TestWriteMessageDryRun(t *testing.T) {
	t.Parallel()

	var out bytes.Buffer

	notify.WriteMessage(notify.Message{
		Type:    notify.SuccessType,
		Content: "created %s",
		Args:    []any{"openedx.yaml"},
		DryRun:  true,
		Writer:  &out,
	})

	assert.Equal(t, "✔ (dry run) created openedx.yaml\n", out.String())
}

func TestCodeIndentsBlock(t *testing.T) {
	t.Parallel()

	var out bytes.Buffer

	notify.Code(&out, "owner: jdoe\n\noeps: {}\n")

	assert.Equal(t, "    owner: jdoe\n\n    oeps: {}\n", out.String())
}

func TestCodeAddsTrailingNewline(t *testing.T) {
	t.Parallel()

	var out bytes.Buffer

	notify.Code(&out, "owner: jdoe")

	assert.Equal(t, "    owner: jdoe\n", out.String())
}
