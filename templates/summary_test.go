package templates

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSummaryPage_EscapesText(t *testing.T) {
	var buf bytes.Buffer
	err := SummaryPage("Aislación", "TOTAL <b>1</b>\nlínea 2", false).Render(context.Background(), &buf)
	require.NoError(t, err)

	html := buf.String()
	assert.Contains(t, html, "<title>Aislación</title>")
	assert.Contains(t, html, "TOTAL &lt;b&gt;1&lt;/b&gt;\nlínea 2")
	assert.Contains(t, html, `href="?detail=1"`)
	assert.NotContains(t, html, "<b>1</b>")
}

func TestSummaryPage_DetailedLinksBack(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, SummaryPage("Hormigón", "x", true).Render(context.Background(), &buf))
	assert.Contains(t, buf.String(), "Ver resumen")
}

func TestSummaryPage_Markup(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, SummaryPage("Volcanita", "PLANCHAS 3", false).Render(context.Background(), &buf))

	html := buf.String()
	assert.True(t, strings.HasPrefix(html, "<!doctype html><html lang=\"es\">"), html)
	assert.Contains(t, html, "<h1>Volcanita</h1>")
	assert.Contains(t, html, `<pre id="summary">PLANCHAS 3</pre>`)
	assert.NotContains(t, html, "Ver resumen")
}

func TestSummaryPage_CanceledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	var buf bytes.Buffer
	err := SummaryPage("Aislación", "x", false).Render(ctx, &buf)
	require.ErrorIs(t, err, context.Canceled)
	assert.Zero(t, buf.Len())
}
