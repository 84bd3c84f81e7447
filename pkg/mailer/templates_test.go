package mailer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRenderWelcome(t *testing.T) {
	subject, html, err := Render(TemplateWelcome, map[string]any{
		"AppName": "go-commerce-api",
		"Name":    "Dewi",
		"Email":   "dewi@example.com",
	})
	require.NoError(t, err)
	assert.Equal(t, "Welcome aboard", subject)
	assert.Contains(t, html, "Dewi")
	assert.Contains(t, html, "dewi@example.com")
}

func TestRenderOrderStatus(t *testing.T) {
	subject, html, err := Render(TemplateOrderStatus, map[string]any{
		"Name":    "Dewi",
		"OrderID": "ord-1",
		"Status":  "shipped",
		"Total":   "12.50",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, subject)
	assert.Contains(t, html, "ord-1")
	assert.Contains(t, html, "shipped")
}

func TestRenderUnknownTemplate(t *testing.T) {
	_, _, err := Render("no_such_template", nil)
	assert.Error(t, err)
}
