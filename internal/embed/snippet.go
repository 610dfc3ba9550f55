package embed

import (
	"bytes"
	"html/template"
)

var snippetTemplate = template.Must(template.New("snippet").Parse(
	`<div data-response-id="{{.ID}}" data-layout="{{.Layout}}" style="background-color: {{.Style.BackgroundColor}}; font-size: {{.Style.AnswerFontSize}}px; color: {{.Style.TextColor}};"></div>` + "\n" +
		`<script src="{{.ScriptURL}}" async></script>`,
))

// BuildSnippet returns the two-line snippet an owner pastes into a page: a
// placeholder div the loader fills in and the loader script tag.
func BuildSnippet(responseID string, layout Layout, style StyleConfig, scriptURL string) (string, error) {
	if !layout.Valid() {
		return "", ErrInvalidLayout
	}
	var buf bytes.Buffer
	err := snippetTemplate.Execute(&buf, struct {
		ID        string
		Layout    Layout
		Style     StyleConfig
		ScriptURL string
	}{responseID, layout, style, scriptURL})
	if err != nil {
		return "", err
	}
	return buf.String(), nil
}
