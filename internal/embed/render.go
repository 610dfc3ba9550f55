package embed

import (
	"bytes"
	"errors"
	"html/template"
	"strconv"
	"strings"
	"unicode"

	"kudoswall/internal/model"
)

// Layout selects one of the fixed card arrangements.
type Layout int

const (
	// LayoutCentered: avatar, name, role, stars, then the quote.
	LayoutCentered Layout = 1
	// LayoutQuoteFirst: quote, then avatar, name and role. No stars.
	LayoutQuoteFirst Layout = 2
	// LayoutHorizontal: left aligned quote above an avatar+name row. No stars.
	LayoutHorizontal Layout = 3

	DefaultLayout = LayoutCentered
	starSlots     = 5

	fallbackName = "Anonymous"
	fallbackRole = "Customer"
)

var ErrInvalidLayout = errors.New("layout must be 1, 2 or 3")

// ParseLayout reads the layout query value. An empty value is the default.
func ParseLayout(v string) (Layout, error) {
	if v == "" {
		return DefaultLayout, nil
	}
	n, err := strconv.Atoi(strings.TrimSpace(v))
	if err != nil {
		return 0, ErrInvalidLayout
	}
	l := Layout(n)
	if !l.Valid() {
		return 0, ErrInvalidLayout
	}
	return l, nil
}

func (l Layout) Valid() bool {
	return l >= LayoutCentered && l <= LayoutHorizontal
}

func (l Layout) String() string {
	return strconv.Itoa(int(l))
}

type star struct {
	Filled bool
	Color  string
}

type cardView struct {
	ID       string
	Layout   Layout
	Style    StyleConfig
	Align    string
	Name     string
	Role     string
	Initials string
	ImageURL string
	Quote    string
	Rating   int
	Stars    []star
}

const cardTemplates = `
{{define "avatar"}}{{if .ImageURL}}<img class="kw-avatar" src="{{.ImageURL}}" alt="{{.Name}}" width="56" height="56" style="border-radius: 50%; object-fit: cover;">{{else}}<div class="kw-avatar kw-initials" style="width: 56px; height: 56px; border-radius: 50%; display: inline-flex; align-items: center; justify-content: center; background-color: {{.Style.BorderColor}}; color: {{.Style.TextColor}}; font-family: {{.Style.NameFont}}; font-size: {{.Style.NameFontSize}}px; font-weight: 600;">{{.Initials}}</div>{{end}}{{end}}

{{define "identity"}}<div class="kw-name" style="font-family: {{.Style.NameFont}}; font-size: {{.Style.NameFontSize}}px; font-weight: 600; margin-top: 8px;">{{.Name}}</div><div class="kw-role" style="font-family: {{.Style.EmailFont}}; font-size: {{.Style.EmailFontSize}}px; opacity: 0.75;">{{.Role}}</div>{{end}}

{{define "stars"}}<div class="kw-stars" role="img" aria-label="{{.Rating}} out of 5" style="font-family: {{.Style.RatingFont}}; font-size: {{.Style.RatingFontSize}}px; margin: 8px 0;">{{range .Stars}}<span class="kw-star{{if .Filled}} kw-star-filled{{end}}" style="color: {{.Color}};">★</span>{{end}}</div>{{end}}

{{define "quote"}}<p class="kw-quote" style="font-family: {{.Style.AnswerFont}}; font-size: {{.Style.AnswerFontSize}}px; line-height: 1.5; margin: 12px 0;">“{{.Quote}}”</p>{{end}}

{{define "card"}}<div class="kw-card kw-layout-{{.Layout}}" data-response-id="{{.ID}}" data-layout="{{.Layout}}" style="background-color: {{.Style.BackgroundColor}}; color: {{.Style.TextColor}}; padding: {{.Style.Padding}}px; border: {{.Style.BorderWidth}}px solid {{.Style.BorderColor}}; border-radius: {{.Style.BorderRadius}}px; text-align: {{.Align}}; box-sizing: border-box; max-width: 560px;">
{{- if eq .Layout 1}}
{{template "avatar" .}}{{template "identity" .}}{{template "stars" .}}{{template "quote" .}}
{{- else if eq .Layout 2}}
{{template "quote" .}}{{template "avatar" .}}{{template "identity" .}}
{{- else}}
{{template "quote" .}}<div class="kw-author" style="display: flex; align-items: center; gap: 12px;">{{template "avatar" .}}<div>{{template "identity" .}}</div></div>
{{- end}}
</div>{{end}}
`

const documentTemplate = `{{define "document"}}<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<meta name="viewport" content="width=device-width, initial-scale=1">
<title>Testimonial from {{.Name}}</title>
<style>
@keyframes kw-fade-in { from { opacity: 0; transform: translateY(8px); } to { opacity: 1; transform: none; } }
html, body { margin: 0; padding: 0; background: transparent; }
.kw-card { animation: kw-fade-in 0.6s ease-out both; }
</style>
</head>
<body>
{{template "card" .}}
<script>
(function () {
  function postHeight() {
    window.parent.postMessage({ type: "kudoswall:resize", responseId: {{.ID}}, height: document.documentElement.scrollHeight }, "*");
  }
  window.addEventListener("load", postHeight);
  window.addEventListener("resize", postHeight);
})();
</script>
</body>
</html>
{{end}}

{{define "error"}}<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<title>Testimonial unavailable</title>
<style>
html, body { margin: 0; padding: 0; background: transparent; }
</style>
</head>
<body>
<div class="kw-card kw-error" data-status="{{.Status}}" style="padding: 20px; font-family: Arial, sans-serif; color: #6b7280; text-align: center;">{{.Message}}</div>
</body>
</html>
{{end}}
`

var templates = template.Must(template.Must(template.New("cards").Parse(cardTemplates)).Parse(documentTemplate))

func newCardView(resp *model.Response, style StyleConfig, layout Layout) cardView {
	name := strings.TrimSpace(resp.ResponderName)
	if name == "" {
		name = fallbackName
	}
	role := strings.TrimSpace(resp.ResponderRole)
	if role == "" {
		role = fallbackRole
	}

	rating := min(max(resp.Rating, 0), starSlots)
	stars := make([]star, starSlots)
	for i := range stars {
		stars[i] = star{Filled: i < rating, Color: UnfilledStarColor}
		if stars[i].Filled {
			stars[i].Color = style.StarColor
		}
	}

	align := "center"
	if layout == LayoutHorizontal {
		align = "left"
	}

	return cardView{
		ID:       resp.ID,
		Layout:   layout,
		Style:    style,
		Align:    align,
		Name:     name,
		Role:     role,
		Initials: Initials(name),
		ImageURL: resp.ImageURL,
		Quote:    strings.Join(resp.Answers, " "),
		Rating:   rating,
		Stars:    stars,
	}
}

// Initials returns up to two upper-case initials of name.
func Initials(name string) string {
	var initials []rune
	for _, word := range strings.Fields(name) {
		initials = append(initials, unicode.ToUpper([]rune(word)[0]))
		if len(initials) == 2 {
			break
		}
	}
	if len(initials) == 0 {
		return "?"
	}
	return string(initials)
}

func render(name string, data interface{}) (string, error) {
	var buf bytes.Buffer
	if err := templates.ExecuteTemplate(&buf, name, data); err != nil {
		return "", err
	}
	return buf.String(), nil
}

// RenderDocument renders a complete HTML page for use as an iframe source.
func RenderDocument(resp *model.Response, style StyleConfig, layout Layout) (string, error) {
	if !layout.Valid() {
		return "", ErrInvalidLayout
	}
	return render("document", newCardView(resp, style, layout))
}

// RenderFragment renders the same card as RenderDocument without the page
// around it, for injection into a host element.
func RenderFragment(resp *model.Response, style StyleConfig, layout Layout) (string, error) {
	if !layout.Valid() {
		return "", ErrInvalidLayout
	}
	return render("card", newCardView(resp, style, layout))
}

// RenderErrorDocument renders the page served to an iframe when the
// testimonial cannot be shown.
func RenderErrorDocument(status int, message string) string {
	out, err := render("error", struct {
		Status  int
		Message string
	}{status, message})
	if err != nil {
		return "<!DOCTYPE html><html><body></body></html>"
	}
	return out
}
