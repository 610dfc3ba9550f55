// Package embed renders a single testimonial as embeddable HTML and builds
// the copy-paste snippet that loads it on third-party pages.
package embed

import (
	"net/url"
	"regexp"
	"strconv"
	"strings"
)

// UnfilledStarColor is the colour of star slots above the rating.
const UnfilledStarColor = "#d1d5db"

// StyleConfig is the fully resolved visual configuration of a card. Every
// field has a default, see DefaultStyle.
type StyleConfig struct {
	BackgroundColor string
	TextColor       string
	Padding         int
	BorderRadius    int
	BorderWidth     int
	BorderColor     string
	StarColor       string

	NameFont         string
	NameFontSize     int
	EmailFont        string // secondary line under the name (role)
	EmailFontSize    int
	QuestionFont     string // accepted for query compatibility; no layout prints questions
	QuestionFontSize int
	RatingFont       string
	RatingFontSize   int
	AnswerFont       string
	AnswerFontSize   int
}

// DefaultStyle returns the documented defaults.
func DefaultStyle() StyleConfig {
	return StyleConfig{
		BackgroundColor:  "#ffffff",
		TextColor:        "#333333",
		Padding:          20,
		BorderRadius:     10,
		BorderWidth:      1,
		BorderColor:      "#e5e7eb",
		StarColor:        "#facc15",
		NameFont:         "Arial, sans-serif",
		NameFontSize:     20,
		EmailFont:        "Arial, sans-serif",
		EmailFontSize:    16,
		QuestionFont:     "Arial, sans-serif",
		QuestionFontSize: 14,
		RatingFont:       "Arial, sans-serif",
		RatingFontSize:   18,
		AnswerFont:       "Arial, sans-serif",
		AnswerFontSize:   14,
	}
}

var (
	hexColorPattern   = regexp.MustCompile(`^#(?:[0-9a-fA-F]{3}|[0-9a-fA-F]{4}|[0-9a-fA-F]{6}|[0-9a-fA-F]{8})$`)
	namedColorPattern = regexp.MustCompile(`^[a-zA-Z]{3,20}$`)
	fontPattern       = regexp.MustCompile(`^[a-zA-Z0-9 ,-]{1,80}$`)
)

type intBounds struct{ min, max int }

var (
	boxBounds  = intBounds{0, 200}
	fontBounds = intBounds{6, 96}
)

// StyleFromQuery builds a StyleConfig from request parameters. Missing,
// unparsable or unsafe values keep their default.
func StyleFromQuery(q url.Values) StyleConfig {
	s := DefaultStyle()

	color(q, "backgroundColor", &s.BackgroundColor)
	color(q, "textColor", &s.TextColor)
	color(q, "borderColor", &s.BorderColor)
	color(q, "starColor", &s.StarColor)

	number(q, "padding", boxBounds, &s.Padding)
	number(q, "borderRadius", boxBounds, &s.BorderRadius)
	number(q, "borderWidth", intBounds{0, 20}, &s.BorderWidth)

	font(q, "nameFont", &s.NameFont)
	font(q, "emailFont", &s.EmailFont)
	font(q, "questionFont", &s.QuestionFont)
	font(q, "ratingFont", &s.RatingFont)
	font(q, "answerFont", &s.AnswerFont)

	number(q, "nameFontSize", fontBounds, &s.NameFontSize)
	number(q, "emailFontSize", fontBounds, &s.EmailFontSize)
	number(q, "questionFontSize", fontBounds, &s.QuestionFontSize)
	number(q, "ratingFontSize", fontBounds, &s.RatingFontSize)
	number(q, "answerFontSize", fontBounds, &s.AnswerFontSize)

	return s
}

// Query encodes the non-default fields of s. StyleFromQuery(s.Query())
// reproduces s.
func (s StyleConfig) Query() url.Values {
	d := DefaultStyle()
	q := url.Values{}
	setString := func(key, v, def string) {
		if v != def {
			q.Set(key, v)
		}
	}
	setInt := func(key string, v, def int) {
		if v != def {
			q.Set(key, strconv.Itoa(v))
		}
	}

	setString("backgroundColor", s.BackgroundColor, d.BackgroundColor)
	setString("textColor", s.TextColor, d.TextColor)
	setString("borderColor", s.BorderColor, d.BorderColor)
	setString("starColor", s.StarColor, d.StarColor)
	setInt("padding", s.Padding, d.Padding)
	setInt("borderRadius", s.BorderRadius, d.BorderRadius)
	setInt("borderWidth", s.BorderWidth, d.BorderWidth)
	setString("nameFont", s.NameFont, d.NameFont)
	setString("emailFont", s.EmailFont, d.EmailFont)
	setString("questionFont", s.QuestionFont, d.QuestionFont)
	setString("ratingFont", s.RatingFont, d.RatingFont)
	setString("answerFont", s.AnswerFont, d.AnswerFont)
	setInt("nameFontSize", s.NameFontSize, d.NameFontSize)
	setInt("emailFontSize", s.EmailFontSize, d.EmailFontSize)
	setInt("questionFontSize", s.QuestionFontSize, d.QuestionFontSize)
	setInt("ratingFontSize", s.RatingFontSize, d.RatingFontSize)
	setInt("answerFontSize", s.AnswerFontSize, d.AnswerFontSize)
	return q
}

func color(q url.Values, key string, dst *string) {
	v := strings.TrimSpace(q.Get(key))
	if hexColorPattern.MatchString(v) || (namedColorPattern.MatchString(v) && !unsafeCSSWord(v)) {
		*dst = v
	}
}

func font(q url.Values, key string, dst *string) {
	v := strings.TrimSpace(q.Get(key))
	if fontPattern.MatchString(v) && !strings.Contains(v, "--") && !unsafeCSSWord(v) {
		*dst = v
	}
}

func number(q url.Values, key string, b intBounds, dst *int) {
	v := strings.TrimSpace(strings.TrimSuffix(q.Get(key), "px"))
	if v == "" {
		return
	}
	n, err := strconv.Atoi(v)
	if err != nil || n < b.min || n > b.max {
		return
	}
	*dst = n
}

// unsafeCSSWord catches the words html/template replaces in CSS values.
func unsafeCSSWord(v string) bool {
	lower := strings.ToLower(v)
	return strings.Contains(lower, "expression") || strings.Contains(lower, "mozbinding")
}
