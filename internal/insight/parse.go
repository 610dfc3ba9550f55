package insight

import (
	"regexp"
	"strings"

	"kudoswall/internal/model"
)

// optional bullet or number, optional bold title, colon, content
var bulletPattern = regexp.MustCompile(`^\s*(?:[-*•]|\d+[.)])?\s*\**([^:*]+?)\**\s*:\s*\**\s*(.+?)\s*$`)

// ParseBulletResponse extracts "title: content" points in the order the
// model wrote them. Blank lines are ignored; other lines that do not fit the
// pattern are dropped and counted in skipped.
func ParseBulletResponse(text string) (points []model.InsightPoint, skipped int) {
	points = []model.InsightPoint{}
	for _, line := range strings.Split(text, "\n") {
		if strings.TrimSpace(line) == "" {
			continue
		}
		m := bulletPattern.FindStringSubmatch(line)
		if m == nil {
			skipped++
			continue
		}
		title := strings.TrimSpace(m[1])
		content := strings.TrimSpace(m[2])
		if title == "" || content == "" {
			skipped++
			continue
		}
		points = append(points, model.InsightPoint{Title: title, Content: content})
	}
	return points, skipped
}

// ParseSpamVerdict reports whether the model answered "spam".
func ParseSpamVerdict(text string) bool {
	v := strings.ToLower(strings.TrimSpace(text))
	v = strings.Trim(v, "\"'`.!* ")
	return strings.HasPrefix(v, "spam")
}
