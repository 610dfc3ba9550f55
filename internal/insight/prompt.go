// Package insight builds prompts for the generative model and parses its
// free-text answers.
package insight

import (
	"fmt"
	"strings"

	"kudoswall/internal/model"
)

const painPointsPreamble = `You are analysing customer feedback collected through a testimonial form.
Identify the main pain points, complaints and unmet expectations the respondents describe.
Reply with one bullet per pain point in the form "- Title: explanation".
Use a short title of at most five words. Do not add an introduction or a conclusion.
If there are no pain points, reply with nothing.

Feedback transcripts:`

const positivesPreamble = `You are analysing customer feedback collected through a testimonial form.
Identify what respondents appreciate most: praised features, good experiences and reasons they would recommend the product.
Reply with one bullet per point in the form "- Title: explanation".
Use a short title of at most five words. Do not add an introduction or a conclusion.
If there is no positive feedback, reply with nothing.

Feedback transcripts:`

const spamPreamble = `You moderate submissions to a customer testimonial form.
Decide whether the submission below is spam: advertising, gibberish, links unrelated to the product, or content that does not answer the questions.
Reply with exactly one of: "spam" or "not spam".

Submission:`

// BuildPrompt returns the instruction for kind followed by the transcripts,
// separated by blank lines.
func BuildPrompt(kind model.InsightKind, transcripts []string) (string, error) {
	var preamble string
	switch kind {
	case model.InsightPainPoints:
		preamble = painPointsPreamble
	case model.InsightPositives:
		preamble = positivesPreamble
	default:
		return "", fmt.Errorf("unknown insight kind %q", kind)
	}
	return preamble + "\n\n" + strings.Join(transcripts, "\n\n"), nil
}

// FormatTranscript renders a response as question/answer pairs using the
// question list captured when it was submitted.
func FormatTranscript(resp *model.Response) string {
	var b strings.Builder
	for i, answer := range resp.Answers {
		question := fmt.Sprintf("Q%d", i+1)
		if i < len(resp.Questions) && strings.TrimSpace(resp.Questions[i]) != "" {
			question = resp.Questions[i]
		}
		if i > 0 {
			b.WriteByte('\n')
		}
		fmt.Fprintf(&b, "Q: %s\nA: %s", question, answer)
	}
	if resp.Rating > 0 {
		if b.Len() > 0 {
			b.WriteByte('\n')
		}
		fmt.Fprintf(&b, "Rating: %d/5", resp.Rating)
	}
	return b.String()
}

// Transcripts formats every response that has something to say.
func Transcripts(responses []*model.Response) []string {
	out := make([]string, 0, len(responses))
	for _, r := range responses {
		if t := FormatTranscript(r); t != "" {
			out = append(out, t)
		}
	}
	return out
}

// BuildSpamPrompt asks the model for a spam verdict on a single submission.
func BuildSpamPrompt(resp *model.Response) string {
	return spamPreamble + "\n\n" + "Name: " + resp.ResponderName + "\n" + FormatTranscript(resp)
}
