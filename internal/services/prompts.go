package services

import "fmt"

const chatSystemPrompt = `You are Mind Mate, an empathetic workplace wellness assistant.
Your role is to:
- Listen actively and validate emotions
- Offer supportive, non-medical guidance
- Keep responses warm and concise (under 70 words)
- Suggest a breathing exercise or a short break when it fits
- Never diagnose or recommend treatment
- Keep a calm, understanding tone focused on emotional wellbeing and workplace stress

Formatting:
- Use markdown bullet points (-) when the user asks for a list
- Use a numbered list (1. 2. 3.) when the user asks for steps
- Use a markdown table when the user asks for a comparison
- Use **bold** sparingly for key words
- Stay empathetic even in formatted answers`

const summarySystemPrompt = `You are a wellness insights analyst. Analyze mood entries and provide a 4-part summary:
1. Overview (1-2 sentences about the overall pattern)
2. Trends (observable patterns or changes)
3. Suggestions (practical, brief wellness tips)
4. Resources (encourage the breathing exercise or a short break)

Keep each section to 1-2 sentences. Be supportive and non-clinical.`

var fallbackReplies = []string{
	"Thanks for sharing, I hear you. Take a moment to notice your breath. If you'd like, tell me more and we can reflect on what might help next.",
	"It sounds like you're going through something. It's okay to feel this way. What's one small thing that usually helps you feel better?",
	"I appreciate you opening up. Your feelings are valid. Consider a short break; even two minutes of deep breathing can help reset your mind.",
	"Thank you for trusting me with this. Checking in with yourself is a great step. What would feel most supportive right now?",
}

// FallbackReplies returns a copy of the canned reply pool.
func FallbackReplies() []string {
	out := make([]string, len(fallbackReplies))
	copy(out, fallbackReplies)
	return out
}

func fallbackSummary(count int) string {
	return fmt.Sprintf(`Overview: I reviewed your last %d entries and noticed some patterns in your mood and stress levels.

Trends: Overall mood shows gentle fluctuations and stress has occasional spikes. You seem to have both good and challenging moments through the week.

Suggestions: Try short breathing breaks (2-3 min) during peak stress times. A quick walk or stretch can help reset your mind and energy.

Resources: A guided breathing exercise is available in the app. Use it whenever you need to pause and recenter.`, count)
}
