package style

import (
	"strings"

	"github.com/custodia-labs/inkwell/internal/core/domain"
)

// toneBucket is a mood with its indicator words.
type toneBucket struct {
	name  string
	words map[string]struct{}
}

// toneBuckets are visited in this order; earlier buckets win ties.
var toneBuckets = []toneBucket{
	bucket("joyful", "happy", "joy", "joyful", "laugh", "laughed", "smile", "smiled", "delight", "delighted",
		"cheerful", "glad", "bright", "celebrate", "wonderful"),
	bucket("melancholic", "sad", "sorrow", "grief", "tears", "wept", "lonely", "mourn", "loss", "regret",
		"longing", "empty", "weary", "gloomy"),
	bucket("tense", "suddenly", "heart", "pounding", "racing", "breath", "froze", "panic", "urgent",
		"trembled", "danger", "quickly", "rushed", "desperate"),
	bucket("romantic", "love", "kiss", "kissed", "tender", "embrace", "passion", "beloved", "adore",
		"darling", "caress", "romance", "desire"),
	bucket("mysterious", "shadow", "shadows", "secret", "strange", "whisper", "whispered", "unknown",
		"hidden", "mystery", "fog", "curious", "puzzle", "vanished"),
	bucket("humorous", "funny", "joke", "giggle", "grinned", "silly", "absurd", "ridiculous", "chuckled",
		"hilarious", "witty", "prank"),
	bucket("dark", "death", "dead", "blood", "kill", "killed", "grave", "darkness", "corpse", "evil",
		"nightmare", "doom", "cruel"),
	bucket("hopeful", "hope", "hoped", "dream", "promise", "future", "believe", "tomorrow", "faith",
		"possible", "wish", "courage"),
	bucket("angry", "angry", "rage", "fury", "furious", "shouted", "hate", "hated", "slammed", "yelled",
		"bitter", "resent", "snapped"),
	bucket("peaceful", "calm", "quiet", "peace", "gentle", "serene", "still", "soft", "rest", "breeze",
		"tranquil", "soothing", "meadow"),
}

func bucket(name string, words ...string) toneBucket {
	set := make(map[string]struct{}, len(words))
	for _, w := range words {
		set[w] = struct{}{}
	}
	return toneBucket{name: name, words: set}
}

// analyzeTone counts mood indicator words in the normalized word list.
func analyzeTone(words []string) domain.ToneAnalysis {
	counts := make(map[string]int)
	matches := 0
	for _, w := range words {
		for _, b := range toneBuckets {
			if _, ok := b.words[w]; ok {
				counts[b.name]++
				matches++
			}
		}
	}

	if matches == 0 || len(words) == 0 {
		return domain.ToneAnalysis{Primary: domain.ToneNeutral, Intensity: 50}
	}

	primary, secondary := "", ""
	for _, b := range toneBuckets {
		n := counts[b.name]
		if n == 0 {
			continue
		}
		switch {
		case primary == "" || n > counts[primary]:
			secondary = primary
			primary = b.name
		case secondary == "" || n > counts[secondary]:
			secondary = b.name
		}
	}
	if secondary != "" && counts[secondary]*2 <= counts[primary] {
		secondary = ""
	}

	return domain.ToneAnalysis{
		Primary:   primary,
		Secondary: secondary,
		Intensity: min(100, matches*1000/len(words)),
		Counts:    counts,
	}
}

// NormalizeWords lowercases and strips punctuation, dropping empty tokens.
func NormalizeWords(text string) []string {
	fields := strings.Fields(text)
	out := make([]string, 0, len(fields))
	for _, f := range fields {
		if w := normalizeWord(f); w != "" {
			out = append(out, w)
		}
	}
	return out
}

func normalizeWord(s string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(s) {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') || r == '\'' {
			b.WriteRune(r)
		}
	}
	return b.String()
}
