package llm

import (
	"fmt"
	"regexp"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/language"
	"golang.org/x/text/language/display"
)

const (
	MaxContentRunes   = 5000
	truncationMarker  = "..."
	DefaultPrimary    = 3
	DefaultSecondary  = 5
	MaxKeywordsPerSet = 20
)

// Arabic, Arabic Supplement, Arabic Extended-A and the presentation forms.
var arabicScript = regexp.MustCompile(`[\x{0600}-\x{06FF}\x{0750}-\x{077F}\x{08A0}-\x{08FF}\x{FB50}-\x{FDFF}\x{FE70}-\x{FEFF}]`)

type KeywordPrompt struct {
	Content   string
	Primary   int
	Secondary int
	Note      string
}

// DetectLanguage picks the language keywords should be generated in.
func DetectLanguage(content string) language.Tag {
	if arabicScript.MatchString(content) {
		return language.Arabic
	}
	return language.English
}

// LanguageName returns the English display name of tag, e.g. "Arabic".
func LanguageName(tag language.Tag) string {
	if name := display.English.Tags().Name(tag); name != "" {
		return name
	}
	return "English"
}

// TruncateContent keeps the first MaxContentRunes characters of s.
func TruncateContent(s string) string {
	if utf8.RuneCountInString(s) <= MaxContentRunes {
		return s
	}
	r := []rune(s)
	return string(r[:MaxContentRunes]) + truncationMarker
}

// NormalizeCounts applies defaults to non-positive counts and caps both sets.
func NormalizeCounts(primary, secondary int) (int, int) {
	clamp := func(n, def int) int {
		if n <= 0 {
			return def
		}
		return min(n, MaxKeywordsPerSet)
	}
	return clamp(primary, DefaultPrimary), clamp(secondary, DefaultSecondary)
}

func BuildKeywordPrompt(p KeywordPrompt) string {
	lang := LanguageName(DetectLanguage(p.Content))
	sb := &strings.Builder{}
	fmt.Fprintf(sb, "Analyze the following content and suggest SEO keywords for it. ")
	fmt.Fprintf(sb, "Return exactly %d primary keywords (short, high-intent head terms) and exactly %d secondary keywords (supporting long-tail phrases). ", p.Primary, p.Secondary)
	fmt.Fprintf(sb, "All keywords must be written in %s. ", lang)
	sb.WriteString(`Respond strictly with a JSON object of this shape and nothing else: {"primary":["keyword"],"secondary":["keyword"]}.`)
	if note := strings.TrimSpace(p.Note); note != "" {
		fmt.Fprintf(sb, "\n\nAdditional guidance from the author: %s", note)
	}
	fmt.Fprintf(sb, "\n\nContent:\n%s", TruncateContent(p.Content))
	return sb.String()
}
