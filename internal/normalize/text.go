package normalize

import (
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"

	"golang.org/x/text/unicode/norm"
)

const (
	// MinCommentLength is the shortest cleaned comment kept, in characters
	MinCommentLength = 5
	// MinReviewLength is the shortest cleaned review kept, in characters
	MinReviewLength = 10
)

// spamPhrases are matched as case-insensitive substrings
var spamPhrases = []string{"follow me", "check out my", "click link", "dm me"}

var (
	astralChars   = regexp.MustCompile(`[\x{10000}-\x{10FFFF}\x{FE0F}\x{200D}]`)
	urls          = regexp.MustCompile(`https?://\S+|www\.\S+`)
	mentions      = regexp.MustCompile(`@[\p{L}\p{N}_.]+`)
	hashtags      = regexp.MustCompile(`#([\p{L}\p{N}_]+)`)
	markdownLinks = regexp.MustCompile(`\[[^\]]*\]\([^)]*\)`)
	redditUsers   = regexp.MustCompile(`/u/\w+`)
	subreddits    = regexp.MustCompile(`/r/\w+`)
	boldMarkers   = regexp.MustCompile(`\*\*?`)
)

// CleanComment cleans a short-video comment: emoji become spaces, URLs and
// @mentions are removed, hashtags keep their text, whitespace is collapsed.
func CleanComment(s string) string {
	s = norm.NFKC.String(s)
	s = astralChars.ReplaceAllString(s, " ")
	s = urls.ReplaceAllString(s, "")
	s = mentions.ReplaceAllString(s, "")
	s = hashtags.ReplaceAllString(s, "$1")
	return collapseSpace(s)
}

// CleanRedditComment cleans a Reddit comment: URLs, markdown links, user and
// subreddit references and emphasis markers are removed.
func CleanRedditComment(s string) string {
	s = norm.NFKC.String(s)
	s = markdownLinks.ReplaceAllString(s, "")
	s = urls.ReplaceAllString(s, "")
	s = redditUsers.ReplaceAllString(s, "")
	s = subreddits.ReplaceAllString(s, "")
	s = boldMarkers.ReplaceAllString(s, "")
	s = strings.ReplaceAll(s, "~~", "")
	s = astralChars.ReplaceAllString(s, " ")
	return collapseSpace(s)
}

// CleanReview cleans a product review: URLs are removed and runs of three or
// more of "!?." shrink to two.
func CleanReview(s string) string {
	s = norm.NFKC.String(s)
	s = urls.ReplaceAllString(s, "")
	s = astralChars.ReplaceAllString(s, " ")
	s = collapsePunctuation(s)
	return collapseSpace(s)
}

// IsValidComment reports whether a cleaned comment is long enough, carries
// at least one letter or digit, and contains no spam phrase.
func IsValidComment(s string) bool {
	if utf8.RuneCountInString(s) < MinCommentLength {
		return false
	}
	if !strings.ContainsFunc(s, func(r rune) bool { return unicode.IsLetter(r) || unicode.IsDigit(r) }) {
		return false
	}
	return !IsSpam(s)
}

// IsSpam reports whether s contains a spam phrase
func IsSpam(s string) bool {
	lower := strings.ToLower(s)
	for _, phrase := range spamPhrases {
		if strings.Contains(lower, phrase) {
			return true
		}
	}
	return false
}

// IsValidReview reports whether a cleaned review is long enough to analyze
func IsValidReview(s string) bool {
	return utf8.RuneCountInString(s) >= MinReviewLength
}

func collapseSpace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

func isRepeatable(r rune) bool {
	return r == '!' || r == '?' || r == '.'
}

// collapsePunctuation rewrites every run of three or more "!?." characters as
// two copies of the run's last character
func collapsePunctuation(s string) string {
	var b strings.Builder
	b.Grow(len(s))

	runes := []rune(s)
	for i := 0; i < len(runes); {
		if !isRepeatable(runes[i]) {
			b.WriteRune(runes[i])
			i++
			continue
		}
		j := i
		for j < len(runes) && isRepeatable(runes[j]) {
			j++
		}
		if j-i >= 3 {
			b.WriteRune(runes[j-1])
			b.WriteRune(runes[j-1])
		} else {
			b.WriteString(string(runes[i:j]))
		}
		i = j
	}
	return b.String()
}
