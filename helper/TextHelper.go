package helper

import (
	"regexp"
	"strings"

	"github.com/samber/lo"
)

var (
	hashtagPattern = regexp.MustCompile(`#[\w]+`)
	mentionPattern = regexp.MustCompile(`@[\w]+`)
)

// ParseHashtags extracts lowercase hashtags (without '#') from a
// caption, deduplicated, in order of first appearance.
func ParseHashtags(text string) []string {
	tags := lo.Map(hashtagPattern.FindAllString(text, -1), func(tag string, _ int) string {
		return strings.ToLower(tag[1:])
	})
	return lo.Uniq(tags)
}

// ParseMentions extracts lowercase @mentions (without '@') from a text,
// deduplicated, in order of first appearance.
func ParseMentions(text string) []string {
	mentions := lo.Map(mentionPattern.FindAllString(text, -1), func(mention string, _ int) string {
		return strings.ToLower(mention[1:])
	})
	return lo.Uniq(mentions)
}
