// ReelMatch - Facet-Indexed Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelmatch

package conversation

import "strings"

// TopicSeeds nudge each generated reply toward a different part of the
// user's life.
var TopicSeeds = []string{
	"what they do for fun on weekends",
	"a hobby they recently picked up",
	"something that made them smile today",
	"what they'd do with a free afternoon",
	"their favorite way to unwind after a long day",
	"something they're looking forward to this week",
	"a skill they wish they had",
	"what kind of adventures they enjoy",
	"their go-to comfort activity",
	"something they've been curious about lately",
	"what gets them fired up and energized",
	"their ideal lazy day",
}

// fallbackReplies are used when a reply cannot be generated, one row per
// round; later rounds reuse the last row.
var fallbackReplies = [][]string{
	{"Interesting! Tell me more.", "No way, really?", "I hear you."},
	{"Gotcha. What else is on your mind?", "That's cool.", "Nice."},
	{"Oh really?", "Go on...", "And then what?"},
}

type topic struct {
	name     string
	keywords []string
}

var topics = []topic{
	{"work", []string{"work", "job", "office", "boss", "colleague", "meeting", "deadline"}},
	{"sleep", []string{"sleep", "tired", "exhausted", "awake", "bed", "nap", "rest"}},
	{"gaming", []string{"game", "gaming", "play", "ranked", "match", "level", "console", "pc"}},
	{"family", []string{"family", "kids", "children", "parent", "wife", "husband", "mom", "dad"}},
	{"school", []string{"school", "class", "homework", "exam", "study", "college", "university"}},
	{"food", []string{"food", "eat", "dinner", "lunch", "breakfast", "cooking", "restaurant"}},
	{"music", []string{"music", "song", "band", "concert", "spotify", "listen"}},
	{"sports", []string{"sport", "gym", "workout", "exercise", "run", "fitness"}},
	{"travel", []string{"travel", "trip", "vacation", "beach", "holiday"}},
	{"social", []string{"friend", "party", "hangout", "social", "meet"}},
	{"weekend", []string{"weekend", "free time", "day off", "holiday"}},
	{"stress", []string{"stress", "stressed", "anxious", "worried", "overwhelmed"}},
}

// TrackTopics appends every topic input touches that is not already in
// discussed. Keywords match as substrings, so "played" counts as gaming.
func TrackTopics(discussed []string, input string) []string {
	lower := strings.ToLower(input)
	for _, t := range topics {
		if contains(discussed, t.name) {
			continue
		}
		for _, kw := range t.keywords {
			if strings.Contains(lower, kw) {
				discussed = append(discussed, t.name)
				break
			}
		}
	}
	return discussed
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}

// fallbackReply picks a canned reply for round using pick(n) in [0, n).
func fallbackReply(round int, pick func(int) int) string {
	row := min(max(round-1, 0), len(fallbackReplies)-1)
	options := fallbackReplies[row]
	return options[pick(len(options))]
}
