package story

import (
	"crypto/md5"
	"encoding/hex"
	"strings"
)

var milestoneKeywords = []string{
	"i love you", "i'm pregnant", "we broke up", "move in", "divorced",
	"engaged", "kissed", "cried", "birthday", "met gala", "stormed out",
	"confession", "in labor", "he proposed", "she said yes", "got married",
}

var apostrophes = strings.NewReplacer("’", "'", "‘", "'")

// IsMilestoneWorthy reports the first keyword found in text.
func IsMilestoneWorthy(text string) (string, bool) {
	text = apostrophes.Replace(strings.ToLower(text))
	for _, kw := range milestoneKeywords {
		if strings.Contains(text, kw) {
			return kw, true
		}
	}
	return "", false
}

// SceneHash is the dedup key of a scene: md5 of the trimmed text.
func SceneHash(text string) string {
	sum := md5.Sum([]byte(strings.TrimSpace(text)))
	return hex.EncodeToString(sum[:])
}

// AlreadyLogged reports whether text was logged as one of milestones.
func AlreadyLogged(milestones []Milestone, text string) bool {
	h := SceneHash(text)
	for _, m := range milestones {
		if m.Hash == h {
			return true
		}
	}
	return false
}
