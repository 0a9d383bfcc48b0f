package extract

// noiseVocabulary holds tokens that look like name parts in result titles
// but are titles, role words, corporate suffixes, or stop-words. A
// candidate with either token in this set is rejected.
var noiseVocabulary = map[string]bool{
	"dr": true, "mr": true, "mrs": true, "ms": true, "prof": true,
	"sir": true, "phd": true, "cpa": true, "cfa": true,

	"the": true, "and": true, "for": true, "with": true, "from": true,
	"about": true, "into": true,

	"top": true, "best": true, "new": true, "old": true, "bad": true,
	"good": true, "big": true, "open": true,

	"all": true, "any": true, "how": true, "why": true, "who": true,
	"what": true, "our": true, "you": true,

	"security": true, "cyber": true, "cloud": true, "data": true,
	"team": true, "lead": true,

	"senior": true, "junior": true, "staff": true, "chief": true,
	"head": true, "vice": true,

	"mad": true, "pro": true, "iii": true, "inc": true, "llc": true,
	"ltd": true,
}

// isNoise reports whether a normalized token is in the reserved noise
// vocabulary.
func isNoise(token string) bool {
	return noiseVocabulary[token]
}
