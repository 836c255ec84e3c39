package textnorm

var stopWordLists = map[string][]string{
	"english": {
		"a", "about", "above", "after", "again", "against", "all", "am", "an", "and",
		"any", "are", "as", "at", "be", "because", "been", "before", "being", "below",
		"between", "both", "but", "by", "can", "could", "did", "do", "does", "doing",
		"don", "down", "during", "each", "few", "for", "from", "further", "had", "has",
		"have", "having", "he", "her", "here", "hers", "herself", "him", "himself", "his",
		"how", "i", "if", "in", "into", "is", "it", "its", "itself", "just",
		"me", "more", "most", "my", "myself", "no", "nor", "not", "now", "of",
		"off", "on", "once", "only", "or", "other", "our", "ours", "ourselves", "out",
		"over", "own", "s", "same", "she", "should", "so", "some", "such", "t",
		"than", "that", "the", "their", "theirs", "them", "themselves", "then", "there", "these",
		"they", "this", "those", "through", "to", "too", "under", "until", "up", "very",
		"was", "we", "were", "what", "when", "where", "which", "while", "who", "whom",
		"why", "will", "with", "would", "you", "your", "yours", "yourself", "yourselves",
	},
	"spanish": {
		"a", "al", "algo", "como", "con", "de", "del", "el", "ella", "ellos",
		"en", "entre", "es", "esta", "este", "fue", "ha", "la", "las", "le",
		"lo", "los", "mas", "me", "mi", "muy", "no", "nos", "o", "para",
		"pero", "por", "que", "se", "si", "sin", "sobre", "su", "sus", "también",
		"te", "tu", "un", "una", "uno", "y", "ya", "yo",
	},
	"french": {
		"au", "aux", "avec", "ce", "ces", "dans", "de", "des", "du", "elle",
		"en", "est", "et", "eux", "il", "je", "la", "le", "les", "leur",
		"lui", "ma", "mais", "me", "mes", "moi", "mon", "ne", "nos", "notre",
		"nous", "on", "ou", "par", "pas", "pour", "qu", "que", "qui", "sa",
		"se", "ses", "son", "sur", "ta", "te", "tes", "toi", "ton", "tu",
		"un", "une", "vos", "votre", "vous",
	},
}

// StopWords returns the built-in stop words for a language, or nil when the
// language has no list.
func StopWords(language string) []string {
	return stopWordLists[language]
}
