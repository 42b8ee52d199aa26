package sentiment

// Word valences on the usual -4..+4 rating scale. General terms come
// first, market vocabulary after. Keys are lowercase.
var defaultValences = map[string]float64{
	// general
	"good": 1.9, "great": 3.1, "excellent": 2.7, "best": 3.2, "better": 1.9,
	"love": 3.2, "like": 1.5, "happy": 2.7, "win": 2.8, "wins": 2.7,
	"won": 2.7, "success": 2.7, "successful": 2.8, "positive": 2.6,
	"optimistic": 1.3, "hope": 1.9, "hopes": 1.8, "confident": 2.2,
	"boost": 1.7, "boosts": 1.4, "gain": 2.0, "gains": 1.8,
	"strong": 2.3, "stronger": 1.8, "strongest": 2.0, "improve": 1.9,
	"improves": 1.8, "improved": 2.1, "benefit": 2.0, "benefits": 1.6,
	"opportunity": 1.8, "opportunities": 1.8, "innovative": 1.9,
	"wow": 2.8, "top": 0.8, "leading": 1.1, "safe": 1.9, "solid": 1.5,
	"bad": -2.5, "worse": -2.1, "worst": -3.1, "hate": -2.7, "terrible": -2.1,
	"awful": -2.0, "poor": -2.1, "fail": -2.5, "fails": -1.8, "failed": -2.3,
	"failure": -2.3, "negative": -2.7, "fear": -2.2, "fears": -1.8,
	"worry": -1.9, "worries": -1.5, "worried": -1.2, "risk": -1.1,
	"risks": -1.1, "risky": -1.4, "problem": -1.7, "problems": -1.7,
	"trouble": -1.7, "crisis": -3.1, "weak": -1.9, "weaker": -1.9,
	"lose": -1.7, "loses": -1.3, "lost": -1.3, "loss": -1.3, "losses": -1.7,
	"hurt": -2.4, "hurts": -2.1, "threat": -2.4, "threatens": -1.6,
	"lawsuit": -0.9, "sue": -1.6, "sued": -1.1, "sues": -1.1,
	"fraud": -2.8, "scam": -2.7, "scandal": -1.9, "probe": -1.2,
	"investigation": -1.0, "warning": -1.4, "warns": -0.4, "warn": -0.4,
	"concern": -0.9, "concerns": -1.0, "uncertain": -1.2, "uncertainty": -1.4,
	"panic": -2.3, "chaos": -2.7, "disappointing": -2.2, "disappoints": -1.6,
	"layoffs": -1.5, "layoff": -1.5, "fire": -1.4, "fired": -2.6,
	"killed": -3.5, "kill": -3.7, "dead": -3.3, "death": -2.9,
	"ban": -2.6, "bans": -1.6, "banned": -2.0, "fine": 0.8, "fined": -1.5,

	// market
	"bullish": 2.8, "bearish": -2.8, "rally": 2.2, "rallies": 2.0,
	"surge": 2.1, "surges": 2.1, "soar": 2.4, "soars": 2.4, "jump": 1.4,
	"jumps": 1.4, "climb": 1.1, "climbs": 1.1, "rise": 0.9, "rises": 0.9,
	"upbeat": 1.8, "growth": 1.6, "upgrade": 2.0, "upgrades": 2.0,
	"upgraded": 2.0, "outperform": 2.0, "outperforms": 2.0, "buy": 1.0,
	"recovery": 1.6, "rebound": 1.5, "rebounds": 1.5, "breakout": 1.8,
	"beat": 1.4, "beats": 1.4, "exceeds": 1.6, "expansion": 1.2,
	"profit": 1.2, "profits": 1.2, "profitable": 1.7, "dividend": 1.0,
	"record": 0.6, "bargain": 1.5, "undervalued": 1.3, "accumulate": 1.2,
	"crash": -2.9, "crashes": -2.9, "plunge": -2.6, "plunges": -2.6,
	"plummet": -2.7, "plummets": -2.7, "tumble": -2.0, "tumbles": -2.0,
	"slump": -2.2, "slumps": -2.2, "sink": -1.6, "sinks": -1.6,
	"drop": -1.1, "drops": -1.1, "fall": -1.2, "falls": -1.2, "slip": -0.9,
	"slips": -0.9, "decline": -1.5, "declines": -1.5, "downgrade": -2.0,
	"downgrades": -2.0, "downgraded": -2.0, "underperform": -2.0,
	"sell": -0.8, "selloff": -2.4, "sell-off": -2.4, "correction": -1.0,
	"default": -2.5, "bankruptcy": -3.0, "bankrupt": -3.0, "cut": -1.1,
	"cuts": -1.1, "miss": -1.6, "misses": -1.6, "missed": -1.6,
	"recession": -2.6, "volatile": -1.3, "volatility": -1.1,
	"overvalued": -1.3, "bubble": -1.2, "dilution": -1.2, "delisted": -2.4,
	"short": -0.4,
}

// Two-word phrases scored as one unit. The second word contributes nothing.
var defaultPhrases = map[string]float64{
	"record high":      2.6,
	"all-time high":    2.6,
	"beats estimates":  2.2,
	"beat estimates":   2.2,
	"price target":     0.0,
	"misses estimates": -2.2,
	"missed estimates": -2.2,
	"record low":       -2.6,
	"sell rating":      -1.8,
	"buy rating":       1.8,
}

// Intensity modifiers. Positive entries amplify the next sentiment word,
// negative entries dampen it.
var boosterWords = map[string]float64{
	"absolutely": boostIncr, "amazingly": boostIncr, "completely": boostIncr,
	"considerably": boostIncr, "deeply": boostIncr, "enormously": boostIncr,
	"entirely": boostIncr, "especially": boostIncr, "extremely": boostIncr,
	"greatly": boostIncr, "hugely": boostIncr, "incredibly": boostIncr,
	"massively": boostIncr, "more": boostIncr, "most": boostIncr,
	"particularly": boostIncr, "really": boostIncr, "remarkably": boostIncr,
	"sharply": boostIncr, "significantly": boostIncr, "so": boostIncr,
	"strongly": boostIncr, "substantially": boostIncr, "totally": boostIncr,
	"tremendously": boostIncr, "very": boostIncr,
	"almost": boostDecr, "barely": boostDecr, "hardly": boostDecr,
	"less": boostDecr, "little": boostDecr, "marginally": boostDecr,
	"modestly": boostDecr, "occasionally": boostDecr, "partly": boostDecr,
	"slightly": boostDecr, "somewhat": boostDecr, "sort": boostDecr,
}

var negationWords = map[string]struct{}{
	"not": {}, "no": {}, "never": {}, "none": {}, "nothing": {}, "nowhere": {},
	"neither": {}, "nor": {}, "without": {}, "cannot": {}, "cant": {},
	"dont": {}, "doesnt": {}, "didnt": {}, "isnt": {}, "arent": {},
	"wasnt": {}, "werent": {}, "wont": {}, "wouldnt": {}, "shouldnt": {},
	"couldnt": {}, "hasnt": {}, "havent": {}, "hadnt": {}, "aint": {},
	"rarely": {}, "seldom": {}, "despite": {},
}
