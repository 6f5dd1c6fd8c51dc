// Package triage implements the rule-based priority engine for civic-issue
// reports: severity tiers, urgency modifiers, and category suggestion.
package triage

import (
	"regexp"

	"github.com/civicgrid/triage/internal/domain"
)

// Severity tier base scores.
const (
	criticalScore = 90
	highScore     = 70
	mediumScore   = 40
	lowScore      = 10
)

// maxSuggestedCategories caps the category suggestions per report.
const maxSuggestedCategories = 3

// maxReasonKeywords caps how many matched keywords a reason string names.
const maxReasonKeywords = 3

// lowSeverityReason is the default reason when no tier keyword matches.
const lowSeverityReason = "Classified as Low Severity (maintenance/cosmetic issue)"

// defaultReason is returned when neither severity nor urgency contributed
// an explanation.
const defaultReason = "Standard priority based on general keywords."

// severityTierDef declares one severity tier. Tiers are evaluated highest
// first and are mutually exclusive: the first tier with a keyword hit wins.
type severityTierDef struct {
	Label      domain.Severity
	Score      int
	ReasonVerb string // "Critical" vs "High Severity" phrasing in reasons
	Keywords   []string
}

// severityTiers holds the fixed tier keyword tables. Matching is substring
// containment over the lowercased text, so "fire" also hits "firefighter";
// that looseness is intentional and pinned by the test suite.
var severityTiers = []severityTierDef{
	{
		Label:      domain.SeverityCritical,
		Score:      criticalScore,
		ReasonVerb: "Critical",
		Keywords: []string{
			"fire", "explosion", "blood", "death", "collapse", "gas leak",
			"electric shock", "spark", "electrocution", "drowning",
			"flood", "landslide", "earthquake", "cyclone", "hurricane",
			"attack", "assault", "rabid", "deadly", "fatal", "emergency",
			"blocked road", "ambulance", "hospital", "school", "child",
			"exposed wire", "transformer", "chemical", "toxic", "poison",
			"weapon", "gun", "bomb", "terror", "riot", "stampede",
			"structural failure", "pillar", "bridge", "flyover",
			"open manhole", "live wire", "gas smell", "open electrical box",
			"burning", "flame", "smoke", "crack", "fissure",
		},
	},
	{
		Label:      domain.SeverityHigh,
		Score:      highScore,
		ReasonVerb: "High Severity",
		Keywords: []string{
			"accident", "injury", "broken", "bleeding", "hazard", "risk",
			"dangerous", "unsafe", "threat", "pollution", "smoke",
			"sewage", "overflow", "contamination", "infection", "disease",
			"mosquito", "dengue", "malaria", "typhoid", "cholera",
			"rat", "snake", "stray dog", "bite", "attack", "cattle",
			"theft", "robbery", "burglary", "harassment", "abuse",
			"illegal", "crime", "violation", "bribe", "corruption",
			"traffic jam", "congestion", "gridlock", "delay",
			"no water", "power cut", "blackout", "load shedding",
			"pothole", "manhole", "open drain", "water logging",
			"dead", "animal", "fish", "stuck",
			"not working", "signal", "traffic light", "fallen tree",
			"water leakage", "leakage", "burst", "pipe burst", "damage",
			"leaning", "tilted", "unstable", "waterlogging",
		},
	},
	{
		Label:      domain.SeverityMedium,
		Score:      mediumScore,
		ReasonVerb: "Medium Severity",
		Keywords: []string{
			"garbage", "trash", "waste", "litter", "rubbish", "dustbin",
			"smell", "odor", "stink", "foul", "dirty", "unclean",
			"messy", "ugly", "eyesore", "bad", "poor",
			"leak", "drip", "seepage", "moisture", "damp",
			"noise", "loud", "sound", "music", "party", "barking",
			"encroachment", "hawker", "vendor", "stall", "shop",
			"parking", "parked", "vehicle", "car", "bike", "scooter",
			"construction", "debris", "material", "sand", "cement",
			"graffiti", "poster", "banner", "hoarding", "advertisement",
			"slippery", "muddy", "path", "pavement", "sidewalk",
			"crowd", "gathering", "tap", "wasting", "running water",
			"speed breaker", "hump", "bump",
		},
	},
}

// urgencyRuleDef pairs a context pattern with its additive weight. Rules are
// not mutually exclusive; every match adds its weight before the 0-100 clamp.
type urgencyRuleDef struct {
	Name    string
	Weight  int
	Pattern *regexp.Regexp
}

var urgencyRules = []urgencyRuleDef{
	{"immediacy", 20, regexp.MustCompile(`\b(now|immediately|urgent|emergency|critical|danger|help)\b`)},
	{"day_part", 10, regexp.MustCompile(`\b(today|tonight|morning|evening|afternoon)\b`)},
	{"recency", 5, regexp.MustCompile(`\b(yesterday|last night|week|month)\b`)},
	{"injury", 25, regexp.MustCompile(`\b(blood|bleeding|injury|hurt|pain|dead)\b`)},
	{"fire_hazard", 30, regexp.MustCompile(`\b(fire|smoke|flame|burn|gas|leak|explosion)\b`)},
	{"obstruction", 15, regexp.MustCompile(`\b(blocked|stuck|trapped|jam)\b`)},
	{"sensitive_location", 15, regexp.MustCompile(`\b(school|hospital|clinic)\b`)},
	{"vulnerable_group", 10, regexp.MustCompile(`\b(child|kid|baby|elderly|senior)\b`)},
}

// categoryRuleDef maps a category name to its keyword set. Declaration order
// is the tie-break for equal hit counts, so this stays an ordered slice and
// must never be converted to a map.
type categoryRuleDef struct {
	Name     string
	Keywords []string
}

var categoryRules = []categoryRuleDef{
	{"Fire", []string{"fire", "smoke", "flame", "burn", "explosion", "burning"}},
	{"Pothole", []string{"pothole", "hole", "crater", "road damage", "broken road"}},
	{"Street Light", []string{"light", "lamp", "bulb", "dark", "street light", "flicker"}},
	{"Garbage", []string{"garbage", "trash", "waste", "litter", "rubbish", "dump", "dustbin"}},
	{"Water Leak", []string{"water", "leak", "pipe", "burst", "flood", "seepage", "drip", "leakage", "tap", "running"}},
	{"Stray Animal", []string{"dog", "cat", "cow", "cattle", "monkey", "bite", "stray", "animal", "rabid", "dead animal"}},
	{"Construction Safety", []string{"construction", "debris", "material", "cement", "sand", "building"}},
	{"Illegal Parking", []string{"parking", "parked", "blocking", "vehicle", "car", "bike"}},
	{"Vandalism", []string{"graffiti", "paint", "broken", "destroy", "damage", "poster"}},
	{"Infrastructure", []string{"bridge", "flyover", "pillar", "crack", "collapse", "structure", "manhole", "drain", "wire", "cable", "pole", "electrical box", "electric box", "transformer", "sidewalk", "pavement", "tile", "speed breaker", "road"}},
	{"Traffic Sign", []string{"sign", "signal", "light", "traffic", "board", "direction", "stop sign"}},
	{"Public Facilities", []string{"toilet", "washroom", "bench", "seat", "park", "garden", "playground", "slide", "swing"}},
	{"Tree Hazard", []string{"tree", "branch", "fallen", "root", "leaf"}},
	{"Accessibility", []string{"ramp", "wheelchair", "step", "stair", "access", "disability"}},
	{"Noise Pollution", []string{"noise", "loud", "sound", "music", "speaker"}},
	{"Air Pollution", []string{"smoke", "dust", "fume", "smell", "pollution", "air"}},
	{"Water Pollution", []string{"river", "lake", "pond", "chemical", "oil", "poison", "fish"}},
	{"Health Hazard", []string{"mosquito", "dengue", "malaria", "rat", "disease", "health"}},
	{"Crowd", []string{"crowd", "gathering", "mob", "people", "protest"}},
	{"Gas Leak", []string{"gas", "leak", "smell", "cylinder", "pipeline"}},
	{"Environment", []string{"tree", "cutting", "deforestation", "forest", "nature"}},
	{"Flooding", []string{"flood", "waterlogging", "water logged", "rain", "drainage"}},
}

// CategoryNames returns the fixed category names in declaration order.
func CategoryNames() []string {
	names := make([]string, len(categoryRules))
	for i, c := range categoryRules {
		names[i] = c.Name
	}
	return names
}
