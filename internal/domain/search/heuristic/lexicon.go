package heuristic

import "github.com/kailas-cloud/scholarsearch/internal/domain/search/filters"

// rule maps one or more phrases to a canonical value.
// Tables are scanned in declaration order.
type rule[T any] struct {
	value   T
	phrases []string
}

func on[T any](value T, phrases ...string) rule[T] {
	return rule[T]{value: value, phrases: phrases}
}

// Priority order: ST before SC before OBC before GENERAL.
var categoryRules = []rule[filters.Category]{
	on(filters.CategoryST, "st", "scheduled tribe", "scheduled tribes", "tribal", "tribe", "adivasi"),
	on(filters.CategorySC, "sc", "scheduled caste", "scheduled castes", "dalit"),
	on(filters.CategoryOBC, "obc", "other backward class", "other backward classes", "backward class", "backward classes"),
	on(filters.CategoryGeneral, "general", "gen", "open category", "unreserved"),
}

// enclosingCity widens a locality to the city records usually name.
var enclosingCity = map[string]string{
	"New Delhi":   "Delhi",
	"Navi Mumbai": "Mumbai",
}

// More specific names come before names they contain.
var gazetteer = []rule[string]{
	on("New Delhi", "new delhi"),
	on("Delhi", "delhi"),
	on("Navi Mumbai", "navi mumbai"),
	on("Mumbai", "mumbai", "bombay"),
	on("Kolkata", "kolkata", "calcutta"),
	on("Chennai", "chennai", "madras"),
	on("Bengaluru", "bengaluru", "bangalore"),
	on("Hyderabad", "hyderabad"),
	on("Pune", "pune"),
	on("Ahmedabad", "ahmedabad"),
	on("Jaipur", "jaipur"),
	on("Lucknow", "lucknow"),
	on("Kanpur", "kanpur"),
	on("Nagpur", "nagpur"),
	on("Indore", "indore"),
	on("Bhopal", "bhopal"),
	on("Patna", "patna"),
	on("Chandigarh", "chandigarh"),
	on("Kochi", "kochi", "cochin"),
	on("Thiruvananthapuram", "thiruvananthapuram", "trivandrum"),
	on("Guwahati", "guwahati"),
	on("Bhubaneswar", "bhubaneswar"),
	on("Ranchi", "ranchi"),
	on("Dehradun", "dehradun"),
	on("Srinagar", "srinagar"),
	on("Jammu", "jammu"),
	on("Shimla", "shimla"),
	on("Varanasi", "varanasi", "banaras"),
	on("Surat", "surat"),
	on("Vadodara", "vadodara", "baroda"),
	on("Coimbatore", "coimbatore"),
	on("Visakhapatnam", "visakhapatnam", "vizag"),
	on("Mysuru", "mysuru", "mysore"),
	on("Noida", "noida"),
	on("Gurugram", "gurugram", "gurgaon"),
}

var genderRules = []rule[filters.Gender]{
	on(filters.GenderFemale, "female", "females", "girl", "girls", "woman", "women", "lady", "ladies", "daughter", "daughters"),
	on(filters.GenderMale, "male", "males", "boy", "boys", "man", "men", "son", "sons"),
}

var religionRules = []rule[filters.Religion]{
	on(filters.ReligionHindu, "hindu", "hindus"),
	on(filters.ReligionMuslim, "muslim", "muslims", "islam", "islamic"),
	on(filters.ReligionChristian, "christian", "christians"),
	on(filters.ReligionSikh, "sikh", "sikhs"),
}

var typeRules = []rule[string]{
	on("Post Matric", "post matric", "postmatric"),
	on("Pre Matric", "pre matric", "prematric"),
	on("Engineering", "engineering", "engineer", "btech", "b tech"),
	on("Medical", "medical", "medicine", "mbbs"),
	on("Nursing", "nursing"),
	on("Law", "law", "llb"),
	on("Management", "management", "mba"),
	on("Postgraduate", "postgraduate", "post graduate", "pg", "masters"),
	on("Undergraduate", "undergraduate", "under graduate", "ug", "graduation", "bachelor", "bachelors"),
	on("Doctoral", "phd", "doctoral", "doctorate"),
	on("Diploma", "diploma", "polytechnic"),
	on("Research", "research", "fellowship"),
	on("Sports", "sports", "sport", "athlete", "athletes"),
	on("Merit", "merit"),
}

var disabilityPhrases = []string{
	"disability", "disabilities", "disabled", "divyang", "divyangjan", "pwd",
	"handicapped", "differently abled", "specially abled",
}

var exServicePhrases = []string{
	"ex serviceman", "ex servicemen", "ex service", "ex army", "veteran", "veterans",
	"armed forces", "defence", "defense",
}

// stopwords never become fallback keywords.
var stopwords = map[string]struct{}{}

func init() {
	for _, w := range []string{
		"a", "an", "the", "and", "or", "for", "in", "of", "to", "with", "from", "on", "at", "by",
		"is", "are", "be", "am", "i", "me", "my", "we", "our", "who", "which", "that", "this", "these",
		"want", "need", "looking", "search", "find", "show", "get", "list", "give", "please",
		"all", "any", "some", "available", "apply", "applying", "eligible", "eligibility",
		"scholarship", "scholarships", "scheme", "schemes", "grant", "grants",
		"student", "students", "studying", "study", "pursuing", "candidate", "candidates",
		"category", "caste", "community", "belonging", "belongs", "based",
		"college", "university", "course", "courses", "degree",
		"india", "indian", "city", "state",
		"age", "aged", "year", "years", "old", "income", "family", "annual", "per", "annum",
		"below", "under", "above", "less", "more", "than", "upto", "up",
		"lakh", "lakhs", "rs", "inr", "rupees",
	} {
		stopwords[w] = struct{}{}
	}
}
