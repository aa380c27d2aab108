package gazetteer

// defaultCities covers the largest US cities plus the Dallas-Fort Worth
// suburbs that dominate the source feeds.
var defaultCities = []string{
	"New York", "Los Angeles", "Chicago", "Houston", "Phoenix", "Philadelphia",
	"San Antonio", "San Diego", "Dallas", "San Jose", "Austin", "Jacksonville",
	"Fort Worth", "Columbus", "Charlotte", "San Francisco", "Indianapolis",
	"Seattle", "Denver", "Washington", "Boston", "El Paso", "Nashville",
	"Detroit", "Oklahoma City", "Portland", "Las Vegas", "Memphis", "Louisville",
	"Baltimore", "Milwaukee", "Albuquerque", "Tucson", "Fresno", "Sacramento",
	"Kansas City", "Long Beach", "Mesa", "Atlanta", "Colorado Springs", "Raleigh",
	"Omaha", "Miami", "Oakland", "Minneapolis", "Tulsa", "Cleveland", "Wichita",
	"Arlington", "New Orleans", "Bakersfield", "Tampa", "Honolulu", "Aurora",
	"Anaheim", "Santa Ana", "St. Louis", "Riverside", "Corpus Christi", "Pittsburgh",
	"Lexington", "Anchorage", "Stockton", "Cincinnati", "St. Paul", "Toledo",
	"Newark", "Greensboro", "Plano", "Henderson", "Lincoln", "Buffalo", "Fort Wayne",
	"Jersey City", "Chula Vista", "Orlando", "St. Petersburg", "Norfolk", "Chandler",
	"Laredo", "Madison", "Durham", "Lubbock", "Winston-Salem", "Garland", "Glendale",
	"Hialeah", "Reno", "Baton Rouge", "Irvine", "Chesapeake", "Irving", "Scottsdale",
	"North Las Vegas", "Fremont", "Gilbert", "San Bernardino", "Boise", "Birmingham",
	"Frisco", "McKinney", "Allen", "Richardson", "Carrollton", "Lewisville",
	"Denton", "Grand Prairie", "Mesquite", "Puyallup", "Gastonia", "Kensington",
	"San Carlos", "Palm Desert",
}

// abbrToState maps lowercase state abbreviations to lowercase full names.
var abbrToState = map[string]string{
	"al": "alabama", "ak": "alaska", "az": "arizona", "ar": "arkansas",
	"ca": "california", "co": "colorado", "ct": "connecticut", "de": "delaware",
	"fl": "florida", "ga": "georgia", "hi": "hawaii", "id": "idaho",
	"il": "illinois", "in": "indiana", "ia": "iowa", "ks": "kansas",
	"ky": "kentucky", "la": "louisiana", "me": "maine", "md": "maryland",
	"ma": "massachusetts", "mi": "michigan", "mn": "minnesota", "ms": "mississippi",
	"mo": "missouri", "mt": "montana", "ne": "nebraska", "nv": "nevada",
	"nh": "new hampshire", "nj": "new jersey", "nm": "new mexico", "ny": "new york",
	"nc": "north carolina", "nd": "north dakota", "oh": "ohio", "ok": "oklahoma",
	"or": "oregon", "pa": "pennsylvania", "ri": "rhode island", "sc": "south carolina",
	"sd": "south dakota", "tn": "tennessee", "tx": "texas", "ut": "utah",
	"vt": "vermont", "va": "virginia", "wa": "washington", "wv": "west virginia",
	"wi": "wisconsin", "wy": "wyoming", "dc": "district of columbia",
}

// defaultBusinessTypes lists the store categories the lead pipeline targets.
var defaultBusinessTypes = []string{
	"jewelry store", "jewelry", "jeweler", "jewelers", "jewelry shop",
	"pawn shop", "pawnshop", "pawn broker", "pawnbroker",
	"gun store", "gun shop", "firearms dealer", "firearm dealer",
	"electronics store", "electronics shop", "electronics dealer",
	"convenience store", "convenience shop", "convenience mart",
	"gas station", "service station", "filling station",
	"liquor store", "liquor shop", "wine shop", "wine store",
	"smoke shop", "vape shop", "tobacco shop", "cigar shop",
	"bank", "credit union", "financial institution",
	"atm", "automated teller machine", "cash machine",
	"pharmacy", "drug store", "chemist",
	"dispensary", "cannabis dispensary", "marijuana dispensary",
	"check cashing", "payday loan", "cash advance",
	"luxury goods", "high-end", "designer", "boutique",
	"sports memorabilia", "collectibles", "memorabilia shop",
	"antique", "antiques", "antique shop", "antique store",
	"art gallery", "art dealer", "art store",
	"coin shop", "coin dealer", "numismatic",
	"stamp shop", "stamp dealer", "philatelic",
}

// defaultRelationalPhrases are spatial cues that tie a business to a place.
var defaultRelationalPhrases = []string{
	"near", "next to", "adjacent to", "across from", "opposite", "opposite of",
	"in front of", "behind", "beside", "close to", "in the vicinity of",
	"in the area of", "around", "on the corner of", "at the intersection of",
	"between", "located at", "located in", "located on", "located near",
	"situated at", "situated in", "situated on", "situated near",
	"in the shopping center", "in the mall", "in the plaza", "in the strip mall",
	"in the shopping plaza", "in the shopping district", "in downtown",
	"in uptown", "in midtown", "in the north side", "in the south side",
	"in the east side", "in the west side",
	"on the north side", "on the south side", "on the east side", "on the west side",
}

// defaultCityVariants maps misspellings observed in the source feeds to
// their canonical city names. Fuzzy matching covers one-off typos; this
// table covers the recurring ones.
var defaultCityVariants = map[string]string{
	"pulallup":    "puyallup",
	"puyallop":    "puyallup",
	"pittsburg":   "pittsburgh",
	"cincinatti":  "cincinnati",
	"albuqurque":  "albuquerque",
	"tuscon":      "tucson",
	"winston salem": "winston-salem",
}
