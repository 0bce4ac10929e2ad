package validation

// AdventRules is the compiled-in rule table for the 24 advent calendar
// questions. LIST entries group synonym forms with '|' so that, e.g.,
// "polstjärnan" and "north star" count as one star, not two.
func AdventRules() map[int]Rule {
	return map[int]Rule{
		// Company that sells juleskum; brand name tolerates a typo.
		1: {Kind: KindExact, Accepted: []string{"Cloetta"}},

		// Swedish translations of four toy items.
		2: {
			Kind: KindList,
			Accepted: []string{
				"docka|doll",
				"leksaksbil|toy car",
				"tv-spel|tvspel|tv spel|videospel|video game|video games",
				"fotbollströja|fotbollstroja|football shirt|soccer jersey",
			},
			MinItems: 4,
			MaxItems: 4,
		},

		// Date when Spanish children get their presents.
		3: {
			Kind:     KindContains,
			Accepted: []string{"6 januari", "januari 6", "trettondedag", "día de los reyes", "dia de los reyes"},
		},

		// Jewish candlestick.
		4: {Kind: KindExact, Accepted: []string{"Menora", "Menorah"}},

		// Navigation star, brightest star, and the Star Wars station.
		5: {
			Kind: KindList,
			Accepted: []string{
				"polstjärnan|polstjarnan|north star",
				"sirius",
				"dödsstjärnan|dodsstjarnan|death star",
			},
			MinItems: 3,
			MaxItems: 3,
		},

		// Any of the last six years' "Årets julklapp".
		6: {
			Kind: KindAnyOf,
			Accepted: []string{
				"Unisexdoft", "Unisexdoften", "Sällskapsspel", "Sallskapsspel",
				"Sällskapsspelet", "hemstickade", "hemstickade plagget",
				"Evenemangsbiljett", "Evenemangsbiljetten", "Stormkök", "Stormkok",
				"Stormköket", "Mobillåda", "Mobilladan", "Mobillådan",
			},
		},

		// Only remaining ancient wonder.
		7: {
			Kind: KindExact,
			Accepted: []string{
				"Cheopspyramiden", "Keopspyramiden", "Great Pyramid", "Giza pyramid",
				"Pyramid of Giza", "Pyramid of Cheops", "Pyramid of Khufu",
			},
		},

		// Two main loop constructs.
		8: {
			Kind: KindList,
			Accepted: []string{
				"for|for-loop|for loop",
				"while|while-loop|while loop",
			},
			MinItems: 2,
			MaxItems: 2,
		},

		// Cheetah top speed in km/h.
		9: {Kind: KindNumeric, Accepted: []string{"110"}, Tolerance: 5},

		// Number of Nobel prizes.
		10: {Kind: KindExact, Accepted: []string{"6", "sex", "six", "6 stycken", "sex stycken"}},

		// Name day on Christmas Eve.
		11: {Kind: KindExact, Accepted: []string{"Eva"}},

		// Famous US highway.
		12: {Kind: KindExact, Accepted: []string{"Route 66", "Route66", "Highway 66"}},

		// Latin word for light.
		13: {Kind: KindExact, Accepted: []string{"Lux"}},

		// Country producing 90% of the world's saffron.
		14: {Kind: KindExact, Accepted: []string{"Iran"}},

		// First segment in Kalle Anka.
		15: {
			Kind:     KindContains,
			Accepted: []string{"i jultomtens verkstad", "jultomtens verkstad", "Santa's Workshop", "Santas Workshop"},
		},

		// Two famous bridges.
		16: {
			Kind: KindList,
			Accepted: []string{
				"golden gate|golden gate bridge",
				"tower bridge",
			},
			MinItems: 2,
			MaxItems: 2,
		},

		// City with the world's busiest airport.
		17: {Kind: KindExact, Accepted: []string{"Atlanta"}},

		// Three gifts to baby Jesus.
		18: {
			Kind: KindList,
			Accepted: []string{
				"guld|gold",
				"rökelse|rokelse|frankincense|incense",
				"myrra|myrrh",
			},
			MinItems: 3,
			MaxItems: 3,
		},

		// City where COVID-19 was first reported.
		19: {Kind: KindExact, Accepted: []string{"Wuhan"}},

		// Green button in Zoom.
		20: {
			Kind:     KindContains,
			Accepted: []string{"share screen", "share", "screen", "dela skärm", "dela skarm", "skärmdelning"},
		},

		// What is special about December 21.
		21: {
			Kind: KindContains,
			Accepted: []string{
				"vintersolstånd", "vintersolstand", "solstice", "kortaste dag",
				"kortaste dagen", "shortest day",
			},
		},

		// Name for a paradoxical situation.
		22: {Kind: KindExact, Accepted: []string{"Moment 22", "Catch-22", "Catch 22"}},

		// Five colors in Färgfemman.
		23: {
			Kind: KindList,
			Accepted: []string{
				"röd|rod|red",
				"lila|purple",
				"grön|gron|green",
				"gul|yellow",
				"blå|bla|blue",
			},
			MinItems: 5,
			MaxItems: 5,
		},

		// Country with the world's most-sold newspaper.
		24: {Kind: KindExact, Accepted: []string{"Japan"}},
	}
}
