package seed

// Sample pools for generated catalog data.

var albumNames = []string{
	"Midnight Frequencies",
	"Glass Harbor",
	"Paper Satellites",
	"The Long Quiet",
	"Neon Orchard",
	"Salt and Circuitry",
	"Evergreen Static",
	"Hollow Moon Rising",
	"Velvet Arithmetic",
	"Last Train to Anywhere",
	"Copper Skies",
	"A Study in Reverb",
	"Driftwood Choir",
	"Polaroid Summers",
	"The Cartographer's Daughter",
}

var albumGenres = []string{
	"Rock",
	"Jazz",
	"Electronic",
	"Hip-Hop",
	"Folk",
	"Classical",
	"R&B",
	"Ambient",
}

var albumYears = []int{
	1967, 1973, 1982, 1991, 1997,
	2004, 2010, 2016, 2020, 2023,
}

type reviewSample struct {
	rating float64
	text   string
}

var reviewSamples = []reviewSample{
	{5, "An instant classic. Every track earns its place."},
	{5, "Haven't stopped listening since it came out."},
	{4, "Strong front half, loses a little steam near the end."},
	{4, "Great production, the drums sound enormous."},
	{4, "Grew on me after a few listens."},
	{3, "Solid but safe. Nothing here surprised me."},
	{3, "A couple of standout tracks surrounded by filler."},
	{2, "Overproduced. The early demos had more life."},
	{2, "Not for me, though I can see the appeal."},
	{1, "Skipped through most of it. Disappointing follow-up."},
}
