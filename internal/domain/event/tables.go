package event

// Wildcard splits an infix template into a prefix and a suffix that bound a
// captured player name.
const Wildcard = `"??"`

var deaths = []string{
	" sleeps with the fishes",
	" sucks it down",
	" gulped a load of slime",
	" can't exist on slime alone",
	" burst into flames",
	" turned into hot slag",
	" visits the Volcano God",
	" cratered",
	" fell to his death",
	" fell to her death",
	" blew up",
	" was spiked",
	" was zapped",
	" ate a lavaball",
	" died",
	" tried to leave",
	" was squished",
}

var suicidesByWeapon = []string{
	" tries to put the pin back in",
	" becomes bored with life",
	" discovers blast radius",
	" electrocutes himself",
	" electrocutes herself",
	" railcutes himself",
	" railcutes herself",
	" discharges into the slime",
	" discharges into the lava",
	" discharges into the water",
	" heats up the water",
}

var suicides = []string{" suicides"}

var teamkills = []string{
	" squished a teammate",
	" mows down a teammate",
	" checks his glasses",
	" checks her glasses",
	" gets a frag for the other team",
	" loses another friend",
}

// The server omits the killer for these.
var teamkillsByUnknown = []string{
	" was telefragged by his teammate",
	" was telefragged by her teammate",
	" was crushed by his teammate",
	" was crushed by her teammate",
	" was jumped by his teammate",
	" was jumped by her teammate",
}

var xFragsY = []string{
	" stomps ",
	" squishes ",
	` rips "??" a new one`,
}

var yFragsX = []string{
	" was ax-murdered by ",
	` softens "??"'s fall`,
	" tried to catch ",
	" was crushed by ",
	" was jumped by ",
	` chewed on "??"'s boomstick`,
	" was body pierced by ",
	" was nailed by ",
	" was railed by ",
	" was telefragged by ",
	` accepts "??"'s discharge`,
	` drains "??"'s batteries`,
	" was lead poisoned by ",
	` accepts "??"'s shaft`,
	` ate 2 loads of "??"'s buckshot`,
	" was perforated by ",
	" was punctured by ",
	" was ventilated by ",
	` ate 8 loads of "??"'s buckshot`,
	" gets a natural disaster from ",
	` rides "??"'s rocket`,
	` was gibbed by "??"'s rocket`,
	" was straw-cuttered by ",
	` eats "??"'s pineapple`,
	` was gibbed by "??"'s grenade`,
	` was brutalized by "??"'s quad rocket`,
	` was smeared by "??"'s quad rocket`,
	" was hooked by ",
}

// Team names as printed in plain and coloured text.
var teamNames = []string{"RED", "ÒÅÄ", "BLUE", "ÂÌÕÅ"}

var capturedFlag = flagPhrases([]string{"captured", "ãáðôõòåä"}, " the %s flag!")

var returnedFlagAssist = []string{
	" gets an assist for returning his flag!",
	" gets an assist for fragging the flag carrier!",
}

var returnedFlag = flagPhrases([]string{"returned", "òåôõòîåä"}, " the %s flag!")

var defendsFlag = flagPhrases([]string{"defends"}, " the %s flag")

var defendsFlagCarrier = flagPhrases([]string{"defends"}, " %s's flag carrier")

var defendsFlagCarrierVsAggressive = flagPhrases([]string{"defends"}, " %s's flag carrier against an aggressive enemy")

var gotFlag = flagPhrases([]string{"got", "çïô"}, " the %s flag!")
