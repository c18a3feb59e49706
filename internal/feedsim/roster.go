package feedsim

// RosterPlayer is one fabricated player the generator writes headlines about.
type RosterPlayer struct {
	Name    string
	Aliases []string
	// Weight controls how often the player appears in headlines. Higher
	// means hotter in the rumor mill.
	Weight int
}

// roster is the fixed pool of players the simulator draws from. Weights are
// deliberately uneven so the trending board has a stable expected order.
var roster = []RosterPlayer{
	{Name: "Isco", Aliases: []string{"Francisco Alarcon", "Isco Alarcon"}, Weight: 10},
	{Name: "Nabil Fekir", Aliases: []string{"Fekir"}, Weight: 8},
	{Name: "Sergio Canales", Aliases: []string{"Canales"}, Weight: 6},
	{Name: "Giovani Lo Celso", Aliases: []string{"Lo Celso"}, Weight: 5},
	{Name: "Marc Bartra", Aliases: []string{"Bartra"}, Weight: 4},
	{Name: "Andres Guardado", Aliases: []string{"Guardado"}, Weight: 3},
	{Name: "Joaquin Sanchez", Aliases: []string{"Joaquin"}, Weight: 2},
	{Name: "Aitor Ruibal", Aliases: []string{"Ruibal"}, Weight: 1},
}

// headlineTemplates produce titles mentioning a player. %s is replaced with
// the canonical name or one of the aliases.
var headlineTemplates = []string{
	"%s linked with summer switch to Heliopolis",
	"Exclusive: %s agent spotted at club offices",
	"Report: bid prepared for %s",
	"%s transfer saga takes a new turn",
	"Sources claim %s has agreed personal terms",
	"%s future in doubt after contract talks stall",
	"Club weighing a January move for %s",
	"%s tops the sporting director's shortlist",
}

// noiseTemplates produce headlines that mention no registered player.
var noiseTemplates = []string{
	"Stadium renovation enters its final phase",
	"Youth academy graduates three to the first team",
	"Season ticket renewals open next week",
	"Boardroom reshuffle continues at city rivals",
	"Kit launch draws record crowds",
	"Groundsman of the year award goes local",
}

// sourceNames label the simulated feeds, reused round-robin when more
// sources are requested than names exist.
var sourceNames = []string{
	"transfer-talk",
	"mercado-diario",
	"rumor-central",
	"the-whisper",
	"deadline-wire",
}
