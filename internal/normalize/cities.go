package normalize

import "strings"

// DefaultRegion is appended to uncatalogued city names that carry no state.
const DefaultRegion = "RS"

var brazilianStates = map[string]struct{}{
	"AC": {}, "AL": {}, "AP": {}, "AM": {}, "BA": {}, "CE": {}, "DF": {},
	"ES": {}, "GO": {}, "MA": {}, "MT": {}, "MS": {}, "MG": {}, "PA": {},
	"PB": {}, "PR": {}, "PE": {}, "PI": {}, "RJ": {}, "RN": {}, "RS": {},
	"RO": {}, "RR": {}, "SC": {}, "SP": {}, "SE": {}, "TO": {},
}

// IsStateCode reports whether tok is a two-letter Brazilian state abbreviation.
func IsStateCode(tok string) bool {
	if len(tok) != 2 {
		return false
	}
	_, ok := brazilianStates[strings.ToUpper(tok)]
	return ok
}

// Cities is the city catalog. The metro region of Porto Alegre comes first,
// which is also the tie-break order for ambiguous fragments.
var Cities = newCatalog(CatalogCity, 2, 5, formatCity, []Entry{
	{Label: "Porto Alegre/RS", Variants: []string{
		"porto alegre", "poa", "poa/rs", "poa rs", "poa - rs", "p. alegre", "p.alegre", "p alegre",
		"porto alegre rs", "porto alegre - rs", "porto alegre/rio grande do sul", "portoalegre",
	}},
	{Label: "Canoas/RS", Variants: []string{"canoas", "canoas rs", "canoas - rs"}},
	{Label: "Gravataí/RS", Variants: []string{"gravatai", "gravatai rs", "gravatai - rs"}},
	{Label: "Cachoeirinha/RS", Variants: []string{"cachoeirinha", "cachoeirinha rs"}},
	{Label: "Alvorada/RS", Variants: []string{"alvorada", "alvorada rs"}},
	{Label: "Viamão/RS", Variants: []string{"viamao", "viamao rs"}},
	{Label: "Esteio/RS", Variants: []string{"esteio", "esteio rs"}},
	{Label: "Sapucaia do Sul/RS", Variants: []string{"sapucaia do sul", "sapucaia"}},
	{Label: "São Leopoldo/RS", Variants: []string{"sao leopoldo", "s. leopoldo", "sao leo"}},
	{Label: "Novo Hamburgo/RS", Variants: []string{"novo hamburgo", "n. hamburgo", "nh"}},
	{Label: "Guaíba/RS", Variants: []string{"guaiba", "guaiba rs"}},
	{Label: "Eldorado do Sul/RS", Variants: []string{"eldorado do sul", "eldorado"}},
	{Label: "Caxias do Sul/RS", Variants: []string{"caxias do sul", "caxias"}},
	{Label: "Santa Maria/RS", Variants: []string{"santa maria", "sta maria", "sta. maria"}},
	{Label: "Pelotas/RS", Variants: []string{"pelotas"}},
	{Label: "Passo Fundo/RS", Variants: []string{"passo fundo"}},
	{Label: "Florianópolis/SC", Variants: []string{"florianopolis", "floripa", "florianopolis sc"}},
	{Label: "Curitiba/PR", Variants: []string{"curitiba", "curitiba pr"}},
	{Label: "São Paulo/SP", Variants: []string{"sao paulo", "sampa", "sp", "sao paulo sp", "sao paulo capital"}},
	{Label: "Rio de Janeiro/RJ", Variants: []string{"rio de janeiro", "rj", "rio de janeiro rj"}},
})

// formatCity title-cases an uncatalogued city, upper-cases state codes and
// appends the default region when the result names no state.
func formatCity(input string) string {
	tokens := strings.Fields(input)
	hasSlash, hasState := false, false

	for i, tok := range tokens {
		if IsStateCode(tok) {
			tokens[i] = strings.ToUpper(tok)
			hasState = true
			continue
		}

		if idx := strings.LastIndex(tok, "/"); idx >= 0 {
			hasSlash = true
			head, tail := tok[:idx], tok[idx+1:]
			if IsStateCode(tail) {
				tail = strings.ToUpper(tail)
			} else {
				tail = titleWord(tail)
			}
			tokens[i] = titleWord(head) + "/" + tail
			continue
		}

		tokens[i] = titleWord(tok)
	}

	result := strings.Join(tokens, " ")
	if !hasSlash && !hasState {
		result += "/" + DefaultRegion
	}
	return result
}
