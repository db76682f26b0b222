package pricing

// locality popisuje obec v rozvozovej oblasti: PSČ a prípadné časti obce.
type locality struct {
	PostalCode string
	Parts      []string
}

// Rozvozová oblasť pizzerie. PSČ sa dopĺňa do formulára automaticky
// podľa zvolenej obce.
var localities = map[string]locality{
	"Púchov":           {PostalCode: "020 01", Parts: []string{"Horné Kočkovce", "Hrabovka", "Ihrište", "Nosice", "Vieska-Bezdedov", "Čertov"}},
	"Beluša":           {PostalCode: "018 61"},
	"Dolné Kočkovce":   {PostalCode: "020 01"},
	"Streženice":       {PostalCode: "020 01"},
	"Nimnica":          {PostalCode: "020 71"},
	"Lednické Rovne":   {PostalCode: "020 61"},
	"Dohňany":          {PostalCode: "020 51", Parts: []string{"Mostište", "Zbora"}},
	"Lúky":             {PostalCode: "020 53"},
	"Záriečie":         {PostalCode: "020 52"},
	"Mestečko":         {PostalCode: "020 52"},
	"Lysá pod Makytou": {PostalCode: "020 54", Parts: []string{"Dešná", "Hoštiná"}},
	"Lazy pod Makytou": {PostalCode: "020 55", Parts: []string{"Dubková", "Čertov"}},
	"Visolaje":         {PostalCode: "018 61"},
	"Sverepec":         {PostalCode: "017 01"},
}

// PostalCodeForCity vráti PSČ obce, alebo prázdny reťazec ak obec nepoznáme.
func PostalCodeForCity(city string) string {
	return localities[city].PostalCode
}

// CityParts vráti časti obce pre výber vo formulári.
func CityParts(city string) []string {
	return localities[city].Parts
}

// Cities vráti zoznam obcí v rozvozovej oblasti.
func Cities() []string {
	names := make([]string, 0, len(localities))
	for name := range localities {
		names = append(names, name)
	}
	return names
}
