// Package guidance holds the fixed pedagogical lookup tables used to frame generation prompts.
// Keys come from validated enums, so an unknown key is a programming error and panics.
package guidance

import (
	"fmt"

	"github.com/jonathan/groepsplan/internal/types"
)

// gradeBand groups the eight primary grades into the bands the expectation tables are written for.
type gradeBand int

const (
	bandOnderbouw  gradeBand = iota // groep 1-2
	bandMiddenLaag                  // groep 3-4
	bandMiddenHoog                  // groep 5-6
	bandBovenbouw                   // groep 7-8
)

func bandFor(groep int) gradeBand {
	if groep < 1 || groep > 8 {
		panic(fmt.Sprintf("guidance: groep %d outside 1-8", groep))
	}
	return gradeBand((groep - 1) / 2)
}

var challengeGuidance = map[types.Challenge]string{
	types.ChallengeNiveauverschillen: "Er zijn grote niveauverschillen in de groep. Werk met drie instructieniveaus " +
		"(basis, intensief en meer) volgens het directe instructiemodel. Beschrijf per subgroep welke verlengde " +
		"instructie, verrijking of pre-teaching nodig is en hoe de leerkracht de instructietijd verdeelt.",
	types.ChallengeTaalachterstand: "Een deel van de leerlingen heeft een taalachterstand, vaak door een andere " +
		"thuistaal. Besteed expliciet aandacht aan woordenschat (viertakt-model), visuele ondersteuning, " +
		"pre-teaching van instructietaal en het controleren van begrip met korte check-vragen.",
	types.ChallengeGedrag: "De groep heeft moeite met concentratie en taakgericht werken. Beschrijf een voorspelbare " +
		"lesstructuur, korte instructiemomenten, duidelijke gedragsverwachtingen en een vast beloningssysteem. " +
		"Benoem welke leerlingen een aangepaste werkplek of time-timer gebruiken.",
	types.ChallengeMeerbegaafdheid: "Een aantal leerlingen is (mogelijk) meerbegaafd en heeft behoefte aan " +
		"uitdaging. Compacteer de basisstof, bied verrijkingstaken op hogere denkniveaus (taxonomie van Bloom) " +
		"en plan vaste begeleidingsmomenten voor reflectie op leerstrategieën en doorzettingsvermogen.",
	types.ChallengeMotivatie: "De motivatie in de groep is laag. Sluit aan bij de basisbehoeften relatie, " +
		"competentie en autonomie. Beschrijf hoe leerlingen keuzes krijgen, hoe voortgang zichtbaar wordt " +
		"gemaakt en hoe succeservaringen bewust worden georganiseerd.",
	types.ChallengeDyslexie: "Er zitten leerlingen met (een vermoeden van) dyslexie in de groep. Volg het " +
		"protocol leesproblemen en dyslexie, zet compenserende en dispenserende maatregelen in (voorleessoftware, " +
		"extra tijd, vergroot lettertype) en plan extra leesbegeleiding met herhaald lezen.",
}

var startingPoints = map[types.StartingPoint]string{
	types.StartNieuwSchooljaar: "Het plan start aan het begin van het schooljaar. Gebruik de overdrachtsgegevens " +
		"van de vorige leerkracht en de eindtoetsresultaten van vorig jaar als beginsituatie.",
	types.StartNaMiddentoets: "Het plan start na de middentoets (januari/februari). Analyseer de " +
		"middentoetsresultaten, vergelijk ze met de doelen van de eerste periode en stel de groepsindeling bij.",
	types.StartNaEindtoets: "Het plan start na de eindtoets (juni). Evalueer het afgelopen jaar en formuleer " +
		"doelen en aandachtspunten voor de overdracht naar de volgende groep.",
	types.StartTussentijdseBijstelling: "Het plan is een tussentijdse bijstelling. Beschrijf wat er sinds het " +
		"vorige groepsplan is veranderd, welke interventies wel en niet werkten en wat er wordt aangepast.",
}

var expectations = map[types.Vakgebied]map[gradeBand]string{
	types.VakRekenen: {
		bandOnderbouw:  "Rekenen in groep 1-2: ontluikende gecijferdheid, tellen tot 20, hoeveelheden vergelijken, getalbeelden herkennen en meten met voorwerpen.",
		bandMiddenLaag: "Rekenen in groep 3-4: getallen tot 100 en 1000, splitsen, optellen en aftrekken over het tiental, de tafels van vermenigvuldiging en klokkijken.",
		bandMiddenHoog: "Rekenen in groep 5-6: alle tafels geautomatiseerd, deelsommen, kolomsgewijs rekenen, breuken en eenvoudige kommagetallen, meten en wegen.",
		bandBovenbouw:  "Rekenen in groep 7-8: breuken, procenten en verhoudingen, kommagetallen, cijferend rekenen, verhoudingstabellen en referentieniveau 1F/1S.",
	},
	types.VakTaal: {
		bandOnderbouw:  "Taal in groep 1-2: mondelinge taalvaardigheid, woordenschat rond thema's, luisteren naar verhalen, rijmen en fonologisch bewustzijn.",
		bandMiddenLaag: "Taal in groep 3-4: woordenschatuitbreiding, zinsbouw, vertellen en luisteren, eerste schrijfopdrachten en woordsoorten herkennen.",
		bandMiddenHoog: "Taal in groep 5-6: woordenschat, taalbeschouwing met zinsdelen en woordsoorten, stellen met een duidelijke opbouw en presenteren.",
		bandBovenbouw:  "Taal in groep 7-8: ontleden (redekundig en taalkundig), schrijven van betogende teksten, woordenschat op referentieniveau 1F/2F en debatteren.",
	},
	types.VakSpelling: {
		bandOnderbouw:  "Spelling in groep 1-2: letterkennis, klanken auditief onderscheiden en de eigen naam en eerste woorden schrijven.",
		bandMiddenLaag: "Spelling in groep 3-4: klankzuivere woorden (mkm), clusters, woorden met -ng/-nk, ei/ij en au/ou, verdubbelings- en verenkelingsregel.",
		bandMiddenHoog: "Spelling in groep 5-6: werkwoordspelling in de tegenwoordige tijd, open en gesloten lettergrepen, leenwoorden en de regel van de verlengde vorm.",
		bandBovenbouw:  "Spelling in groep 7-8: werkwoordspelling in verleden tijd en voltooid deelwoord ('t kofschip), bijvoeglijk gebruikte deelwoorden en leenwoorden.",
	},
	types.VakBegrijpendLezen: {
		bandOnderbouw:  "Begrijpend lezen in groep 1-2: interactief voorlezen, voorspellen, vragen stellen bij prentenboeken en verhaalbegrip.",
		bandMiddenLaag: "Begrijpend lezen in groep 3-4: leesstrategieën voorspellen en visualiseren, verwijswoorden, signaalwoorden en korte informatieve teksten.",
		bandMiddenHoog: "Begrijpend lezen in groep 5-6: leesstrategieën samenvatten en ophelderen, hoofd- en bijzaken, tekstsoorten en verbanden in de tekst.",
		bandBovenbouw:  "Begrijpend lezen in groep 7-8: kritisch lezen, schrijversdoel, feit en mening onderscheiden, tekststructuren en referentieniveau 1F/2F.",
	},
	types.VakTechnischLezen: {
		bandOnderbouw:  "Technisch lezen in groep 1-2: fonemisch bewustzijn, letterkennis, auditieve synthese en analyse als voorbereiding op het aanvankelijk lezen.",
		bandMiddenLaag: "Technisch lezen in groep 3-4: aanvankelijk lezen met mkm-woorden, AVI-niveaus M3 tot E4, DMT-resultaten en leesvloeiendheid.",
		bandMiddenHoog: "Technisch lezen in groep 5-6: voortgezet technisch lezen, meerlettergrepige woorden, AVI-niveaus M5 tot E6, DMT en vlot en foutloos lezen.",
		bandBovenbouw:  "Technisch lezen in groep 7-8: AVI-plus, leestempo en intonatie, leesmotivatie en het lezen van complexe leenwoorden.",
	},
}

// ChallengeGuidance returns the guidance paragraph for a challenge key.
func ChallengeGuidance(c types.Challenge) string {
	text, ok := challengeGuidance[c]
	if !ok {
		panic(fmt.Sprintf("guidance: unknown challenge %q", c))
	}
	return text
}

// Expectations returns the grade-appropriate learning expectations for a subject.
func Expectations(v types.Vakgebied, groep int) string {
	bands, ok := expectations[v]
	if !ok {
		panic(fmt.Sprintf("guidance: unknown vakgebied %q", v))
	}
	return bands[bandFor(groep)]
}

// StartingPointDescription describes the moment in the school year the plan starts from.
func StartingPointDescription(p types.StartingPoint) string {
	text, ok := startingPoints[p]
	if !ok {
		panic(fmt.Sprintf("guidance: unknown starting point %q", p))
	}
	return text
}
