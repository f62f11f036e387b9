package scripts

import (
	"time"

	"github.com/pocketlegal/pocketlegal/internal/app/models"
)

var staticCatalog = map[models.EncounterType]map[string][]Script{
	models.TypeTrafficStop: {
		"en": {
			{Text: "I am exercising my right to remain silent.", Usage: "Always safe to use", Priority: "high"},
			{Text: "I do not consent to any searches.", Usage: "When asked about searches", Priority: "high"},
			{Text: "Am I free to leave?", Usage: "To clarify your status", Priority: "medium"},
			{Text: "I would like to speak to my attorney.", Usage: "If detained or arrested", Priority: "high"},
		},
		"es": {
			{Text: "Estoy ejerciendo mi derecho a permanecer en silencio.", Usage: "Siempre seguro de usar", Priority: "high"},
			{Text: "No doy mi consentimiento para ningún registro.", Usage: "Cuando pregunten sobre registros", Priority: "high"},
			{Text: "¿Soy libre de irme?", Usage: "Para aclarar su estado", Priority: "medium"},
			{Text: "Me gustaría hablar con mi abogado.", Usage: "Si es detenido o arrestado", Priority: "high"},
		},
	},
	models.TypeQuestioning: {
		"en": {
			{Text: "Am I being detained, or am I free to go?", Usage: "Opening question to clarify your status", Priority: "high"},
			{Text: "I choose to remain silent until my attorney is present.", Usage: "Before any questioning begins", Priority: "high"},
			{Text: "I do not consent to any searches of my person or belongings.", Usage: "When asked about searches", Priority: "high"},
		},
		"es": {
			{Text: "¿Estoy detenido o soy libre de irme?", Usage: "Pregunta inicial para aclarar su estado", Priority: "high"},
			{Text: "Elijo permanecer en silencio hasta que mi abogado esté presente.", Usage: "Antes de cualquier interrogatorio", Priority: "high"},
			{Text: "No doy mi consentimiento para registros de mi persona o pertenencias.", Usage: "Cuando pregunten sobre registros", Priority: "high"},
		},
	},
	models.TypeHomeVisit: {
		"en": {
			{Text: "Do you have a warrant? Please slide it under the door.", Usage: "Before opening the door", Priority: "high"},
			{Text: "I do not consent to your entry into my home.", Usage: "If no valid warrant is shown", Priority: "high"},
			{Text: "I am going to remain silent and would like to speak to my attorney.", Usage: "If questioning starts", Priority: "medium"},
		},
		"es": {
			{Text: "¿Tiene una orden judicial? Por favor pásela por debajo de la puerta.", Usage: "Antes de abrir la puerta", Priority: "high"},
			{Text: "No doy mi consentimiento para que entre a mi casa.", Usage: "Si no muestra una orden válida", Priority: "high"},
			{Text: "Voy a permanecer en silencio y me gustaría hablar con mi abogado.", Usage: "Si comienza un interrogatorio", Priority: "medium"},
		},
	},
}

// StaticAdvice returns the built-in script set for a scenario. Unknown
// scenarios and languages fall back to the traffic-stop English set, so the
// result is never empty.
func StaticAdvice(scenario models.EncounterType, language string, now time.Time) *Advice {
	byLang, ok := staticCatalog[scenario]
	if !ok {
		byLang = staticCatalog[models.TypeTrafficStop]
	}
	list, ok := byLang[language]
	if !ok {
		language = "en"
		list = byLang["en"]
	}

	guidance := "Remain calm and cooperative while exercising your rights."
	stateSpecific := "Laws may vary by state."
	if language == "es" {
		guidance = "Manténgase calmado y cooperativo mientras ejerce sus derechos."
		stateSpecific = "Las leyes pueden variar según el estado."
	}

	return &Advice{
		Scripts:       list,
		Guidance:      guidance,
		StateSpecific: stateSpecific,
		Language:      language,
		Generated:     false,
		GeneratedAt:   now.UTC(),
	}
}
