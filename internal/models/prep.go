package models

import "strings"

// PrepTechnique represents a food preparation technique
type PrepTechnique string

const (
	PrepTechniqueChop     PrepTechnique = "chop"
	PrepTechniqueDice     PrepTechnique = "dice"
	PrepTechniqueSlice    PrepTechnique = "slice"
	PrepTechniqueMarinate PrepTechnique = "marinate"
	PrepTechniqueMix      PrepTechnique = "mix"
	PrepTechniquePeel     PrepTechnique = "peel"
	PrepTechniqueGrate    PrepTechnique = "grate"
	PrepTechniquePuree    PrepTechnique = "puree"
)

// techniqueMinutes is the hands-on time for one base batch of a technique.
var techniqueMinutes = map[PrepTechnique]int{
	PrepTechniqueChop:     5,
	PrepTechniqueDice:     8,
	PrepTechniqueSlice:    5,
	PrepTechniqueMarinate: 30,
	PrepTechniqueMix:      3,
	PrepTechniquePeel:     4,
	PrepTechniqueGrate:    4,
	PrepTechniquePuree:    6,
}

// IsTechniqueValid checks if a preparation technique is valid
func IsTechniqueValid(technique string) bool {
	_, ok := techniqueMinutes[PrepTechnique(strings.ToLower(technique))]
	return ok
}

// BaseMinutes returns the base duration of the technique, or 0 if unknown.
func (t PrepTechnique) BaseMinutes() int {
	return techniqueMinutes[PrepTechnique(strings.ToLower(string(t)))]
}

// Title returns the technique as a capitalized verb ("Dice").
func (t PrepTechnique) Title() string {
	s := strings.ToLower(string(t))
	if s == "" {
		return ""
	}
	return strings.ToUpper(s[:1]) + s[1:]
}

// Division names used to group prep tasks on printed sheets.
const (
	DivisionHotLine  = "hot_line"
	DivisionColdLine = "cold_line"
	DivisionPastry   = "pastry"
	DivisionPrep     = "prep"
	DivisionBar      = "bar"
	DivisionFOH      = "foh"
)
