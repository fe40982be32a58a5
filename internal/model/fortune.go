package model

// FortuneMode selects the prompt template and the expected output shape.
type FortuneMode string

const (
	FortuneModeStructured FortuneMode = "structured"
	FortuneModeFreeform   FortuneMode = "freeform"
)

func (m FortuneMode) IsValid() bool {
	return m == FortuneModeStructured || m == FortuneModeFreeform
}

// Fortune is produced per request and never stored.
// Structured fortunes carry Header and Body; free-form fortunes carry Text.
type Fortune struct {
	Mode   FortuneMode
	Header string
	Body   string
	Text   string
}
