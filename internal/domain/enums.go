package domain

// CardType identifies the schema a flashcard follows.
type CardType string

const (
	CardTypeClassicFlip    CardType = "classic-flip"
	CardTypeMultipleChoice CardType = "multiple-choice"
	CardTypeTypeAnswer     CardType = "type-answer"
)

func (t CardType) String() string { return string(t) }

func (t CardType) IsValid() bool {
	switch t {
	case CardTypeClassicFlip, CardTypeMultipleChoice, CardTypeTypeAnswer:
		return true
	}
	return false
}

// Side is one face of a card: the prompt (front) or the answer (back).
type Side string

const (
	SideFront Side = "front"
	SideBack  Side = "back"
)

func (s Side) String() string { return string(s) }

func (s Side) IsValid() bool {
	switch s {
	case SideFront, SideBack:
		return true
	}
	return false
}

// ArrayKey names one of the list-valued answer fields of a draft.
type ArrayKey string

const (
	ArrayKeyCorrectAnswers   ArrayKey = "correctAnswers"
	ArrayKeyIncorrectAnswers ArrayKey = "incorrectAnswers"
	ArrayKeyAcceptedAnswers  ArrayKey = "acceptedAnswers"
)

func (k ArrayKey) String() string { return string(k) }

func (k ArrayKey) IsValid() bool {
	switch k {
	case ArrayKeyCorrectAnswers, ArrayKeyIncorrectAnswers, ArrayKeyAcceptedAnswers:
		return true
	}
	return false
}

// MaxItems returns the upper bound on the list length for the key.
func (k ArrayKey) MaxItems() int {
	switch k {
	case ArrayKeyCorrectAnswers:
		return MaxCorrectAnswers
	case ArrayKeyIncorrectAnswers:
		return MaxIncorrectAnswers
	case ArrayKeyAcceptedAnswers:
		return MaxAcceptedAnswers
	}
	return 0
}

// EnrichmentKind identifies a family of asynchronous field enrichments.
type EnrichmentKind string

const (
	EnrichmentTranslate EnrichmentKind = "translate"
	EnrichmentImage     EnrichmentKind = "image"
	EnrichmentAudio     EnrichmentKind = "audio"
)

func (k EnrichmentKind) String() string { return string(k) }

func (k EnrichmentKind) IsValid() bool {
	switch k {
	case EnrichmentTranslate, EnrichmentImage, EnrichmentAudio:
		return true
	}
	return false
}
