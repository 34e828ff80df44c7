package dictionaryapi

// WordResponse holds information for an API response
type WordResponse struct {
	Word      string     `json:"word"`
	Phonetic  string     `json:"phonetic"`
	Phonetics []Phonetic `json:"phonetics"`
	Origin    string     `json:"origin"`
	Meanings  []Meaning  `json:"meanings"`
}

// Phonetic is a single pronunciation entry
type Phonetic struct {
	Text  string  `json:"text"`
	Audio *string `json:"audio"`
}

// Meaning groups definitions of one sense of the word.
// Synonyms is nil when the field is missing in the response.
type Meaning struct {
	PartOfSpeech string       `json:"partOfSpeech"`
	Definitions  []Definition `json:"definitions"`
	Synonyms     []string     `json:"synonyms"`
	Antonyms     []string     `json:"antonyms"`
}

type Definition struct {
	Definition string   `json:"definition"`
	Example    string   `json:"example"`
	Synonyms   []string `json:"synonyms"`
	Antonyms   []string `json:"antonyms"`
}

// ErrorResponse is returned by the API for unknown words
type ErrorResponse struct {
	Title      string `json:"title"`
	Message    string `json:"message"`
	Resolution string `json:"resolution"`
}
