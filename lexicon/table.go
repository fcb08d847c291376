package lexicon

// Table is the serialized form of a lexicon. Every section is keyed by the
// canonical concept it describes so new synonyms can be added without
// touching the interpreter.
type Table struct {
	Numbers     []NumberWords  `yaml:"numbers"`
	Units       []UnitWords    `yaml:"units"`
	Keywords    []KeywordGroup `yaml:"keywords"`
	WakePhrases []string       `yaml:"wake_phrases"`
	ExitPhrases []string       `yaml:"exit_phrases"`
}

// NumberWords maps spoken words to one numeric value.
type NumberWords struct {
	Value float64  `yaml:"value"`
	Words []string `yaml:"words"`
}

// UnitWords maps raw unit synonyms to a canonical unit.
type UnitWords struct {
	Canonical string   `yaml:"canonical"`
	Words     []string `yaml:"words"`
}

// KeywordGroup is a category of household keywords used by the
// keyword fallback of the extractor.
type KeywordGroup struct {
	Category string   `yaml:"category"`
	Words    []string `yaml:"words"`
}

// CanonicalUnits is the closed set of units an entry may carry. The empty
// string means "unspecified" and is not listed.
var CanonicalUnits = []string{"kg", "g", "l", "ml", "packet", "bottle", "box", "pcs"}

// DefaultTable returns the built-in lexicon. Hindi transliterations sit next
// to the English words because translation is best-effort and untranslated
// text can reach the interpreter.
func DefaultTable() Table {
	return Table{
		Numbers: []NumberWords{
			{Value: 0.5, Words: []string{"half", "aadha", "adha"}},
			{Value: 1, Words: []string{"one"}},
			{Value: 2, Words: []string{"two", "do"}},
			{Value: 3, Words: []string{"three", "teen"}},
			{Value: 4, Words: []string{"four", "char"}},
			{Value: 5, Words: []string{"five", "paanch"}},
			{Value: 6, Words: []string{"six"}},
			{Value: 7, Words: []string{"seven"}},
			{Value: 8, Words: []string{"eight"}},
			{Value: 9, Words: []string{"nine"}},
			{Value: 10, Words: []string{"ten"}},
		},
		Units: []UnitWords{
			{Canonical: "kg", Words: []string{"kg", "kilo", "kilogram"}},
			{Canonical: "g", Words: []string{"g", "gram", "grams", "gm", "gms"}},
			{Canonical: "l", Words: []string{"liter", "litre", "l", "ltr"}},
			{Canonical: "ml", Words: []string{"ml", "milliliter", "millilitre"}},
			{Canonical: "packet", Words: []string{"packet", "packets", "pack"}},
			{Canonical: "bottle", Words: []string{"bottle", "botal"}},
			{Canonical: "box", Words: []string{"box"}},
			{Canonical: "pcs", Words: []string{"piece", "pieces", "pc", "pcs"}},
		},
		Keywords: []KeywordGroup{
			{Category: "vegetables", Words: []string{
				"aloo", "aalu", "potato", "pyaj", "pyaaz", "onion",
				"gajar", "carrot", "mirchi", "chilli", "chili",
				"tomato", "tamatar",
			}},
			{Category: "staples", Words: []string{
				"rice", "chawal", "atta", "flour", "maida",
				"salt", "namak", "sugar", "cheeni", "dal", "pulses",
				"oil", "refined", "ghee",
			}},
			{Category: "dairy", Words: []string{"milk", "dahi", "curd", "butter", "paneer"}},
			{Category: "snacks", Words: []string{
				"biscuit", "biscuits", "chips", "kurkure", "namkeen",
				"cold drink", "cola", "coke", "pepsi", "juice",
			}},
			{Category: "condiments", Words: []string{
				"achar", "aachar", "aachaar", "pickle",
				"sauce", "ketchup", "masala", "powder",
			}},
			{Category: "hygiene", Words: []string{
				"soap", "detergent", "washing powder",
				"shampoo", "conditioner", "toothpaste", "brush",
				"handwash", "facewash",
			}},
			{Category: "personal", Words: []string{"condom", "sanitary", "pad", "tissue"}},
			{Category: "misc", Words: []string{"t-shirt", "shirt", "jeans", "mobile", "charger"}},
			{Category: "general", Words: []string{"bottle", "packet"}},
		},
		WakePhrases: []string{
			"hello device",
			"hey device",
			"hello assistant",
			"hey assistant",
			"wake up",
			"start listening",
		},
		ExitPhrases: []string{"exit", "goodbye"},
	}
}

// Merge returns a copy of t extended with the contents of other. Entries of
// other are appended after the entries of t; later synonyms win when the
// table is compiled.
func (t Table) Merge(other Table) Table {
	merged := Table{
		Numbers:     append(append([]NumberWords{}, t.Numbers...), other.Numbers...),
		Units:       append(append([]UnitWords{}, t.Units...), other.Units...),
		Keywords:    append(append([]KeywordGroup{}, t.Keywords...), other.Keywords...),
		WakePhrases: append(append([]string{}, t.WakePhrases...), other.WakePhrases...),
		ExitPhrases: append(append([]string{}, t.ExitPhrases...), other.ExitPhrases...),
	}

	return merged
}
