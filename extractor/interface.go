package extractor

type Interface interface {
	Extract(tokens []string) (Entry, bool)
	ParseQuantity(word string) (float64, bool)
}
