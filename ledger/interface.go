package ledger

// Interface is the grocery ledger. Name matching is a case-insensitive
// substring match on the item name and "last" is the most recently added
// entry. Mutations report how many entries they touched.
type Interface interface {
	Add(quantity float64, unit, item string) (Entry, error)
	DeleteLast() (Entry, bool, error)
	DeleteByName(substring string) (int, error)
	DeleteAll() (int, error)
	UpdateLast(quantity float64, unit, item string) (int, error)
	UpdateByName(substring string, quantity float64, unit, item string) (int, error)
	RenameByName(substring, newName string) (int, error)
	ExportCSV(path string) (int, error)
	Entries() ([]Entry, error)
}
