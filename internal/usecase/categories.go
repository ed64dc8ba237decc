package usecase

// CategorySet is the configured list of valid category tokens, in display
// order.
type CategorySet struct {
	ordered []string
	index   map[string]struct{}
}

func NewCategorySet(categories []string) CategorySet {
	ordered := make([]string, 0, len(categories))
	index := make(map[string]struct{}, len(categories))
	for _, category := range categories {
		if _, dup := index[category]; dup {
			continue
		}
		ordered = append(ordered, category)
		index[category] = struct{}{}
	}
	return CategorySet{ordered: ordered, index: index}
}

func (s CategorySet) Has(category string) bool {
	_, ok := s.index[category]
	return ok
}

func (s CategorySet) List() []string {
	return append([]string(nil), s.ordered...)
}
