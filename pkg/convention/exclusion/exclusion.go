package exclusion

import (
	"sort"
	"strings"
	"unicode"
)

// Set holds account ids that must never receive work.
type Set map[string]struct{}

// Parse splits raw on commas and whitespace, in any mix, dropping blank tokens.
func Parse(raw string) Set {
	set := Set{}

	tokens := strings.FieldsFunc(raw, func(r rune) bool {
		return r == ',' || unicode.IsSpace(r)
	})

	for _, token := range tokens {
		if token = strings.TrimSpace(token); token != "" {
			set[token] = struct{}{}
		}
	}

	return set
}

func (s Set) Contains(account string) bool {
	_, excluded := s[account]
	return excluded
}

func (s Set) List() []string {
	accounts := make([]string, 0, len(s))
	for account := range s {
		accounts = append(accounts, account)
	}

	sort.Strings(accounts)
	return accounts
}
