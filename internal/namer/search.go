package namer

import (
	"sort"
	"strings"

	"github.com/sahilm/fuzzy"

	"txHumanizer/internal/model"
)

// AddressDesc is a searchable address label.
type AddressDesc struct {
	Address string
	Desc    string
}

// Match is a search hit ordered by score.
type Match struct {
	AddressDesc
	Score int
}

// Source is the fuzzy search corpus over labeled addresses.
type Source []AddressDesc

func (s Source) Len() int {
	return len(s)
}

func (s Source) String(i int) string {
	return strings.ReplaceAll(s[i].Desc, " ", "_") + "_" + s[i].Address
}

// NewSource lists names and token labels from info plus extra entries,
// sorted by address. Entries from info win over extra ones.
func NewSource(info *model.HumanizerInfo, extra map[string]string) Source {
	all := make(map[string]string)
	for addr, desc := range extra {
		all[model.NormalizeAddress(addr)] = desc
	}
	if info != nil {
		for addr, meta := range info.Tokens {
			if label := meta.Label(); label != "" {
				all[addr] = label
			}
		}
		for addr, name := range info.Names {
			if name != "" {
				all[addr] = name
			}
		}
	}

	source := make(Source, 0, len(all))
	for addr, desc := range all {
		source = append(source, AddressDesc{Address: addr, Desc: desc})
	}
	sort.Slice(source, func(i, j int) bool { return source[i].Address < source[j].Address })
	return source
}

// Search returns up to limit matches for input, best first.
func Search(input string, source Source, limit int) []Match {
	matches := fuzzy.FindFrom(strings.ReplaceAll(input, " ", "_"), source)
	if limit > 0 && len(matches) > limit {
		matches = matches[:limit]
	}
	out := make([]Match, 0, len(matches))
	for _, m := range matches {
		out = append(out, Match{AddressDesc: source[m.Index], Score: m.Score})
	}
	return out
}
