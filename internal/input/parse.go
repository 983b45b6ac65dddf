package input

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/samber/lo"

	"github.com/shubhamdevjs/Reddit-Masterming/internal/core"
)

var keywordID = regexp.MustCompile(`^[A-Za-z]{0,3}[0-9]+$`)

// ParseKeywords reads one keyword per line. Rows like "K3<TAB>ai slides" or "K3,ai slides" keep
// their id, bare rows are numbered K1, K2... skipping ids already taken. Keywords repeating an
// earlier one, ignoring case, are dropped. A pasted "keyword_id<TAB>keyword" header is skipped.
func ParseKeywords(text string) []core.Keyword {
	return mergeKeywords(nil, keywordRows(text))
}

func keywordRows(text string) []core.Keyword {
	var keywords []core.Keyword
	for _, line := range lines(text) {
		if id, kw, ok := strings.Cut(line, "\t"); ok {
			if strings.EqualFold(strings.TrimSpace(id), "keyword_id") {
				continue
			}
			keywords = append(keywords, core.Keyword{ID: id, Keyword: kw})
			continue
		}
		if id, kw, ok := strings.Cut(line, ","); ok && keywordID.MatchString(strings.TrimSpace(id)) {
			keywords = append(keywords, core.Keyword{ID: id, Keyword: kw})
			continue
		}
		keywords = append(keywords, core.Keyword{Keyword: line})
	}
	return keywords
}

// ParseSubreddits reads subreddits separated by newlines or commas.
func ParseSubreddits(text string) []string {
	fields := strings.FieldsFunc(text, func(r rune) bool {
		return r == '\n' || r == '\r' || r == ','
	})
	return normalizeSubreddits(fields)
}

// ParsePersonas reads one persona per line as "username<TAB>description". Without a tab the first
// ':' or ',' separates the two.
func ParsePersonas(text string) []core.Persona {
	var personas []core.Persona
	for _, line := range lines(text) {
		username, info, ok := strings.Cut(line, "\t")
		if !ok {
			username, info, _ = cutAny(line, ":", ",")
		}
		personas = append(personas, core.Persona{Username: username, Info: info})
	}
	return mergePersonas(nil, personas)
}

func normalizeSubreddit(s string) string {
	s = strings.TrimSpace(s)
	s = strings.TrimPrefix(s, "/")
	if len(s) >= 2 && strings.EqualFold(s[:2], "r/") {
		s = s[2:]
	}
	s = strings.Trim(s, "/ ")
	if s == "" {
		return ""
	}
	return "r/" + s
}

func normalizeSubreddits(subs []string) []string {
	normalized := lo.Compact(lo.Map(subs, func(s string, _ int) string { return normalizeSubreddit(s) }))
	return lo.UniqBy(normalized, strings.ToLower)
}

func normalizeUsername(s string) string {
	s = strings.TrimSpace(s)
	s = strings.TrimPrefix(s, "/")
	if len(s) >= 2 && strings.EqualFold(s[:2], "u/") {
		s = s[2:]
	}
	return strings.TrimSpace(s)
}

// mergeKeywords appends extra to base, dropping blanks and repeats and assigning ids to keywords
// without one.
func mergeKeywords(base, extra []core.Keyword) []core.Keyword {
	all := lo.FilterMap(append(append([]core.Keyword{}, base...), extra...), func(k core.Keyword, _ int) (core.Keyword, bool) {
		k.ID = strings.TrimSpace(k.ID)
		k.Keyword = strings.TrimSpace(k.Keyword)
		return k, k.Keyword != ""
	})
	all = lo.UniqBy(all, func(k core.Keyword) string { return strings.ToLower(k.Keyword) })

	used := lo.SliceToMap(all, func(k core.Keyword) (string, bool) { return k.ID, true })
	next := 1
	for i := range all {
		if all[i].ID != "" {
			continue
		}
		for used[fmt.Sprintf("K%d", next)] {
			next++
		}
		all[i].ID = fmt.Sprintf("K%d", next)
		used[all[i].ID] = true
	}

	return all
}

func mergePersonas(base, extra []core.Persona) []core.Persona {
	all := lo.FilterMap(append(append([]core.Persona{}, base...), extra...), func(p core.Persona, _ int) (core.Persona, bool) {
		p.Username = normalizeUsername(p.Username)
		p.Info = strings.TrimSpace(p.Info)
		return p, p.Username != ""
	})
	return lo.UniqBy(all, func(p core.Persona) string { return p.Username })
}

func lines(text string) []string {
	text = strings.ReplaceAll(text, "\r\n", "\n")
	return lo.Compact(lo.Map(strings.Split(text, "\n"), func(l string, _ int) string {
		return strings.TrimSpace(l)
	}))
}

// cutAny splits s around the earliest occurrence of any of the separators.
func cutAny(s string, seps ...string) (before, after string, found bool) {
	at, width := -1, 0
	for _, sep := range seps {
		if i := strings.Index(s, sep); i >= 0 && (at < 0 || i < at) {
			at, width = i, len(sep)
		}
	}
	if at < 0 {
		return s, "", false
	}
	return strings.TrimSpace(s[:at]), strings.TrimSpace(s[at+width:]), true
}
