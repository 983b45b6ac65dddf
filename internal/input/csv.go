package input

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/samber/lo"

	"github.com/shubhamdevjs/Reddit-Masterming/internal/core"
)

var csvColumns = []string{
	"company_name",
	"company_description",
	"target_posts_per_week",
	"subreddit",
	"keyword_id",
	"keyword",
	"persona_username",
	"persona_info",
}

// ReadCSV reads a campaign spreadsheet export: one row per subreddit/keyword/persona combination,
// the company columns are taken from the first row.
func ReadCSV(r io.Reader) (Input, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return Input{}, fmt.Errorf("%w: empty file", ErrInvalidInput)
		}
		return Input{}, fmt.Errorf("%w: %w", ErrInvalidInput, err)
	}

	index := lo.SliceToMap(lo.Range(len(header)), func(i int) (string, int) {
		return strings.ToLower(strings.TrimSpace(strings.TrimPrefix(header[i], "\ufeff"))), i
	})
	for _, col := range csvColumns {
		if _, ok := index[col]; !ok {
			return Input{}, fmt.Errorf("%w: missing column: %s", ErrInvalidInput, col)
		}
	}

	var (
		in   Input
		rows int
	)
	for {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return Input{}, fmt.Errorf("%w: %w", ErrInvalidInput, err)
		}

		get := func(col string) string {
			i := index[col]
			if i >= len(record) {
				return ""
			}
			return strings.TrimSpace(record[i])
		}

		if rows == 0 {
			in.CompanyName = get("company_name")
			in.CompanyDescription = get("company_description")
			ppw, err := strconv.Atoi(get("target_posts_per_week"))
			if err != nil {
				return Input{}, fmt.Errorf("%w: target_posts_per_week: %w", ErrInvalidInput, err)
			}
			in.PostsPerWeek = ppw
		}
		rows++

		in.Subreddits = append(in.Subreddits, get("subreddit"))
		if id, kw := get("keyword_id"), get("keyword"); id != "" && kw != "" {
			in.Keywords = append(in.Keywords, core.Keyword{ID: id, Keyword: kw})
		}
		if u, info := get("persona_username"), get("persona_info"); u != "" && info != "" {
			in.Personas = append(in.Personas, core.Persona{Username: u, Info: info})
		}
	}

	if rows == 0 {
		return Input{}, fmt.Errorf("%w: no data rows", ErrInvalidInput)
	}

	return in.Normalize(), nil
}
