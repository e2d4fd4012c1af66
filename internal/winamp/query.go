package winamp

import (
	"errors"
	"fmt"
	"strings"
)

// Query runs a media library filter query such as `artist has "alice"`
// and returns at most maxResults items, or all of them when maxResults
// is zero.
func (s *Session) Query(filter string, maxResults int) ([]Item, error) {
	return s.runQuery(filter, maxResults, mlIPCDBRunQuery)
}

// QueryKeyword searches every field of the media library for keyword.
func (s *Session) QueryKeyword(keyword string, maxResults int) ([]Item, error) {
	return s.runQuery(keyword, maxResults, mlIPCDBRunQuerySearch)
}

// QuoteQuery quotes s as a string literal for a filter query. Embedded
// double quotes are written as \" and backslashes are left alone, so
// Windows paths pass through unchanged.
func QuoteQuery(s string) string {
	return `"` + strings.ReplaceAll(s, `"`, `\"`) + `"`
}

// runQuery sends a query envelope to the library window. The target fills
// the envelope's result list in place with an array it allocated itself;
// that array is released with FREEQUERYRESULTS exactly once, on every path
// after the query ran. The envelope allocation is left to the target.
func (s *Session) runQuery(text string, maxResults, code int) (items []Item, err error) {
	if maxResults < 0 {
		return nil, fmt.Errorf("%w: max results %d", ErrInvalidArgument, maxResults)
	}

	q, err := s.marsh.WriteString(text)
	if err != nil {
		return nil, fmt.Errorf("query: %w", err)
	}
	defer release(q, &err)

	env := NewRecord(QueryShape)
	env.SetPointer("query", q.Addr)
	env.SetInt32("max_results", int32(maxResults))

	envBuf, err := s.marsh.WriteRecord(env)
	if err != nil {
		return nil, fmt.Errorf("query: %w", err)
	}

	if _, err := s.channel.library(uintptr(envBuf.Addr), code); err != nil {
		return nil, err
	}
	defer func() {
		if _, ferr := s.channel.library(uintptr(envBuf.Addr), mlIPCDBFreeQueryResults); ferr != nil {
			err = errors.Join(err, fmt.Errorf("free query results: %w", ferr))
		}
	}()

	got, err := s.marsh.ReadRecord(envBuf.Addr, QueryShape)
	if err != nil {
		return nil, fmt.Errorf("query: read results: %w", err)
	}

	count := int(got.Int32("results.size"))
	s.log.Debug("query ran", "query", text, "code", code, "count", count)
	if count <= 0 {
		return []Item{}, nil
	}

	size := ItemRecordShape.Size()
	raw, err := s.marsh.ReadBytes(got.Pointer("results.items"), count*size)
	if err != nil {
		return nil, fmt.Errorf("query: read items: %w", err)
	}

	items = make([]Item, 0, count)
	for i := 0; i < count; i++ {
		rec := recordFrom(ItemRecordShape, raw[i*size:(i+1)*size])
		if err := s.marsh.ResolvePointers(rec); err != nil {
			return nil, fmt.Errorf("query: item %d: %w", i, err)
		}
		items = append(items, itemFrom(rec))
	}
	return items, nil
}
